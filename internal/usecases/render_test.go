package usecases

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"file-manager-client/internal/domain"
)

func countRows(instructions []domain.RenderInstruction) (rows, back int) {
	for _, in := range instructions {
		switch in.Kind {
		case domain.RenderBack:
			back++
		case domain.RenderFolder, domain.RenderFile:
			rows++
		}
	}
	return rows, back
}

func TestRender(t *testing.T) {
	t.Run("root listing", func(t *testing.T) {
		listing := domain.DirectoryListing{
			CurrentPath: "",
			Items: []domain.Entry{
				{Name: "docs", Path: "docs", IsDirectory: true},
				{Name: "a.txt", Path: "a.txt"},
			},
		}

		out := Render(listing)

		require.Len(t, out, 3)
		assert.Equal(t, domain.RenderHeader, out[0].Kind)
		assert.Equal(t, "/", out[0].Label)
		assert.Equal(t, domain.RenderFolder, out[1].Kind)
		assert.Equal(t, "docs", out[1].Path)
		assert.Equal(t, []domain.Action{domain.ActionOpen}, out[1].Actions)
		assert.Equal(t, domain.RenderFile, out[2].Kind)
		assert.Equal(t, []domain.Action{domain.ActionDownload, domain.ActionDelete}, out[2].Actions)
	})

	t.Run("subfolder gets back row pointing at parent", func(t *testing.T) {
		listing := domain.DirectoryListing{
			CurrentPath: "a/b",
			Items:       []domain.Entry{{Name: "c.txt", Path: "a/b/c.txt"}},
		}

		out := Render(listing)

		require.Len(t, out, 3)
		assert.Equal(t, "a/b", out[0].Label)
		assert.Equal(t, domain.RenderBack, out[1].Kind)
		assert.Equal(t, BackLabel, out[1].Label)
		assert.Equal(t, "a", out[1].Path)
	})

	t.Run("rows follow response order", func(t *testing.T) {
		for _, n := range []int{0, 1, 7, 50} {
			for _, current := range []string{"", "x"} {
				items := make([]domain.Entry, n)
				for i := range items {
					name := strings.Repeat("z", n-i)
					items[i] = domain.Entry{Name: name, Path: name, IsDirectory: i%2 == 0}
				}

				out := Render(domain.DirectoryListing{CurrentPath: current, Items: items})

				rows, back := countRows(out)
				assert.Equal(t, n, rows)
				if current == "" {
					assert.Equal(t, 0, back)
				} else {
					assert.Equal(t, 1, back)
				}

				var labels []string
				for _, in := range out {
					if in.Kind == domain.RenderFolder || in.Kind == domain.RenderFile {
						labels = append(labels, in.Label)
					}
				}
				for i, item := range items {
					assert.Equal(t, item.Name, labels[i])
				}
			}
		}
	})
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"a/b/c", "a/b"},
		{"a/b", "a"},
		{"a", ""},
		{"", ""},
		{"/a", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParentPath(tt.path))
		})
	}
}

func TestBuildDownloadLink(t *testing.T) {
	t.Run("with credential", func(t *testing.T) {
		link := BuildDownloadLink("/download_file", "/a/b.txt", "secret")

		assert.True(t, strings.HasPrefix(link, "/download_file?"))
		assert.Contains(t, link, "filepath=%2Fa%2Fb.txt")
		assert.Contains(t, link, "password=secret")
	})

	t.Run("without credential", func(t *testing.T) {
		link := BuildDownloadLink("/download_file", "/a/b.txt", "")

		assert.Contains(t, link, "filepath=%2Fa%2Fb.txt")
		assert.NotContains(t, link, "password")
	})

	t.Run("special characters round trip", func(t *testing.T) {
		link := BuildDownloadLink("/download_file", "dir/a b&c=d.txt", "p@ss word")

		u, err := url.Parse(link)
		require.NoError(t, err)
		assert.Equal(t, "dir/a b&c=d.txt", u.Query().Get(QueryParamFilePath))
		assert.Equal(t, "p@ss word", u.Query().Get(QueryParamPassword))
	})
}
