package terminal

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"file-manager-client/internal/domain"
)

// mockView records calls made by the shell.
type mockView struct {
	calls   []string
	state   domain.ViewState
	entries map[string]domain.Entry

	listErr error
	openErr error
}

func (m *mockView) ListDirectory(ctx context.Context, path string) error {
	m.calls = append(m.calls, "list:"+path)
	if m.listErr == nil {
		m.state.CurrentPath = path
	}
	return m.listErr
}

func (m *mockView) NavigateUp(ctx context.Context) error {
	m.calls = append(m.calls, "up")
	return nil
}

func (m *mockView) Refresh(ctx context.Context) error {
	m.calls = append(m.calls, "refresh")
	return nil
}

func (m *mockView) Open(ctx context.Context, name string) error {
	m.calls = append(m.calls, "open:"+name)
	return m.openErr
}

func (m *mockView) File(name string) (domain.Entry, error) {
	entry, ok := m.entries[name]
	if !ok {
		return domain.Entry{}, fmt.Errorf("'%s': %w", name, domain.ErrNotInListing)
	}
	return entry, nil
}

func (m *mockView) CreateFolder(ctx context.Context, name, parentPath string) error {
	m.calls = append(m.calls, "mkdir:"+parentPath+"|"+name)
	return nil
}

func (m *mockView) UploadFile(ctx context.Context, upload *domain.Upload, targetPath string) error {
	if upload == nil {
		m.calls = append(m.calls, "put:<nil>")
		return nil
	}
	data, _ := io.ReadAll(upload.Content)
	m.calls = append(m.calls, "put:"+targetPath+"|"+upload.Name+"|"+string(data))
	return nil
}

func (m *mockView) DeleteFile(ctx context.Context, path string) error {
	m.calls = append(m.calls, "rm:"+path)
	return nil
}

func (m *mockView) DownloadFile(ctx context.Context, path string) error {
	m.calls = append(m.calls, "get:"+path)
	return nil
}

func (m *mockView) DownloadLink(path string) string {
	return "/download_file?filepath=" + path
}

func (m *mockView) State() domain.ViewState {
	return m.state
}

type mockOpener struct {
	files map[string]string
}

type nopCloser struct{ closed *bool }

func (n nopCloser) Close() error {
	*n.closed = true
	return nil
}

func (m *mockOpener) OpenUpload(path string) (*domain.Upload, io.Closer, error) {
	content, ok := m.files[path]
	if !ok {
		return nil, nil, errors.New("no such file")
	}
	closed := false
	return &domain.Upload{Name: path, Size: int64(len(content)), Content: strings.NewReader(content)}, nopCloser{closed: &closed}, nil
}

type shellFixture struct {
	view   *mockView
	out    *bytes.Buffer
	errOut *bytes.Buffer
	shell  *Shell
}

func newShellFixture(input string) *shellFixture {
	f := &shellFixture{
		view: &mockView{
			entries: map[string]domain.Entry{
				"a.txt": {Name: "a.txt", Path: "docs/a.txt"},
			},
		},
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
	}
	opener := &mockOpener{files: map[string]string{"local.txt": "hello"}}
	presenter := NewPresenter(f.out, f.errOut)
	f.shell = NewShell(f.view, opener, presenter, bufio.NewReader(strings.NewReader(input)), f.out)
	return f
}

func TestShell_Run(t *testing.T) {
	t.Run("lists root then runs commands until exit", func(t *testing.T) {
		f := newShellFixture("cd docs\nup\ncd ..\ncd /\nls\nexit\nls\n")

		require.NoError(t, f.shell.Run(context.Background()))

		assert.Equal(t, []string{"list:", "open:docs", "up", "up", "list:", "refresh"}, f.view.calls)
		assert.Contains(t, f.out.String(), "fm:/> ")
	})

	t.Run("eof ends session", func(t *testing.T) {
		f := newShellFixture("pwd")

		require.NoError(t, f.shell.Run(context.Background()))

		assert.Equal(t, []string{"list:"}, f.view.calls)
	})

	t.Run("cancelled context", func(t *testing.T) {
		f := newShellFixture("ls\n")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := f.shell.Run(ctx)

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestShell_Execute(t *testing.T) {
	t.Run("mkdir in current path", func(t *testing.T) {
		f := newShellFixture("")
		f.view.state.CurrentPath = "docs"

		assert.False(t, f.shell.Execute(context.Background(), "mkdir new folder"))

		assert.Equal(t, []string{"mkdir:docs|new folder"}, f.view.calls)
	})

	t.Run("put uploads local file", func(t *testing.T) {
		f := newShellFixture("")
		f.view.state.CurrentPath = "docs"

		f.shell.Execute(context.Background(), "put local.txt")

		assert.Equal(t, []string{"put:docs|local.txt|hello"}, f.view.calls)
	})

	t.Run("put without argument is a no-op upload", func(t *testing.T) {
		f := newShellFixture("")

		f.shell.Execute(context.Background(), "put")

		assert.Equal(t, []string{"put:<nil>"}, f.view.calls)
	})

	t.Run("put missing local file", func(t *testing.T) {
		f := newShellFixture("")

		f.shell.Execute(context.Background(), "put nope.txt")

		assert.Empty(t, f.view.calls)
		assert.Contains(t, f.errOut.String(), "cannot open nope.txt")
	})

	t.Run("get and rm resolve names from listing", func(t *testing.T) {
		f := newShellFixture("")

		f.shell.Execute(context.Background(), "get a.txt")
		f.shell.Execute(context.Background(), "rm a.txt")
		f.shell.Execute(context.Background(), "rm b.txt")

		assert.Equal(t, []string{"get:docs/a.txt", "rm:docs/a.txt"}, f.view.calls)
		assert.Contains(t, f.errOut.String(), "no such entry in current listing")
	})

	t.Run("link prints download link", func(t *testing.T) {
		f := newShellFixture("")

		f.shell.Execute(context.Background(), "link a.txt")

		assert.Contains(t, f.out.String(), "/download_file?filepath=docs/a.txt")
	})

	t.Run("cd into file reports error", func(t *testing.T) {
		f := newShellFixture("")
		f.view.openErr = fmt.Errorf("'a.txt': %w", domain.ErrNotADirectory)

		f.shell.Execute(context.Background(), "cd a.txt")

		assert.Contains(t, f.errOut.String(), "entry is not a directory")
	})

	t.Run("request failures are not reported twice", func(t *testing.T) {
		f := newShellFixture("")
		f.view.listErr = fmt.Errorf("list: %w", domain.ErrNetworkFailure)

		f.shell.Execute(context.Background(), "cd /")

		assert.Empty(t, f.errOut.String())
	})

	t.Run("unknown command", func(t *testing.T) {
		f := newShellFixture("")

		assert.False(t, f.shell.Execute(context.Background(), "frobnicate"))

		assert.Contains(t, f.errOut.String(), `unknown command "frobnicate"`)
	})

	t.Run("help and quit", func(t *testing.T) {
		f := newShellFixture("")

		assert.False(t, f.shell.Execute(context.Background(), "help"))
		assert.Contains(t, f.out.String(), "Commands:")
		assert.True(t, f.shell.Execute(context.Background(), "quit"))
	})
}
