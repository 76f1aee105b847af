package usecases

import (
	"net/url"
	"strings"

	"file-manager-client/internal/domain"
)

// Render переводит листинг в список инструкций для отображения, без привязки к терминалу.
// первая инструкция всегда заголовок с текущим путём.
func Render(listing domain.DirectoryListing) []domain.RenderInstruction {
	out := make([]domain.RenderInstruction, 0, len(listing.Items)+2)

	label := listing.CurrentPath
	if label == domain.PathEmpty {
		label = domain.PathRoot
	}
	out = append(out, domain.RenderInstruction{
		Kind:  domain.RenderHeader,
		Label: label,
		Path:  listing.CurrentPath,
	})

	if listing.CurrentPath != domain.PathEmpty {
		out = append(out, domain.RenderInstruction{
			Kind:    domain.RenderBack,
			Label:   BackLabel,
			Path:    ParentPath(listing.CurrentPath),
			Actions: []domain.Action{domain.ActionOpen},
		})
	}

	for _, item := range listing.Items {
		if item.IsDirectory {
			out = append(out, domain.RenderInstruction{
				Kind:    domain.RenderFolder,
				Label:   item.Name,
				Path:    item.Path,
				Actions: []domain.Action{domain.ActionOpen},
			})
			continue
		}
		out = append(out, domain.RenderInstruction{
			Kind:    domain.RenderFile,
			Label:   item.Name,
			Path:    item.Path,
			Actions: []domain.Action{domain.ActionDownload, domain.ActionDelete},
		})
	}

	return out
}

// ParentPath отрезает последний сегмент пути. Для пути без "/" родитель это корень.
func ParentPath(path string) string {
	idx := strings.LastIndex(path, domain.PathSeparator)
	if idx < 0 {
		return domain.PathEmpty
	}
	return path[:idx]
}

// BuildDownloadLink собирает ссылку для прямого скачивания.
// password добавляется только если есть credential.
func BuildDownloadLink(route, path, credential string) string {
	params := url.Values{}
	if credential != "" {
		params.Set(QueryParamPassword, credential)
	}
	params.Set(QueryParamFilePath, path)
	return route + "?" + params.Encode()
}
