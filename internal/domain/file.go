package domain

import (
	"context"
	"io"
)

// Entry один файл или подпапка из листинга.
type Entry struct {
	Name        string `json:"name"`
	Path        string `json:"path"`
	IsDirectory bool   `json:"is_directory"`
}

// DirectoryListing результат листинга одного пути.
type DirectoryListing struct {
	CurrentPath string  `json:"current_path"`
	Items       []Entry `json:"items"`
}

// ViewState минимальное состояние клиента: что показываем и чем авторизуем скачивание.
type ViewState struct {
	CurrentPath string
	Credential  string
}

// WithPath возвращает копию состояния с новым путём.
func (s ViewState) WithPath(path string) ViewState {
	s.CurrentPath = path
	return s
}

// Upload выбранный для загрузки файл.
type Upload struct {
	Name    string
	Size    int64
	Content io.Reader
}

// DirectoryService удалённый сервис файлового менеджера.
type DirectoryService interface {
	List(ctx context.Context, path string) (*DirectoryListing, error)
	CreateFolder(ctx context.Context, name, parentPath string) error
	Upload(ctx context.Context, upload *Upload, targetPath, credential string) error
	Delete(ctx context.Context, path string) error
}

// Navigator переходит по ссылке скачивания.
type Navigator interface {
	Navigate(ctx context.Context, link string) error
}

// Presenter показывает результат пользователю.
type Presenter interface {
	Render(instructions []RenderInstruction)
	Alert(message string)
	ResetInput(field InputField)
}

// Confirmer спрашивает подтверждение необратимого действия.
type Confirmer interface {
	Confirm(prompt string) bool
}
