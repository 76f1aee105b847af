package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"file-manager-client/internal/config"
	"file-manager-client/internal/domain"
)

// DirectoryView держит состояние просмотра и перечитывает листинг после каждой мутации.
type DirectoryView struct {
	service   domain.DirectoryService
	navigator domain.Navigator
	presenter domain.Presenter
	confirmer domain.Confirmer
	routes    config.RoutesConfig
	messages  config.Messages

	mu         sync.Mutex
	state      domain.ViewState
	status     domain.ListingStatus
	listing    *domain.DirectoryListing
	generation uint64
	cancel     context.CancelFunc
}

func NewDirectoryView(
	service domain.DirectoryService,
	navigator domain.Navigator,
	presenter domain.Presenter,
	confirmer domain.Confirmer,
	cfg *config.Config,
	credential string,
) *DirectoryView {
	return &DirectoryView{
		service:   service,
		navigator: navigator,
		presenter: presenter,
		confirmer: confirmer,
		routes:    cfg.Routes,
		messages:  cfg.Messages,
		state:     domain.ViewState{Credential: credential},
		status:    domain.StatusIdle,
	}
}

// State возвращает копию текущего состояния.
func (v *DirectoryView) State() domain.ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *DirectoryView) Status() domain.ListingStatus {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.status
}

// Listing последний отрисованный листинг, nil если ещё ничего не показано.
func (v *DirectoryView) Listing() *domain.DirectoryListing {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.listing == nil {
		return nil
	}
	cp := *v.listing
	cp.Items = append([]domain.Entry(nil), v.listing.Items...)
	return &cp
}

// ListDirectory запрашивает листинг пути ("" это корень) и отрисовывает его.
// более ранний незавершённый запрос отменяется, а его ответ отбрасывается,
// поэтому на экране всегда результат последнего запроса, а не последнего ответа.
func (v *DirectoryView) ListDirectory(ctx context.Context, path string) error {
	reqCtx, gen := v.beginListing(ctx)
	listing, err := v.service.List(reqCtx, path)
	return v.finishListing(gen, path, listing, err)
}

func (v *DirectoryView) beginListing(ctx context.Context) (context.Context, uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cancel != nil {
		v.cancel()
	}
	v.generation++
	reqCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel
	v.status = domain.StatusLoading
	return reqCtx, v.generation
}

// finishListing рендерит под мьютексом: иначе более старый ответ мог бы
// проверить поколение, уступить новому и отрисоваться поверх него.
// Presenter не должен вызывать DirectoryView изнутри Render.
func (v *DirectoryView) finishListing(gen uint64, path string, listing *domain.DirectoryListing, err error) error {
	v.mu.Lock()

	if gen != v.generation {
		v.mu.Unlock()
		logrus.WithFields(logrus.Fields{
			"operation": OperationList,
			"path":      path,
		}).Debug(LogStaleListing)
		return domain.ErrStaleListing
	}

	v.cancel()
	v.cancel = nil

	if err == nil && listing == nil {
		err = fmt.Errorf("empty response: %w", domain.ErrNetworkFailure)
	}
	if err != nil {
		v.status = domain.StatusErrored
		v.mu.Unlock()

		logrus.Errorf("Failed to list '%s': %v", path, err)
		v.presenter.Alert(v.messages.ErrorLoadingFiles)
		return fmt.Errorf("could not list '%s': %w", path, err)
	}

	v.state = v.state.WithPath(listing.CurrentPath)
	v.listing = listing
	v.status = domain.StatusRendered
	v.presenter.Render(Render(*listing))
	v.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"operation": OperationList,
		"path":      listing.CurrentPath,
		"items":     len(listing.Items),
	}).Debug(LogDirectoryListed)
	return nil
}

// NavigateUp переходит к родителю текущего пути.
func (v *DirectoryView) NavigateUp(ctx context.Context) error {
	return v.ListDirectory(ctx, ParentPath(v.State().CurrentPath))
}

// Refresh перечитывает текущий путь.
func (v *DirectoryView) Refresh(ctx context.Context) error {
	return v.ListDirectory(ctx, v.State().CurrentPath)
}

// CreateFolder создаёт папку name внутри parentPath. Пустое имя игнорируется.
func (v *DirectoryView) CreateFolder(ctx context.Context, name, parentPath string) error {
	if name == "" {
		return nil
	}

	if err := v.service.CreateFolder(ctx, name, parentPath); err != nil {
		logrus.Errorf("Failed to create folder '%s' in '%s': %v", name, parentPath, err)
		v.presenter.Alert(v.messages.ErrorCreatingFolder)
		return fmt.Errorf("could not create folder '%s': %w", name, err)
	}

	logrus.WithFields(logrus.Fields{
		"operation": OperationCreateFolder,
		"path":      parentPath,
		"name":      name,
	}).Info(LogFolderCreated)

	v.presenter.ResetInput(domain.InputFolderName)
	return v.ListDirectory(ctx, parentPath)
}

// UploadFile отправляет файл в targetPath. nil означает, что файл не выбран.
func (v *DirectoryView) UploadFile(ctx context.Context, upload *domain.Upload, targetPath string) error {
	if upload == nil {
		return nil
	}

	if err := v.service.Upload(ctx, upload, targetPath, v.State().Credential); err != nil {
		logrus.Errorf("Failed to upload '%s' to '%s': %v", upload.Name, targetPath, err)
		v.presenter.Alert(v.messages.ErrorUploadingFile)
		return fmt.Errorf("could not upload '%s': %w", upload.Name, err)
	}

	logrus.WithFields(logrus.Fields{
		"operation": OperationUpload,
		"path":      targetPath,
		"name":      upload.Name,
		"size":      humanize.Bytes(uint64(max(upload.Size, 0))),
	}).Info(LogFileUploaded)

	v.presenter.ResetInput(domain.InputFilePicker)
	return v.ListDirectory(ctx, targetPath)
}

// DeleteFile удаляет файл после подтверждения и перечитывает текущий путь.
func (v *DirectoryView) DeleteFile(ctx context.Context, path string) error {
	if !v.confirmer.Confirm(v.messages.ConfirmDelete) {
		return nil
	}

	if err := v.service.Delete(ctx, path); err != nil {
		logrus.Errorf("Failed to delete '%s': %v", path, err)
		v.presenter.Alert(v.messages.ErrorDeletingFile)
		return fmt.Errorf("could not delete '%s': %w", path, err)
	}

	logrus.WithFields(logrus.Fields{
		"operation": OperationDelete,
		"path":      path,
	}).Info(LogFileDeleted)

	return v.Refresh(ctx)
}

// DownloadLink ссылка на скачивание path с учётом credential из состояния.
func (v *DirectoryView) DownloadLink(path string) string {
	return BuildDownloadLink(v.routes.Download, path, v.State().Credential)
}

// DownloadFile переходит по ссылке скачивания, сам поток обрабатывает Navigator.
func (v *DirectoryView) DownloadFile(ctx context.Context, path string) error {
	link := v.DownloadLink(path)

	logrus.WithFields(logrus.Fields{
		"operation": OperationDownload,
		"path":      path,
	}).Info(LogDownloadStarted)

	if err := v.navigator.Navigate(ctx, link); err != nil {
		logrus.Errorf("Failed to download '%s': %v", path, err)
		v.presenter.Alert(v.messages.ErrorDownloading)
		return fmt.Errorf("could not download '%s': %w", path, err)
	}
	return nil
}

// Lookup ищет запись по имени в последнем отрисованном листинге.
func (v *DirectoryView) Lookup(name string) (domain.Entry, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.listing != nil {
		for _, item := range v.listing.Items {
			if item.Name == name {
				return item, nil
			}
		}
	}
	return domain.Entry{}, fmt.Errorf("'%s': %w", name, domain.ErrNotInListing)
}

// Open открывает папку из текущего листинга по имени.
func (v *DirectoryView) Open(ctx context.Context, name string) error {
	entry, err := v.Lookup(name)
	if err != nil {
		return err
	}
	if !entry.IsDirectory {
		return fmt.Errorf("'%s': %w", name, domain.ErrNotADirectory)
	}
	return v.ListDirectory(ctx, entry.Path)
}

// File ищет файл (не папку) из текущего листинга по имени.
func (v *DirectoryView) File(name string) (domain.Entry, error) {
	entry, err := v.Lookup(name)
	if err != nil {
		return domain.Entry{}, err
	}
	if entry.IsDirectory {
		return domain.Entry{}, fmt.Errorf("'%s': %w", name, domain.ErrIsADirectory)
	}
	return entry, nil
}

// IsStale сообщает, что ошибка означает вытесненный листинг, а не сбой.
func IsStale(err error) bool {
	return errors.Is(err, domain.ErrStaleListing)
}
