package localstorage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"file-manager-client/internal/domain"
)

// LocalStorageService локальная папка, куда сохраняются скачанные файлы.
type LocalStorageService struct {
	basePath string
	dirPerm  os.FileMode
}

func NewLocalStorageService(basePath string, dirPerm os.FileMode) *LocalStorageService {
	return &LocalStorageService{
		basePath: basePath,
		dirPerm:  dirPerm,
	}
}

func (s *LocalStorageService) GetAbsolutePath(relPath string) string {
	return filepath.Join(s.basePath, relPath)
}

// resolve не даёт имени из ответа сервера выйти за пределы базовой директории.
func (s *LocalStorageService) resolve(relPath string) (string, error) {
	clean := filepath.Clean(relPath)
	if clean == domain.PathCurrent || clean == domain.PathEmpty {
		return "", fmt.Errorf("empty file name: %w", domain.ErrInvalidName)
	}
	if filepath.IsAbs(clean) {
		return "", fmt.Errorf("absolute path '%s': %w", relPath, domain.ErrPathTraversal)
	}
	if clean == domain.PathParent || strings.HasPrefix(clean, domain.PathParent+string(filepath.Separator)) {
		return "", fmt.Errorf("path '%s' escapes storage: %w", relPath, domain.ErrPathTraversal)
	}
	return s.GetAbsolutePath(clean), nil
}

// WriteFile записывает поток в хранилище и возвращает число записанных байт.
// родительские директории создаются с нужными правами.
func (s *LocalStorageService) WriteFile(relPath string, file io.Reader) (int64, error) {
	fullPath, err := s.resolve(relPath)
	if err != nil {
		return 0, err
	}

	if mkErr := os.MkdirAll(filepath.Dir(fullPath), s.dirPerm); mkErr != nil {
		return 0, mkErr
	}

	out, err := os.Create(fullPath)
	if err != nil {
		return 0, err
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil {
			logrus.Warnf("Failed to close file %s: %v", fullPath, closeErr)
		}
	}()

	return io.Copy(out, file)
}

// OpenUpload открывает локальный файл для загрузки на сервер.
// путь берётся как есть (относительно рабочего каталога), это выбор пользователя, а не сервера.
func (s *LocalStorageService) OpenUpload(path string) (*domain.Upload, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, nil, fmt.Errorf("'%s': %w", path, domain.ErrIsADirectory)
	}

	return &domain.Upload{
		Name:    info.Name(),
		Size:    info.Size(),
		Content: f,
	}, f, nil
}

func (s *LocalStorageService) EnsureBase() error {
	return os.MkdirAll(s.basePath, s.dirPerm)
}
