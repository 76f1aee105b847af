package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"

	"file-manager-client/internal/domain"
)

// View операции просмотра каталога, которыми управляет шелл.
type View interface {
	ListDirectory(ctx context.Context, path string) error
	NavigateUp(ctx context.Context) error
	Refresh(ctx context.Context) error
	Open(ctx context.Context, name string) error
	File(name string) (domain.Entry, error)
	CreateFolder(ctx context.Context, name, parentPath string) error
	UploadFile(ctx context.Context, upload *domain.Upload, targetPath string) error
	DeleteFile(ctx context.Context, path string) error
	DownloadFile(ctx context.Context, path string) error
	DownloadLink(path string) string
	State() domain.ViewState
}

// UploadOpener открывает локальный файл для загрузки.
type UploadOpener interface {
	OpenUpload(path string) (*domain.Upload, io.Closer, error)
}

const helpText = `Commands:
  ls                 refresh current folder
  cd <name|..|/>     open folder
  up                 go to parent folder
  pwd                print current path
  mkdir <name>       create folder in current path
  put <local file>   upload file into current path
  get <name>         download file into download dir
  link <name>        print download link
  rm <name>          delete file (asks for confirmation)
  help               show this help
  exit               quit`

type Shell struct {
	view      View
	opener    UploadOpener
	presenter *Presenter
	in        *bufio.Reader
	out       io.Writer
}

func NewShell(view View, opener UploadOpener, presenter *Presenter, in *bufio.Reader, out io.Writer) *Shell {
	return &Shell{
		view:      view,
		opener:    opener,
		presenter: presenter,
		in:        in,
		out:       out,
	}
}

// Run показывает корень и читает команды до exit, EOF или отмены контекста.
func (s *Shell) Run(ctx context.Context) error {
	s.report(s.view.ListDirectory(ctx, domain.PathEmpty))

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		fmt.Fprintf(s.out, "fm:%s> ", displayPath(s.view.State().CurrentPath))
		line, err := s.in.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			if quit := s.Execute(ctx, line); quit {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}
	}
}

// Execute выполняет одну команду. Возвращает true, если нужно выйти.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	current := s.view.State().CurrentPath

	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		s.presenter.Println(helpText)
	case "pwd":
		s.presenter.Println(displayPath(current))
	case "ls", "refresh":
		s.report(s.view.Refresh(ctx))
	case "up":
		s.report(s.view.NavigateUp(ctx))
	case "cd":
		switch arg {
		case domain.PathEmpty, domain.PathRoot:
			s.report(s.view.ListDirectory(ctx, domain.PathEmpty))
		case domain.PathParent:
			s.report(s.view.NavigateUp(ctx))
		default:
			s.report(s.view.Open(ctx, arg))
		}
	case "mkdir":
		s.report(s.view.CreateFolder(ctx, arg, current))
	case "put":
		s.put(ctx, arg, current)
	case "get":
		if entry, ok := s.file(arg); ok {
			s.report(s.view.DownloadFile(ctx, entry.Path))
		}
	case "link":
		if entry, ok := s.file(arg); ok {
			s.presenter.Println(s.view.DownloadLink(entry.Path))
		}
	case "rm":
		if entry, ok := s.file(arg); ok {
			s.report(s.view.DeleteFile(ctx, entry.Path))
		}
	default:
		s.presenter.Alert(fmt.Sprintf("unknown command %q, type help", cmd))
	}
	return false
}

func (s *Shell) put(ctx context.Context, localPath, current string) {
	// пустой аргумент это "файл не выбран": UploadFile ничего не отправит.
	if localPath == "" {
		s.report(s.view.UploadFile(ctx, nil, current))
		return
	}

	upload, closer, err := s.opener.OpenUpload(localPath)
	if err != nil {
		s.presenter.Alert(fmt.Sprintf("cannot open %s: %v", localPath, err))
		return
	}
	defer func() {
		if closeErr := closer.Close(); closeErr != nil {
			logrus.Warnf("Failed to close %s: %v", localPath, closeErr)
		}
	}()

	logrus.Debugf("Uploading %s (%s)", upload.Name, humanize.Bytes(uint64(max(upload.Size, 0))))
	s.report(s.view.UploadFile(ctx, upload, current))
}

func (s *Shell) file(name string) (domain.Entry, bool) {
	if name == "" {
		s.presenter.Alert("file name required")
		return domain.Entry{}, false
	}
	entry, err := s.view.File(name)
	if err != nil {
		s.presenter.Alert(err.Error())
		return domain.Entry{}, false
	}
	return entry, true
}

// report показывает ошибки, о которых DirectoryView сам не сообщает.
// сбои запросов уже показаны как alert, вытесненный листинг не ошибка.
func (s *Shell) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrNotInListing), errors.Is(err, domain.ErrNotADirectory):
		s.presenter.Alert(err.Error())
	default:
		logrus.Debugf("Command failed: %v", err)
	}
}

func displayPath(path string) string {
	if path == domain.PathEmpty {
		return domain.PathRoot
	}
	return path
}
