package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"file-manager-client/internal/config"
	"file-manager-client/internal/domain"
)

// DownloadStorage куда сохраняются скачанные файлы.
type DownloadStorage interface {
	WriteFile(relPath string, file io.Reader) (int64, error)
}

// Option настраивает Client.
type Option func(*Client)

// WithHTTPClient подменяет http.Client, например в тестах.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// Client HTTP-клиент сервиса файлового менеджера.
// реализует domain.DirectoryService и domain.Navigator.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	routes     config.RoutesConfig
	storage    DownloadStorage
}

func NewClient(cfg *config.Config, storage DownloadStorage, opts ...Option) (*Client, error) {
	if strings.TrimSpace(cfg.Client.BaseURL) == "" {
		return nil, errors.New("apiclient: base URL is required")
	}
	parsed, err := url.Parse(cfg.Client.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("apiclient: invalid base URL: %w", err)
	}

	c := &Client{
		baseURL: parsed,
		// таймаут ноль значит ждать столько, сколько позволяет транспорт.
		httpClient: &http.Client{Timeout: cfg.Client.RequestTimeout},
		routes:     cfg.Routes,
		storage:    storage,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid reference '%s': %w", ref, err)
	}
	return c.baseURL.ResolveReference(u).String(), nil
}

// do выполняет программный (не навигационный) запрос и проверяет статус.
// при успехе вызывающий обязан закрыть тело ответа.
func (c *Client) do(req *http.Request, operation string) (*http.Response, error) {
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestedWith, RequestedWithXHR)
	req.Header.Set(HeaderRequestID, requestID)
	return c.send(req, operation, requestID)
}

func (c *Client) send(req *http.Request, operation, requestID string) (*http.Response, error) {
	fields := logrus.Fields{
		"operation":  operation,
		"url":        req.URL.Path,
		"request_id": requestID,
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithFields(fields).WithError(err).Debug(LogRequestFailed)
		return nil, fmt.Errorf("%s request failed: %w: %w", operation, domain.ErrNetworkFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer closeBody(resp)
		err = statusError(resp)
		logrus.WithFields(fields).WithField("status", resp.StatusCode).WithError(err).Warn(LogRequestFailed)
		return nil, fmt.Errorf("%s request failed: %w", operation, err)
	}

	return resp, nil
}

func (c *Client) postForm(ctx context.Context, operation, route string, form url.Values) (*http.Response, error) {
	target, err := c.resolve(route)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderContentType, ContentTypeForm)
	return c.do(req, operation)
}

// expectAck выполняет мутацию, тело успешного ответа не разбирается.
func (c *Client) expectAck(ctx context.Context, operation, route string, form url.Values) error {
	resp, err := c.postForm(ctx, operation, route, form)
	if err != nil {
		return err
	}
	closeBody(resp)
	return nil
}

func (c *Client) List(ctx context.Context, dirPath string) (*domain.DirectoryListing, error) {
	resp, err := c.postForm(ctx, OperationList, c.routes.List, url.Values{FormParamPath: {dirPath}})
	if err != nil {
		return nil, err
	}
	defer closeBody(resp)

	var listing domain.DirectoryListing
	if decodeErr := json.NewDecoder(resp.Body).Decode(&listing); decodeErr != nil {
		return nil, fmt.Errorf("failed to decode listing of '%s': %w: %w", dirPath, domain.ErrNetworkFailure, decodeErr)
	}
	if listing.Items == nil {
		listing.Items = []domain.Entry{}
	}
	return &listing, nil
}

func (c *Client) CreateFolder(ctx context.Context, name, parentPath string) error {
	return c.expectAck(ctx, OperationCreateFolder, c.routes.CreateFolder, url.Values{
		FormParamFolderName: {name},
		FormParamParentPath: {parentPath},
	})
}

func (c *Client) Delete(ctx context.Context, filePath string) error {
	return c.expectAck(ctx, OperationDelete, c.routes.Delete, url.Values{FormParamFilePath: {filePath}})
}

// Upload отправляет файл как multipart, содержимое стримится через pipe без буферизации в памяти.
func (c *Client) Upload(ctx context.Context, upload *domain.Upload, targetPath, credential string) error {
	target, err := c.resolve(c.routes.Upload)
	if err != nil {
		return err
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeMultipart(mw, upload, targetPath, credential))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, pr)
	if err != nil {
		_ = pr.CloseWithError(err)
		return err
	}
	req.Header.Set(HeaderContentType, mw.FormDataContentType())

	resp, err := c.do(req, OperationUpload)
	// если сервер ответил раньше, чем прочитал тело, писатель не должен зависнуть.
	_ = pr.CloseWithError(io.ErrClosedPipe)
	if err != nil {
		return err
	}
	closeBody(resp)
	return nil
}

func writeMultipart(mw *multipart.Writer, upload *domain.Upload, targetPath, credential string) error {
	if err := mw.WriteField(FormParamCurrentPath, targetPath); err != nil {
		return err
	}
	if credential != "" {
		if err := mw.WriteField(FormParamPassword, credential); err != nil {
			return err
		}
	}
	part, err := mw.CreateFormFile(FormParamFile, upload.Name)
	if err != nil {
		return err
	}
	if _, err = io.Copy(part, upload.Content); err != nil {
		return fmt.Errorf("failed to stream '%s': %w", upload.Name, err)
	}
	return mw.Close()
}

// Navigate открывает ссылку скачивания как навигацию: без X-Requested-With,
// тело ответа сохраняется в локальное хранилище.
func (c *Client) Navigate(ctx context.Context, link string) error {
	target, err := c.resolve(link)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}

	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)
	resp, err := c.send(req, OperationDownload, requestID)
	if err != nil {
		return err
	}
	defer closeBody(resp)

	name := downloadName(resp.Header.Get(HeaderContentDisposition), req.URL.Query().Get(FormParamFilePath))
	written, err := c.storage.WriteFile(name, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to save download '%s': %w", name, err)
	}

	logrus.WithFields(logrus.Fields{
		"operation":  OperationDownload,
		"name":       name,
		"size":       humanize.Bytes(uint64(written)),
		"request_id": requestID,
	}).Info(LogDownloadSaved)
	return nil
}

// downloadName имя файла из Content-Disposition, иначе базовое имя запрошенного пути.
// путь от сервера никогда не используется целиком.
func downloadName(disposition, requested string) string {
	if disposition != "" {
		if _, params, err := mime.ParseMediaType(disposition); err == nil {
			if name := path.Base(strings.ReplaceAll(params["filename"], "\\", "/")); name != "" && name != "." && name != "/" && name != ".." {
				return name
			}
		}
	}
	return path.Base(requested)
}

func closeBody(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	if err := resp.Body.Close(); err != nil {
		logrus.Warnf("Failed to close response body: %v", err)
	}
}
