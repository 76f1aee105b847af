package apiclient

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	gojsonq "github.com/thedevsaddam/gojsonq/v2"

	"file-manager-client/internal/domain"
)

// StatusError ответ сервиса с не-2xx кодом.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.StatusCode)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

// statusError превращает не-2xx ответ в ошибку, которая всегда оборачивает ErrNetworkFailure,
// а для 401/403/404 ещё и соответствующую доменную ошибку.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	statusErr := &StatusError{
		StatusCode: resp.StatusCode,
		Message:    errorMessage(body),
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w: %w", domain.ErrNetworkFailure, domain.ErrUnauthorized, statusErr)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %w: %w", domain.ErrNetworkFailure, domain.ErrNotFound, statusErr)
	default:
		return fmt.Errorf("%w: %w", domain.ErrNetworkFailure, statusErr)
	}
}

// errorMessage достаёт поле "error" из JSON ответа, иначе возвращает тело как текст.
func errorMessage(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}

	jq := gojsonq.New().FromString(text)
	if msg, ok := jq.Find(ErrorBodyField).(string); ok && jq.Error() == nil {
		return msg
	}
	return text
}

// AsStatusError достаёт StatusError из цепочки ошибок.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}
