package fetcher

import (
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
)

// maxBodySnippet 에러에 포함할 응답 본문의 최대 크기
const maxBodySnippet = 4096

// HTTPStatusError 2xx가 아닌 응답의 상태 코드와 응답 정보를 담는 에러입니다.
type HTTPStatusError struct {
	StatusCode  int
	Status      string
	URL         string
	Header      http.Header
	BodySnippet string

	// Cause 상태 코드에 대응하는 AppError
	Cause error
}

func (e *HTTPStatusError) Error() string {
	msg := fmt.Sprintf("HTTP %d (%s)", e.StatusCode, e.Status)
	if e.URL != "" {
		msg += " URL: " + e.URL
	}
	if e.BodySnippet != "" {
		msg += ", Body: " + e.BodySnippet
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *HTTPStatusError) Unwrap() error {
	return e.Cause
}

// statusErrorType 상태 코드를 에러 타입으로 변환합니다.
//
//   - 429, 408, 5xx: Unavailable (재시도 대상)
//   - 401: Unauthorized
//   - 403: Forbidden
//   - 404: NotFound
//   - 그 외: ExecutionFailed
func statusErrorType(code int) apperrors.ErrorType {
	switch {
	case code == http.StatusTooManyRequests, code == http.StatusRequestTimeout, code >= 500:
		return apperrors.Unavailable
	case code == http.StatusUnauthorized:
		return apperrors.Unauthorized
	case code == http.StatusForbidden:
		return apperrors.Forbidden
	case code == http.StatusNotFound:
		return apperrors.NotFound
	default:
		return apperrors.ExecutionFailed
	}
}

// CheckResponseStatus 2xx 응답이면 nil, 아니면 본문 일부를 포함한 HTTPStatusError를 반환합니다.
// 에러를 반환한 경우에도 resp.Body는 호출자가 닫아야 합니다.
func CheckResponseStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var snippet string
	if resp.Body != nil {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySnippet))
		snippet = string(b)
	}

	var url string
	if resp.Request != nil {
		url = redactURL(resp.Request.URL)
	}

	return &HTTPStatusError{
		StatusCode:  resp.StatusCode,
		Status:      resp.Status,
		URL:         url,
		Header:      redactHeaders(resp.Header),
		BodySnippet: snippet,
		Cause:       apperrors.Newf(statusErrorType(resp.StatusCode), "HTTP 요청이 실패했습니다. 상태 코드: %s", resp.Status),
	}
}

// StatusCodeFetcher 2xx가 아닌 응답을 HTTPStatusError로 바꾸는 데코레이터입니다.
type StatusCodeFetcher struct {
	delegate Fetcher
}

var _ Fetcher = (*StatusCodeFetcher)(nil)

// NewStatusCodeFetcher 새로운 StatusCodeFetcher를 생성합니다.
func NewStatusCodeFetcher(delegate Fetcher) *StatusCodeFetcher {
	return &StatusCodeFetcher{delegate: delegate}
}

func (f *StatusCodeFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		return resp, err
	}

	if statusErr := CheckResponseStatus(resp); statusErr != nil {
		drainAndCloseBody(resp.Body)
		return nil, statusErr
	}

	return resp, nil
}
