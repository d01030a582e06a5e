package fetcher

import (
	"context"
	"crypto/x509"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

const (
	maxAllowedRetries    = 10
	defaultMaxRetryDelay = 30 * time.Second
)

// ErrMaxRetriesExceeded 재시도 횟수를 모두 소진했을 때 원인 에러를 감싸 반환됩니다.
var ErrMaxRetriesExceeded = apperrors.New(apperrors.Unavailable, "최대 재시도 횟수를 초과했습니다")

// RetryFetcher 일시적인 실패에 대해 지수 백오프로 재시도하는 데코레이터입니다.
//
// 대기 시간은 minRetryDelay * 2^(n-1)을 상한으로 하는 Full Jitter이며, 서버가 Retry-After를
// 주면 그 값을 따릅니다. Retry-After가 maxRetryDelay를 넘으면 재시도하지 않습니다.
// 멱등 메서드만 재시도합니다.
type RetryFetcher struct {
	delegate      Fetcher
	maxRetries    int
	minRetryDelay time.Duration
	maxRetryDelay time.Duration

	// sleep 테스트에서 대기를 생략하기 위해 교체합니다.
	sleep func(ctx context.Context, d time.Duration) error
}

var _ Fetcher = (*RetryFetcher)(nil)

// NewRetryFetcher 새로운 RetryFetcher를 생성합니다.
// maxRetries는 0~10으로 보정되고, maxRetryDelay가 0이면 30초를 사용합니다.
func NewRetryFetcher(delegate Fetcher, maxRetries int, minRetryDelay, maxRetryDelay time.Duration) *RetryFetcher {
	maxRetries = max(0, min(maxRetries, maxAllowedRetries))

	if minRetryDelay <= 0 {
		minRetryDelay = time.Second
	}
	if maxRetryDelay == 0 {
		maxRetryDelay = defaultMaxRetryDelay
	}
	if maxRetryDelay < minRetryDelay {
		maxRetryDelay = minRetryDelay
	}

	return &RetryFetcher{
		delegate:      delegate,
		maxRetries:    maxRetries,
		minRetryDelay: minRetryDelay,
		maxRetryDelay: maxRetryDelay,
		sleep:         sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (f *RetryFetcher) Do(req *http.Request) (*http.Response, error) {
	retries := f.maxRetries
	if !isIdempotentMethod(req.Method) || (req.Body != nil && req.GetBody == nil) {
		retries = 0
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			delay, err := f.backoff(attempt, lastErr)
			if err != nil {
				return nil, err
			}

			applog.WithComponentAndFields(component, applog.Fields{
				"url":         redactURL(req.URL),
				"retry":       attempt,
				"max_retries": retries,
				"delay":       delay.String(),
				"error":       lastErr.Error(),
			}).Warn("재시도 대기 중: 일시적 오류로 인해 요청 재시도를 준비합니다")

			if err := f.sleep(req.Context(), delay); err != nil {
				return nil, err
			}

			if req.GetBody != nil {
				body, err := req.GetBody()
				if err != nil {
					return nil, apperrors.Wrap(err, apperrors.Internal, "재시도용 요청 본문을 다시 만들 수 없습니다")
				}
				req = req.Clone(req.Context())
				req.Body = body
			}
		}

		resp, err := f.delegate.Do(req)
		if err == nil && resp != nil && isRetriableStatus(resp.StatusCode) {
			err = CheckResponseStatus(resp)
			drainAndCloseBody(resp.Body)
			resp = nil
		}

		if err == nil {
			return resp, nil
		}
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}

		if req.Context().Err() != nil {
			return nil, err
		}
		if !isRetriable(err) {
			return nil, err
		}
		lastErr = err
	}

	if retries == 0 {
		return nil, lastErr
	}
	return nil, fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, lastErr)
}

// backoff attempt번째 재시도 전 대기 시간을 계산합니다.
func (f *RetryFetcher) backoff(attempt int, lastErr error) (time.Duration, error) {
	var statusErr *HTTPStatusError
	if errors.As(lastErr, &statusErr) {
		if d, ok := parseRetryAfter(statusErr.Header.Get("Retry-After")); ok {
			if d > f.maxRetryDelay {
				return 0, apperrors.Wrapf(lastErr, apperrors.Unavailable, "서버가 요구한 대기 시간(%s)이 허용 범위(%s)를 초과했습니다", d, f.maxRetryDelay)
			}
			return d, nil
		}
	}

	ceiling := min(f.minRetryDelay<<(attempt-1), f.maxRetryDelay)
	delay := time.Duration(rand.Int64N(int64(ceiling) + 1))
	if delay < time.Millisecond {
		delay = f.minRetryDelay
	}
	return delay, nil
}

func isRetriableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusRequestTimeout:
		return true
	case http.StatusNotImplemented, http.StatusHTTPVersionNotSupported, http.StatusNetworkAuthenticationRequired:
		return false
	}
	return code >= 500
}

// isRetriable 일시적인 네트워크 오류나 서버 과부하면 true를 반환합니다.
// 취소, 인증서 오류, 잘못된 URL, 4xx 응답은 재시도하지 않습니다.
func isRetriable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		msg := urlErr.Err.Error()
		if strings.Contains(msg, "unsupported protocol scheme") ||
			strings.Contains(msg, "invalid control character in URL") ||
			strings.HasPrefix(msg, "stopped after") {
			return false
		}
	}

	var hostnameErr x509.HostnameError
	var authorityErr x509.UnknownAuthorityError
	var invalidErr x509.CertificateInvalidError
	if errors.As(err, &hostnameErr) || errors.As(err, &authorityErr) || errors.As(err, &invalidErr) {
		return false
	}

	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return isRetriableStatus(statusErr.StatusCode)
	}

	if apperrors.Is(err, apperrors.ExecutionFailed) ||
		apperrors.Is(err, apperrors.InvalidInput) ||
		apperrors.Is(err, apperrors.ParsingFailed) ||
		apperrors.Is(err, apperrors.Forbidden) ||
		apperrors.Is(err, apperrors.NotFound) {
		return false
	}

	return true
}

func isIdempotentMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace, http.MethodPut, http.MethodDelete:
		return true
	default:
		return false
	}
}

// parseRetryAfter 초 단위 정수나 HTTP-date 형식의 Retry-After 값을 해석합니다.
func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	var seconds int
	if _, err := fmt.Sscanf(value, "%d", &seconds); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second, true
	}

	if date, err := http.ParseTime(value); err == nil {
		return max(time.Until(date), 0), true
	}

	return 0, false
}
