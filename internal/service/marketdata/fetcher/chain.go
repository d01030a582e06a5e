package fetcher

import (
	"time"

	"golang.org/x/time/rate"
)

// Config 기본 Fetcher 체인 구성 값입니다.
type Config struct {
	Timeout    time.Duration
	UserAgent  string
	MaxRetries int
	RetryDelay time.Duration
	Limiter    *rate.Limiter
}

// New Config에 따라 체인을 조립합니다.
//
// 호출 순서: Logging → RateLimit → Retry → StatusCode → HTTP
// 재시도마다 허용량을 새로 받지 않도록 RateLimit을 Retry 바깥에 둡니다.
func New(cfg Config, opts ...Option) Fetcher {
	httpOpts := []Option{WithUserAgent(cfg.UserAgent)}
	if cfg.Timeout > 0 {
		httpOpts = append(httpOpts, WithTimeout(cfg.Timeout))
	}
	httpOpts = append(httpOpts, opts...)

	var f Fetcher = NewHTTPFetcher(httpOpts...)
	f = NewStatusCodeFetcher(f)
	f = NewRetryFetcher(f, cfg.MaxRetries, cfg.RetryDelay, 0)
	f = NewRateLimitFetcher(f, cfg.Limiter)
	return NewLoggingFetcher(f)
}
