package fetcher

import (
	"net"
	"net/http"
	"time"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "Mozilla/5.0 (compatible; price-watchdog/1.0)"
)

// HTTPFetcher 기본 타임아웃과 User-Agent가 적용된 HTTP 클라이언트입니다.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

var _ Fetcher = (*HTTPFetcher)(nil)

// Option HTTPFetcher 설정을 변경합니다.
type Option func(*HTTPFetcher)

// WithTimeout 요청 전체 타임아웃을 지정합니다. 0 이하는 타임아웃을 끕니다.
func WithTimeout(timeout time.Duration) Option {
	return func(h *HTTPFetcher) {
		if timeout < 0 {
			timeout = 0
		}
		h.client.Timeout = timeout
	}
}

// WithUserAgent 요청에 User-Agent가 없을 때 사용할 값을 지정합니다.
func WithUserAgent(ua string) Option {
	return func(h *HTTPFetcher) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// WithTransport Transport를 직접 지정합니다. 테스트에서 주로 사용합니다.
func WithTransport(transport http.RoundTripper) Option {
	return func(h *HTTPFetcher) {
		h.client.Transport = transport
	}
}

// NewHTTPFetcher 새로운 HTTPFetcher를 생성합니다.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	h := &HTTPFetcher{
		client: &http.Client{
			Timeout:   defaultTimeout,
			Transport: newTransport(),
		},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func newTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 15 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
}

// Do 요청에 User-Agent가 없으면 기본값을 넣고 요청을 실행합니다.
func (h *HTTPFetcher) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", h.userAgent)
	}
	return h.client.Do(req)
}
