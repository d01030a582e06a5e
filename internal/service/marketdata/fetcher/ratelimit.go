package fetcher

import (
	"net/http"

	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"golang.org/x/time/rate"
)

// RateLimitFetcher 요청 전에 토큰 버킷에서 허가를 받는 데코레이터입니다.
// 하나의 Limiter를 여러 Fetcher가 공유할 수 있습니다.
type RateLimitFetcher struct {
	delegate Fetcher
	limiter  *rate.Limiter
}

var _ Fetcher = (*RateLimitFetcher)(nil)

// NewRateLimitFetcher limiter가 nil이면 제한 없이 delegate를 그대로 호출합니다.
func NewRateLimitFetcher(delegate Fetcher, limiter *rate.Limiter) *RateLimitFetcher {
	return &RateLimitFetcher{delegate: delegate, limiter: limiter}
}

func (f *RateLimitFetcher) Do(req *http.Request) (*http.Response, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(req.Context()); err != nil {
			return nil, apperrors.Wrap(err, apperrors.Timeout, "요청 허용량을 기다리는 중 중단되었습니다")
		}
	}
	return f.delegate.Do(req)
}
