package middleware

import (
	"fmt"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/constants"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
	"golang.org/x/time/rate"
)

const (
	// maxIPRateLimiters 메모리에 유지하는 IP별 Limiter의 최대 개수입니다.
	// 초과하면 가장 오래 사용되지 않은 IP의 Limiter가 제거됩니다.
	maxIPRateLimiters = 10000

	// retryAfterSeconds 속도 제한 시 클라이언트에게 제안하는 재시도 대기 시간(초)입니다.
	retryAfterSeconds = 1
)

// ipRateLimiter IP 주소별 Token Bucket Limiter를 LRU 캐시로 관리합니다.
type ipRateLimiter struct {
	limiters *lru.Cache[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newIPRateLimiter(requestsPerSecond float64, burst int, size int) *ipRateLimiter {
	limiters, err := lru.New[string, *rate.Limiter](size)
	if err != nil {
		panic(fmt.Sprintf("RateLimit: Limiter 캐시를 생성할 수 없습니다: %v", err))
	}

	return &ipRateLimiter{
		limiters: limiters,
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
	}
}

// getLimiter ip의 Limiter를 반환합니다. 없으면 새로 만들어 등록합니다.
func (i *ipRateLimiter) getLimiter(ip string) *rate.Limiter {
	if limiter, ok := i.limiters.Get(ip); ok {
		return limiter
	}

	limiter := rate.NewLimiter(i.rate, i.burst)
	// 동시에 같은 IP의 첫 요청이 들어오면 먼저 등록된 Limiter를 사용한다.
	if prev, ok, _ := i.limiters.PeekOrAdd(ip, limiter); ok {
		return prev
	}

	return limiter
}

// RateLimit IP 기반 속도 제한 미들웨어를 반환합니다.
//
// 클라이언트 IP마다 초당 requestsPerSecond개의 토큰이 채워지는 버킷(최대 burst개)을 두고
// 요청마다 토큰 하나를 소비합니다. 토큰이 없으면 Retry-After 헤더와 함께 429를 반환합니다.
//
// Limiter는 서버 메모리에만 유지되므로 다중 인스턴스 환경에서는 인스턴스별로 제한이 적용됩니다.
//
// requestsPerSecond 또는 burst가 0 이하이면 panic이 발생합니다.
func RateLimit(requestsPerSecond float64, burst int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic(fmt.Sprintf("RateLimit: requestsPerSecond는 양수여야 합니다 (현재값: %v)", requestsPerSecond))
	}
	if burst <= 0 {
		panic(fmt.Sprintf("RateLimit: burst는 양수여야 합니다 (현재값: %d)", burst))
	}

	limiter := newIPRateLimiter(requestsPerSecond, burst, maxIPRateLimiters)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !limiter.getLimiter(ip).Allow() {
				applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
					"remote_ip": ip,
					"path":      c.Request().URL.Path,
					"method":    c.Request().Method,
				}).Warn(constants.LogMsgRateLimitExceeded)

				c.Response().Header().Set(constants.HeaderRetryAfter, strconv.Itoa(retryAfterSeconds))

				return ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
