package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// serve ip에서 보낸 요청처럼 핸들러를 실행하고 에러 핸들러를 거친 응답 코드를 반환합니다.
func serve(e *echo.Echo, h echo.HandlerFunc, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/analyses", nil)
	req.Header.Set(echo.HeaderXRealIP, ip)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func TestNewIPRateLimiter(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(2.5, 5, 10)

	assert.Equal(t, rate.Limit(2.5), limiter.rate)
	assert.Equal(t, 5, limiter.burst)
	assert.Equal(t, 0, limiter.limiters.Len())

	first := limiter.getLimiter("10.0.0.1")
	assert.Same(t, first, limiter.getLimiter("10.0.0.1"), "같은 IP는 같은 Limiter를 사용해야 합니다")
	assert.NotSame(t, first, limiter.getLimiter("10.0.0.2"))
	assert.Equal(t, 2, limiter.limiters.Len())
}

func TestIPRateLimiter_EvictsLeastRecentlyUsed(t *testing.T) {
	t.Parallel()

	limiter := newIPRateLimiter(1, 1, 2)

	a := limiter.getLimiter("a")
	limiter.getLimiter("b")
	limiter.getLimiter("a") // a를 최근 사용으로 갱신
	limiter.getLimiter("c") // b가 제거된다

	assert.Equal(t, 2, limiter.limiters.Len())
	assert.True(t, limiter.limiters.Contains("a"))
	assert.False(t, limiter.limiters.Contains("b"))
	assert.Same(t, a, limiter.getLimiter("a"))
}

func TestRateLimit_InputValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		rps         float64
		burst       int
		expectPanic bool
	}{
		{"정상값", 10, 20, false},
		{"소수 RPS", 0.5, 1, false},
		{"RPS 0", 0, 20, true},
		{"RPS 음수", -1, 20, true},
		{"Burst 0", 10, 0, true},
		{"Burst 음수", 10, -5, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if tt.expectPanic {
				assert.Panics(t, func() { RateLimit(tt.rps, tt.burst) })
			} else {
				assert.NotPanics(t, func() { RateLimit(tt.rps, tt.burst) })
			}
		})
	}
}

func TestRateLimit_BurstThenReject(t *testing.T) {
	t.Parallel()

	e := echo.New()
	h := RateLimit(0.001, 3)(okHandler)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(e, h, "192.0.2.1").Code, "요청 %d", i+1)
	}

	rec := serve(e, h, "192.0.2.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "429")

	// 다른 IP는 독립적으로 제한된다.
	assert.Equal(t, http.StatusOK, serve(e, h, "192.0.2.2").Code)
}

func TestRateLimit_PropagatesHandlerError(t *testing.T) {
	t.Parallel()

	e := echo.New()
	h := RateLimit(10, 10)(func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "teapot")
	})

	assert.Equal(t, http.StatusTeapot, serve(e, h, "192.0.2.3").Code)
}

func TestRateLimit_Concurrent(t *testing.T) {
	t.Parallel()

	e := echo.New()
	h := RateLimit(0.001, 50)(okHandler)

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if serve(e, h, "198.51.100.7").Code == http.StatusOK {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(50), allowed.Load(), "버스트만큼만 허용되어야 합니다")
}

func TestRateLimit_ManyClients(t *testing.T) {
	t.Parallel()

	e := echo.New()
	h := RateLimit(1, 1)(okHandler)

	for i := 0; i < 500; i++ {
		assert.Equal(t, http.StatusOK, serve(e, h, fmt.Sprintf("10.1.%d.%d", i/256, i%256)).Code)
	}
}
