package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/constants"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/handler"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/httputil"
	appmiddleware "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/middleware"
)

// RateLimitConfig IP별 요청 속도 제한 설정입니다.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// AllowOrigins CORS에서 허용할 Origin 목록
	AllowOrigins []string

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (기본값: 60초)
	RequestTimeout time.Duration

	// BodyLimit 요청 본문 최대 크기 (예: "10M", 기본값: 10M)
	BodyLimit string

	// RateLimit IP별 요청 속도 제한 (0이면 기본값: 20 req/s, 버스트 40)
	RateLimit RateLimitConfig
}

// NewHTTPServer 설정된 미들웨어를 포함한 Echo 인스턴스를 생성합니다.
//
// 미들웨어는 다음 순서로 적용됩니다:
//
//  1. PanicRecovery - 다른 미들웨어의 panic까지 복구하도록 가장 먼저 적용
//  2. RequestID - 로그에 request_id가 남도록 로깅보다 먼저 적용
//  3. Server 헤더 제거
//  4. HTTPLogger - 429/413/503 응답도 기록되도록 제한 미들웨어보다 먼저 적용
//  5. RateLimit - IP별 요청 속도 제한
//  6. BodyLimit - 요청 본문 크기 제한 (초과 시 413)
//  7. Timeout - 요청 처리 시간 제한 (초과 시 503)
//  8. CORS
//  9. Secure - 보안 헤더
//
// 라우트는 포함되지 않으며 반환된 Echo 인스턴스에 별도로 등록해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = constants.DefaultWriteTimeout
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// Echo 내부 로그도 애플리케이션 로거로 기록합니다.
	e.Logger = appmiddleware.NewLogger()

	e.HTTPErrorHandler = httputil.ErrorHandler
	e.Validator = handler.NewRequestValidator()

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}
	bodyLimit := cfg.BodyLimit
	if bodyLimit == "" {
		bodyLimit = constants.DefaultMaxBodySize
	}
	rps, burst := cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst
	if rps <= 0 {
		rps = constants.DefaultRateLimitPerSecond
	}
	if burst <= 0 {
		burst = constants.DefaultRateLimitBurst
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	e.Use(appmiddleware.RateLimit(rps, burst))
	e.Use(middleware.BodyLimit(bodyLimit))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout:      timeout,
		ErrorMessage: constants.ErrMsgServiceUnavailable,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  cfg.AllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		ExposeHeaders: []string{echo.HeaderContentDisposition, constants.HeaderRetryAfter},
	}))
	e.Use(middleware.Secure())

	return e
}
