package api

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "github.com/rakeshescentual/supplier-price-watchdog-sub002/docs"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/handler/system"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes API 서비스의 전역 라우트를 등록합니다.
//
//   - 시스템 엔드포인트: 서비스 상태 확인(/health), 버전 정보(/version)
//   - 메트릭: Prometheus 수집 엔드포인트(/metrics), gatherer가 nil이면 등록하지 않음
//   - API 문서: Swagger UI (/swagger/*)
func RegisterRoutes(e *echo.Echo, h *system.Handler, gatherer prometheus.Gatherer) {
	registerSystemRoutes(e, h)
	registerMetricsRoutes(e, gatherer)
	registerSwaggerRoutes(e)
}

func registerSystemRoutes(e *echo.Echo, h *system.Handler) {
	e.GET("/health", h.HealthCheckHandler)
	e.GET("/version", h.VersionHandler)
}

func registerMetricsRoutes(e *echo.Echo, gatherer prometheus.Gatherer) {
	if gatherer == nil {
		return
	}

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		ErrorLog: promErrorLogger{},
	})))
}

func registerSwaggerRoutes(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(
		echoSwagger.URL("/swagger/doc.json"),
		echoSwagger.DeepLinking(true),
		echoSwagger.DocExpansion("list"),
	))
}
