// Package system 시스템 엔드포인트 핸들러를 제공합니다.
//
// 헬스체크, 버전 정보 등 시스템 수준의 API를 처리합니다.
package system

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/version"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/constants"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/model/system"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

// StatusProvider 헬스체크가 확인하는 서비스 상태입니다. *pricewatch.Service가 구현합니다.
type StatusProvider interface {
	Running() bool
	MarketDataEnabled() bool
}

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	statusProvider StatusProvider

	buildInfo version.Info

	serverStartTime time.Time
}

// New Handler 인스턴스를 생성합니다.
func New(statusProvider StatusProvider, buildInfo version.Info) *Handler {
	if statusProvider == nil {
		panic("system.New: StatusProvider는 필수입니다")
	}

	return &Handler{
		statusProvider: statusProvider,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler godoc
// @Summary 서버 헬스체크
// @Description 서버와 의존성의 상태를 확인합니다. 모니터링 시스템에서 사용됩니다.
// @Description
// @Description 응답 필드:
// @Description - status: 전체 서버 상태 (healthy, unhealthy)
// @Description - uptime: 서버 가동 시간(초)
// @Description - dependencies: 의존성별 상태 (pricewatch_service, market_data)
// @Description
// @Description 시장 데이터 공급자가 설정되지 않은 경우 market_data는 disabled이며 전체 상태에 영향을 주지 않습니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.HealthResponse "헬스체크 결과"
// @Router /health [get]
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	deps := make(map[string]system.DependencyStatus, 2)

	if h.statusProvider.Running() {
		deps[constants.DependencyPriceWatchService] = system.DependencyStatus{
			Status:  constants.HealthStatusHealthy,
			Message: constants.MsgDepStatusHealthy,
		}
	} else {
		deps[constants.DependencyPriceWatchService] = system.DependencyStatus{
			Status:  constants.HealthStatusUnhealthy,
			Message: constants.MsgDepStatusNotRunning,
		}
	}

	if h.statusProvider.MarketDataEnabled() {
		deps[constants.DependencyMarketData] = system.DependencyStatus{
			Status:  constants.HealthStatusHealthy,
			Message: constants.MsgDepStatusHealthy,
		}
	} else {
		deps[constants.DependencyMarketData] = system.DependencyStatus{
			Status:  constants.HealthStatusDisabled,
			Message: constants.MsgDepStatusDisabled,
		}
	}

	// 하나라도 unhealthy면 전체 상태를 unhealthy로 설정
	serverStatus := constants.HealthStatusHealthy
	for _, dep := range deps {
		if dep.Status == constants.HealthStatusUnhealthy {
			serverStatus = constants.HealthStatusUnhealthy
			break
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       serverStatus,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

// VersionHandler godoc
// @Summary 서버 버전 정보
// @Description 서버의 릴리스 버전, Git 커밋 해시, 빌드 날짜, 빌드 번호, Go 버전을 반환합니다.
// @Tags System
// @Produce json
// @Success 200 {object} system.VersionResponse "버전 정보"
// @Router /version [get]
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   h.buildInfo.GoVersion,
	})
}
