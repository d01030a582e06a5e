// Package api 가격 감시 기능을 HTTP API로 제공하는 서비스입니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/config"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/version"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/constants"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/handler/system"
	v1 "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/v1"
	v1handler "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/v1/handler"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

// PriceWatchService API가 사용하는 가격 감시 서비스 기능입니다. *pricewatch.Service가 구현합니다.
type PriceWatchService interface {
	v1handler.PriceWatcher
	system.StatusProvider
}

// Service API 서버의 생명주기를 관리하는 서비스입니다.
//
// Echo 기반 HTTP/HTTPS 서버를 시작하고, 미들웨어 체인과 라우트(시스템, 메트릭, Swagger, v1)를 구성하며,
// 종료 신호를 받으면 Graceful Shutdown(5초 타임아웃)을 수행합니다.
type Service struct {
	appConfig *config.AppConfig

	priceWatch PriceWatchService
	gatherer   prometheus.Gatherer

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다. gatherer가 nil이면 /metrics를 노출하지 않습니다.
func NewService(appConfig *config.AppConfig, priceWatch PriceWatchService, gatherer prometheus.Gatherer, buildInfo version.Info) *Service {
	if appConfig == nil {
		panic("api.NewService: 애플리케이션 설정은 필수입니다")
	}

	return &Service{
		appConfig: appConfig,

		priceWatch: priceWatch,
		gatherer:   gatherer,

		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다.
//
// 서버는 별도의 고루틴에서 실행되며 이 함수는 즉시 반환됩니다.
// serviceStopCtx가 취소되면 서버를 종료하고 serviceStopWG.Done()을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.priceWatch == nil {
		defer serviceStopWG.Done()
		return ErrPriceWatchServiceNotInitialized
	}

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

// runServiceLoop 서버 설정, HTTP 서버 시작, Shutdown 대기를 순차적으로 수행합니다.
func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer Echo 서버 인스턴스를 생성하고 핸들러와 라우트를 등록합니다.
func (s *Service) setupServer() *echo.Echo {
	systemHandler := system.New(s.priceWatch, s.buildInfo)
	v1Handler := v1handler.NewHandler(s.priceWatch)

	apiConfig := s.appConfig.API
	e := NewHTTPServer(HTTPServerConfig{
		Debug:          s.appConfig.Debug,
		AllowOrigins:   apiConfig.CORS.AllowOrigins,
		RequestTimeout: apiConfig.RequestTimeout,
		BodyLimit:      apiConfig.BodyLimit,
		RateLimit: RateLimitConfig{
			RequestsPerSecond: apiConfig.RateLimit.RequestsPerSecond,
			Burst:             apiConfig.RateLimit.Burst,
		},
	})

	RegisterRoutes(e, systemHandler, s.gatherer)
	v1.RegisterRoutes(e, v1Handler)

	return e
}

// startHTTPServer 설정에 따라 HTTP 또는 HTTPS 서버를 시작합니다. 서버가 종료되면 done 채널을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	apiConfig := s.appConfig.API
	address := fmt.Sprintf(":%d", apiConfig.ListenPort)

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": apiConfig.ListenPort,
		"tls":  apiConfig.TLSServer,
	}).Info(constants.LogMsgServiceHTTPServerStarting)

	var err error
	if apiConfig.TLSServer {
		err = e.StartTLS(address, apiConfig.TLSCertFile, apiConfig.TLSKeyFile)
	} else {
		err = e.Start(address)
	}

	s.handleServerError(err)
}

// handleServerError HTTP 서버가 반환한 에러를 처리합니다.
// http.ErrServerClosed는 Graceful Shutdown에 의한 정상 종료입니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.appConfig.API.ListenPort,
		"error": err,
	}).Error(constants.LogMsgServiceHTTPServerFatalError)
}

// waitForShutdown 종료 신호 또는 서버의 조기 종료를 기다린 뒤 서비스를 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		// 포트 바인딩 실패 등으로 서버가 이미 종료되었다.
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

// cleanup 서비스 종료 후 상태를 정리합니다.
func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}

// Running 서비스가 실행 중이면 true를 반환합니다.
func (s *Service) Running() bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	return s.running
}
