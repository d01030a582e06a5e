// Package pricewatch 분류, 세션 보관, 시장 데이터 보강, 카탈로그 대조, 내보내기를 하나의 서비스로 묶습니다.
//
// API 핸들러와 스케줄러는 이 패키지의 Service만 사용합니다.
package pricewatch

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/config"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/catalog"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/classifier"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/enrichment"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/marketdata"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/session"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

const component = "pricewatch.service"

var (
	// ErrMarketDataDisabled 시장 데이터 공급자가 설정되지 않았을 때 반환됩니다.
	ErrMarketDataDisabled = apperrors.New(apperrors.Unavailable, "시장 데이터 공급자가 설정되지 않아 보강을 실행할 수 없습니다")

	// ErrCatalogUnavailable 요청에 카탈로그가 없고 카탈로그 파일도 설정되지 않았을 때 반환됩니다.
	ErrCatalogUnavailable = apperrors.New(apperrors.InvalidInput, "대조할 카탈로그가 없습니다. 요청 본문에 카탈로그를 포함하거나 카탈로그 파일(catalog.csv_file)을 설정하세요")

	// ErrServiceNotRunning 서비스가 시작되지 않았거나 종료 중일 때 반환됩니다.
	ErrServiceNotRunning = apperrors.New(apperrors.Unavailable, "가격 감시 서비스가 실행 중이 아닙니다")
)

// Option Service 생성 옵션입니다.
type Option func(*Service)

// WithFetcher 설정 대신 주어진 Fetcher로 시장 데이터를 조회합니다.
func WithFetcher(f enrichment.Fetcher) Option {
	return func(s *Service) {
		s.fetcher = f
	}
}

// WithCatalogProvider 설정 대신 주어진 공급자에서 카탈로그를 읽습니다.
func WithCatalogProvider(p catalog.Provider) Option {
	return func(s *Service) {
		s.catalog = p
	}
}

// WithClock 현재 시각 함수를 교체합니다.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service 가격 감시 기능의 진입점입니다.
type Service struct {
	appConfig *config.AppConfig

	classifier   *classifier.Classifier
	store        *session.Store
	fetcher      enrichment.Fetcher
	orchestrator *enrichment.Orchestrator
	catalog      catalog.Provider

	metrics *metrics
	now     func() time.Time

	// runCtx 진행 중인 보강 실행이 공유하는 컨텍스트. 서비스 종료 시 취소됩니다.
	runCtx context.Context
	// runs 진행 중인 보강 고루틴의 종료를 대기하는 WaitGroup
	runs     sync.WaitGroup
	runsByID map[string]*enrichmentRun

	running   bool
	runningMu sync.Mutex
}

// NewService 설정으로 Service를 생성합니다. reg가 nil이면 메트릭을 등록하지 않습니다.
func NewService(appConfig *config.AppConfig, reg prometheus.Registerer, opts ...Option) (*Service, error) {
	if appConfig == nil {
		return nil, apperrors.New(apperrors.Internal, "애플리케이션 설정이 없습니다")
	}

	s := &Service{
		appConfig: appConfig,

		classifier: classifier.New(classifier.Options{
			AnomalyThresholdPercent: appConfig.Analysis.AnomalyThresholdPercent,
		}),
		store: session.NewStore(appConfig.Analysis.MaxSessions),

		now:      time.Now,
		runsByID: make(map[string]*enrichmentRun),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.fetcher == nil {
		f, err := marketdata.NewProvider(appConfig.MarketData)
		if err != nil {
			return nil, err
		}
		s.fetcher = f
	}
	if s.catalog == nil && appConfig.Catalog.CSVFile != "" {
		s.catalog = catalog.NewCSVFileProvider(appConfig.Catalog.CSVFile)
	}

	var enrichmentMetrics *enrichment.Metrics
	if reg != nil {
		enrichmentMetrics = enrichment.NewMetrics(reg)
		s.metrics = newMetrics(reg, s.store)
	}

	if s.fetcher != nil {
		ec := appConfig.Enrichment
		orchestratorOpts := []enrichment.Option{
			enrichment.WithBatchSize(ec.BatchSize),
			enrichment.WithMaxConcurrentBatches(ec.MaxConcurrentBatches),
			enrichment.WithItemConcurrency(ec.ItemConcurrency),
			enrichment.WithBatchDelay(ec.BatchDelay),
			enrichment.WithMetrics(enrichmentMetrics),
		}
		if ec.CacheSize > 0 {
			cache, err := enrichment.NewLRUCache(ec.CacheSize, ec.CacheTTL)
			if err != nil {
				return nil, err
			}
			orchestratorOpts = append(orchestratorOpts, enrichment.WithCache(cache))
		}
		s.orchestrator = enrichment.New(s.fetcher, orchestratorOpts...)
	}

	return s, nil
}

// Start 가격 감시 서비스를 시작합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("가격 감시 서비스 시작중...")

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("가격 감시 서비스가 이미 시작됨!!!")
		return nil
	}

	s.runCtx = serviceStopCtx
	s.running = true

	go s.waitForShutdown(serviceStopCtx, serviceStopWG)

	applog.WithComponentAndFields(component, applog.Fields{
		"market_data": s.orchestrator != nil,
		"catalog":     s.catalog != nil,
	}).Info("가격 감시 서비스 시작됨")

	return nil
}

// waitForShutdown 종료 신호를 받으면 새 보강 요청을 막고 진행 중인 보강이 끝날 때까지 기다립니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	<-serviceStopCtx.Done()

	applog.WithComponent(component).Info("가격 감시 서비스 중지중...")

	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	// 실행 컨텍스트가 이미 취소되었으므로 각 보강은 다음 라운드 경계에서 멈춘다.
	s.runs.Wait()

	applog.WithComponent(component).Info("가격 감시 서비스 중지됨")
}

// Running 서비스가 요청을 처리할 수 있는 상태이면 true를 반환합니다.
func (s *Service) Running() bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	return s.running
}

// MarketDataEnabled 시장 데이터 보강을 사용할 수 있으면 true를 반환합니다.
func (s *Service) MarketDataEnabled() bool {
	return s.orchestrator != nil
}

// SessionCount 보관 중인 세션 수를 반환합니다.
func (s *Service) SessionCount() int {
	return s.store.Len()
}

// Prune 설정된 보관 기간 동안 갱신되지 않은 세션을 제거합니다.
func (s *Service) Prune() int {
	return s.store.Prune(s.appConfig.Analysis.SessionTTL)
}
