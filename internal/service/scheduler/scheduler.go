// Package scheduler 시장 데이터 갱신과 만료 세션 정리를 Cron 스케줄에 맞춰 실행합니다.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/config"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/cronx"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
	"github.com/robfig/cron/v3"
)

// component Scheduler 서비스의 로깅용 컴포넌트 이름
const component = "scheduler.service"

const (
	jobRefreshMarketData = "refresh_market_data"
	jobPruneSessions     = "prune_sessions"
)

// Maintainer 주기 작업의 실행 대상입니다.
type Maintainer interface {
	// RefreshMarketData 보강이 진행 중이지 않은 세션의 시장 데이터 보강을 다시 시작하고 시작한 수를 반환합니다.
	RefreshMarketData() int

	// Prune 만료된 세션을 제거하고 제거한 수를 반환합니다.
	Prune() int
}

// Scheduler 설정 파일(SchedulerConfig)에 정의된 주기 작업을 실행하는 서비스입니다.
type Scheduler struct {
	schedulerConfig config.SchedulerConfig

	cron *cron.Cron

	maintainer Maintainer

	running   bool
	runningMu sync.Mutex
}

// NewService 새로운 Scheduler 서비스 인스턴스를 생성합니다.
func NewService(schedulerConfig config.SchedulerConfig, maintainer Maintainer) *Scheduler {
	if maintainer == nil {
		panic("Maintainer는 필수입니다")
	}

	return &Scheduler{
		schedulerConfig: schedulerConfig,

		maintainer: maintainer,
	}
}

// Start 스케줄러를 시작하고 설정된 주기 작업을 Cron 엔진에 등록합니다.
//
// 매개변수:
//   - serviceStopCtx: 서비스 종료 신호를 받기 위한 Context
//   - serviceStopWG: 서비스 종료 완료를 알리기 위한 WaitGroup
func (s *Scheduler) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(component).Info("Scheduler 서비스 시작중...")

	if s.maintainer == nil {
		defer serviceStopWG.Done()
		return ErrMaintainerNotInitialized
	}

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(component).Warn("Scheduler 서비스가 이미 시작됨!!!")
		return nil
	}

	// - StandardParser: 초 단위 스케줄링 지원 (6개 필드: 초 분 시 일 월 요일)
	// - Recover: 작업에서 panic이 발생해도 다른 작업은 계속 실행
	// - SkipIfStillRunning: 이전 실행이 끝나지 않았으면 다음 실행을 건너뜀
	logger := cron.VerbosePrintfLogger(applog.StandardLogger())
	s.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(logger),
		cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		),
	)

	s.registerJobs()

	s.cron.Start()
	s.running = true

	applog.WithComponentAndFields(component, applog.Fields{
		"registered_schedules": len(s.cron.Entries()),
	}).Info("Scheduler 서비스 시작됨")

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.stop()
	}()

	return nil
}

// stop 실행 중인 스케줄러를 중지하고 진행 중인 작업이 끝날 때까지 기다립니다.
func (s *Scheduler) stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(component).Info("Scheduler 서비스 중지중...")

	if s.cron != nil {
		<-s.cron.Stop().Done()
	}

	s.cron = nil
	s.running = false

	applog.WithComponent(component).Info("Scheduler 서비스 중지됨")
}

// registerJobs 표현식이 비어 있지 않은 작업만 등록합니다. 잘못된 표현식은 로그를 남기고 건너뜁니다.
func (s *Scheduler) registerJobs() {
	jobs := []struct {
		name string
		spec string
		run  func()
	}{
		{jobRefreshMarketData, s.schedulerConfig.RefreshSpec, s.refreshMarketData},
		{jobPruneSessions, s.schedulerConfig.PruneSpec, s.pruneSessions},
	}

	for _, job := range jobs {
		if job.spec == "" {
			continue
		}

		if _, err := s.cron.AddFunc(job.spec, job.run); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"job":   job.name,
				"error": newErrInvalidCronSpec(job.name, job.spec, err),
			}).Error("주기 작업을 등록하지 못했습니다")
			continue
		}

		applog.WithComponentAndFields(component, applog.Fields{
			"job":  job.name,
			"spec": job.spec,
		}).Debug("주기 작업을 등록했습니다")
	}
}

func (s *Scheduler) refreshMarketData() {
	startedAt := time.Now()
	started := s.maintainer.RefreshMarketData()

	applog.WithComponentAndFields(component, applog.Fields{
		"job":      jobRefreshMarketData,
		"started":  started,
		"duration": time.Since(startedAt).String(),
	}).Debug("시장 데이터 갱신 작업을 실행했습니다")
}

func (s *Scheduler) pruneSessions() {
	pruned := s.maintainer.Prune()
	if pruned == 0 {
		return
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"job":    jobPruneSessions,
		"pruned": pruned,
	}).Info("만료된 세션을 정리했습니다")
}
