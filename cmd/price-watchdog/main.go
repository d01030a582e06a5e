package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/config"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/version"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/pricewatch"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/scheduler"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

// @title Supplier Price Watchdog API
// @version 1.0.0
// @description 공급사 가격표의 이전/신규 버전을 비교하여 가격 변동을 분류하고, 시장 데이터와 커머스 카탈로그로 보강하는 서버의 REST API입니다.
// @description
// @description ## 주요 기능
// @description - 가격표 비교 및 상태 분류 (인상, 인하, 신규, 단종, 이상치)
// @description - 변동 통계 분석 (변동성, 가격 패턴, 공급사 상관관계, 카테고리 경쟁도)
// @description - 시장 데이터 일괄 보강
// @description - 카탈로그 대조 및 CSV/XLSX 내보내기

// @license.name MIT

// @BasePath /

const banner = `
 ____       _           __        __    _       _     _
|  _ \ _ __(_) ___ ___  \ \      / /_ _| |_ ___| |__ | |
| |_) | '__| |/ __/ _ \  \ \ /\ / / _  | __/ __| '_ \| |
|  __/| |  | | (_|  __/   \ V  V / (_| | || (__| | | |_|
|_|   |_|  |_|\___\___|    \_/\_/ \__,_|\__\___|_| |_(_)
                                                    %s
--------------------------------------------------------------------------------
`

func main() {
	os.Exit(run())
}

func run() int {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	configFile := config.DefaultFilename
	if len(os.Args) > 1 {
		configFile = os.Args[1]
	}

	appConfig, err := config.LoadWithFile(configFile)
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		return 1
	}

	// 2. 로그 시스템 초기화
	logOpts := applog.NewProductionOptions(config.AppName)
	if appConfig.Debug {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	}

	appLogCloser, err := applog.Setup(logOpts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		return 1
	}
	defer appLogCloser.Close()

	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()
	fmt.Printf(banner, buildInfo.Version)

	applog.WithComponentAndFields("main", applog.Fields{
		"version": buildInfo.String(),
		"env":     map[bool]string{true: "development", false: "production"}[appConfig.Debug],
		"config":  configFile,
	}).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(warning)
	}

	// 3. 메트릭 레지스트리
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// 4. 서비스 생성
	priceWatchService, err := pricewatch.NewService(appConfig, registry)
	if err != nil {
		applog.WithComponentAndFields("main", applog.Fields{
			"error": err,
		}).Error("가격 감시 서비스 생성 실패")
		return 1
	}
	schedulerService := scheduler.NewService(appConfig.Scheduler, priceWatchService)
	apiService := api.NewService(appConfig, priceWatchService, registry, buildInfo)

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	serviceStopWG := &sync.WaitGroup{}

	// 5. 서비스 시작 (API는 가격 감시 서비스가 실행 중이어야 요청을 처리할 수 있으므로 마지막에 시작한다)
	services := []service.Service{priceWatchService, schedulerService, apiService}
	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()

			return 1
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(termC)

	applog.WithComponentAndFields("main", applog.Fields{
		"port":        appConfig.API.ListenPort,
		"market_data": priceWatchService.MarketDataEnabled(),
	}).Info("서버 가동 완료")

	sig := <-termC

	applog.WithComponentAndFields("main", applog.Fields{
		"signal": sig.String(),
	}).Info("종료 신호를 수신했습니다")

	cancel()
	serviceStopWG.Wait()

	applog.WithComponent("main").Info("서버 종료 완료")

	return 0
}
