package log

// modulePathPrefix 호출 위치 출력 시 생략할 모듈 경로입니다.
const modulePathPrefix = "github.com/rakeshescentual/supplier-price-watchdog-sub002"

// NewProductionOptions 운영 환경용 로그 옵션을 반환합니다.
//
// 수집기가 파싱할 수 있도록 JSON으로 기록하고, 장애 분석을 위해 critical/verbose 파일을 분리합니다.
func NewProductionOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: InfoLevel,

		MaxAge:     30,
		MaxSizeMB:  100,
		MaxBackups: 20,

		EnableCriticalLog: true,
		EnableVerboseLog:  true,
		EnableConsoleLog:  false,

		JSONFormat: true,

		ReportCaller:     true,
		CallerPathPrefix: modulePathPrefix,
	}
}

// NewDevelopmentOptions 개발 환경용 로그 옵션을 반환합니다.
func NewDevelopmentOptions(appName string) Options {
	return Options{
		Name:  appName,
		Level: TraceLevel,

		MaxAge:     1,
		MaxSizeMB:  50,
		MaxBackups: 5,

		EnableConsoleLog: true,

		ReportCaller:     true,
		CallerPathPrefix: modulePathPrefix,
	}
}
