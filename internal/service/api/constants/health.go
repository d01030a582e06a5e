package constants

// 헬스체크 및 시스템 상태 관련 상수입니다.
const (
	// HealthStatusHealthy 헬스체크 상태: 정상
	HealthStatusHealthy = "healthy"

	// HealthStatusUnhealthy 헬스체크 상태: 비정상
	HealthStatusUnhealthy = "unhealthy"

	// HealthStatusDisabled 외부 의존성 상태: 설정되지 않아 사용하지 않음
	HealthStatusDisabled = "disabled"

	// DependencyPriceWatchService 외부 의존성 ID: 가격 감시 서비스
	DependencyPriceWatchService = "pricewatch_service"

	// DependencyMarketData 외부 의존성 ID: 시장 데이터 공급자
	DependencyMarketData = "market_data"

	MsgDepStatusHealthy    = "정상 작동 중"
	MsgDepStatusNotRunning = "서비스가 실행 중이 아님"
	MsgDepStatusDisabled   = "공급자가 설정되지 않음"
)
