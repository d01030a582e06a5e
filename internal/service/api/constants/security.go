package constants

// 응답 헤더 키 상수입니다.
const (
	// HeaderRetryAfter 속도 제한 시 재시도 대기 시간(초)을 알리는 헤더
	HeaderRetryAfter = "Retry-After"
)

// SensitiveQueryParams 로그 기록 시 마스킹 처리해야 할 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	"api_key",
	"password",
	"token",
	"secret",
}
