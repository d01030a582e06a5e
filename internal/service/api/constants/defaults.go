package constants

import "time"

// 서버 설정 기본값 상수입니다.
const (
	// DefaultRequestTimeout HTTP 요청 처리의 기본 타임아웃 시간 (60초)
	DefaultRequestTimeout = 60 * time.Second

	// DefaultMaxBodySize 요청 본문의 기본 최대 크기. 가격표 업로드를 고려해 넉넉하게 잡습니다.
	DefaultMaxBodySize = "10M"

	// DefaultRateLimitPerSecond IP별 초당 허용 요청 수 기본값
	DefaultRateLimitPerSecond = 20

	// DefaultRateLimitBurst IP별 버스트 허용량 기본값
	DefaultRateLimitBurst = 40

	// DefaultReadTimeout 요청 본문 읽기 제한
	DefaultReadTimeout = 60 * time.Second

	// DefaultReadHeaderTimeout 요청 헤더 읽기 제한. 헤더를 느리게 보내는 연결이 자원을 붙잡지 못하게 합니다.
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout 응답 쓰기 제한. XLSX 내보내기 응답이 끝날 수 있도록 요청 타임아웃보다 길게 둡니다.
	DefaultWriteTimeout = 90 * time.Second

	// DefaultIdleTimeout Keep-Alive 연결 유휴 제한
	DefaultIdleTimeout = 120 * time.Second

	// ShutdownTimeout Graceful Shutdown 시 최대 대기 시간
	ShutdownTimeout = 5 * time.Second
)
