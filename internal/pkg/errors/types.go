package errors

import "strconv"

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

const (
	// Unknown 분류되지 않은 에러
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그 등)
	Internal

	// System 파일, 네트워크, 설정 로드 등 인프라 오류
	System

	// Unauthorized 인증 실패
	Unauthorized

	// Forbidden 권한 없음
	Forbidden

	// InvalidInput 업로드 레코드나 요청 파라미터의 검증 실패
	InvalidInput

	// Conflict 리소스 상태 충돌 (동일 세션 보강 중복 실행 등)
	Conflict

	// NotFound 리소스를 찾을 수 없음
	NotFound

	// ExecutionFailed 외부 조회나 배치 처리 실패
	ExecutionFailed

	// ParsingFailed 응답 본문, 수치 형식 등의 파싱 실패
	ParsingFailed

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 외부 서비스 일시적 사용 불가
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:         "Unknown",
	Internal:        "Internal",
	System:          "System",
	Unauthorized:    "Unauthorized",
	Forbidden:       "Forbidden",
	InvalidInput:    "InvalidInput",
	Conflict:        "Conflict",
	NotFound:        "NotFound",
	ExecutionFailed: "ExecutionFailed",
	ParsingFailed:   "ParsingFailed",
	Timeout:         "Timeout",
	Unavailable:     "Unavailable",
}

func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
