package log

import (
	"fmt"
	"os"
)

// Options 로깅 시스템 초기화 옵션입니다.
type Options struct {
	Name  string // 로그 파일명 접두사 (예: price-watchdog -> price-watchdog.log)
	Dir   string // 로그 디렉토리 (빈 값이면 ./logs)
	Level Level  // 0이면 Info

	MaxAge     int // 보관 일수 (0: 삭제 안 함)
	MaxSizeMB  int // 0이면 100MB
	MaxBackups int // 0이면 20개

	EnableCriticalLog bool // ERROR 이상을 {Name}.critical.log로 분리
	EnableVerboseLog  bool // DEBUG 이하를 {Name}.verbose.log로 분리
	EnableConsoleLog  bool // 모든 레벨을 Stdout에도 출력

	// JSONFormat 파일/콘솔 출력을 JSON 한 줄 형식으로 기록합니다.
	JSONFormat bool

	ReportCaller bool

	// CallerPathPrefix 호출 위치 함수명에서 잘라낼 모듈 경로 접두사입니다.
	CallerPathPrefix string
}

// Validate 옵션 값의 유효성을 검사합니다.
func (opts *Options) Validate() error {
	if opts.Name == "" {
		return fmt.Errorf("애플리케이션 식별자(Name)가 설정되지 않았습니다")
	}

	if opts.Dir != "" {
		if info, err := os.Stat(opts.Dir); err == nil && !info.IsDir() {
			return fmt.Errorf("로그 디렉토리 경로(%s)가 이미 파일로 존재합니다", opts.Dir)
		}
	}

	if opts.MaxAge < 0 {
		return fmt.Errorf("MaxAge는 0 이상이어야 합니다: %d", opts.MaxAge)
	}
	if opts.MaxSizeMB < 0 {
		return fmt.Errorf("MaxSizeMB는 0 이상이어야 합니다: %d", opts.MaxSizeMB)
	}
	if opts.MaxBackups < 0 {
		return fmt.Errorf("MaxBackups는 0 이상이어야 합니다: %d", opts.MaxBackups)
	}

	return nil
}
