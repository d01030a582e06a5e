// Package cronx 서비스 전반에서 공통으로 사용하는 cron 표현식 파서를 제공합니다.
package cronx

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// StandardParser 초 필드를 포함한 6필드 형식과 Descriptor(@daily, @every 1h 등)를 해석하는 파서를 반환합니다.
// 5필드 형식은 지원하지 않습니다.
//
//	"0 */10 * * * *" : 10분마다 0초에 실행
//	"@every 30m"     : 30분 간격
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate spec이 StandardParser로 해석 가능한지 검사합니다.
func Validate(spec string) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return fmt.Errorf("cron 표현식이 비어 있습니다")
	}
	if _, err := StandardParser().Parse(spec); err != nil {
		return fmt.Errorf("cron 표현식(%q)이 올바르지 않습니다 (형식: 초 분 시 일 월 요일): %w", spec, err)
	}
	return nil
}
