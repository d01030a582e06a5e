// Package log logrus 기반의 애플리케이션 로깅을 제공합니다.
//
// Setup으로 파일 로테이션(lumberjack)과 레벨별 라우팅을 구성한 뒤,
// 각 패키지는 WithComponent / WithComponentAndFields로 component 필드가 붙은 Entry를 사용합니다.
package log

import (
	"github.com/sirupsen/logrus"
)

// componentKey 로그 발생 위치를 식별하는 필드 이름입니다.
const componentKey = "component"

// StandardLogger 전역 logrus 로거를 반환합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}

// SetDebugMode 디버그 모드이면 Trace, 아니면 Info 레벨로 설정합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
	} else {
		logrus.SetLevel(InfoLevel)
	}
}

// WithFields 전역 로거에 필드를 추가한 Entry를 반환합니다.
func WithFields(fields Fields) *Entry {
	return logrus.WithFields(fields)
}

// WithComponent component 필드를 포함한 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField(componentKey, component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 Entry를 반환합니다.
// 전달된 fields 맵은 수정하지 않습니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged[componentKey] = component
	return logrus.WithFields(merged)
}
