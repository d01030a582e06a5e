package log

import (
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// silentFormatter 기본 출력 경로에서 포맷팅 비용이 발생하지 않도록 아무것도 만들지 않습니다.
// 실제 포맷팅은 hook이 수행합니다.
type silentFormatter struct{}

func (f *silentFormatter) Format(_ *logrus.Entry) ([]byte, error) {
	return nil, nil
}

// newFormatter Options에 맞는 출력 포맷터를 생성합니다.
//
// 로그 수집기로 전송하는 운영 환경은 JSON, 사람이 읽는 환경은 텍스트 형식을 사용합니다.
func newFormatter(opts Options) Formatter {
	prettyfier := func(frame *runtime.Frame) (function string, file string) {
		function = frame.Function + "(line:" + strconv.Itoa(frame.Line) + ")"
		if opts.CallerPathPrefix != "" {
			if cut, found := strings.CutPrefix(function, opts.CallerPathPrefix); found {
				function = "..." + cut
			}
		}
		return
	}

	if opts.JSONFormat {
		return &logrus.JSONFormatter{
			TimestampFormat:  time.RFC3339,
			CallerPrettyfier: prettyfier,
		}
	}

	return &logrus.TextFormatter{
		FullTimestamp:    true,
		TimestampFormat:  time.RFC3339,
		CallerPrettyfier: prettyfier,
	}
}
