package middleware

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// captureLogs 테스트 동안의 로거 출력을 JSON 형식으로 캡처합니다.
// 전역 로거를 바꾸므로 이 함수를 쓰는 테스트는 t.Parallel()을 호출하지 않습니다.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	logger := applog.StandardLogger()
	buf := new(bytes.Buffer)
	originalOut := logger.Out
	originalFormatter := logger.Formatter
	originalLevel := logger.Level

	logger.SetOutput(buf)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(applog.DebugLevel)

	t.Cleanup(func() {
		logger.SetOutput(originalOut)
		logger.SetFormatter(originalFormatter)
		logger.SetLevel(originalLevel)
	})

	return buf
}

// parseLastLogEntry 버퍼에 기록된 마지막 JSON 로그를 파싱합니다.
func parseLastLogEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()

	output := strings.TrimSpace(buf.String())
	require.NotEmpty(t, output, "로그가 기록되지 않았습니다")

	lines := strings.Split(output, "\n")
	lastLine := lines[len(lines)-1]

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lastLine), &entry), "로그 파싱 실패: %s", lastLine)

	return entry
}
