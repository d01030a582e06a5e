package log

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Setup은 전역 상태를 변경하므로 이 파일의 테스트는 병렬로 실행하지 않는다.

func TestSetup_WritesRoutedFiles(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	dir := t.TempDir()
	closer, err := Setup(Options{
		Name:              "watchdog",
		Dir:               dir,
		Level:             TraceLevel,
		EnableCriticalLog: true,
		EnableVerboseLog:  true,
	})
	require.NoError(t, err)

	WithComponent("test").Info("info message")
	WithComponent("test").Error("error message")
	WithComponent("test").Debug("debug message")
	require.NoError(t, closer.Close())

	read := func(name string) string {
		b, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		return string(b)
	}

	main := read("watchdog.log")
	assert.Contains(t, main, "info message")
	assert.Contains(t, main, "error message")
	assert.NotContains(t, main, "debug message")

	assert.Contains(t, read("watchdog.critical.log"), "error message")
	assert.Contains(t, read("watchdog.verbose.log"), "debug message")

	// Close는 여러 번 호출해도 안전하다.
	assert.NoError(t, closer.Close())
}

func TestSetup_OnceSemantics(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	_, err := Setup(Options{})
	require.Error(t, err)

	// 최초 실패 결과가 유지된다.
	_, err2 := Setup(Options{Name: "ok", Dir: t.TempDir()})
	assert.Equal(t, err, err2)
}

func TestSetup_JSONConsole(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	var console bytes.Buffer
	stdout = &console

	closer, err := Setup(Options{
		Name:             "watchdog",
		Dir:              t.TempDir(),
		EnableConsoleLog: true,
		JSONFormat:       true,
	})
	require.NoError(t, err)
	defer closer.Close()

	WithComponentAndFields("enrichment", Fields{"sku": "A-1"}).Warn("partial")

	line := strings.TrimSpace(console.String())
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &decoded))
	assert.Equal(t, "enrichment", decoded["component"])
	assert.Equal(t, "A-1", decoded["sku"])
	assert.Equal(t, "partial", decoded["msg"])
}

func TestWithComponentAndFields_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	fields := Fields{"k": "v"}
	entry := WithComponentAndFields("c", fields)

	assert.Len(t, fields, 1)
	assert.Equal(t, "c", entry.Data["component"])
	assert.Equal(t, "v", entry.Data["k"])
}

func TestSetDebugMode(t *testing.T) {
	resetForTest()
	t.Cleanup(resetForTest)

	SetDebugMode(true)
	assert.Equal(t, TraceLevel, logrus.GetLevel())
	SetDebugMode(false)
	assert.Equal(t, InfoLevel, logrus.GetLevel())
}
