package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func newTestHook() (*hook, map[string]*bytes.Buffer) {
	bufs := map[string]*bytes.Buffer{
		"main":     {},
		"critical": {},
		"verbose":  {},
		"console":  {},
	}
	return &hook{
		mainWriter:     bufs["main"],
		criticalWriter: bufs["critical"],
		verboseWriter:  bufs["verbose"],
		consoleWriter:  bufs["console"],
		formatter:      &logrus.TextFormatter{DisableTimestamp: true},
	}, bufs
}

func TestHook_Fire_Routing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level        Level
		wantMain     bool
		wantCritical bool
		wantVerbose  bool
	}{
		{ErrorLevel, true, true, false},
		{WarnLevel, true, false, false},
		{InfoLevel, true, false, false},
		{DebugLevel, false, false, true},
		{TraceLevel, false, false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.level.String(), func(t *testing.T) {
			t.Parallel()

			h, bufs := newTestHook()
			entry := &Entry{Logger: logrus.New(), Level: tt.level, Message: "가격 분석"}

			require.NoError(t, h.Fire(entry))

			assert.Equal(t, tt.wantMain, bufs["main"].Len() > 0, "main")
			assert.Equal(t, tt.wantCritical, bufs["critical"].Len() > 0, "critical")
			assert.Equal(t, tt.wantVerbose, bufs["verbose"].Len() > 0, "verbose")
			assert.Contains(t, bufs["console"].String(), "가격 분석", "console은 모든 레벨을 받는다")
		})
	}
}

func TestHook_Fire_WriterFailureStillWritesMain(t *testing.T) {
	t.Parallel()

	h, bufs := newTestHook()
	h.criticalWriter = failingWriter{}

	err := h.Fire(&Entry{Logger: logrus.New(), Level: ErrorLevel, Message: "boom"})

	assert.EqualError(t, err, "disk full")
	assert.Contains(t, bufs["main"].String(), "boom")
}

func TestHook_Close(t *testing.T) {
	t.Parallel()

	h, bufs := newTestHook()
	h.Close()

	require.NoError(t, h.Fire(&Entry{Logger: logrus.New(), Level: InfoLevel, Message: "ignored"}))
	assert.Zero(t, bufs["main"].Len())
	assert.Zero(t, bufs["console"].Len())
}
