package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	fileExt = "log"

	defaultDir        = "logs"
	defaultMaxSizeMB  = 100
	defaultMaxBackups = 20
)

var (
	// setupOnce 프로세스 생명주기 동안 Setup이 한 번만 실행되도록 보장합니다.
	setupOnce sync.Once

	// Setup 재호출 시 최초 결과(Closer, 에러)를 그대로 돌려줍니다.
	globalCloser   io.Closer
	globalSetupErr error

	// stdout 콘솔 출력 대상 (테스트에서 교체)
	stdout io.Writer = os.Stdout
)

// Setup 전역 로거를 초기화합니다.
//
// main 도입부에서 한 번 호출하고, 반환된 Closer를 defer로 닫아야 합니다.
// 초기화에 실패하면 이후 호출도 같은 에러를 반환합니다.
func Setup(opts Options) (io.Closer, error) {
	setupOnce.Do(func() {
		globalCloser, globalSetupErr = setup(opts)
	})

	return globalCloser, globalSetupErr
}

func setup(opts Options) (io.Closer, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("유효하지 않은 로그 설정: %w", err)
	}

	level := opts.Level
	if level == 0 {
		level = InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetReportCaller(opts.ReportCaller)

	// 기본 출력은 버리고 모든 기록을 hook에 위임한다.
	logrus.SetFormatter(&silentFormatter{})
	logrus.SetOutput(io.Discard)

	dir := opts.Dir
	if dir == "" {
		dir = defaultDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("로그 디렉토리 생성 실패: %w", err)
	}

	newWriter := func(suffix string) *lumberjack.Logger {
		name := opts.Name
		if suffix != "" {
			name += "." + suffix
		}

		maxSize := opts.MaxSizeMB
		if maxSize == 0 {
			maxSize = defaultMaxSizeMB
		}
		maxBackups := opts.MaxBackups
		if maxBackups == 0 {
			maxBackups = defaultMaxBackups
		}

		return &lumberjack.Logger{
			Filename:   filepath.Join(dir, name+"."+fileExt),
			MaxSize:    maxSize,
			MaxBackups: maxBackups,
			MaxAge:     opts.MaxAge,
			LocalTime:  true,
		}
	}

	mainWriter := newWriter("")
	closers := []io.Closer{mainWriter}

	h := &hook{
		mainWriter: mainWriter,
		formatter:  newFormatter(opts),
	}
	if opts.EnableCriticalLog {
		w := newWriter("critical")
		h.criticalWriter = w
		closers = append(closers, w)
	}
	if opts.EnableVerboseLog {
		w := newWriter("verbose")
		h.verboseWriter = w
		closers = append(closers, w)
	}
	if opts.EnableConsoleLog {
		h.consoleWriter = stdout
	}

	logrus.AddHook(h)

	c := &closer{
		closers: closers,
		hook:    h,
	}

	// Fatal 로그로 종료되기 직전에 버퍼를 비운다.
	logrus.RegisterExitHandler(func() {
		_ = c.Close()
	})

	return c, nil
}
