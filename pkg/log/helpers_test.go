package log

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// resetForTest 테스트 간 전역 상태(sync.Once, logrus 설정)를 초기화합니다.
func resetForTest() {
	setupOnce = sync.Once{}
	globalCloser = nil
	globalSetupErr = nil
	stdout = os.Stdout

	logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetReportCaller(false)
	logrus.SetFormatter(&logrus.TextFormatter{})
}
