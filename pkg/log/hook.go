package log

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// hook 로그 레벨에 따라 Entry를 여러 Writer로 나누어 기록합니다.
//
//   - console:  모든 레벨
//   - critical: ERROR / FATAL / PANIC
//   - verbose:  DEBUG / TRACE (메인 파일에는 기록하지 않음)
//   - main:     INFO 이상
type hook struct {
	mainWriter     io.Writer
	criticalWriter io.Writer
	verboseWriter  io.Writer
	consoleWriter  io.Writer

	formatter Formatter

	mu     sync.RWMutex // 기록(RLock)과 종료(Lock) 사이의 경합 방지
	closed bool
}

func (h *hook) Levels() []Level {
	return AllLevels
}

func (h *hook) Fire(entry *Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return nil
	}

	msg, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	if h.consoleWriter != nil {
		// 콘솔 쓰기 실패는 파일 기록에 영향을 주지 않는다.
		if _, err := h.consoleWriter.Write(msg); err != nil {
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-WARN] 콘솔 출력 실패: %v\n", err)
		}
	}

	var firstErr error
	record := func(w io.Writer, channel string) {
		if w == nil {
			return
		}
		if _, err := w.Write(msg); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			fmt.Fprintf(os.Stderr, "[LOG-SYSTEM-FAILURE] %s 로그 파일 쓰기 실패: %v\n", channel, err)
		}
	}

	if entry.Level <= ErrorLevel {
		record(h.criticalWriter, "critical")
	}

	if entry.Level >= DebugLevel {
		record(h.verboseWriter, "verbose")
		return firstErr
	}

	record(h.mainWriter, "main")

	return firstErr
}

// Close 이후의 모든 Fire 호출을 무시하도록 전환합니다.
// 진행 중인 Fire가 끝날 때까지 대기합니다.
func (h *hook) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
}
