package enrichment

import "time"

const (
	// DefaultBatchSize 배치 하나에 담기는 최대 항목 수
	DefaultBatchSize = 50

	// DefaultMaxConcurrentBatches 한 라운드에서 동시에 처리하는 최대 배치 수
	DefaultMaxConcurrentBatches = 5

	// DefaultItemConcurrency 배치 내부에서 동시에 조회하는 최대 항목 수
	DefaultItemConcurrency = 10

	// DefaultBatchDelay 라운드 사이 대기 시간
	DefaultBatchDelay = 200 * time.Millisecond
)

// Option Orchestrator 설정을 변경합니다.
type Option func(*Orchestrator)

// WithBatchSize 배치 크기를 지정합니다. 0 이하는 무시됩니다.
func WithBatchSize(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.batchSize = n
		}
	}
}

// WithMaxConcurrentBatches 라운드당 동시 배치 수를 지정합니다. 0 이하는 무시됩니다.
func WithMaxConcurrentBatches(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxConcurrentBatches = n
		}
	}
}

// WithItemConcurrency 배치 내부 동시 조회 수를 지정합니다. 0 이하는 무시됩니다.
func WithItemConcurrency(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.itemConcurrency = n
		}
	}
}

// WithBatchDelay 라운드 사이 대기 시간을 지정합니다. 음수는 무시됩니다.
func WithBatchDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d >= 0 {
			o.batchDelay = d
		}
	}
}

// WithCache 지문 캐시를 사용합니다.
func WithCache(c Cache) Option {
	return func(o *Orchestrator) {
		o.cache = c
	}
}

// WithMetrics 실행 지표를 기록합니다.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) {
		o.metrics = m
	}
}
