package enrichment

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// 실행 결과 레이블 값
const (
	outcomeSuccess   = "success"
	outcomePartial   = "partial"
	outcomeFailed    = "failed"
	outcomeCancelled = "cancelled"
	outcomeCached    = "cached"
)

// Metrics 보강 실행 지표입니다. nil이면 아무것도 기록하지 않습니다.
type Metrics struct {
	ItemsEnriched prometheus.Counter
	ItemsFailed   prometheus.Counter
	CacheHits     prometheus.Counter
	Runs          *prometheus.CounterVec
	RunDuration   prometheus.Histogram
}

// NewMetrics 지표를 생성하고 reg에 등록합니다.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ItemsEnriched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricewatch_enrichment_items_enriched_total",
			Help: "시장 데이터 보강에 성공한 항목 수",
		}),
		ItemsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricewatch_enrichment_items_failed_total",
			Help: "시장 데이터 보강에 실패한 항목 수",
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricewatch_enrichment_cache_hits_total",
			Help: "지문 캐시로 재조회를 생략한 실행 수",
		}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pricewatch_enrichment_runs_total",
			Help: "결과별 보강 실행 수",
		}, []string{"outcome"}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pricewatch_enrichment_run_duration_seconds",
			Help:    "보강 실행 소요 시간",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}
	reg.MustRegister(m.ItemsEnriched, m.ItemsFailed, m.CacheHits, m.Runs, m.RunDuration)
	return m
}

func (m *Metrics) observeItem(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.ItemsEnriched.Inc()
	} else {
		m.ItemsFailed.Inc()
	}
}

func (m *Metrics) observeRun(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Runs.WithLabelValues(outcome).Inc()
	if outcome == outcomeCached {
		m.CacheHits.Inc()
		return
	}
	m.RunDuration.Observe(elapsed.Seconds())
}
