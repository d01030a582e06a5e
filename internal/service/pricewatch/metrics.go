package pricewatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/session"
)

// metrics 분석 요청 지표입니다. nil이면 아무것도 기록하지 않습니다.
type metrics struct {
	analyses        prometheus.Counter
	rejectedRecords prometheus.Counter
	items           *prometheus.CounterVec
	catalogMerges   prometheus.Counter
	exports         *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer, store *session.Store) *metrics {
	m := &metrics{
		analyses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricewatch_analyses_total",
			Help: "생성된 분석 세션 수",
		}),
		rejectedRecords: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricewatch_rejected_records_total",
			Help: "검증 실패로 분류에서 제외된 입력 행 수",
		}),
		items: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pricewatch_classified_items_total",
			Help: "상태별 분류 항목 수",
		}, []string{"status"}),
		catalogMerges: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pricewatch_catalog_merges_total",
			Help: "카탈로그 대조 실행 수",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pricewatch_exports_total",
			Help: "형식별 내보내기 수",
		}, []string{"format"}),
	}
	sessions := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "pricewatch_sessions",
		Help: "보관 중인 분석 세션 수",
	}, func() float64 {
		return float64(store.Len())
	})

	reg.MustRegister(m.analyses, m.rejectedRecords, m.items, m.catalogMerges, m.exports, sessions)
	return m
}

func (m *metrics) observeAnalysis(items []*contract.PriceItem, rejected int) {
	if m == nil {
		return
	}
	m.analyses.Inc()
	m.rejectedRecords.Add(float64(rejected))
	for _, item := range items {
		m.items.WithLabelValues(string(item.Status)).Inc()
	}
}

func (m *metrics) observeCatalogMerge() {
	if m == nil {
		return
	}
	m.catalogMerges.Inc()
}

func (m *metrics) observeExport(format Format) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(string(format)).Inc()
}
