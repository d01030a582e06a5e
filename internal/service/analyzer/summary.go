package analyzer

import (
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/shopspring/decimal"
)

// AnalysisSummary 상태별 건수와 예상 영향액 합계입니다. 항상 항목에서 다시 계산됩니다.
type AnalysisSummary struct {
	Total        int     `json:"total"`
	Increased    int     `json:"increased"`
	Decreased    int     `json:"decreased"`
	Unchanged    int     `json:"unchanged"`
	New          int     `json:"new"`
	Discontinued int     `json:"discontinued"`
	Anomaly      int     `json:"anomaly"`
	TotalImpact  float64 `json:"totalImpact"`
}

// Count 지정한 상태의 건수를 반환합니다.
func (s AnalysisSummary) Count(status contract.Status) int {
	switch status {
	case contract.StatusIncreased:
		return s.Increased
	case contract.StatusDecreased:
		return s.Decreased
	case contract.StatusUnchanged:
		return s.Unchanged
	case contract.StatusNew:
		return s.New
	case contract.StatusDiscontinued:
		return s.Discontinued
	case contract.StatusAnomaly:
		return s.Anomaly
	default:
		return 0
	}
}

// Summarize 상태별 건수와 영향액 합계를 계산합니다.
func Summarize(items []*contract.PriceItem) AnalysisSummary {
	var s AnalysisSummary
	impact := decimal.Zero

	for _, item := range items {
		if item == nil {
			continue
		}
		s.Total++
		impact = impact.Add(decimal.NewFromFloat(item.PotentialImpact))

		switch item.Status {
		case contract.StatusIncreased:
			s.Increased++
		case contract.StatusDecreased:
			s.Decreased++
		case contract.StatusUnchanged:
			s.Unchanged++
		case contract.StatusNew:
			s.New++
		case contract.StatusDiscontinued:
			s.Discontinued++
		case contract.StatusAnomaly:
			s.Anomaly++
		}
	}

	s.TotalImpact = impact.InexactFloat64()
	return s
}

// SupplierTrend 한 카테고리 안에서 특정 공급사의 가격 인상 현황입니다.
type SupplierTrend struct {
	Items       int     `json:"items"`
	Increases   int     `json:"increases"`
	AvgIncrease float64 `json:"avgIncrease"`
}

// CrossSupplierTrends 카테고리 → 공급사 → 인상 현황입니다.
type CrossSupplierTrends map[string]map[string]SupplierTrend

// BuildCrossSupplierTrends 카테고리별, 공급사별 인상 건수와 평균 인상률을 계산합니다.
//
// 인상은 변동률이 양수인 항목(increased 또는 상승 방향 anomaly)이며,
// AvgIncrease는 그 항목들의 평균 변동률입니다. 공급사가 비어 있는 항목은 제외됩니다.
func BuildCrossSupplierTrends(items []*contract.PriceItem) CrossSupplierTrends {
	type acc struct {
		items     int
		increases int
		sum       decimal.Decimal
	}

	groups := make(map[string]map[string]*acc)
	for _, item := range items {
		if item == nil {
			continue
		}
		supplier := supplierKey(item)
		if supplier == "" {
			continue
		}
		category := categoryKey(item)

		bySupplier, ok := groups[category]
		if !ok {
			bySupplier = make(map[string]*acc)
			groups[category] = bySupplier
		}
		a, ok := bySupplier[supplier]
		if !ok {
			a = &acc{sum: decimal.Zero}
			bySupplier[supplier] = a
		}

		a.items++
		if pct, ok := percentChangeOf(item); ok && pct > 0 {
			a.increases++
			a.sum = a.sum.Add(decimal.NewFromFloat(pct))
		}
	}

	trends := make(CrossSupplierTrends, len(groups))
	for category, bySupplier := range groups {
		out := make(map[string]SupplierTrend, len(bySupplier))
		for supplier, a := range bySupplier {
			t := SupplierTrend{Items: a.items, Increases: a.increases}
			if a.increases > 0 {
				t.AvgIncrease = a.sum.Div(decimal.NewFromInt(int64(a.increases))).InexactFloat64()
			}
			out[supplier] = t
		}
		trends[category] = out
	}
	return trends
}
