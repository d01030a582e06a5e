package analyzer

import (
	"cmp"
	"math"
	"slices"

	"github.com/montanaflynn/stats"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
)

// SupplierCorrelation 두 공급사의 카테고리별 평균 변동률 간 피어슨 상관계수입니다.
// Pair는 사전순으로 정렬되어 있습니다.
type SupplierCorrelation struct {
	Pair        [2]string `json:"pair"`
	Correlation float64   `json:"correlation"`
	Overlap     int       `json:"overlap"`
}

// supplierVectors 공급사 → 카테고리 → 평균 변동률
type supplierVectors map[string]map[string]float64

func buildSupplierVectors(items []*contract.PriceItem) supplierVectors {
	type acc struct {
		sum float64
		n   int
	}

	raw := make(map[string]map[string]*acc)
	for _, item := range items {
		pct, ok := percentChangeOf(item)
		if !ok {
			continue
		}
		s := supplierKey(item)
		if s == "" {
			continue
		}
		byCategory, ok := raw[s]
		if !ok {
			byCategory = make(map[string]*acc)
			raw[s] = byCategory
		}
		c := categoryKey(item)
		a, ok := byCategory[c]
		if !ok {
			a = &acc{}
			byCategory[c] = a
		}
		a.sum += pct
		a.n++
	}

	vectors := make(supplierVectors, len(raw))
	for s, byCategory := range raw {
		v := make(map[string]float64, len(byCategory))
		for c, a := range byCategory {
			v[c] = a.sum / float64(a.n)
		}
		vectors[s] = v
	}
	return vectors
}

// correlate 겹치는 카테고리 기준으로 정렬된 두 벡터의 상관계수를 계산합니다.
// 겹침이 minOverlap 미만이거나 어느 한쪽의 분산이 0이면 false를 반환합니다.
func (sv supplierVectors) correlate(a, b string, minOverlap int) (float64, int, bool) {
	va, vb := sv[a], sv[b]
	if len(va) == 0 || len(vb) == 0 {
		return 0, 0, false
	}

	categories := make([]string, 0, len(va))
	for c := range va {
		if _, ok := vb[c]; ok {
			categories = append(categories, c)
		}
	}
	if len(categories) < minOverlap {
		return 0, len(categories), false
	}
	slices.Sort(categories)

	x := make(stats.Float64Data, len(categories))
	y := make(stats.Float64Data, len(categories))
	for i, c := range categories {
		x[i], y[i] = va[c], vb[c]
	}

	if !hasVariance(x) || !hasVariance(y) {
		return 0, len(categories), false
	}

	r, err := stats.Pearson(x, y)
	if err != nil || !isFinite(r) {
		return 0, len(categories), false
	}
	return clamp(r, -1, 1), len(categories), true
}

func hasVariance(data stats.Float64Data) bool {
	v, err := stats.PopulationVariance(data)
	return err == nil && isFinite(v) && v > 0
}

func normalizeMinOverlap(minOverlap int) int {
	if minOverlap < defaultMinCorrelationOverlap {
		return defaultMinCorrelationOverlap
	}
	return minOverlap
}

// IdentifyCorrelatedSuppliers 모든 공급사 쌍의 상관계수를 계산합니다.
//
// 겹치는 카테고리가 minOverlap(최소 2) 미만이거나 분산이 0인 쌍은 0으로 보고하지 않고 제외합니다.
// 결과는 |상관계수| 내림차순, 같으면 쌍 이름 순으로 정렬됩니다.
func IdentifyCorrelatedSuppliers(items []*contract.PriceItem, minOverlap int) []SupplierCorrelation {
	minOverlap = normalizeMinOverlap(minOverlap)
	vectors := buildSupplierVectors(items)

	suppliers := make([]string, 0, len(vectors))
	for s := range vectors {
		suppliers = append(suppliers, s)
	}
	slices.Sort(suppliers)

	result := make([]SupplierCorrelation, 0)
	for i := 0; i < len(suppliers); i++ {
		for j := i + 1; j < len(suppliers); j++ {
			r, overlap, ok := vectors.correlate(suppliers[i], suppliers[j], minOverlap)
			if !ok {
				continue
			}
			result = append(result, SupplierCorrelation{
				Pair:        [2]string{suppliers[i], suppliers[j]},
				Correlation: r,
				Overlap:     overlap,
			})
		}
	}

	slices.SortStableFunc(result, func(a, b SupplierCorrelation) int {
		if c := cmp.Compare(math.Abs(b.Correlation), math.Abs(a.Correlation)); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Pair[0], b.Pair[0]); c != 0 {
			return c
		}
		return cmp.Compare(a.Pair[1], b.Pair[1])
	})
	return result
}

// Correlation 두 공급사의 상관계수를 반환합니다. Correlation(a, b) == Correlation(b, a)이며
// 같은 공급사끼리는 1입니다. 계산할 수 없으면 false를 반환합니다.
func Correlation(items []*contract.PriceItem, a, b string) (float64, bool) {
	if a > b {
		a, b = b, a
	}
	r, _, ok := buildSupplierVectors(items).correlate(a, b, defaultMinCorrelationOverlap)
	return r, ok
}
