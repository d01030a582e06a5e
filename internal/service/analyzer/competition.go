package analyzer

import (
	"cmp"
	"slices"

	"github.com/montanaflynn/stats"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
)

// CompetitiveCategory 카테고리의 경쟁 강도입니다.
//
// PriceVariance는 공급사별 평균 신규 가격의 모분산이며,
// CompetitionScore = SupplierCount / (1 + PriceVariance / 평균²) 입니다.
// 공급사가 많을수록, 가격이 밀집할수록 점수가 높습니다.
type CompetitiveCategory struct {
	Category         string  `json:"category"`
	CompetitionScore float64 `json:"competitionScore"`
	SupplierCount    int     `json:"supplierCount"`
	PriceVariance    float64 `json:"priceVariance"`
}

// IdentifyCompetitiveCategories 공급사가 minSuppliers(최소 2) 이상인 카테고리의 경쟁 점수를 계산합니다.
// 결과는 점수 내림차순, 같으면 카테고리 이름 순으로 정렬됩니다.
func IdentifyCompetitiveCategories(items []*contract.PriceItem, minSuppliers int) []CompetitiveCategory {
	if minSuppliers < defaultMinCompetingSuppliers {
		minSuppliers = defaultMinCompetingSuppliers
	}

	// 카테고리 → 공급사 → 신규 가격 목록
	prices := make(map[string]map[string]stats.Float64Data)
	for _, item := range items {
		if item == nil || item.NewPrice == nil || !isFinite(*item.NewPrice) {
			continue
		}
		s := supplierKey(item)
		if s == "" {
			continue
		}
		c := categoryKey(item)
		if prices[c] == nil {
			prices[c] = make(map[string]stats.Float64Data)
		}
		prices[c][s] = append(prices[c][s], *item.NewPrice)
	}

	result := make([]CompetitiveCategory, 0)
	for category, bySupplier := range prices {
		if len(bySupplier) < minSuppliers {
			continue
		}

		means := make(stats.Float64Data, 0, len(bySupplier))
		for _, p := range bySupplier {
			m, err := stats.Mean(p)
			if err != nil || !isFinite(m) {
				continue
			}
			means = append(means, m)
		}
		if len(means) < minSuppliers {
			continue
		}

		variance, err := stats.PopulationVariance(means)
		if err != nil || !isFinite(variance) {
			continue
		}
		result = append(result, CompetitiveCategory{
			Category:         category,
			CompetitionScore: competitionScore(len(means), variance, means),
			SupplierCount:    len(means),
			PriceVariance:    variance,
		})
	}

	slices.SortFunc(result, func(a, b CompetitiveCategory) int {
		if c := cmp.Compare(b.CompetitionScore, a.CompetitionScore); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return result
}

// competitionScore 평균이 0이면 정규화 분산을 0으로 봅니다.
func competitionScore(supplierCount int, variance float64, means stats.Float64Data) float64 {
	normalized := 0.0
	if mean, err := stats.Mean(means); err == nil && mean != 0 {
		normalized = variance / (mean * mean)
	}
	score := float64(supplierCount) / (1 + normalized)
	if !isFinite(score) {
		return 0
	}
	return score
}
