package analyzer

import (
	"github.com/montanaflynn/stats"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
)

// Volatility 그룹별 변동률의 모표준편차입니다. 관측값이 없는 그룹은 맵에 포함되지 않습니다.
type Volatility struct {
	CategoryVolatility map[string]float64 `json:"categoryVolatility"`
	SupplierVolatility map[string]float64 `json:"supplierVolatility"`
}

// AnalyzeVolatility 이전/신규 가격이 모두 있는 항목의 변동률로 카테고리별, 공급사별 변동성을 계산합니다.
// 관측값이 하나인 그룹의 변동성은 0입니다.
func AnalyzeVolatility(items []*contract.PriceItem) Volatility {
	byCategory := make(map[string]stats.Float64Data)
	bySupplier := make(map[string]stats.Float64Data)

	for _, item := range items {
		pct, ok := percentChangeOf(item)
		if !ok {
			continue
		}
		c := categoryKey(item)
		byCategory[c] = append(byCategory[c], pct)
		if s := supplierKey(item); s != "" {
			bySupplier[s] = append(bySupplier[s], pct)
		}
	}

	return Volatility{
		CategoryVolatility: stdDevByGroup(byCategory),
		SupplierVolatility: stdDevByGroup(bySupplier),
	}
}

func stdDevByGroup(groups map[string]stats.Float64Data) map[string]float64 {
	out := make(map[string]float64, len(groups))
	for k, data := range groups {
		if sd, ok := stdDevPopulation(data); ok {
			out[k] = sd
		}
	}
	return out
}

// stdDevPopulation 빈 입력이거나 결과가 유한하지 않으면 false를 반환합니다.
func stdDevPopulation(data stats.Float64Data) (float64, bool) {
	if len(data) == 0 {
		return 0, false
	}
	sd, err := stats.StandardDeviationPopulation(data)
	if err != nil || !isFinite(sd) {
		return 0, false
	}
	return sd, true
}
