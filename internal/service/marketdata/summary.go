package marketdata

import (
	"math"

	"github.com/montanaflynn/stats"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
)

// DefaultPositionBandPercent 평균 대비 ±5% 안이면 average로 봅니다.
const DefaultPositionBandPercent = 5.0

// ErrNoCompetitorPrices 유효한 경쟁사 가격을 하나도 얻지 못했을 때 반환됩니다.
var ErrNoCompetitorPrices = apperrors.New(apperrors.ExecutionFailed, "경쟁사 가격을 찾을 수 없습니다")

// Summarize 경쟁사 가격 목록과 자사 가격으로 MarketData를 계산합니다.
//
// 0 이하이거나 유한하지 않은 가격은 무시합니다. 자사 가격이 평균×(1−band/100)보다 낮으면 low,
// 평균×(1+band/100)보다 높으면 high, 그 사이면 average입니다. 자사 가격이 없으면 average입니다.
func Summarize(prices []float64, own *float64, bandPercent float64) (*contract.MarketData, error) {
	valid := make([]float64, 0, len(prices))
	for _, p := range prices {
		if p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p) {
			valid = append(valid, p)
		}
	}
	if len(valid) == 0 {
		return nil, ErrNoCompetitorPrices
	}

	avg, _ := stats.Mean(valid)
	lo, _ := stats.Min(valid)
	hi, _ := stats.Max(valid)

	if bandPercent < 0 {
		bandPercent = DefaultPositionBandPercent
	}

	position := contract.PositionAverage
	if own != nil {
		switch {
		case *own < avg*(1-bandPercent/100):
			position = contract.PositionLow
		case *own > avg*(1+bandPercent/100):
			position = contract.PositionHigh
		}
	}

	return &contract.MarketData{
		PricePosition:    position,
		CompetitorPrices: valid,
		AveragePrice:     avg,
		MinPrice:         lo,
		MaxPrice:         hi,
	}, nil
}

// ownPrice 비교 기준 가격입니다. 신규 가격이 없으면(단종) 이전 가격을 사용합니다.
func ownPrice(item *contract.PriceItem) *float64 {
	if item.NewPrice != nil {
		return item.NewPrice
	}
	return item.OldPrice
}
