package analyzer

import (
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/shopspring/decimal"
)

// psychologicalCents 심리적 가격으로 간주하는 센트 값입니다. (예: 9.99, 4.95)
var psychologicalCents = map[int64]struct{}{99: {}, 98: {}, 95: {}}

// PricingPatterns 신규 가격이 있는 항목 중 정수 가격과 심리적 가격의 비율(%)입니다.
type PricingPatterns struct {
	RoundedPricing       float64 `json:"roundedPricing"`
	PsychologicalPricing float64 `json:"psychologicalPricing"`
	Considered           int     `json:"considered"`
}

// DetectPricingPatterns 신규 가격의 센트 단위를 10진 연산으로 추출해 가격 책정 패턴을 집계합니다.
// 대상 항목이 없으면 두 비율 모두 0입니다.
func DetectPricingPatterns(items []*contract.PriceItem) PricingPatterns {
	var p PricingPatterns
	var rounded, psychological int

	one := decimal.NewFromInt(1)
	for _, item := range items {
		if item == nil || item.NewPrice == nil || !isFinite(*item.NewPrice) {
			continue
		}
		p.Considered++

		cents := decimal.NewFromFloat(*item.NewPrice).Mod(one).Shift(2).Round(0).IntPart()
		if cents == 0 {
			rounded++
		}
		if _, ok := psychologicalCents[cents]; ok {
			psychological++
		}
	}

	if p.Considered > 0 {
		total := decimal.NewFromInt(int64(p.Considered))
		p.RoundedPricing = decimal.NewFromInt(int64(rounded)).Shift(2).Div(total).InexactFloat64()
		p.PsychologicalPricing = decimal.NewFromInt(int64(psychological)).Shift(2).Div(total).InexactFloat64()
	}
	return p
}
