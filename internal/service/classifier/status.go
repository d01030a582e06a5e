package classifier

import (
	"math"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/shopspring/decimal"
)

// DefaultAnomalyThresholdPercent 기본 이상 변동 임계값(%)입니다.
const DefaultAnomalyThresholdPercent = 50.0

var hundred = decimal.NewFromInt(100)

// DeriveStatus (oldPrice, newPrice)로부터 상태를 결정하는 순수 함수입니다.
//
// 한쪽 가격만 있으면 new 또는 discontinued이며, 이 경우 이상 변동 판정을 하지 않습니다.
// 양쪽이 모두 있으면 |변동률| > threshold일 때 anomaly가 increased/decreased보다 우선합니다.
// 이전 가격이 0이면 변동률이 정의되지 않으므로 anomaly가 될 수 없습니다.
// 두 가격이 모두 없으면 unchanged를 반환합니다.
func DeriveStatus(oldPrice, newPrice *float64, threshold float64) contract.Status {
	switch {
	case oldPrice == nil && newPrice == nil:
		return contract.StatusUnchanged
	case oldPrice == nil:
		return contract.StatusNew
	case newPrice == nil:
		return contract.StatusDiscontinued
	}

	if pct := PercentChange(*oldPrice, *newPrice); pct != nil && math.Abs(*pct) > threshold {
		return contract.StatusAnomaly
	}

	switch decimal.NewFromFloat(*newPrice).Cmp(decimal.NewFromFloat(*oldPrice)) {
	case 1:
		return contract.StatusIncreased
	case -1:
		return contract.StatusDecreased
	default:
		return contract.StatusUnchanged
	}
}

// Difference newPrice − oldPrice를 10진 연산으로 계산합니다. (12.10 − 10.00 = 2.1)
func Difference(oldPrice, newPrice float64) float64 {
	return decimal.NewFromFloat(newPrice).Sub(decimal.NewFromFloat(oldPrice)).InexactFloat64()
}

// PercentChange (newPrice − oldPrice) / oldPrice × 100을 반환합니다. oldPrice가 0이면 nil입니다.
func PercentChange(oldPrice, newPrice float64) *float64 {
	d := decimal.NewFromFloat(oldPrice)
	if d.IsZero() {
		return nil
	}
	pct := decimal.NewFromFloat(newPrice).Sub(d).Div(d).Mul(hundred).InexactFloat64()
	return &pct
}
