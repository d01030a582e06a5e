package contract

import (
	"slices"

	"github.com/shopspring/decimal"
)

// MarketData 경쟁사 가격 조회 결과입니다. CompetitorPrices는 공급자가 반환한 순서를 유지합니다.
type MarketData struct {
	PricePosition    PricePosition `json:"pricePosition"`
	CompetitorPrices []float64     `json:"competitorPrices"`
	AveragePrice     float64       `json:"averagePrice"`
	MinPrice         float64       `json:"minPrice"`
	MaxPrice         float64       `json:"maxPrice"`
}

// Clone 깊은 복사본을 반환합니다.
func (m *MarketData) Clone() *MarketData {
	if m == nil {
		return nil
	}
	c := *m
	c.CompetitorPrices = slices.Clone(m.CompetitorPrices)
	return &c
}

// PriceItem 한 상품의 이전/신규 가격 비교 결과입니다.
//
// Difference와 PercentChange는 분류 시점에 계산되어 저장되며 이후 다시 계산하지 않습니다.
// OldPrice와 NewPrice가 동시에 nil인 경우는 없습니다.
type PriceItem struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Supplier    string `json:"supplier,omitempty"`
	OldPackSize string `json:"oldPackSize,omitempty"`
	NewPackSize string `json:"newPackSize,omitempty"`

	OldPrice        *float64 `json:"oldPrice,omitempty"`
	NewPrice        *float64 `json:"newPrice,omitempty"`
	Difference      float64  `json:"difference"`
	PercentChange   *float64 `json:"percentChange,omitempty"`
	Status          Status   `json:"status"`
	PotentialImpact float64  `json:"potentialImpact"`
	InventoryLevel  *int     `json:"inventoryLevel,omitempty"`

	MarketData *MarketData `json:"marketData,omitempty"`

	ProductID       string `json:"productId,omitempty"`
	VariantID       string `json:"variantId,omitempty"`
	InventoryItemID string `json:"inventoryItemId,omitempty"`
	IsMatched       bool   `json:"isMatched"`
}

// HasBothPrices 이전/신규 가격이 모두 있으면 true를 반환합니다.
func (p *PriceItem) HasBothPrices() bool {
	return p.OldPrice != nil && p.NewPrice != nil
}

// RecomputeImpact 재고 수준이 바뀐 뒤 PotentialImpact를 다시 계산합니다.
func (p *PriceItem) RecomputeImpact() {
	p.PotentialImpact = ComputeImpact(p.Difference, p.InventoryLevel)
}

// Clone 포인터 필드와 MarketData까지 복사한 깊은 복사본을 반환합니다.
func (p *PriceItem) Clone() *PriceItem {
	if p == nil {
		return nil
	}
	c := *p
	c.OldPrice = clonePtr(p.OldPrice)
	c.NewPrice = clonePtr(p.NewPrice)
	c.PercentChange = clonePtr(p.PercentChange)
	c.InventoryLevel = clonePtr(p.InventoryLevel)
	c.MarketData = p.MarketData.Clone()
	return &c
}

// CloneItems 항목 목록의 깊은 복사본을 반환합니다.
func CloneItems(items []*PriceItem) []*PriceItem {
	if items == nil {
		return nil
	}
	out := make([]*PriceItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// ComputeImpact 가격 차이에 재고 수량(없으면 1)을 곱한 예상 영향액을 계산합니다.
func ComputeImpact(difference float64, inventoryLevel *int) float64 {
	units := int64(1)
	if inventoryLevel != nil {
		units = int64(*inventoryLevel)
	}
	return decimal.NewFromFloat(difference).Mul(decimal.NewFromInt(units)).InexactFloat64()
}

// Float64 값의 포인터를 반환합니다.
func Float64(v float64) *float64 {
	return &v
}

// Int 값의 포인터를 반환합니다.
func Int(v int) *int {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
