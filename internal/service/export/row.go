// Package export 항목 목록을 다운로드용 표 형식(CSV, XLSX)으로 변환합니다.
//
// 열 이름과 status 값은 다른 도구가 의존하는 호환 규약이므로 바꾸지 않습니다.
package export

import (
	"strconv"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
)

// Row 내보내기 한 행입니다. 값이 없는 필드는 빈 문자열입니다.
type Row struct {
	SKU             string `csv:"sku"`
	Name            string `csv:"name"`
	Category        string `csv:"category"`
	Supplier        string `csv:"supplier"`
	OldPackSize     string `csv:"oldPackSize"`
	NewPackSize     string `csv:"newPackSize"`
	OldPrice        string `csv:"oldPrice"`
	NewPrice        string `csv:"newPrice"`
	Difference      string `csv:"difference"`
	PercentChange   string `csv:"percentChange"`
	Status          string `csv:"status"`
	PotentialImpact string `csv:"potentialImpact"`
	InventoryLevel  string `csv:"inventoryLevel"`
	PricePosition   string `csv:"pricePosition"`
	AverageMarket   string `csv:"averageMarketPrice"`
	ProductID       string `csv:"productId"`
	VariantID       string `csv:"variantId"`
	InventoryItemID string `csv:"inventoryItemId"`
	IsMatched       string `csv:"isMatched"`
}

// Columns 내보내기 열 이름 (순서 고정)
var Columns = []string{
	"sku", "name", "category", "supplier", "oldPackSize", "newPackSize",
	"oldPrice", "newPrice", "difference", "percentChange", "status", "potentialImpact",
	"inventoryLevel", "pricePosition", "averageMarketPrice",
	"productId", "variantId", "inventoryItemId", "isMatched",
}

func (r *Row) values() []string {
	return []string{
		r.SKU, r.Name, r.Category, r.Supplier, r.OldPackSize, r.NewPackSize,
		r.OldPrice, r.NewPrice, r.Difference, r.PercentChange, r.Status, r.PotentialImpact,
		r.InventoryLevel, r.PricePosition, r.AverageMarket,
		r.ProductID, r.VariantID, r.InventoryItemID, r.IsMatched,
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

// NewRow 항목을 행으로 변환합니다.
func NewRow(item *contract.PriceItem) *Row {
	r := &Row{
		SKU:             item.SKU,
		Name:            item.Name,
		Category:        item.Category,
		Supplier:        item.Supplier,
		OldPackSize:     item.OldPackSize,
		NewPackSize:     item.NewPackSize,
		OldPrice:        formatFloatPtr(item.OldPrice),
		NewPrice:        formatFloatPtr(item.NewPrice),
		Difference:      formatFloat(item.Difference),
		PercentChange:   formatFloatPtr(item.PercentChange),
		Status:          item.Status.String(),
		PotentialImpact: formatFloat(item.PotentialImpact),
		ProductID:       item.ProductID,
		VariantID:       item.VariantID,
		InventoryItemID: item.InventoryItemID,
		IsMatched:       strconv.FormatBool(item.IsMatched),
	}
	if item.InventoryLevel != nil {
		r.InventoryLevel = strconv.Itoa(*item.InventoryLevel)
	}
	if item.MarketData != nil {
		r.PricePosition = item.MarketData.PricePosition.String()
		r.AverageMarket = formatFloat(item.MarketData.AveragePrice)
	}
	return r
}

// NewRows 항목 목록을 행 목록으로 변환합니다. nil 항목은 건너뜁니다.
func NewRows(items []*contract.PriceItem) []*Row {
	rows := make([]*Row, 0, len(items))
	for _, item := range items {
		if item != nil {
			rows = append(rows, NewRow(item))
		}
	}
	return rows
}
