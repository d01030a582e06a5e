package analyzer

import (
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
)

// changed 이전/신규 가격이 모두 있는 항목을 만듭니다. 변동률은 oldPrice가 0이 아닐 때만 채웁니다.
func changed(sku, category, supplier string, oldPrice, newPrice float64) *contract.PriceItem {
	item := &contract.PriceItem{
		SKU:        sku,
		Category:   category,
		Supplier:   supplier,
		OldPrice:   contract.Float64(oldPrice),
		NewPrice:   contract.Float64(newPrice),
		Difference: newPrice - oldPrice,
	}
	if oldPrice != 0 {
		item.PercentChange = contract.Float64((newPrice - oldPrice) / oldPrice * 100)
	}
	switch {
	case newPrice > oldPrice:
		item.Status = contract.StatusIncreased
	case newPrice < oldPrice:
		item.Status = contract.StatusDecreased
	default:
		item.Status = contract.StatusUnchanged
	}
	item.RecomputeImpact()
	return item
}

// withPct 변동률을 직접 지정한 항목을 만듭니다.
func withPct(category, supplier string, pct float64) *contract.PriceItem {
	return &contract.PriceItem{
		SKU:           category + "-" + supplier,
		Category:      category,
		Supplier:      supplier,
		OldPrice:      contract.Float64(100),
		NewPrice:      contract.Float64(100 + pct),
		PercentChange: contract.Float64(pct),
		Status:        contract.StatusIncreased,
	}
}

func added(sku, category, supplier string, newPrice float64) *contract.PriceItem {
	return &contract.PriceItem{
		SKU:      sku,
		Category: category,
		Supplier: supplier,
		NewPrice: contract.Float64(newPrice),
		Status:   contract.StatusNew,
	}
}
