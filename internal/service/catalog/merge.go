// Package catalog 분류/보강된 항목을 커머스 플랫폼 카탈로그와 SKU로 대조합니다.
package catalog

import (
	"slices"
	"strings"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

const component = "catalog"

// MergeResult 카탈로그 대조 결과입니다.
type MergeResult struct {
	// Items 입력과 같은 순서의 복사본입니다. 대조 실패 항목도 빠지지 않습니다.
	Items     []*contract.PriceItem `json:"items"`
	Matched   int                   `json:"matched"`
	Unmatched int                   `json:"unmatched"`

	// DuplicateSKUs 카탈로그에 두 번 이상 나온 SKU입니다. 첫 번째 레코드만 사용됩니다.
	DuplicateSKUs []string `json:"duplicateSkus,omitempty"`

	// InvalidRecords SKU가 비었거나 식별자가 하나도 없어 무시한 레코드 수입니다.
	InvalidRecords int `json:"invalidRecords"`
}

// index 카탈로그를 SKU 기준으로 색인합니다. 같은 SKU는 처음 나온 레코드만 남깁니다.
// SKU는 분류 단계와 같이 공백을 포함한 그대로 비교합니다.
func index(records []contract.CatalogRecord) (map[string]contract.CatalogRecord, []string, int) {
	bySKU := make(map[string]contract.CatalogRecord, len(records))
	var duplicates []string
	invalid := 0

	for _, rec := range records {
		sku := rec.SKU
		if strings.TrimSpace(sku) == "" || (strings.TrimSpace(rec.ProductID) == "" && strings.TrimSpace(rec.VariantID) == "") {
			invalid++
			continue
		}
		if _, exists := bySKU[sku]; exists {
			if !slices.Contains(duplicates, sku) {
				duplicates = append(duplicates, sku)
			}
			continue
		}
		bySKU[sku] = rec
	}

	return bySKU, duplicates, invalid
}

// Merge items를 catalog와 대조하여 플랫폼 식별자를 채운 복사본을 반환합니다.
//
// 이름, 가격, 상태 같은 기존 필드는 바꾸지 않습니다. 재고 수준은 항목에 값이 없을 때만
// 카탈로그 값으로 채우며, 이 경우 PotentialImpact를 다시 계산합니다.
func Merge(items []*contract.PriceItem, catalog []contract.CatalogRecord) *MergeResult {
	bySKU, duplicates, invalid := index(catalog)

	result := &MergeResult{
		Items:          make([]*contract.PriceItem, 0, len(items)),
		DuplicateSKUs:  duplicates,
		InvalidRecords: invalid,
	}

	for _, item := range items {
		if item == nil {
			continue
		}
		merged := item.Clone()

		rec, ok := bySKU[item.SKU]
		if !ok {
			// 이전 대조에서 채워진 식별자가 남지 않도록 비운다.
			merged.IsMatched = false
			merged.ProductID = ""
			merged.VariantID = ""
			merged.InventoryItemID = ""
			result.Unmatched++
			result.Items = append(result.Items, merged)
			continue
		}

		merged.IsMatched = true
		merged.ProductID = rec.ProductID
		merged.VariantID = rec.VariantID
		merged.InventoryItemID = rec.InventoryItemID
		if merged.InventoryLevel == nil && rec.InventoryLevel != nil {
			level := *rec.InventoryLevel
			merged.InventoryLevel = &level
			merged.RecomputeImpact()
		}

		result.Matched++
		result.Items = append(result.Items, merged)
	}

	if len(duplicates) > 0 || invalid > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"duplicate_skus":  duplicates,
			"invalid_records": invalid,
		}).Warn("카탈로그에 중복되거나 식별자가 없는 레코드가 있습니다. 중복 SKU는 첫 번째 레코드만 사용합니다")
	}

	return result
}
