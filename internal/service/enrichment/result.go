package enrichment

import (
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
)

// ErrAllItemsFailed 입력 항목이 하나 이상인데 모두 조회에 실패했을 때 반환됩니다.
var ErrAllItemsFailed = apperrors.New(apperrors.ExecutionFailed, "모든 항목의 시장 데이터 조회에 실패했습니다")

// Failure 조회에 실패한 항목입니다. Item은 변경되지 않은 원본의 복사본입니다.
type Failure struct {
	SKU     string              `json:"sku"`
	Item    *contract.PriceItem `json:"-"`
	Err     error               `json:"-"`
	Message string              `json:"message"`
}

// Result 보강 실행 결과입니다.
//
// Items에는 조회에 성공한 항목만 완료 순서대로 담깁니다.
type Result struct {
	Items       []*contract.PriceItem `json:"items"`
	Failures    []Failure             `json:"failures,omitempty"`
	Total       int                   `json:"total"`
	Fingerprint string                `json:"fingerprint"`
	FromCache   bool                  `json:"fromCache"`
	Warning     string                `json:"warning,omitempty"`
}

// Partial 일부 항목만 보강되었으면 true를 반환합니다.
func (r *Result) Partial() bool {
	return len(r.Failures) > 0 && len(r.Items) > 0
}

// SuccessCount 보강에 성공한 항목 수를 반환합니다.
func (r *Result) SuccessCount() int {
	return len(r.Items)
}

// MergedItems 보강된 항목 뒤에 실패한 항목의 원본을 이어 붙여 반환합니다.
func (r *Result) MergedItems() []*contract.PriceItem {
	merged := make([]*contract.PriceItem, 0, len(r.Items)+len(r.Failures))
	merged = append(merged, r.Items...)
	for _, f := range r.Failures {
		if f.Item != nil {
			merged = append(merged, f.Item)
		}
	}
	return merged
}
