// Package classifier 이전/신규 가격표를 SKU로 짝지어 항목별 상태와 변동 수치를 계산합니다.
package classifier

import (
	"fmt"
	"math"
	"strings"

	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

const component = "classifier"

// Side 레코드가 속한 가격표입니다.
type Side string

const (
	SideOld Side = "old"
	SideNew Side = "new"
)

// 거부 사유
const (
	ReasonMissingSKU          = "missing_sku"
	ReasonInvalidPrice        = "invalid_price"
	ReasonDuplicateSKU        = "duplicate_sku"
	ReasonCounterpartRejected = "counterpart_rejected"
)

// RejectedRecord 분류에서 제외된 입력 행입니다. Index는 해당 가격표 안에서의 0 기반 위치입니다.
type RejectedRecord struct {
	Side   Side   `json:"side"`
	Index  int    `json:"index"`
	SKU    string `json:"sku"`
	Reason string `json:"reason"`
}

// Result 분류 결과입니다.
//
// Items는 이전 가격표 순서(matched, discontinued) 뒤에 신규 가격표에만 있는 항목 순서로 정렬됩니다.
type Result struct {
	Items    []*contract.PriceItem `json:"items"`
	Rejected []RejectedRecord      `json:"rejected,omitempty"`
}

// Err 거부된 행이 있으면 InvalidInput 에러를 반환합니다. 나머지 항목은 정상적으로 분류된 상태입니다.
func (r *Result) Err() error {
	if len(r.Rejected) == 0 {
		return nil
	}

	return apperrors.Newf(apperrors.InvalidInput, "%d개 행이 분류에서 제외되었습니다 (첫 번째: %s)", len(r.Rejected), r.Rejected[0])
}

// Options Classifier 설정입니다.
type Options struct {
	// AnomalyThresholdPercent 변동률 절대값이 이 값을 초과하면 anomaly로 분류합니다. 0 이하이면 기본값을 사용합니다.
	AnomalyThresholdPercent float64
}

// Classifier 상태를 가지지 않으며 여러 고루틴에서 동시에 사용할 수 있습니다.
type Classifier struct {
	threshold float64
}

// New Classifier를 생성합니다.
func New(opts Options) *Classifier {
	threshold := opts.AnomalyThresholdPercent
	if threshold <= 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		threshold = DefaultAnomalyThresholdPercent
	}
	return &Classifier{threshold: threshold}
}

// Threshold 적용 중인 이상 변동 임계값을 반환합니다.
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

// Classify 두 가격표를 비교합니다.
//
// SKU가 비었거나 가격이 음수/NaN/Inf인 행, 한쪽 가격표 안에서 SKU가 중복된 행은 거부됩니다.
// 어떤 SKU의 행이 하나라도 거부되면 그 SKU의 반대편 행도 함께 제외되어
// 잘못된 new/discontinued 판정이 만들어지지 않습니다. 나머지 행은 정상적으로 분류됩니다.
func (c *Classifier) Classify(oldRecords, newRecords []contract.Record) *Result {
	result := &Result{}

	oldOK := c.screen(SideOld, oldRecords, result)
	newOK := c.screen(SideNew, newRecords, result)

	// 한쪽에서 거부된 SKU는 반대편에서도 제외한다.
	blocked := make(map[string]struct{})
	for _, r := range result.Rejected {
		if r.SKU != "" {
			blocked[r.SKU] = struct{}{}
		}
	}
	oldOK = c.exclude(SideOld, oldRecords, oldOK, blocked, result)
	newOK = c.exclude(SideNew, newRecords, newOK, blocked, result)

	newBySKU := make(map[string]*contract.Record, len(newOK))
	for _, idx := range newOK {
		newBySKU[newRecords[idx].SKU] = &newRecords[idx]
	}
	oldSKUs := make(map[string]struct{}, len(oldOK))

	result.Items = make([]*contract.PriceItem, 0, len(oldOK)+len(newOK))
	for _, idx := range oldOK {
		o := &oldRecords[idx]
		oldSKUs[o.SKU] = struct{}{}

		if n, ok := newBySKU[o.SKU]; ok {
			result.Items = append(result.Items, c.matched(o, n))
		} else {
			result.Items = append(result.Items, c.discontinued(o))
		}
	}
	for _, idx := range newOK {
		n := &newRecords[idx]
		if _, ok := oldSKUs[n.SKU]; !ok {
			result.Items = append(result.Items, c.added(n))
		}
	}

	if len(result.Rejected) > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"old_records": len(oldRecords),
			"new_records": len(newRecords),
			"items":       len(result.Items),
			"rejected":    len(result.Rejected),
		}).Warn("일부 행이 검증에 실패하여 분류에서 제외되었습니다")
	}

	return result
}

// screen 행 단위 검증과 중복 검사를 수행하고 통과한 행의 인덱스를 반환합니다.
func (c *Classifier) screen(side Side, records []contract.Record, result *Result) []int {
	counts := make(map[string]int, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.SKU) != "" {
			counts[r.SKU]++
		}
	}

	ok := make([]int, 0, len(records))
	for i, r := range records {
		var reason string
		switch {
		case strings.TrimSpace(r.SKU) == "":
			reason = ReasonMissingSKU
		case counts[r.SKU] > 1:
			reason = ReasonDuplicateSKU
		case r.Price < 0 || math.IsNaN(r.Price) || math.IsInf(r.Price, 0):
			reason = ReasonInvalidPrice
		}

		if reason != "" {
			result.Rejected = append(result.Rejected, RejectedRecord{Side: side, Index: i, SKU: r.SKU, Reason: reason})
			continue
		}
		ok = append(ok, i)
	}
	return ok
}

func (c *Classifier) exclude(side Side, records []contract.Record, ok []int, blocked map[string]struct{}, result *Result) []int {
	if len(blocked) == 0 {
		return ok
	}

	kept := ok[:0]
	for _, i := range ok {
		if _, b := blocked[records[i].SKU]; b {
			result.Rejected = append(result.Rejected, RejectedRecord{Side: side, Index: i, SKU: records[i].SKU, Reason: ReasonCounterpartRejected})
			continue
		}
		kept = append(kept, i)
	}
	return kept
}

func (c *Classifier) matched(o, n *contract.Record) *contract.PriceItem {
	oldPrice, newPrice := o.Price, n.Price

	item := &contract.PriceItem{
		SKU:            n.SKU,
		Name:           firstNonEmpty(n.Name, o.Name),
		Category:       firstNonEmpty(n.Category, o.Category),
		Supplier:       firstNonEmpty(n.Vendor, o.Vendor),
		OldPackSize:    o.PackSize,
		NewPackSize:    n.PackSize,
		OldPrice:       &oldPrice,
		NewPrice:       &newPrice,
		Difference:     Difference(oldPrice, newPrice),
		PercentChange:  PercentChange(oldPrice, newPrice),
		InventoryLevel: firstInventory(n.InventoryLevel, o.InventoryLevel),
	}
	item.Status = DeriveStatus(item.OldPrice, item.NewPrice, c.threshold)
	item.RecomputeImpact()

	return item
}

func (c *Classifier) discontinued(o *contract.Record) *contract.PriceItem {
	oldPrice := o.Price
	return &contract.PriceItem{
		SKU:            o.SKU,
		Name:           o.Name,
		Category:       o.Category,
		Supplier:       o.Vendor,
		OldPackSize:    o.PackSize,
		OldPrice:       &oldPrice,
		Status:         DeriveStatus(&oldPrice, nil, c.threshold),
		InventoryLevel: firstInventory(o.InventoryLevel),
	}
}

func (c *Classifier) added(n *contract.Record) *contract.PriceItem {
	newPrice := n.Price
	return &contract.PriceItem{
		SKU:            n.SKU,
		Name:           n.Name,
		Category:       n.Category,
		Supplier:       n.Vendor,
		NewPackSize:    n.PackSize,
		NewPrice:       &newPrice,
		Status:         DeriveStatus(nil, &newPrice, c.threshold),
		InventoryLevel: firstInventory(n.InventoryLevel),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func firstInventory(levels ...*int) *int {
	for _, l := range levels {
		if l != nil {
			v := *l
			return &v
		}
	}
	return nil
}

// String 디버깅용 요약입니다.
func (r RejectedRecord) String() string {
	return fmt.Sprintf("%s[%d] sku=%q reason=%s", r.Side, r.Index, r.SKU, r.Reason)
}
