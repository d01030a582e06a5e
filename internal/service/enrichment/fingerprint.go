package enrichment

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
)

// Fingerprint 항목 집합의 (SKU, 신규 가격) 내용을 요약한 16자리 16진수 해시입니다.
// 항목 순서와 무관하며 가격이 바뀌거나 항목이 추가/삭제되면 값이 달라집니다.
func Fingerprint(items []*contract.PriceItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		price := "-"
		if item.NewPrice != nil {
			price = strconv.FormatFloat(*item.NewPrice, 'f', -1, 64)
		}
		lines = append(lines, item.SKU+"|"+price)
	}
	slices.Sort(lines)

	d := xxhash.New()
	for _, line := range lines {
		_, _ = d.WriteString(line)
		_, _ = d.WriteString("\n")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
