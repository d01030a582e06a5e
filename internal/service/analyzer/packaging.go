package analyzer

import (
	"slices"
	"strings"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/strutil"
	"github.com/spf13/cast"
)

// PackagingTrendLabel 카테고리의 포장 용량 변화 방향입니다.
type PackagingTrendLabel string

const (
	TrendSmaller PackagingTrendLabel = "smaller"
	TrendLarger  PackagingTrendLabel = "larger"
	TrendStable  PackagingTrendLabel = "stable"
)

// PackagingTrend 카테고리별 포장 용량 변화 집계입니다. Confidence는 최다 득표 비율(0~1)입니다.
type PackagingTrend struct {
	Category   string              `json:"category"`
	Trend      PackagingTrendLabel `json:"trend"`
	Confidence float64             `json:"confidence"`
	Smaller    int                 `json:"smaller"`
	Larger     int                 `json:"larger"`
	Unchanged  int                 `json:"unchanged"`
}

// ParsePackSize "500ml", "1.5 kg" 같은 포장 용량 문자열에서 숫자만 추출합니다.
// 숫자가 없거나 해석할 수 없으면 false를 반환합니다.
func ParsePackSize(s string) (float64, bool) {
	digits := strings.Trim(strutil.StripNonNumeric(s), ".")
	if digits == "" {
		return 0, false
	}
	v, err := cast.ToFloat64E(digits)
	if err != nil || !isFinite(v) {
		return 0, false
	}
	return v, true
}

// AnalyzePackaging 이전/신규 포장 용량이 모두 해석 가능한 항목으로 카테고리별 추세를 계산합니다.
//
// 추세는 smaller/larger/unchanged 중 최다 득표이며, 동률이거나 unchanged가 최다이면 stable입니다.
// 비교 가능한 항목이 없는 카테고리는 결과에 포함되지 않습니다. 결과는 카테고리 이름 순입니다.
func AnalyzePackaging(items []*contract.PriceItem) []PackagingTrend {
	tallies := make(map[string]*PackagingTrend)

	for _, item := range items {
		if item == nil || item.OldPackSize == "" || item.NewPackSize == "" {
			continue
		}
		oldSize, ok1 := ParsePackSize(item.OldPackSize)
		newSize, ok2 := ParsePackSize(item.NewPackSize)
		if !ok1 || !ok2 {
			continue
		}

		c := categoryKey(item)
		t, ok := tallies[c]
		if !ok {
			t = &PackagingTrend{Category: c}
			tallies[c] = t
		}
		switch {
		case newSize < oldSize:
			t.Smaller++
		case newSize > oldSize:
			t.Larger++
		default:
			t.Unchanged++
		}
	}

	result := make([]PackagingTrend, 0, len(tallies))
	for _, t := range tallies {
		total := t.Smaller + t.Larger + t.Unchanged
		top := max(t.Smaller, t.Larger, t.Unchanged)

		switch {
		case t.Smaller == top && t.Smaller > t.Larger && t.Smaller > t.Unchanged:
			t.Trend = TrendSmaller
		case t.Larger == top && t.Larger > t.Smaller && t.Larger > t.Unchanged:
			t.Trend = TrendLarger
		default:
			t.Trend = TrendStable
		}
		t.Confidence = float64(top) / float64(total)

		result = append(result, *t)
	}

	slices.SortFunc(result, func(a, b PackagingTrend) int {
		return strings.Compare(a.Category, b.Category)
	})
	return result
}
