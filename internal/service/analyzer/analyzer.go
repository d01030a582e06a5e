// Package analyzer 분류된 가격 항목 전체에 대한 공급사 간 시장 지표를 계산합니다.
//
// 모든 함수는 상태가 없는 순수 함수입니다. 입력 항목을 수정하지 않으며,
// 빈 그룹이나 분산이 0인 그룹 같은 퇴화 입력에 대해서도 패닉이나 NaN 없이
// 값이 없는(absent) 결과를 반환합니다.
package analyzer

import (
	"strings"
	"time"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/strutil"
	"golang.org/x/text/unicode/norm"
)

// UncategorizedCategory 카테고리가 비어 있는 항목이 묶이는 그룹 이름입니다.
const UncategorizedCategory = "Uncategorized"

const (
	defaultMinCorrelationOverlap = 2
	defaultMinCompetingSuppliers = 2
)

// Options 분석 파라미터입니다. 0 이하의 값은 기본값으로 대체됩니다.
type Options struct {
	MinCorrelationOverlap int
	MinCompetingSuppliers int
}

// Report Analyze가 반환하는 전체 분석 결과입니다.
type Report struct {
	GeneratedAt           time.Time             `json:"generatedAt"`
	Summary               AnalysisSummary       `json:"summary"`
	Volatility            Volatility            `json:"volatility"`
	PricingPatterns       PricingPatterns       `json:"pricingPatterns"`
	CorrelatedSuppliers   []SupplierCorrelation `json:"correlatedSuppliers"`
	CompetitiveCategories []CompetitiveCategory `json:"competitiveCategories"`
	PackagingTrends       []PackagingTrend      `json:"packagingTrends"`
	Seasonal              SeasonalInsight       `json:"seasonal"`
	CrossSupplierTrends   CrossSupplierTrends   `json:"crossSupplierTrends"`
}

// Analyze 모든 지표를 한 번에 계산합니다. now는 계절 판정에만 사용됩니다.
func Analyze(items []*contract.PriceItem, opts Options, now time.Time) *Report {
	return &Report{
		GeneratedAt:           now,
		Summary:               Summarize(items),
		Volatility:            AnalyzeVolatility(items),
		PricingPatterns:       DetectPricingPatterns(items),
		CorrelatedSuppliers:   IdentifyCorrelatedSuppliers(items, opts.MinCorrelationOverlap),
		CompetitiveCategories: IdentifyCompetitiveCategories(items, opts.MinCompetingSuppliers),
		PackagingTrends:       AnalyzePackaging(items),
		Seasonal:              ClassifySeasons(items, now),
		CrossSupplierTrends:   BuildCrossSupplierTrends(items),
	}
}

// categoryKey 그룹핑에 사용할 카테고리 이름을 반환합니다. 공백을 정리하고 NFC로 정규화합니다.
func categoryKey(item *contract.PriceItem) string {
	c := norm.NFC.String(strutil.NormalizeSpaces(item.Category))
	if c == "" {
		return UncategorizedCategory
	}
	return c
}

// supplierKey 비어 있으면 ""를 반환하며, 호출 측은 해당 항목을 공급사 집계에서 제외합니다.
func supplierKey(item *contract.PriceItem) string {
	return norm.NFC.String(strings.TrimSpace(item.Supplier))
}

// percentChangeOf 양쪽 가격과 변동률이 모두 있는 항목의 변동률을 반환합니다.
func percentChangeOf(item *contract.PriceItem) (float64, bool) {
	if item == nil || !item.HasBothPrices() || item.PercentChange == nil {
		return 0, false
	}
	return *item.PercentChange, true
}
