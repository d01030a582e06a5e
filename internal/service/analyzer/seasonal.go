package analyzer

import (
	"slices"
	"time"

	"github.com/iancoleman/strcase"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/strutil"
)

// Season 북반구 기상학적 계절입니다.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
)

// SeasonOf 월 기준으로 계절을 반환합니다. (12-2월 겨울, 3-5월 봄, 6-8월 여름, 9-11월 가을)
func SeasonOf(t time.Time) Season {
	switch t.Month() {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}

// Opposite 반대 계절을 반환합니다.
func (s Season) Opposite() Season {
	switch s {
	case SeasonWinter:
		return SeasonSummer
	case SeasonSummer:
		return SeasonWinter
	case SeasonSpring:
		return SeasonAutumn
	default:
		return SeasonSpring
	}
}

// seasonalKeywords 계절별 성수기 카테고리 키워드입니다. 파이프(|)는 OR 조건입니다.
var seasonalKeywords = map[Season]*strutil.KeywordMatcher{
	SeasonWinter: strutil.NewKeywordMatcher([]string{"christmas|holiday|gift|winter|thermal|candle|lip balm|hand cream|fragrance set|advent"}, nil),
	SeasonSpring: strutil.NewKeywordMatcher([]string{"spring|garden|allergy|hay fever|floral|cleaning|easter"}, nil),
	SeasonSummer: strutil.NewKeywordMatcher([]string{"sun|spf|swim|beach|tanning|insect|outdoor|bbq|travel"}, nil),
	SeasonAutumn: strutil.NewKeywordMatcher([]string{"autumn|halloween|back to school|cold and flu|cough|knitwear"}, nil),
}

// SeasonalInsight 현재 계절 기준 성수기/비수기 카테고리입니다.
type SeasonalInsight struct {
	Season     Season   `json:"season"`
	HighSeason []string `json:"highSeason"`
	LowSeason  []string `json:"lowSeason"`
}

// ClassifySeasons 카테고리 이름을 고정 키워드 목록과 대조해 성수기/비수기로 분류합니다.
//
// 현재 계절 키워드에 맞으면 성수기, 반대 계절 키워드에 맞으면 비수기이며,
// 양쪽 모두 맞으면 성수기로 봅니다. 어느 쪽에도 맞지 않는 카테고리는 포함되지 않습니다.
func ClassifySeasons(items []*contract.PriceItem, now time.Time) SeasonalInsight {
	season := SeasonOf(now)
	insight := SeasonalInsight{
		Season:     season,
		HighSeason: make([]string, 0),
		LowSeason:  make([]string, 0),
	}

	seen := make(map[string]struct{})
	for _, item := range items {
		if item == nil {
			continue
		}
		c := categoryKey(item)
		if c == UncategorizedCategory {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}

		// "SunCare", "after-sun", "Sun_Care"를 모두 "sun care" 형태로 맞춘다.
		normalized := strcase.ToDelimited(c, ' ')
		switch {
		case seasonalKeywords[season].Match(normalized):
			insight.HighSeason = append(insight.HighSeason, c)
		case seasonalKeywords[season.Opposite()].Match(normalized):
			insight.LowSeason = append(insight.LowSeason, c)
		}
	}

	slices.Sort(insight.HighSeason)
	slices.Sort(insight.LowSeason)
	return insight
}
