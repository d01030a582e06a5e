package marketdata

import (
	"strings"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/strutil"
	"github.com/spf13/cast"
)

// parsePrice "£1,299.00", "12.50 EUR" 같은 표시용 가격 문자열을 숫자로 변환합니다.
// 숫자를 찾지 못하면 false를 반환합니다.
func parsePrice(s string) (float64, bool) {
	s = strings.ReplaceAll(strutil.StripHTMLTags(s), ",", "")
	digits := strings.Trim(strutil.StripNonNumeric(s), ".")
	if digits == "" {
		return 0, false
	}

	v, err := cast.ToFloat64E(digits)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}
