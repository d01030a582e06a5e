// Package strutil 문자열 정규화와 마스킹 유틸리티를 제공합니다.
package strutil

import (
	"html"
	"regexp"
	"strings"
	"unicode"
)

// htmlTagRegexp '<' 다음에 영문자가 오는 경우만 태그로 인식합니다. ("3 < 5"는 유지)
var htmlTagRegexp = regexp.MustCompile(`</?([a-zA-Z]+)[^>]*>`)

// NormalizeSpaces 앞뒤 공백을 제거하고 연속된 공백을 하나로 축약합니다.
// 예: "  Sun   Care " -> "Sun Care"
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitClean 구분자로 분리한 뒤 각 항목의 공백을 제거하고 빈 항목을 버립니다.
// 결과가 없으면 nil을 반환합니다.
func SplitClean(s, sep string) []string {
	var result []string
	for _, token := range strings.Split(s, sep) {
		if token = strings.TrimSpace(token); token != "" {
			result = append(result, token)
		}
	}
	return result
}

// StripNonNumeric 숫자와 소수점을 제외한 모든 문자를 제거합니다.
// 예: "500ml" -> "500", "$1,299.00" -> "1299.00", "1.5 kg" -> "1.5"
func StripNonNumeric(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' {
			return r
		}
		return -1
	}, s)
}

// Mask 로그에 남길 민감 정보를 가립니다.
//
//	"abc"             -> "***"
//	"secret123"       -> "secr***"
//	"0123456789abcdef" -> "0123***cdef"
func Mask(data string) string {
	switch {
	case data == "":
		return ""
	case len(data) <= 3:
		return "***"
	case len(data) <= 12:
		return data[:4] + "***"
	default:
		return data[:4] + "***" + data[len(data)-4:]
	}
}

// StripHTMLTags HTML 태그를 제거하고 엔티티를 디코딩한 텍스트를 반환합니다.
// 예: "<b>$12.99</b> &amp; up" -> "$12.99 & up"
func StripHTMLTags(s string) string {
	return html.UnescapeString(htmlTagRegexp.ReplaceAllString(s, ""))
}
