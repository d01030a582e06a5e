package strutil

import (
	"strings"
)

// KeywordMatcher 미리 전처리한 키워드 조건으로 문자열을 검사합니다.
//
// 포함 키워드는 항목 간 AND, 항목 내부의 파이프(|)는 OR 조건입니다.
// 제외 키워드는 하나라도 포함되면 불일치입니다. 비교는 대소문자를 구분하지 않습니다.
//
//	m := NewKeywordMatcher([]string{"sun|swim|beach"}, []string{"winter"})
//	m.Match("Beach Towels")       // true
//	m.Match("Winter Swim Caps")   // false
type KeywordMatcher struct {
	includedGroups [][]string
	excluded       []string
}

// NewKeywordMatcher 포함/제외 키워드로 KeywordMatcher를 생성합니다.
func NewKeywordMatcher(included, excluded []string) *KeywordMatcher {
	m := &KeywordMatcher{
		includedGroups: make([][]string, 0, len(included)),
		excluded:       make([]string, 0, len(excluded)),
	}

	for _, k := range excluded {
		if k = strings.TrimSpace(k); k != "" {
			m.excluded = append(m.excluded, strings.ToLower(k))
		}
	}

	for _, k := range included {
		group := SplitClean(k, "|")
		if len(group) == 0 {
			continue
		}
		for i, v := range group {
			group[i] = strings.ToLower(v)
		}
		m.includedGroups = append(m.includedGroups, group)
	}

	return m
}

// Empty 포함 조건이 하나도 없으면 true를 반환합니다.
func (m *KeywordMatcher) Empty() bool {
	return len(m.includedGroups) == 0
}

// Match s가 제외 키워드를 포함하지 않고 모든 포함 그룹을 만족하면 true를 반환합니다.
func (m *KeywordMatcher) Match(s string) bool {
	for _, k := range m.excluded {
		if containsFold(s, k) {
			return false
		}
	}

	for _, group := range m.includedGroups {
		matched := false
		for _, k := range group {
			if containsFold(s, k) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// containsFold 할당 없이 대소문자 무시 부분 문자열 검사를 수행합니다.
// 대소문자 변환 시 바이트 길이가 변하지 않는 문자셋을 전제로 합니다.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	for i := range s {
		if i+len(substr) > len(s) {
			break
		}
		if strings.EqualFold(s[i:i+len(substr)], substr) {
			return true
		}
	}
	return false
}
