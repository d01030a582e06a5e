package fetcher

import (
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/strutil"
)

var (
	// sensitiveExactKeys 전체가 일치해야 마스킹하는 쿼리 파라미터 이름
	sensitiveExactKeys = []string{
		"token", "auth", "key", "secret", "pass", "password", "signature",
		"access_token", "api_key", "apikey", "client_secret", "refresh_token",
	}

	// sensitiveSuffixes 이 접미사로 끝나면 마스킹하는 쿼리 파라미터 이름
	sensitiveSuffixes = []string{"_token", "_secret", "_key", "_password"}

	sensitiveHeaders = []string{"Authorization", "Proxy-Authorization", "Cookie", "Set-Cookie", "X-Api-Key"}
)

// redactHeaders 민감한 헤더 값을 가린 복사본을 반환합니다.
func redactHeaders(h http.Header) http.Header {
	if h == nil {
		return nil
	}

	masked := h.Clone()
	for _, key := range sensitiveHeaders {
		if masked.Get(key) != "" {
			masked.Set(key, "***")
		}
	}
	return masked
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	if slices.Contains(sensitiveExactKeys, key) {
		return true
	}
	for _, suffix := range sensitiveSuffixes {
		if strings.HasSuffix(key, suffix) {
			return true
		}
	}
	return false
}

// redactURL 사용자 정보와 민감한 쿼리 파라미터 값을 가린 URL 문자열을 반환합니다.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	c := *u
	if c.User != nil {
		if _, hasPassword := c.User.Password(); hasPassword {
			c.User = url.UserPassword(c.User.Username(), "xxxxx")
		}
	}

	if c.RawQuery != "" {
		q := c.Query()
		changed := false
		for key, values := range q {
			if !isSensitiveKey(key) {
				continue
			}
			for i, v := range values {
				values[i] = strutil.Mask(v)
			}
			changed = true
		}
		if changed {
			c.RawQuery = q.Encode()
		}
	}

	return c.String()
}

func redactRawURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return redactURL(u)
}
