// Package validation 설정 값 검증에 사용하는 네트워크/파일 관련 검사 함수를 제공합니다.
package validation

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ValidateCORSOrigin origin이 'Scheme://Host[:Port]' 형식인지 검사합니다. '*'는 허용합니다.
// 경로, 쿼리, 프래그먼트, 사용자 정보, 후행 슬래시가 있으면 거부합니다.
func ValidateCORSOrigin(origin string) error {
	origin = strings.TrimSpace(origin)
	switch {
	case origin == "*":
		return nil
	case origin == "":
		return fmt.Errorf("CORS Origin은 비어 있을 수 없습니다")
	case strings.HasSuffix(origin, "/"):
		return fmt.Errorf("CORS Origin은 '/'로 끝날 수 없습니다 (origin=%q)", origin)
	}

	u, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("CORS Origin 파싱 실패 (origin=%q): %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CORS Origin은 http 또는 https 스키마만 허용됩니다 (origin=%q)", origin)
	}
	if u.Path != "" || u.RawQuery != "" || u.Fragment != "" || u.User != nil {
		return fmt.Errorf("CORS Origin에는 경로, 쿼리, 프래그먼트, 사용자 정보를 포함할 수 없습니다 (origin=%q)", origin)
	}

	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("CORS Origin 포트가 숫자가 아닙니다 (origin=%q)", origin)
		}
		if err := ValidatePort(port); err != nil {
			return err
		}
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("CORS Origin에 호스트가 없습니다 (origin=%q)", origin)
	}
	return ValidateHostname(host)
}

// ValidatePort 포트가 1-65535 범위인지 검사합니다.
func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("포트는 1-65535 범위여야 합니다 (port=%d)", port)
	}
	return nil
}

// ValidateHostname localhost, IP 주소, RFC 1123 호스트명을 허용합니다.
func ValidateHostname(host string) error {
	if host == "localhost" || net.ParseIP(host) != nil {
		return nil
	}
	if len(host) > 253 {
		return fmt.Errorf("호스트명은 253자를 넘을 수 없습니다 (len=%d)", len(host))
	}

	labels := strings.Split(host, ".")
	for _, label := range labels {
		if len(label) == 0 || len(label) > 63 {
			return fmt.Errorf("호스트명 레이블 길이가 올바르지 않습니다 (host=%q)", host)
		}
		if label[0] == '-' || label[len(label)-1] == '-' {
			return fmt.Errorf("레이블은 하이픈으로 시작하거나 끝날 수 없습니다 (label=%q)", label)
		}
		for _, r := range label {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-') {
				return fmt.Errorf("호스트명에 허용되지 않는 문자가 있습니다 (char=%q, host=%q)", r, host)
			}
		}
	}

	// TLD는 숫자로만 구성될 수 없다.
	if _, err := strconv.Atoi(labels[len(labels)-1]); err == nil {
		return fmt.Errorf("최상위 도메인은 숫자로만 구성될 수 없습니다 (host=%q)", host)
	}

	return nil
}

// ValidateFile path가 읽을 수 있는 일반 파일인지 검사합니다.
func ValidateFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("파일 경로가 비어 있습니다")
	}
	path = filepath.Clean(path)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("파일이 존재하지 않습니다 (path=%q)", path)
		}
		return fmt.Errorf("파일 정보를 확인할 수 없습니다 (path=%q): %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("일반 파일이 아닙니다 (path=%q, mode=%s)", path, info.Mode())
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("파일을 읽을 수 없습니다 (path=%q): %w", path, err)
	}
	return f.Close()
}
