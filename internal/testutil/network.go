// Package testutil 여러 패키지의 테스트가 공유하는 헬퍼를 제공합니다.
package testutil

import (
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// FreePort 테스트용으로 사용 가능한 임의의 TCP 포트를 반환합니다.
func FreePort(t testing.TB) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err, "사용 가능한 포트를 찾지 못했습니다")
	defer l.Close()

	return l.Addr().(*net.TCPAddr).Port
}

// WaitForServer 서버가 port에서 연결을 받을 때까지 최대 timeout 동안 기다립니다.
func WaitForServer(port int, timeout time.Duration) error {
	address := fmt.Sprintf("127.0.0.1:%d", port)
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		conn, err := net.DialTimeout("tcp", address, 100*time.Millisecond)
		if err == nil {
			return conn.Close()
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("%v 안에 %s 서버가 시작되지 않았습니다", timeout, address)
}
