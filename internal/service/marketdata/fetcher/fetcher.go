// Package fetcher 시장 데이터 조회에 사용하는 HTTP 클라이언트 체인을 제공합니다.
//
// HTTPFetcher를 기본으로 RetryFetcher, RateLimitFetcher, LoggingFetcher를 데코레이터로
// 조합합니다. 모든 구현체는 Fetcher 인터페이스를 따릅니다.
package fetcher

import (
	"context"
	"io"
	"net/http"
	"sync"
)

const component = "marketdata.fetcher"

// Fetcher HTTP 요청을 수행하는 인터페이스입니다.
//
// 반환된 응답의 Body는 호출자가 닫아야 합니다.
type Fetcher interface {
	Do(req *http.Request) (*http.Response, error)
}

// Get ctx를 사용해 url로 GET 요청을 보냅니다.
func Get(ctx context.Context, f Fetcher, url string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := f.Do(req)
	if err != nil {
		if resp != nil {
			drainAndCloseBody(resp.Body)
		}
		return nil, err
	}

	return resp, nil
}

// maxDrainBytes 커넥션 재사용을 위해 버릴 응답 본문의 최대 크기
const maxDrainBytes = 64 * 1024

var drainBufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 32*1024)
		return &b
	},
}

// drainAndCloseBody 커넥션 재사용을 위해 본문을 일정량 읽어 버린 뒤 닫습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	bufPtr := drainBufPool.Get().(*[]byte)
	defer drainBufPool.Put(bufPtr)

	_, _ = io.CopyBuffer(io.Discard, io.LimitReader(body, maxDrainBytes), *bufPtr)
}
