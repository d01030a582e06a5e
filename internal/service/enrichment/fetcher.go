package enrichment

import (
	"context"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
)

// Fetcher 항목 하나의 시장 데이터를 조회합니다.
//
// 구현체는 항목별 타임아웃을 스스로 적용해야 합니다. 오케스트레이터는 타임아웃을 두지 않고
// 반환된 에러를 해당 항목의 실패로만 기록합니다. 전달되는 item은 복사본입니다.
type Fetcher interface {
	Fetch(ctx context.Context, item *contract.PriceItem) (*contract.MarketData, error)
}

// FetcherFunc 함수를 Fetcher로 사용하기 위한 어댑터입니다.
type FetcherFunc func(ctx context.Context, item *contract.PriceItem) (*contract.MarketData, error)

func (f FetcherFunc) Fetch(ctx context.Context, item *contract.PriceItem) (*contract.MarketData, error) {
	return f(ctx, item)
}

// ProgressFunc 항목 하나가 끝날 때마다(성공/실패 무관) 호출됩니다.
// completed는 1씩 증가하며 total에 정확히 한 번 도달합니다. 호출은 직렬화되어 있습니다.
type ProgressFunc func(completed, total int)
