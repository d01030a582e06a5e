package enrichment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errLookup = errors.New("lookup failed")

func makeItems(n int) []*contract.PriceItem {
	items := make([]*contract.PriceItem, n)
	for i := range items {
		items[i] = &contract.PriceItem{
			SKU:      fmt.Sprintf("SKU-%03d", i),
			Name:     fmt.Sprintf("상품 %d", i),
			NewPrice: contract.Float64(float64(10 + i)),
			Status:   contract.StatusNew,
		}
	}
	return items
}

func okFetcher() FetcherFunc {
	return func(_ context.Context, item *contract.PriceItem) (*contract.MarketData, error) {
		return &contract.MarketData{
			PricePosition:    contract.PositionAverage,
			CompetitorPrices: []float64{*item.NewPrice},
			AveragePrice:     *item.NewPrice,
			MinPrice:         *item.NewPrice,
			MaxPrice:         *item.NewPrice,
		}, nil
	}
}

func failingFor(skus ...string) FetcherFunc {
	fail := make(map[string]bool, len(skus))
	for _, s := range skus {
		fail[s] = true
	}
	ok := okFetcher()
	return func(ctx context.Context, item *contract.PriceItem) (*contract.MarketData, error) {
		if fail[item.SKU] {
			return nil, errLookup
		}
		return ok(ctx, item)
	}
}

func fastOptions() []Option {
	return []Option{
		WithBatchSize(4),
		WithMaxConcurrentBatches(2),
		WithItemConcurrency(3),
		WithBatchDelay(0),
	}
}

func skusOf(items []*contract.PriceItem) []string {
	skus := make([]string, 0, len(items))
	for _, item := range items {
		skus = append(skus, item.SKU)
	}
	return skus
}

func TestEnrich_AllSucceed(t *testing.T) {
	t.Parallel()

	items := makeItems(13)
	res, err := New(okFetcher(), fastOptions()...).Enrich(context.Background(), items, nil)
	require.NoError(t, err)

	assert.Equal(t, 13, res.Total)
	assert.Len(t, res.Items, 13)
	assert.Empty(t, res.Failures)
	assert.False(t, res.Partial())
	assert.Empty(t, res.Warning)
	assert.ElementsMatch(t, skusOf(items), skusOf(res.Items))
	for _, item := range res.Items {
		require.NotNil(t, item.MarketData)
		assert.Equal(t, *item.NewPrice, item.MarketData.AveragePrice)
	}
}

func TestEnrich_SingleFailureIsPartial(t *testing.T) {
	t.Parallel()

	items := makeItems(10)
	res, err := New(failingFor("SKU-004"), fastOptions()...).Enrich(context.Background(), items, nil)
	require.NoError(t, err)

	assert.Len(t, res.Items, 9)
	assert.True(t, res.Partial())
	assert.NotEmpty(t, res.Warning)
	assert.NotContains(t, skusOf(res.Items), "SKU-004")

	require.Len(t, res.Failures, 1)
	f := res.Failures[0]
	assert.Equal(t, "SKU-004", f.SKU)
	assert.ErrorIs(t, f.Err, errLookup)
	require.NotNil(t, f.Item)
	assert.Nil(t, f.Item.MarketData, "실패한 항목의 원본은 변경되지 않아야 합니다")
	assert.Len(t, res.MergedItems(), 10)
}

func TestEnrich_AllFailed(t *testing.T) {
	t.Parallel()

	fetcher := FetcherFunc(func(context.Context, *contract.PriceItem) (*contract.MarketData, error) {
		return nil, errLookup
	})

	res, err := New(fetcher, fastOptions()...).Enrich(context.Background(), makeItems(7), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAllItemsFailed)
	assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))

	require.NotNil(t, res)
	assert.Empty(t, res.Items)
	assert.Len(t, res.Failures, 7)
	assert.False(t, res.Partial())
}

func TestEnrich_EmptyInput(t *testing.T) {
	t.Parallel()

	called := false
	res, err := New(okFetcher()).Enrich(context.Background(), nil, func(int, int) { called = true })
	require.NoError(t, err)
	assert.Zero(t, res.Total)
	assert.Empty(t, res.Items)
	assert.False(t, called)
}

func TestEnrich_NilItemsAreSkipped(t *testing.T) {
	t.Parallel()

	items := append(makeItems(2), nil)
	res, err := New(okFetcher(), fastOptions()...).Enrich(context.Background(), items, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Len(t, res.Items, 2)
}

func TestEnrich_Progress(t *testing.T) {
	t.Parallel()

	const total = 23

	var (
		mu    sync.Mutex
		calls [][2]int
	)
	progress := func(completed, n int) {
		mu.Lock()
		defer mu.Unlock()
		calls = append(calls, [2]int{completed, n})
	}

	_, err := New(failingFor("SKU-001", "SKU-010"), fastOptions()...).Enrich(context.Background(), makeItems(total), progress)
	require.NoError(t, err)

	require.Len(t, calls, total)
	reachedTotal := 0
	for i, c := range calls {
		assert.Equal(t, i+1, c[0], "완료 수는 1씩 증가해야 합니다")
		assert.Equal(t, total, c[1])
		if c[0] == total {
			reachedTotal++
		}
	}
	assert.Equal(t, 1, reachedTotal)
}

func TestEnrich_ConcurrencyBound(t *testing.T) {
	t.Parallel()

	const (
		batches  = 2
		perBatch = 3
	)

	var inFlight, peak atomic.Int32
	fetcher := FetcherFunc(func(ctx context.Context, item *contract.PriceItem) (*contract.MarketData, error) {
		cur := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			old := peak.Load()
			if cur <= old || peak.CompareAndSwap(old, cur) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		return okFetcher()(ctx, item)
	})

	o := New(fetcher,
		WithBatchSize(6),
		WithMaxConcurrentBatches(batches),
		WithItemConcurrency(perBatch),
		WithBatchDelay(0),
	)
	res, err := o.Enrich(context.Background(), makeItems(30), nil)
	require.NoError(t, err)
	assert.Len(t, res.Items, 30)

	assert.LessOrEqual(t, peak.Load(), int32(batches*perBatch))
	assert.Greater(t, peak.Load(), int32(1), "조회가 병렬로 실행되어야 합니다")
}

func TestEnrich_PanicIsRecordedAsFailure(t *testing.T) {
	t.Parallel()

	fetcher := FetcherFunc(func(ctx context.Context, item *contract.PriceItem) (*contract.MarketData, error) {
		if item.SKU == "SKU-002" {
			panic("boom")
		}
		return okFetcher()(ctx, item)
	})

	res, err := New(fetcher, fastOptions()...).Enrich(context.Background(), makeItems(5), nil)
	require.NoError(t, err)
	assert.Len(t, res.Items, 4)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, "SKU-002", res.Failures[0].SKU)
	assert.True(t, apperrors.Is(res.Failures[0].Err, apperrors.Internal))
	assert.Contains(t, res.Failures[0].Message, "boom")
}

func TestEnrich_NilMarketDataIsFailure(t *testing.T) {
	t.Parallel()

	fetcher := FetcherFunc(func(context.Context, *contract.PriceItem) (*contract.MarketData, error) {
		return nil, nil
	})

	_, err := New(fetcher, fastOptions()...).Enrich(context.Background(), makeItems(2), nil)
	assert.ErrorIs(t, err, ErrAllItemsFailed)
}

func TestEnrich_CancelledBetweenRounds(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	fetcher := FetcherFunc(func(ctx context.Context, item *contract.PriceItem) (*contract.MarketData, error) {
		calls.Add(1)
		return okFetcher()(ctx, item)
	})

	// 배치 크기 2, 라운드당 배치 1개: 첫 라운드가 끝나면 취소한다.
	o := New(fetcher,
		WithBatchSize(2),
		WithMaxConcurrentBatches(1),
		WithItemConcurrency(2),
		WithBatchDelay(time.Hour),
	)

	progress := func(completed, _ int) {
		if completed == 2 {
			cancel()
		}
	}

	res, err := o.Enrich(ctx, makeItems(10), progress)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))

	assert.Equal(t, int32(2), calls.Load())
	assert.Len(t, res.Items, 2)
	assert.Equal(t, 10, res.Total)
}

func TestEnrich_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	items := makeItems(6)
	before := contract.CloneItems(items)

	fetcher := FetcherFunc(func(ctx context.Context, item *contract.PriceItem) (*contract.MarketData, error) {
		item.Name = "변경됨"
		return okFetcher()(ctx, item)
	})

	res, err := New(fetcher, fastOptions()...).Enrich(context.Background(), items, nil)
	require.NoError(t, err)
	assert.Equal(t, before, items)

	for _, item := range res.Items {
		assert.NotEqual(t, "변경됨", item.Name)
	}
}

func TestEnrich_Cache(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(4, 0)
	require.NoError(t, err)

	var calls atomic.Int32
	fetcher := FetcherFunc(func(ctx context.Context, item *contract.PriceItem) (*contract.MarketData, error) {
		calls.Add(1)
		return okFetcher()(ctx, item)
	})

	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	o := New(fetcher, append(fastOptions(), WithCache(cache), WithMetrics(metrics))...)

	items := makeItems(5)
	first, err := o.Enrich(context.Background(), items, nil)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, int32(5), calls.Load())

	var progress [][2]int
	second, err := o.Enrich(context.Background(), items, func(c, n int) { progress = append(progress, [2]int{c, n}) })
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, int32(5), calls.Load(), "캐시 적중 시 다시 조회하지 않아야 합니다")
	assert.Equal(t, [][2]int{{5, 5}}, progress)
	assert.ElementsMatch(t, skusOf(first.Items), skusOf(second.Items))

	// 가격이 바뀌면 지문이 달라져 다시 조회한다.
	items[0].NewPrice = contract.Float64(999)
	third, err := o.Enrich(context.Background(), items, nil)
	require.NoError(t, err)
	assert.False(t, third.FromCache)
	assert.Equal(t, int32(10), calls.Load())

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.CacheHits))
	assert.Equal(t, float64(10), testutil.ToFloat64(metrics.ItemsEnriched))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Runs.WithLabelValues(outcomeSuccess)))
}

func TestEnrich_PartialRunIsNotCached(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(4, 0)
	require.NoError(t, err)

	o := New(failingFor("SKU-000"), append(fastOptions(), WithCache(cache))...)
	_, err = o.Enrich(context.Background(), makeItems(3), nil)
	require.NoError(t, err)
	assert.Zero(t, cache.Len())
}

func TestEnrich_CacheHitKeepsCurrentItemFields(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(4, 0)
	require.NoError(t, err)

	var calls atomic.Int32
	fetcher := FetcherFunc(func(ctx context.Context, item *contract.PriceItem) (*contract.MarketData, error) {
		calls.Add(1)
		return okFetcher()(ctx, item)
	})
	o := New(fetcher, append(fastOptions(), WithCache(cache))...)

	increased := []*contract.PriceItem{{
		SKU: "A", Name: "첫 업로드", OldPrice: contract.Float64(10), NewPrice: contract.Float64(12),
		Difference: 2, Status: contract.StatusIncreased,
	}}
	decreased := []*contract.PriceItem{{
		SKU: "A", Name: "두 번째 업로드", OldPrice: contract.Float64(20), NewPrice: contract.Float64(12),
		Difference: -8, Status: contract.StatusDecreased,
	}}
	require.Equal(t, Fingerprint(increased), Fingerprint(decreased))

	first, err := o.Enrich(context.Background(), increased, nil)
	require.NoError(t, err)
	require.False(t, first.FromCache)

	second, err := o.Enrich(context.Background(), decreased, nil)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, int32(1), calls.Load())

	require.Len(t, second.Items, 1)
	got := second.Items[0]
	assert.Equal(t, "두 번째 업로드", got.Name)
	assert.Equal(t, float64(20), *got.OldPrice)
	assert.Equal(t, float64(-8), got.Difference)
	assert.Equal(t, contract.StatusDecreased, got.Status)
	assert.Equal(t, first.Items[0].MarketData, got.MarketData)
	assert.NotSame(t, decreased[0], got)
	assert.Nil(t, decreased[0].MarketData, "입력 항목은 변경되지 않아야 합니다")
}

func TestRefresh_BypassesCache(t *testing.T) {
	t.Parallel()

	cache, err := NewLRUCache(4, 0)
	require.NoError(t, err)

	var calls atomic.Int32
	var average atomic.Int64
	average.Store(10)
	fetcher := FetcherFunc(func(_ context.Context, _ *contract.PriceItem) (*contract.MarketData, error) {
		calls.Add(1)
		return &contract.MarketData{PricePosition: contract.PositionAverage, AveragePrice: float64(average.Load())}, nil
	})
	o := New(fetcher, append(fastOptions(), WithCache(cache))...)

	items := makeItems(3)
	_, err = o.Enrich(context.Background(), items, nil)
	require.NoError(t, err)
	require.Equal(t, int32(3), calls.Load())

	average.Store(42)
	refreshed, err := o.Refresh(context.Background(), items, nil)
	require.NoError(t, err)
	assert.False(t, refreshed.FromCache)
	assert.Equal(t, int32(6), calls.Load(), "갱신은 캐시와 관계없이 다시 조회해야 합니다")
	for _, item := range refreshed.Items {
		assert.Equal(t, float64(42), item.MarketData.AveragePrice)
	}

	// 갱신 결과로 캐시가 교체된다.
	cached, err := o.Enrich(context.Background(), items, nil)
	require.NoError(t, err)
	assert.True(t, cached.FromCache)
	assert.Equal(t, int32(6), calls.Load())
	for _, item := range cached.Items {
		assert.Equal(t, float64(42), item.MarketData.AveragePrice)
	}
}

func TestOptions_IgnoreInvalidValues(t *testing.T) {
	t.Parallel()

	o := New(okFetcher(),
		WithBatchSize(0),
		WithMaxConcurrentBatches(-1),
		WithItemConcurrency(0),
		WithBatchDelay(-time.Second),
	)
	assert.Equal(t, DefaultBatchSize, o.batchSize)
	assert.Equal(t, DefaultMaxConcurrentBatches, o.maxConcurrentBatches)
	assert.Equal(t, DefaultItemConcurrency, o.itemConcurrency)
	assert.Equal(t, DefaultBatchDelay, o.batchDelay)
}

func TestChunk(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n, size int
		want    []int
	}{
		{1, 50, []int{1}},
		{50, 50, []int{50}},
		{51, 50, []int{50, 1}},
		{10, 3, []int{3, 3, 3, 1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(fmt.Sprintf("%d/%d", tt.n, tt.size), func(t *testing.T) {
			t.Parallel()

			var got []int
			for _, b := range chunk(makeItems(tt.n), tt.size) {
				got = append(got, len(b))
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
