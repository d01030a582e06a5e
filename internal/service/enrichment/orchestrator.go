package enrichment

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
	"golang.org/x/sync/errgroup"
)

const component = "enrichment"

// Orchestrator 항목별 시장 데이터 조회를 배치 단위로 병렬 실행합니다.
//
// 동시성은 두 단계로 제한됩니다. 한 라운드에서 최대 maxConcurrentBatches개의 배치가
// 동시에 실행되고, 각 배치 안에서는 최대 itemConcurrency개의 조회가 진행됩니다.
// 취소 여부는 라운드 사이에서만 확인하며, 이미 시작된 라운드는 끝까지 실행됩니다.
type Orchestrator struct {
	fetcher Fetcher

	batchSize            int
	maxConcurrentBatches int
	itemConcurrency      int
	batchDelay           time.Duration

	cache   Cache
	metrics *Metrics
}

// New Orchestrator를 생성합니다.
func New(fetcher Fetcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fetcher:              fetcher,
		batchSize:            DefaultBatchSize,
		maxConcurrentBatches: DefaultMaxConcurrentBatches,
		itemConcurrency:      DefaultItemConcurrency,
		batchDelay:           DefaultBatchDelay,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// run 실행 한 번의 누적 상태입니다. 조회가 완전히 끝난 항목만 settle을 통해 반영됩니다.
type run struct {
	mu        sync.Mutex
	result    *Result
	completed int
	progress  ProgressFunc
	metrics   *Metrics
}

func (r *run) settle(item *contract.PriceItem, md *contract.MarketData, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.result.Failures = append(r.result.Failures, Failure{
			SKU:     item.SKU,
			Item:    item.Clone(),
			Err:     err,
			Message: err.Error(),
		})

		applog.WithComponentAndFields(component, applog.Fields{
			"sku":   item.SKU,
			"error": err,
		}).Warn("시장 데이터 조회 실패: 해당 항목은 보강 결과에서 제외됩니다")
	} else {
		enriched := item.Clone()
		enriched.MarketData = md.Clone()
		r.result.Items = append(r.result.Items, enriched)
	}
	r.metrics.observeItem(err == nil)

	r.completed++
	if r.progress != nil {
		r.progress(r.completed, r.result.Total)
	}
}

// Enrich items 각각에 시장 데이터를 붙인 복사본을 반환합니다. items는 변경되지 않습니다.
//
// 일부 항목이 실패하면 Result.Partial()이 true이고 에러는 nil입니다.
// 모든 항목이 실패하면 ErrAllItemsFailed를 감싼 에러를 결과와 함께 반환합니다.
// ctx가 취소되면 그때까지의 결과와 취소 에러를 반환합니다.
func (o *Orchestrator) Enrich(ctx context.Context, items []*contract.PriceItem, progress ProgressFunc) (*Result, error) {
	return o.enrich(ctx, items, progress, true)
}

// Refresh Enrich와 같지만 캐시를 조회하지 않고 항상 시장 데이터를 다시 가져옵니다.
// 모두 성공하면 새 결과로 캐시를 갱신합니다.
func (o *Orchestrator) Refresh(ctx context.Context, items []*contract.PriceItem, progress ProgressFunc) (*Result, error) {
	return o.enrich(ctx, items, progress, false)
}

func (o *Orchestrator) enrich(ctx context.Context, items []*contract.PriceItem, progress ProgressFunc, useCache bool) (*Result, error) {
	startedAt := time.Now()

	targets := make([]*contract.PriceItem, 0, len(items))
	for _, item := range items {
		if item != nil {
			targets = append(targets, item)
		}
	}

	result := &Result{
		Items:       make([]*contract.PriceItem, 0, len(targets)),
		Total:       len(targets),
		Fingerprint: Fingerprint(targets),
	}
	if result.Total == 0 {
		return result, nil
	}

	if o.cache != nil && useCache {
		if enriched, ok := o.fromCache(result.Fingerprint, targets); ok {
			result.Items = enriched
			result.FromCache = true
			if progress != nil {
				progress(result.Total, result.Total)
			}
			o.metrics.observeRun(outcomeCached, time.Since(startedAt))

			applog.WithComponentAndFields(component, applog.Fields{
				"fingerprint": result.Fingerprint,
				"total":       result.Total,
			}).Debug("지문이 동일하여 캐시된 보강 결과를 사용합니다")

			return result, nil
		}
	}

	pool, err := ants.NewPool(o.maxConcurrentBatches * o.itemConcurrency)
	if err != nil {
		return result, apperrors.Wrap(err, apperrors.Internal, "보강 작업 풀을 생성할 수 없습니다")
	}
	defer func() { _ = pool.ReleaseTimeout(time.Second) }()

	r := &run{result: result, progress: progress, metrics: o.metrics}

	batches := chunk(targets, o.batchSize)

	applog.WithComponentAndFields(component, applog.Fields{
		"total":                  result.Total,
		"batches":                len(batches),
		"max_concurrent_batches": o.maxConcurrentBatches,
		"item_concurrency":       o.itemConcurrency,
		"fingerprint":            result.Fingerprint,
	}).Info("시장 데이터 보강을 시작합니다")

	for start := 0; start < len(batches); start += o.maxConcurrentBatches {
		if start > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(o.batchDelay):
			}
		}
		if err := ctx.Err(); err != nil {
			return o.finish(result, startedAt, apperrors.Wrapf(err, apperrors.ExecutionFailed, "시장 데이터 보강이 취소되었습니다 (완료 %d/%d)", r.completedCount(), result.Total))
		}

		end := min(start+o.maxConcurrentBatches, len(batches))

		var g errgroup.Group
		for _, batch := range batches[start:end] {
			batch := batch
			g.Go(func() error {
				o.runBatch(ctx, pool, r, batch)
				return nil
			})
		}
		_ = g.Wait()
	}

	switch {
	case ctx.Err() != nil && len(result.Failures) > 0:
		return o.finish(result, startedAt, apperrors.Wrap(ctx.Err(), apperrors.ExecutionFailed, "시장 데이터 보강이 취소되었습니다"))

	case len(result.Failures) == result.Total:
		return o.finish(result, startedAt, apperrors.Wrapf(ErrAllItemsFailed, apperrors.ExecutionFailed, "%d개 항목 보강 실패", result.Total))

	case len(result.Failures) > 0:
		result.Warning = fmt.Sprintf("%d개 중 %d개 항목의 시장 데이터를 가져오지 못했습니다", result.Total, len(result.Failures))

	default:
		if o.cache != nil {
			marketData := make(map[string]*contract.MarketData, len(result.Items))
			for _, item := range result.Items {
				marketData[item.SKU] = item.MarketData
			}
			o.cache.Add(result.Fingerprint, marketData)
		}
	}

	return o.finish(result, startedAt, nil)
}

// fromCache 캐시된 SKU별 시장 데이터를 현재 항목의 복사본에 붙입니다.
// 지문은 SKU와 신규 가격만 반영하므로 기존 가격, 상태 등은 항상 현재 항목의 값을 사용합니다.
// 캐시에 없는 SKU가 하나라도 있으면 적중으로 보지 않습니다.
func (o *Orchestrator) fromCache(fingerprint string, targets []*contract.PriceItem) ([]*contract.PriceItem, bool) {
	cached, ok := o.cache.Get(fingerprint)
	if !ok {
		return nil, false
	}

	enriched := make([]*contract.PriceItem, 0, len(targets))
	for _, item := range targets {
		md, ok := cached[item.SKU]
		if !ok || md == nil {
			return nil, false
		}
		c := item.Clone()
		c.MarketData = md.Clone()
		enriched = append(enriched, c)
	}
	return enriched, true
}

func (o *Orchestrator) finish(result *Result, startedAt time.Time, err error) (*Result, error) {
	elapsed := time.Since(startedAt)

	outcome := outcomeSuccess
	switch {
	case errors.Is(err, ErrAllItemsFailed):
		outcome = outcomeFailed
	case err != nil:
		outcome = outcomeCancelled
	case result.Partial():
		outcome = outcomePartial
	}
	o.metrics.observeRun(outcome, elapsed)

	fields := applog.Fields{
		"total":     result.Total,
		"succeeded": len(result.Items),
		"failed":    len(result.Failures),
		"outcome":   outcome,
		"elapsed":   elapsed.String(),
	}
	switch outcome {
	case outcomeSuccess:
		applog.WithComponentAndFields(component, fields).Info("시장 데이터 보강 완료")
	case outcomePartial:
		applog.WithComponentAndFields(component, fields).Warn(result.Warning)
	default:
		fields["error"] = err
		applog.WithComponentAndFields(component, fields).Error("시장 데이터 보강 실패")
	}

	return result, err
}

// runBatch 배치 하나를 itemConcurrency 제한 안에서 실행하고 모든 항목이 끝날 때까지 기다립니다.
func (o *Orchestrator) runBatch(ctx context.Context, pool *ants.Pool, r *run, batch []*contract.PriceItem) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, o.itemConcurrency)

	for _, item := range batch {
		item := item

		sem <- struct{}{}
		wg.Add(1)

		err := pool.Submit(func() {
			defer wg.Done()
			defer func() { <-sem }()

			md, err := o.fetchOne(ctx, item)
			r.settle(item, md, err)
		})
		if err != nil {
			wg.Done()
			<-sem
			r.settle(item, nil, apperrors.Wrap(err, apperrors.Internal, "보강 작업을 제출할 수 없습니다"))
		}
	}

	wg.Wait()
}

// fetchOne 조회 중 발생한 panic을 에러로 변환합니다.
func (o *Orchestrator) fetchOne(ctx context.Context, item *contract.PriceItem) (md *contract.MarketData, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			md = nil
			err = apperrors.Newf(apperrors.Internal, "시장 데이터 조회 중 panic 발생 (sku=%s): %v", item.SKU, rec)
		}
	}()

	md, err = o.fetcher.Fetch(ctx, item.Clone())
	if err != nil {
		return nil, err
	}
	if md == nil {
		return nil, apperrors.Newf(apperrors.ExecutionFailed, "시장 데이터가 비어 있습니다 (sku=%s)", item.SKU)
	}
	return md, nil
}

func (r *run) completedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.completed
}

func chunk(items []*contract.PriceItem, size int) [][]*contract.PriceItem {
	batches := make([][]*contract.PriceItem, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		batches = append(batches, items[start:min(start+size, len(items))])
	}
	return batches
}
