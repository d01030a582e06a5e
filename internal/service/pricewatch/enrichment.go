package pricewatch

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/enrichment"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/session"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

// enrichmentRun 진행 중인 보강 실행 하나입니다.
type enrichmentRun struct {
	cancel context.CancelFunc
}

// StartEnrichment 세션 항목의 시장 데이터 보강을 백그라운드에서 시작하고 시작 시점의 상태를 반환합니다.
//
// 같은 세션의 보강이 이미 진행 중이면 Conflict 에러를 반환합니다.
// 진행률과 결과는 EnrichmentStatus로 조회합니다.
func (s *Service) StartEnrichment(id string) (*session.EnrichmentStatus, error) {
	return s.startEnrichment(id, false)
}

// startEnrichment refresh가 true이면 캐시를 건너뛰고 시장 데이터를 다시 가져옵니다.
func (s *Service) startEnrichment(id string, refresh bool) (*session.EnrichmentStatus, error) {
	if s.orchestrator == nil {
		return nil, ErrMarketDataDisabled
	}

	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return nil, ErrServiceNotRunning
	}

	var items []*contract.PriceItem
	var status session.EnrichmentStatus
	err := s.store.Update(id, func(sess *session.Session) error {
		if sess.Enrichment.State == session.EnrichmentRunning {
			return apperrors.Newf(apperrors.Conflict, "이미 보강이 진행 중인 세션입니다 (id=%s)", id)
		}
		if len(sess.Items) == 0 {
			return apperrors.Newf(apperrors.InvalidInput, "보강할 항목이 없습니다 (id=%s)", id)
		}

		startedAt := s.now()
		sess.Enrichment = session.EnrichmentStatus{
			State:     session.EnrichmentRunning,
			Total:     len(sess.Items),
			StartedAt: &startedAt,
		}
		items = contract.CloneItems(sess.Items)
		status = sess.Enrichment
		return nil
	})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(s.runCtx)
	run := &enrichmentRun{cancel: cancel}
	s.runsByID[id] = run
	s.runs.Add(1)

	go func() {
		defer s.runs.Done()
		defer func() {
			s.runningMu.Lock()
			// 결과 반영 직후 같은 세션의 새 보강이 등록되었을 수 있다.
			if s.runsByID[id] == run {
				delete(s.runsByID, id)
			}
			s.runningMu.Unlock()
			cancel()
		}()

		s.runEnrichment(ctx, id, items, refresh)
	}()

	return &status, nil
}

// CancelEnrichment 진행 중인 보강을 취소합니다. 보강은 다음 라운드 경계에서 멈추고 cancelled 상태가 됩니다.
func (s *Service) CancelEnrichment(id string) error {
	if _, err := s.store.Get(id); err != nil {
		return err
	}

	s.runningMu.Lock()
	run, ok := s.runsByID[id]
	s.runningMu.Unlock()

	if !ok {
		return apperrors.Newf(apperrors.Conflict, "진행 중인 보강이 없습니다 (id=%s)", id)
	}
	run.cancel()

	applog.WithComponentAndFields(component, applog.Fields{
		"session_id": id,
	}).Info("보강 취소를 요청했습니다")

	return nil
}

// EnrichmentStatus 세션의 보강 진행률과 결과를 반환합니다.
func (s *Service) EnrichmentStatus(id string) (*session.EnrichmentStatus, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &sess.Enrichment, nil
}

// RefreshMarketData 보강이 진행 중이지 않은 모든 세션의 보강을 다시 시작하고 시작한 수를 반환합니다.
// 캐시를 사용하지 않으므로 항목이 바뀌지 않은 세션도 시장 데이터를 새로 가져옵니다.
// 시장 데이터 공급자가 없으면 아무것도 하지 않습니다.
func (s *Service) RefreshMarketData() int {
	if s.orchestrator == nil {
		return 0
	}

	started := 0
	for _, summary := range s.store.List() {
		if summary.ItemCount == 0 || summary.EnrichmentState == session.EnrichmentRunning {
			continue
		}

		if _, err := s.startEnrichment(summary.ID, true); err != nil {
			if errors.Is(err, ErrServiceNotRunning) {
				break
			}
			// 목록 조회 이후 삭제되었거나 다른 요청이 먼저 시작한 세션이다.
			if apperrors.Is(err, apperrors.NotFound) || apperrors.Is(err, apperrors.Conflict) {
				continue
			}
			applog.WithComponentAndFields(component, applog.Fields{
				"session_id": summary.ID,
				"error":      err,
			}).Warn("시장 데이터 갱신을 시작하지 못했습니다")
			continue
		}
		started++
	}

	if started > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"started": started,
		}).Info("시장 데이터 주기 갱신을 시작했습니다")
	}

	return started
}

// runEnrichment 보강을 실행하고 결과를 세션에 반영합니다.
func (s *Service) runEnrichment(ctx context.Context, id string, items []*contract.PriceItem, refresh bool) {
	var result *enrichment.Result
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				err = apperrors.New(apperrors.Internal, fmt.Sprintf("보강 실행 중 패닉이 발생했습니다: %v", r))

				applog.WithComponentAndFields(component, applog.Fields{
					"session_id": id,
					"panic":      r,
					"stack":      string(debug.Stack()),
				}).Error("보강 실행 중 패닉이 발생했습니다")
			}
		}()

		enrich := s.orchestrator.Enrich
		if refresh {
			enrich = s.orchestrator.Refresh
		}
		result, err = enrich(ctx, items, func(completed, _ int) {
			_ = s.store.Update(id, func(sess *session.Session) error {
				if completed > sess.Enrichment.Completed {
					sess.Enrichment.Completed = completed
				}
				return nil
			})
		})
	}()

	updateErr := s.store.Update(id, func(sess *session.Session) error {
		applyEnrichment(sess, result, err, s.now())
		return nil
	})
	if updateErr != nil {
		applog.WithComponentAndFields(component, applog.Fields{
			"session_id": id,
			"error":      updateErr,
		}).Warn("보강 결과를 세션에 반영하지 못했습니다")
	}
}

// applyEnrichment 보강 결과를 세션 상태와 항목에 반영합니다.
//
// 성공한 항목의 MarketData만 SKU 기준으로 옮겨 담으므로 보강 도중 카탈로그 대조로 바뀐 필드는 유지됩니다.
// 실패한 항목은 변경하지 않습니다.
func applyEnrichment(sess *session.Session, result *enrichment.Result, err error, now time.Time) {
	status := &sess.Enrichment
	status.FinishedAt = &now

	switch {
	case err == nil:
		status.State = session.EnrichmentCompleted
		if result != nil && result.Partial() {
			status.State = session.EnrichmentPartial
		}
	case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
		status.State = session.EnrichmentCancelled
		status.Error = err.Error()
	default:
		status.State = session.EnrichmentFailed
		status.Error = err.Error()
	}

	if result == nil {
		return
	}

	status.Completed = max(status.Completed, len(result.Items)+len(result.Failures))
	status.Enriched = len(result.Items)
	status.Warning = result.Warning
	status.FromCache = result.FromCache
	status.Fingerprint = result.Fingerprint
	status.Failures = make([]session.FailedItem, 0, len(result.Failures))
	for _, f := range result.Failures {
		status.Failures = append(status.Failures, session.FailedItem{SKU: f.SKU, Message: f.Message})
	}

	enriched := make(map[string]*contract.MarketData, len(result.Items))
	for _, item := range result.Items {
		enriched[item.SKU] = item.MarketData
	}
	for _, item := range sess.Items {
		if md, ok := enriched[item.SKU]; ok {
			item.MarketData = md.Clone()
		}
	}
}
