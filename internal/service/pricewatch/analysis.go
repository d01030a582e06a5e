package pricewatch

import (
	"strings"

	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/analyzer"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/session"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

// AnalyzeRequest 가격표 비교 요청입니다.
type AnalyzeRequest struct {
	Label string
	Old   []contract.Record
	New   []contract.Record
}

// AnalyzeResult 분류 결과로 만들어진 세션과 경고입니다.
// 일부 행이 거부되어도 세션은 만들어지며, 거부 내역은 Warning과 Session.Rejected에 담깁니다.
type AnalyzeResult struct {
	Session *session.Session
	Warning string
}

// Analyze 두 가격표를 분류하고 결과를 새 세션으로 보관합니다.
func (s *Service) Analyze(req AnalyzeRequest) (*AnalyzeResult, error) {
	if len(req.Old) == 0 && len(req.New) == 0 {
		return nil, apperrors.New(apperrors.InvalidInput, "비교할 가격표가 비어 있습니다")
	}

	classified := s.classifier.Classify(req.Old, req.New)

	sess, err := s.store.Create(strings.TrimSpace(req.Label), classified.Items, classified.Rejected)
	if err != nil {
		return nil, err
	}
	s.metrics.observeAnalysis(classified.Items, len(classified.Rejected))

	result := &AnalyzeResult{Session: sess}
	if err := classified.Err(); err != nil {
		result.Warning = err.Error()
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"session_id":  sess.ID,
		"old_records": len(req.Old),
		"new_records": len(req.New),
		"items":       len(sess.Items),
		"rejected":    len(sess.Rejected),
	}).Info("가격표 분석 세션을 생성했습니다")

	return result, nil
}

// Session 세션의 복사본을 반환합니다.
func (s *Service) Session(id string) (*session.Session, error) {
	return s.store.Get(id)
}

// Sessions 세션 요약 목록을 최근 생성 순으로 반환합니다.
func (s *Service) Sessions() []session.Summary {
	return s.store.List()
}

// DeleteSession 세션을 제거합니다. 보강이 진행 중이면 Conflict 에러를 반환합니다.
func (s *Service) DeleteSession(id string) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"session_id": id,
	}).Info("분석 세션을 삭제했습니다")

	return nil
}

// Insights 세션 항목 전체에 대한 통계 분석 결과를 계산합니다.
func (s *Service) Insights(id string) (*analyzer.Report, error) {
	sess, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	return analyzer.Analyze(sess.Items, analyzer.Options{
		MinCorrelationOverlap: s.appConfig.Analysis.MinCorrelationOverlap,
		MinCompetingSuppliers: s.appConfig.Analysis.MinCompetingSuppliers,
	}, s.now()), nil
}
