package pricewatch

import (
	"context"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/catalog"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/session"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

// MergeCatalog 세션 항목을 커머스 카탈로그와 SKU로 대조합니다.
//
// records가 비어 있으면 설정된 카탈로그 공급자에서 읽습니다.
// 대조 결과는 세션 항목에 바로 반영되고, 요약은 Session.Catalog에 기록됩니다.
func (s *Service) MergeCatalog(ctx context.Context, id string, records []contract.CatalogRecord) (*session.Session, error) {
	if _, err := s.store.Get(id); err != nil {
		return nil, err
	}

	if len(records) == 0 {
		if s.catalog == nil {
			return nil, ErrCatalogUnavailable
		}

		loaded, err := s.catalog.Load(ctx)
		if err != nil {
			return nil, err
		}
		records = loaded
	}

	var merged *catalog.MergeResult
	err := s.store.Update(id, func(sess *session.Session) error {
		merged = catalog.Merge(sess.Items, records)
		sess.Items = merged.Items
		sess.Catalog = &session.CatalogStatus{
			Matched:        merged.Matched,
			Unmatched:      merged.Unmatched,
			DuplicateSKUs:  merged.DuplicateSKUs,
			InvalidRecords: merged.InvalidRecords,
			MergedAt:       s.now(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.metrics.observeCatalogMerge()

	applog.WithComponentAndFields(component, applog.Fields{
		"session_id": id,
		"records":    len(records),
		"matched":    merged.Matched,
		"unmatched":  merged.Unmatched,
	}).Info("카탈로그 대조를 완료했습니다")

	return s.store.Get(id)
}
