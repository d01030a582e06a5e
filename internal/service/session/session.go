// Package session 업로드 한 번에 해당하는 분석 세션을 메모리에 보관합니다.
package session

import (
	"slices"
	"time"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/classifier"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
)

// EnrichmentState 세션의 시장 데이터 보강 진행 상태입니다.
type EnrichmentState string

const (
	EnrichmentIdle      EnrichmentState = "idle"
	EnrichmentRunning   EnrichmentState = "running"
	EnrichmentCompleted EnrichmentState = "completed"
	EnrichmentPartial   EnrichmentState = "partial"
	EnrichmentFailed    EnrichmentState = "failed"
	EnrichmentCancelled EnrichmentState = "cancelled"
)

// Finished 실행이 끝난 상태이면 true를 반환합니다.
func (s EnrichmentState) Finished() bool {
	switch s {
	case EnrichmentCompleted, EnrichmentPartial, EnrichmentFailed, EnrichmentCancelled:
		return true
	}
	return false
}

// FailedItem 보강에 실패한 항목입니다.
type FailedItem struct {
	SKU     string `json:"sku"`
	Message string `json:"message"`
}

// EnrichmentStatus 보강 진행률과 결과입니다.
type EnrichmentStatus struct {
	State       EnrichmentState `json:"state"`
	Completed   int             `json:"completed"`
	Total       int             `json:"total"`
	Enriched    int             `json:"enriched"`
	Failures    []FailedItem    `json:"failures,omitempty"`
	Warning     string          `json:"warning,omitempty"`
	Error       string          `json:"error,omitempty"`
	FromCache   bool            `json:"fromCache"`
	Fingerprint string          `json:"fingerprint,omitempty"`
	StartedAt   *time.Time      `json:"startedAt,omitempty"`
	FinishedAt  *time.Time      `json:"finishedAt,omitempty"`
}

// CatalogStatus 마지막 카탈로그 대조 결과 요약입니다.
type CatalogStatus struct {
	Matched        int       `json:"matched"`
	Unmatched      int       `json:"unmatched"`
	DuplicateSKUs  []string  `json:"duplicateSkus,omitempty"`
	InvalidRecords int       `json:"invalidRecords"`
	MergedAt       time.Time `json:"mergedAt"`
}

// Session 분석 세션입니다. Store 밖으로 나가는 값은 항상 복사본입니다.
type Session struct {
	ID        string                      `json:"id"`
	Label     string                      `json:"label,omitempty"`
	CreatedAt time.Time                   `json:"createdAt"`
	UpdatedAt time.Time                   `json:"updatedAt"`
	Items     []*contract.PriceItem       `json:"items"`
	Rejected  []classifier.RejectedRecord `json:"rejected,omitempty"`

	Enrichment EnrichmentStatus `json:"enrichment"`
	Catalog    *CatalogStatus   `json:"catalog,omitempty"`
}

// Summary 목록 조회용 세션 요약입니다.
type Summary struct {
	ID              string          `json:"id"`
	Label           string          `json:"label,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	ItemCount       int             `json:"itemCount"`
	RejectedCount   int             `json:"rejectedCount"`
	EnrichmentState EnrichmentState `json:"enrichmentState"`
}

func (s *Session) clone() *Session {
	c := *s
	c.Items = contract.CloneItems(s.Items)
	c.Rejected = slices.Clone(s.Rejected)
	c.Enrichment.Failures = slices.Clone(s.Enrichment.Failures)
	c.Enrichment.StartedAt = cloneTime(s.Enrichment.StartedAt)
	c.Enrichment.FinishedAt = cloneTime(s.Enrichment.FinishedAt)
	if s.Catalog != nil {
		cat := *s.Catalog
		cat.DuplicateSKUs = slices.Clone(s.Catalog.DuplicateSKUs)
		c.Catalog = &cat
	}
	return &c
}

func (s *Session) summary() Summary {
	return Summary{
		ID:              s.ID,
		Label:           s.Label,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		ItemCount:       len(s.Items),
		RejectedCount:   len(s.Rejected),
		EnrichmentState: s.Enrichment.State,
	}
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
