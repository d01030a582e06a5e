package handler

import (
	"context"
	"io"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/analyzer"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/pricewatch"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/session"
	"github.com/stretchr/testify/mock"
)

// mockPriceWatcher PriceWatcher 테스트 더블입니다.
type mockPriceWatcher struct {
	mock.Mock
}

var _ PriceWatcher = (*mockPriceWatcher)(nil)

func (m *mockPriceWatcher) Analyze(req pricewatch.AnalyzeRequest) (*pricewatch.AnalyzeResult, error) {
	args := m.Called(req)
	if r := args.Get(0); r != nil {
		return r.(*pricewatch.AnalyzeResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceWatcher) Sessions() []session.Summary {
	return m.Called().Get(0).([]session.Summary)
}

func (m *mockPriceWatcher) Session(id string) (*session.Session, error) {
	args := m.Called(id)
	if s := args.Get(0); s != nil {
		return s.(*session.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceWatcher) DeleteSession(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockPriceWatcher) Insights(id string) (*analyzer.Report, error) {
	args := m.Called(id)
	if r := args.Get(0); r != nil {
		return r.(*analyzer.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceWatcher) StartEnrichment(id string) (*session.EnrichmentStatus, error) {
	args := m.Called(id)
	if s := args.Get(0); s != nil {
		return s.(*session.EnrichmentStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceWatcher) EnrichmentStatus(id string) (*session.EnrichmentStatus, error) {
	args := m.Called(id)
	if s := args.Get(0); s != nil {
		return s.(*session.EnrichmentStatus), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceWatcher) CancelEnrichment(id string) error {
	return m.Called(id).Error(0)
}

func (m *mockPriceWatcher) MergeCatalog(ctx context.Context, id string, records []contract.CatalogRecord) (*session.Session, error) {
	args := m.Called(ctx, id, records)
	if s := args.Get(0); s != nil {
		return s.(*session.Session), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPriceWatcher) Export(id string, format pricewatch.Format, w io.Writer) error {
	return m.Called(id, format, w).Error(0)
}
