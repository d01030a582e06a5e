package handler

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	apihandler "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/handler"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/httputil"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/analyzer"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/pricewatch"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

// setupEcho 실제 서버와 같은 에러 핸들러와 검증기를 사용하고 v1 경로를 등록한 Echo를 반환합니다.
func setupEcho(t *testing.T) (*echo.Echo, *mockPriceWatcher) {
	t.Helper()

	pw := new(mockPriceWatcher)
	t.Cleanup(func() { pw.AssertExpectations(t) })

	h := NewHandler(pw)

	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler
	e.Validator = apihandler.NewRequestValidator()

	g := e.Group("/api/v1/analyses")
	g.POST("", h.CreateAnalysisHandler)
	g.GET("", h.ListAnalysesHandler)
	g.GET("/:id", h.GetAnalysisHandler)
	g.DELETE("/:id", h.DeleteAnalysisHandler)
	g.GET("/:id/insights", h.InsightsHandler)
	g.POST("/:id/enrichment", h.StartEnrichmentHandler)
	g.GET("/:id/enrichment", h.GetEnrichmentHandler)
	g.DELETE("/:id/enrichment", h.CancelEnrichmentHandler)
	g.POST("/:id/catalog-merge", h.MergeCatalogHandler)
	g.GET("/:id/export", h.ExportHandler)

	return e, pw
}

func doRequest(e *echo.Echo, method, target, contentType, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func errNotFound(id string) error {
	return apperrors.Newf(apperrors.NotFound, "분석 세션을 찾을 수 없습니다 (id=%s)", id)
}

// =============================================================================
// Constructor
// =============================================================================

func TestNewHandler(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { NewHandler(nil) })
	assert.NotPanics(t, func() { NewHandler(new(mockPriceWatcher)) })
}

// =============================================================================
// Analyses
// =============================================================================

func TestCreateAnalysisHandler(t *testing.T) {
	t.Parallel()

	t.Run("성공: 세션 생성", func(t *testing.T) {
		t.Parallel()

		e, pw := setupEcho(t)
		pw.On("Analyze", pricewatch.AnalyzeRequest{
			Label: "Q4",
			Old:   []contract.Record{{SKU: "A-1", Name: "Widget", Price: 10}},
			New:   []contract.Record{{SKU: "A-1", Name: "Widget", Price: 12}},
		}).Return(&pricewatch.AnalyzeResult{
			Session: &session.Session{ID: "s-1", Label: "Q4", Items: []*contract.PriceItem{{SKU: "A-1", Status: contract.StatusIncreased}}},
		}, nil)

		rec := doRequest(e, http.MethodPost, "/api/v1/analyses", echo.MIMEApplicationJSON,
			`{"label":"Q4","old":[{"sku":"A-1","name":"Widget","price":10}],"new":[{"sku":"A-1","name":"Widget","price":12}]}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"s-1"`)
		assert.Contains(t, rec.Body.String(), `"status":"increased"`)
		assert.NotContains(t, rec.Body.String(), `"warning"`)
	})

	t.Run("성공: 거부된 행 경고 포함", func(t *testing.T) {
		t.Parallel()

		e, pw := setupEcho(t)
		pw.On("Analyze", mock.Anything).Return(&pricewatch.AnalyzeResult{
			Session: &session.Session{ID: "s-2"},
			Warning: "1개 행이 제외되었습니다",
		}, nil)

		rec := doRequest(e, http.MethodPost, "/api/v1/analyses", echo.MIMEApplicationJSON,
			`{"old":[{"sku":"","price":1}],"new":[{"sku":"B","price":2}]}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"warning":"1개 행이 제외되었습니다"`)
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{"잘못된 JSON", `{"old":[`, http.StatusBadRequest, "JSON 형식"},
		{"두 가격표 모두 비어 있음", `{"label":"x"}`, http.StatusBadRequest, "적어도 하나의 가격표"},
		{"label 길이 초과", `{"label":"` + strings.Repeat("a", 201) + `","new":[{"sku":"A","price":1}]}`, http.StatusBadRequest, "label는 최대 200자"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run("실패: "+tt.name, func(t *testing.T) {
			t.Parallel()

			e, _ := setupEcho(t)
			rec := doRequest(e, http.MethodPost, "/api/v1/analyses", echo.MIMEApplicationJSON, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantMsg)
		})
	}
}

func TestListAndGetAnalysisHandler(t *testing.T) {
	t.Parallel()

	e, pw := setupEcho(t)
	pw.On("Sessions").Return([]session.Summary{{ID: "s-1", ItemCount: 3}})
	pw.On("Session", "s-1").Return(&session.Session{ID: "s-1"}, nil)
	pw.On("Session", "nope").Return(nil, errNotFound("nope"))

	rec := doRequest(e, http.MethodGet, "/api/v1/analyses", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":1,"sessions":[{"id":"s-1","createdAt":"0001-01-01T00:00:00Z","updatedAt":"0001-01-01T00:00:00Z","itemCount":3,"rejectedCount":0,"enrichmentState":""}]}`, rec.Body.String())

	rec = doRequest(e, http.MethodGet, "/api/v1/analyses/s-1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"s-1"`)

	rec = doRequest(e, http.MethodGet, "/api/v1/analyses/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "id=nope")
}

func TestDeleteAnalysisHandler(t *testing.T) {
	t.Parallel()

	e, pw := setupEcho(t)
	pw.On("DeleteSession", "s-1").Return(nil)
	pw.On("DeleteSession", "busy").Return(apperrors.New(apperrors.Conflict, "보강이 진행 중인 세션은 삭제할 수 없습니다"))

	rec := doRequest(e, http.MethodDelete, "/api/v1/analyses/s-1", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result_code":0,"message":"성공"}`, rec.Body.String())

	rec = doRequest(e, http.MethodDelete, "/api/v1/analyses/busy", "", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestInsightsHandler(t *testing.T) {
	t.Parallel()

	e, pw := setupEcho(t)
	generatedAt := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	pw.On("Insights", "s-1").Return(&analyzer.Report{GeneratedAt: generatedAt}, nil)

	rec := doRequest(e, http.MethodGet, "/api/v1/analyses/s-1/insights", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"generatedAt":"2026-10-16T00:00:00Z"`)
}

// =============================================================================
// Enrichment
// =============================================================================

func TestEnrichmentHandlers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		method     string
		setup      func(pw *mockPriceWatcher)
		wantStatus int
		wantBody   string
	}{
		{
			name:   "시작: 202",
			method: http.MethodPost,
			setup: func(pw *mockPriceWatcher) {
				pw.On("StartEnrichment", "s-1").Return(&session.EnrichmentStatus{State: session.EnrichmentRunning, Total: 2}, nil)
			},
			wantStatus: http.StatusAccepted,
			wantBody:   `"state":"running"`,
		},
		{
			name:   "시작: 공급자 미설정 503",
			method: http.MethodPost,
			setup: func(pw *mockPriceWatcher) {
				pw.On("StartEnrichment", "s-1").Return(nil, pricewatch.ErrMarketDataDisabled)
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "시장 데이터 공급자",
		},
		{
			name:   "시작: 진행 중 409",
			method: http.MethodPost,
			setup: func(pw *mockPriceWatcher) {
				pw.On("StartEnrichment", "s-1").Return(nil, apperrors.New(apperrors.Conflict, "이미 보강이 진행 중인 세션입니다"))
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "상태 조회",
			method: http.MethodGet,
			setup: func(pw *mockPriceWatcher) {
				pw.On("EnrichmentStatus", "s-1").Return(&session.EnrichmentStatus{State: session.EnrichmentPartial, Completed: 2, Total: 2, Enriched: 1}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"state":"partial"`,
		},
		{
			name:   "취소",
			method: http.MethodDelete,
			setup: func(pw *mockPriceWatcher) {
				pw.On("CancelEnrichment", "s-1").Return(nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "취소: 예상하지 못한 에러는 500",
			method: http.MethodDelete,
			setup: func(pw *mockPriceWatcher) {
				pw.On("CancelEnrichment", "s-1").Return(errors.New("boom"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   "내부 서버 오류",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, pw := setupEcho(t)
			tt.setup(pw)

			rec := doRequest(e, tt.method, "/api/v1/analyses/s-1/enrichment", "", "")

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

// =============================================================================
// Catalog merge
// =============================================================================

func TestMergeCatalogHandler(t *testing.T) {
	t.Parallel()

	merged := &session.Session{ID: "s-1", Catalog: &session.CatalogStatus{Matched: 1}}

	t.Run("JSON 본문", func(t *testing.T) {
		t.Parallel()

		e, pw := setupEcho(t)
		pw.On("MergeCatalog", mock.Anything, "s-1", []contract.CatalogRecord{
			{SKU: "A-1", ProductID: "p1", VariantID: "v1", InventoryLevel: contract.Int(4)},
		}).Return(merged, nil)

		rec := doRequest(e, http.MethodPost, "/api/v1/analyses/s-1/catalog-merge", echo.MIMEApplicationJSON,
			`{"records":[{"sku":"A-1","productId":"p1","variantId":"v1","inventoryLevel":4}]}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"matched":1`)
	})

	t.Run("CSV 본문", func(t *testing.T) {
		t.Parallel()

		e, pw := setupEcho(t)
		pw.On("MergeCatalog", mock.Anything, "s-1", []contract.CatalogRecord{
			{SKU: "A-1", ProductID: "p1", VariantID: "v1", InventoryLevel: contract.Int(4)},
		}).Return(merged, nil)

		rec := doRequest(e, http.MethodPost, "/api/v1/analyses/s-1/catalog-merge", "text/csv; charset=utf-8",
			"sku,product_id,variant_id,inventory_item_id,inventory_level\nA-1,p1,v1,,4\n")

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("본문 없음: 설정된 카탈로그 사용", func(t *testing.T) {
		t.Parallel()

		e, pw := setupEcho(t)
		pw.On("MergeCatalog", mock.Anything, "s-1", []contract.CatalogRecord(nil)).Return(nil, pricewatch.ErrCatalogUnavailable)

		rec := doRequest(e, http.MethodPost, "/api/v1/analyses/s-1/catalog-merge", "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "카탈로그")
	})

	t.Run("잘못된 JSON", func(t *testing.T) {
		t.Parallel()

		e, _ := setupEcho(t)
		rec := doRequest(e, http.MethodPost, "/api/v1/analyses/s-1/catalog-merge", echo.MIMEApplicationJSON, `{"records":`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// =============================================================================
// Export
// =============================================================================

func TestExportHandler(t *testing.T) {
	t.Parallel()

	t.Run("CSV 기본 형식", func(t *testing.T) {
		t.Parallel()

		e, pw := setupEcho(t)
		pw.On("Export", "s-1", pricewatch.FormatCSV, mock.Anything).
			Run(func(args mock.Arguments) {
				_, _ = io.WriteString(args.Get(2).(io.Writer), "sku,name\nA-1,Widget\n")
			}).
			Return(nil)

		rec := doRequest(e, http.MethodGet, "/api/v1/analyses/s-1/export", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get(echo.HeaderContentType))
		assert.Equal(t, `attachment; filename="price-changes-s-1.csv"`, rec.Header().Get(echo.HeaderContentDisposition))
		assert.Equal(t, "sku,name\nA-1,Widget\n", rec.Body.String())
	})

	t.Run("XLSX 형식", func(t *testing.T) {
		t.Parallel()

		e, pw := setupEcho(t)
		pw.On("Export", "s-1", pricewatch.FormatXLSX, mock.Anything).Return(nil)

		rec := doRequest(e, http.MethodGet, "/api/v1/analyses/s-1/export?format=XLSX", "", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "price-changes-s-1.xlsx")
	})

	t.Run("지원하지 않는 형식", func(t *testing.T) {
		t.Parallel()

		e, _ := setupEcho(t)
		rec := doRequest(e, http.MethodGet, "/api/v1/analyses/s-1/export?format=pdf", "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("세션 없음", func(t *testing.T) {
		t.Parallel()

		e, pw := setupEcho(t)
		pw.On("Export", "nope", pricewatch.FormatCSV, mock.Anything).Return(errNotFound("nope"))

		rec := doRequest(e, http.MethodGet, "/api/v1/analyses/nope/export", "", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Empty(t, rec.Header().Get(echo.HeaderContentDisposition))
	})
}
