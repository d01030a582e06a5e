// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
//
// 요청을 바인딩/검증하고 가격 감시 서비스를 호출한 뒤 응답을 만듭니다.
// 서비스가 반환한 AppError는 그대로 반환하여 전역 에러 핸들러가 상태 코드로 변환하게 합니다.
package handler

import (
	"context"
	"io"

	"github.com/labstack/echo/v4"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/analyzer"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/constants"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/pricewatch"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/session"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

// PriceWatcher 핸들러가 사용하는 가격 감시 서비스 기능입니다. *pricewatch.Service가 구현합니다.
type PriceWatcher interface {
	Analyze(req pricewatch.AnalyzeRequest) (*pricewatch.AnalyzeResult, error)
	Sessions() []session.Summary
	Session(id string) (*session.Session, error)
	DeleteSession(id string) error
	Insights(id string) (*analyzer.Report, error)

	StartEnrichment(id string) (*session.EnrichmentStatus, error)
	EnrichmentStatus(id string) (*session.EnrichmentStatus, error)
	CancelEnrichment(id string) error

	MergeCatalog(ctx context.Context, id string, records []contract.CatalogRecord) (*session.Session, error)
	Export(id string, format pricewatch.Format, w io.Writer) error
}

var _ PriceWatcher = (*pricewatch.Service)(nil)

// Handler v1 API 요청을 처리합니다.
type Handler struct {
	priceWatcher PriceWatcher
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(priceWatcher PriceWatcher) *Handler {
	if priceWatcher == nil {
		panic("NewHandler: PriceWatcher는 필수입니다")
	}

	return &Handler{
		priceWatcher: priceWatcher,
	}
}

// log 공통 로깅 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
