// Package v1 가격 감시 API의 v1 라우트를 정의합니다.
//
// 주요 엔드포인트:
//   - POST   /api/v1/analyses                        - 가격표 비교 및 세션 생성
//   - GET    /api/v1/analyses                        - 세션 목록
//   - GET    /api/v1/analyses/:id                    - 세션 조회
//   - DELETE /api/v1/analyses/:id                    - 세션 삭제
//   - GET    /api/v1/analyses/:id/insights           - 통계 분석 보고서
//   - POST   /api/v1/analyses/:id/enrichment         - 시장 데이터 보강 시작
//   - GET    /api/v1/analyses/:id/enrichment         - 보강 상태
//   - DELETE /api/v1/analyses/:id/enrichment         - 보강 취소
//   - POST   /api/v1/analyses/:id/catalog-merge      - 카탈로그 대조
//   - GET    /api/v1/analyses/:id/export?format=csv  - CSV/XLSX 내보내기
package v1

import (
	"github.com/labstack/echo/v4"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/middleware"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/v1/handler"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 등록합니다.
// 본문을 받는 엔드포인트에는 Content-Type 검증 미들웨어가 적용됩니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	v1Group := e.Group("/api/v1")

	analyses := v1Group.Group("/analyses")
	analyses.POST("", h.CreateAnalysisHandler,
		middleware.ValidateContentType(echo.MIMEApplicationJSON),
	)
	analyses.GET("", h.ListAnalysesHandler)
	analyses.GET("/:id", h.GetAnalysisHandler)
	analyses.DELETE("/:id", h.DeleteAnalysisHandler)
	analyses.GET("/:id/insights", h.InsightsHandler)

	analyses.POST("/:id/enrichment", h.StartEnrichmentHandler)
	analyses.GET("/:id/enrichment", h.GetEnrichmentHandler)
	analyses.DELETE("/:id/enrichment", h.CancelEnrichmentHandler)

	analyses.POST("/:id/catalog-merge", h.MergeCatalogHandler,
		middleware.ValidateContentType(echo.MIMEApplicationJSON, "text/csv"),
	)
	analyses.GET("/:id/export", h.ExportHandler)
}
