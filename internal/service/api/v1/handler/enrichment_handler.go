package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/httputil"
)

// StartEnrichmentHandler godoc
// @Summary 시장 데이터 보강 시작
// @Description 세션 항목의 경쟁사 가격을 백그라운드에서 조회합니다. 진행률은 GET으로 확인합니다.
// @Tags Enrichment
// @Produce json
// @Param id path string true "세션 ID"
// @Success 202 {object} session.EnrichmentStatus "시작 시점의 상태"
// @Failure 404 {object} response.ErrorResponse "세션 없음"
// @Failure 409 {object} response.ErrorResponse "이미 보강 진행 중"
// @Failure 503 {object} response.ErrorResponse "시장 데이터 공급자 미설정"
// @Router /api/v1/analyses/{id}/enrichment [post]
func (h *Handler) StartEnrichmentHandler(c echo.Context) error {
	id := c.Param("id")

	status, err := h.priceWatcher.StartEnrichment(id)
	if err != nil {
		return err
	}

	h.log(c).WithField("session_id", id).Info("시장 데이터 보강 시작")

	return c.JSON(http.StatusAccepted, status)
}

// GetEnrichmentHandler godoc
// @Summary 시장 데이터 보강 상태
// @Tags Enrichment
// @Produce json
// @Param id path string true "세션 ID"
// @Success 200 {object} session.EnrichmentStatus
// @Failure 404 {object} response.ErrorResponse "세션 없음"
// @Router /api/v1/analyses/{id}/enrichment [get]
func (h *Handler) GetEnrichmentHandler(c echo.Context) error {
	status, err := h.priceWatcher.EnrichmentStatus(c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, status)
}

// CancelEnrichmentHandler godoc
// @Summary 시장 데이터 보강 취소
// @Description 진행 중인 보강은 현재 라운드를 마친 뒤 cancelled 상태가 됩니다.
// @Tags Enrichment
// @Produce json
// @Param id path string true "세션 ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse "세션 없음"
// @Failure 409 {object} response.ErrorResponse "진행 중인 보강 없음"
// @Router /api/v1/analyses/{id}/enrichment [delete]
func (h *Handler) CancelEnrichmentHandler(c echo.Context) error {
	id := c.Param("id")
	if err := h.priceWatcher.CancelEnrichment(id); err != nil {
		return err
	}

	h.log(c).WithField("session_id", id).Info("시장 데이터 보강 취소 요청")

	return httputil.Success(c)
}
