package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/httputil"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/v1/model/request"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/v1/model/response"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/pricewatch"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

// CreateAnalysisHandler godoc
// @Summary 가격 변동 분석 생성
// @Description 이전/신규 공급사 가격표를 SKU 기준으로 비교하여 항목별 상태(increased, decreased, new, discontinued, anomaly 등)를 분류하고 세션으로 보관합니다.
// @Description 유효하지 않은 행은 rejected 목록에 사유와 함께 담기며 나머지 행은 정상적으로 분류됩니다.
// @Tags Analysis
// @Accept json
// @Produce json
// @Param analysis body request.AnalysisRequest true "비교할 가격표"
// @Success 201 {object} response.AnalysisResponse "생성된 세션"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청"
// @Router /api/v1/analyses [post]
func (h *Handler) CreateAnalysisHandler(c echo.Context) error {
	req := new(request.AnalysisRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := c.Validate(req); err != nil {
		return err
	}
	if req.Empty() {
		return NewErrEmptyAnalysis()
	}

	result, err := h.priceWatcher.Analyze(pricewatch.AnalyzeRequest{
		Label: req.Label,
		Old:   req.Old,
		New:   req.New,
	})
	if err != nil {
		return err
	}

	h.log(c).WithFields(applog.Fields{
		"session_id": result.Session.ID,
		"items":      len(result.Session.Items),
		"rejected":   len(result.Session.Rejected),
	}).Info("가격 변동 분석 세션 생성")

	return c.JSON(http.StatusCreated, response.AnalysisResponse{
		Session: result.Session,
		Warning: result.Warning,
	})
}

// ListAnalysesHandler godoc
// @Summary 분석 세션 목록
// @Description 보관 중인 세션 요약을 최근 생성 순으로 반환합니다.
// @Tags Analysis
// @Produce json
// @Success 200 {object} response.AnalysisListResponse
// @Router /api/v1/analyses [get]
func (h *Handler) ListAnalysesHandler(c echo.Context) error {
	sessions := h.priceWatcher.Sessions()

	return c.JSON(http.StatusOK, response.AnalysisListResponse{
		Count:    len(sessions),
		Sessions: sessions,
	})
}

// GetAnalysisHandler godoc
// @Summary 분석 세션 조회
// @Tags Analysis
// @Produce json
// @Param id path string true "세션 ID"
// @Success 200 {object} session.Session
// @Failure 404 {object} response.ErrorResponse "세션 없음"
// @Router /api/v1/analyses/{id} [get]
func (h *Handler) GetAnalysisHandler(c echo.Context) error {
	sess, err := h.priceWatcher.Session(c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sess)
}

// DeleteAnalysisHandler godoc
// @Summary 분석 세션 삭제
// @Description 보강이 진행 중인 세션은 삭제할 수 없습니다(409).
// @Tags Analysis
// @Produce json
// @Param id path string true "세션 ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse "세션 없음"
// @Failure 409 {object} response.ErrorResponse "보강 진행 중"
// @Router /api/v1/analyses/{id} [delete]
func (h *Handler) DeleteAnalysisHandler(c echo.Context) error {
	id := c.Param("id")
	if err := h.priceWatcher.DeleteSession(id); err != nil {
		return err
	}

	h.log(c).WithField("session_id", id).Info("분석 세션 삭제")

	return httputil.Success(c)
}

// InsightsHandler godoc
// @Summary 통계 분석 보고서
// @Description 세션 항목으로 변동성, 가격 패턴, 공급사 상관관계, 경쟁 카테고리, 포장 단위 추세, 계절성을 계산합니다.
// @Tags Analysis
// @Produce json
// @Param id path string true "세션 ID"
// @Success 200 {object} analyzer.Report
// @Failure 404 {object} response.ErrorResponse "세션 없음"
// @Router /api/v1/analyses/{id}/insights [get]
func (h *Handler) InsightsHandler(c echo.Context) error {
	report, err := h.priceWatcher.Insights(c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, report)
}
