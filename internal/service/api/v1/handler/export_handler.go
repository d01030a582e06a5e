package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/pricewatch"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

// ExportHandler godoc
// @Summary 세션 내보내기
// @Description 세션 항목을 CSV 또는 XLSX 파일로 내려받습니다. format을 생략하면 CSV입니다.
// @Tags Export
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "세션 ID"
// @Param format query string false "파일 형식" Enums(csv, xlsx)
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorResponse "지원하지 않는 형식"
// @Failure 404 {object} response.ErrorResponse "세션 없음"
// @Router /api/v1/analyses/{id}/export [get]
func (h *Handler) ExportHandler(c echo.Context) error {
	format, err := pricewatch.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return err
	}

	id := c.Param("id")

	// 에러 응답을 보낼 수 있도록 파일을 모두 만든 뒤에 전송한다.
	var buf bytes.Buffer
	if err := h.priceWatcher.Export(id, format, &buf); err != nil {
		return err
	}

	h.log(c).WithFields(applog.Fields{
		"session_id": id,
		"format":     format,
		"bytes":      buf.Len(),
	}).Info("세션 내보내기")

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", format.Filename(id)))

	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}
