package handler

import (
	"mime"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/v1/model/request"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/catalog"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

// mimeTextCSV 카탈로그 CSV 업로드의 Content-Type입니다.
const mimeTextCSV = "text/csv"

// MergeCatalogHandler godoc
// @Summary 커머스 카탈로그 대조
// @Description 세션 항목을 카탈로그와 SKU로 대조하여 productId, variantId, 재고를 채우고 잠재 영향을 다시 계산합니다.
// @Description 본문은 JSON(records) 또는 text/csv(sku,product_id,variant_id,inventory_item_id,inventory_level)입니다.
// @Description 본문이 없으면 서버에 설정된 카탈로그 파일을 사용합니다.
// @Tags Catalog
// @Accept json
// @Accept text/csv
// @Produce json
// @Param id path string true "세션 ID"
// @Param catalog body request.CatalogMergeRequest false "카탈로그"
// @Success 200 {object} session.Session "대조 결과가 반영된 세션"
// @Failure 400 {object} response.ErrorResponse "잘못된 요청 또는 카탈로그 없음"
// @Failure 404 {object} response.ErrorResponse "세션 없음"
// @Router /api/v1/analyses/{id}/catalog-merge [post]
func (h *Handler) MergeCatalogHandler(c echo.Context) error {
	records, err := h.bindCatalog(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	sess, err := h.priceWatcher.MergeCatalog(c.Request().Context(), id, records)
	if err != nil {
		return err
	}

	h.log(c).WithFields(applog.Fields{
		"session_id": id,
		"records":    len(records),
	}).Info("카탈로그 대조 요청 처리")

	return c.JSON(http.StatusOK, sess)
}

// bindCatalog 요청 본문에서 카탈로그 행을 읽습니다. 본문이 없으면 nil을 반환합니다.
func (h *Handler) bindCatalog(c echo.Context) ([]contract.CatalogRecord, error) {
	req := c.Request()
	if req.Body == nil || req.ContentLength == 0 {
		return nil, nil
	}

	if mediaType, _, _ := mime.ParseMediaType(req.Header.Get(echo.HeaderContentType)); mediaType == mimeTextCSV {
		records, err := catalog.ReadCSV(req.Body)
		if err != nil {
			return nil, NewErrInvalidCatalogCSV(err)
		}
		return records, nil
	}

	body := new(request.CatalogMergeRequest)
	if err := c.Bind(body); err != nil {
		return nil, NewErrInvalidBody()
	}
	if err := c.Validate(body); err != nil {
		return nil, err
	}

	return body.Records, nil
}
