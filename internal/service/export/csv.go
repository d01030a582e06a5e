package export

import (
	"io"

	"github.com/gocarina/gocsv"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
)

// ContentTypeCSV CSV 응답의 Content-Type
const ContentTypeCSV = "text/csv; charset=utf-8"

// WriteCSV 헤더 행과 함께 items를 CSV로 씁니다.
func WriteCSV(w io.Writer, items []*contract.PriceItem) error {
	if err := gocsv.Marshal(NewRows(items), w); err != nil {
		return apperrors.Wrap(err, apperrors.System, "CSV 내보내기에 실패했습니다")
	}
	return nil
}
