package catalog

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
	"github.com/spf13/cast"
)

// Provider 카탈로그의 특정 시점 스냅샷을 제공합니다. 반환된 레코드는 읽기 전용으로 다룹니다.
type Provider interface {
	Load(ctx context.Context) ([]contract.CatalogRecord, error)
}

// StaticProvider 메모리에 있는 레코드를 그대로 제공합니다.
type StaticProvider []contract.CatalogRecord

func (p StaticProvider) Load(context.Context) ([]contract.CatalogRecord, error) {
	return append([]contract.CatalogRecord(nil), p...), nil
}

// csvRow 플랫폼 카탈로그 내보내기 파일의 한 행입니다.
type csvRow struct {
	SKU             string `csv:"sku"`
	ProductID       string `csv:"product_id"`
	VariantID       string `csv:"variant_id"`
	InventoryItemID string `csv:"inventory_item_id"`
	InventoryLevel  string `csv:"inventory_level"`
}

// CSVFileProvider 카탈로그 내보내기 CSV 파일을 읽습니다.
//
// 헤더는 sku, product_id, variant_id, inventory_item_id, inventory_level이며
// 모르는 열은 무시합니다. 재고 수준이 비었거나 숫자가 아니면 값 없음으로 처리합니다.
type CSVFileProvider struct {
	path string
}

// NewCSVFileProvider 새로운 CSVFileProvider를 생성합니다.
func NewCSVFileProvider(path string) *CSVFileProvider {
	return &CSVFileProvider{path: path}
}

func (p *CSVFileProvider) Load(ctx context.Context) ([]contract.CatalogRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrapf(err, apperrors.NotFound, "카탈로그 파일(%s)을 찾을 수 없습니다", p.path)
		}
		return nil, apperrors.Wrapf(err, apperrors.System, "카탈로그 파일(%s)을 열 수 없습니다", p.path)
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "카탈로그 파일(%s)을 해석할 수 없습니다", p.path)
	}
	return records, nil
}

// ReadCSV r에서 카탈로그 CSV를 읽습니다.
func ReadCSV(r io.Reader) ([]contract.CatalogRecord, error) {
	var rows []*csvRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		if err == gocsv.ErrEmptyCSVFile {
			return nil, nil
		}
		return nil, err
	}

	records := make([]contract.CatalogRecord, 0, len(rows))
	badLevels := 0
	for _, row := range rows {
		rec := contract.CatalogRecord{
			SKU:             strings.TrimSpace(row.SKU),
			ProductID:       strings.TrimSpace(row.ProductID),
			VariantID:       strings.TrimSpace(row.VariantID),
			InventoryItemID: strings.TrimSpace(row.InventoryItemID),
		}
		if level := strings.TrimSpace(row.InventoryLevel); level != "" {
			if n, err := cast.ToIntE(level); err == nil {
				rec.InventoryLevel = &n
			} else {
				badLevels++
			}
		}
		records = append(records, rec)
	}

	if badLevels > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"rows":       len(rows),
			"bad_levels": badLevels,
		}).Warn("숫자가 아닌 재고 수준 값은 무시했습니다")
	}

	return records, nil
}
