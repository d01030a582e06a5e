package export

import (
	"fmt"
	"io"
	"slices"

	"github.com/360EntSecGroup-Skylar/excelize"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
)

const (
	// ContentTypeXLSX XLSX 응답의 Content-Type
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	// SheetName 항목이 기록되는 시트 이름
	SheetName = "Price Changes"

	defaultSheet = "Sheet1"
	headerStyle  = `{"font":{"bold":true},"fill":{"type":"pattern","color":["#DDEBF7"],"pattern":1}}`
)

func cellName(col, row int) string {
	return fmt.Sprintf("%s%d", excelize.ToAlphaString(col), row)
}

// WriteXLSX items를 한 장의 시트로 된 XLSX 통합 문서로 씁니다.
// 숫자 열은 셀 값도 숫자로 기록하여 스프레드시트에서 바로 계산할 수 있게 합니다.
func WriteXLSX(w io.Writer, items []*contract.PriceItem) error {
	f := excelize.NewFile()
	f.SetSheetName(defaultSheet, SheetName)

	for col, name := range Columns {
		f.SetCellValue(SheetName, cellName(col, 1), name)
	}
	if style, err := f.NewStyle(headerStyle); err == nil {
		f.SetCellStyle(SheetName, cellName(0, 1), cellName(len(Columns)-1, 1), style)
	}
	f.SetColWidth(SheetName, "A", "B", 24)

	row := 2
	for _, item := range items {
		if item == nil {
			continue
		}
		for col, v := range cellValues(item) {
			if v != nil {
				f.SetCellValue(SheetName, cellName(col, row), v)
			}
		}
		row++
	}

	if err := f.Write(w); err != nil {
		return apperrors.Wrap(err, apperrors.System, "XLSX 내보내기에 실패했습니다")
	}
	return nil
}

// cellValues Columns 순서의 셀 값입니다. 값이 없는 셀은 nil입니다.
func cellValues(item *contract.PriceItem) []any {
	r := NewRow(item)
	text := r.values()

	values := make([]any, len(text))
	for i, s := range text {
		if s != "" {
			values[i] = s
		}
	}

	numeric := map[string]*float64{
		"oldPrice":        item.OldPrice,
		"newPrice":        item.NewPrice,
		"difference":      &item.Difference,
		"percentChange":   item.PercentChange,
		"potentialImpact": &item.PotentialImpact,
	}
	if item.MarketData != nil {
		numeric["averageMarketPrice"] = &item.MarketData.AveragePrice
	}
	for i, name := range Columns {
		if v, ok := numeric[name]; ok {
			if v == nil {
				values[i] = nil
			} else {
				values[i] = *v
			}
		}
	}
	if item.InventoryLevel != nil {
		values[slices.Index(Columns, "inventoryLevel")] = *item.InventoryLevel
	}
	values[slices.Index(Columns, "isMatched")] = item.IsMatched

	return values
}
