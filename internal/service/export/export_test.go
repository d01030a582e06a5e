package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems() []*contract.PriceItem {
	return []*contract.PriceItem{
		{
			SKU:             "A",
			Name:            "Rose Oil, 10ml",
			Category:        "Oils",
			Supplier:        "Acme",
			OldPrice:        contract.Float64(10),
			NewPrice:        contract.Float64(12),
			Difference:      2,
			PercentChange:   contract.Float64(20),
			Status:          contract.StatusIncreased,
			PotentialImpact: 10,
			InventoryLevel:  contract.Int(5),
			MarketData:      &contract.MarketData{PricePosition: contract.PositionHigh, AveragePrice: 11.5},
			ProductID:       "p1",
			VariantID:       "v1",
			IsMatched:       true,
		},
		nil,
		{
			SKU:      "B",
			Name:     "Mint",
			NewPrice: contract.Float64(5),
			Status:   contract.StatusNew,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleItems()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(Columns, ","), lines[0])
	assert.Equal(t, `A,"Rose Oil, 10ml",Oils,Acme,,,10,12,2,20,increased,10,5,high,11.5,p1,v1,,true`, lines[1])
	assert.Equal(t, `B,Mint,,,,,,5,0,,new,0,,,,,,,false`, lines[2])
}

func TestWriteXLSX(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleItems()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)

	rows := f.GetRows(SheetName)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0][:len(Columns)])
	assert.Equal(t, "A", rows[1][0])
	assert.Equal(t, "12", rows[1][7])
	assert.Equal(t, "increased", rows[1][10])
	assert.Equal(t, "B", rows[2][0])
	if len(rows[2]) > 6 {
		assert.Empty(t, rows[2][6], "이전 가격이 없으면 셀을 비웁니다")
	}
}

func TestNewRow_StatusCompatibility(t *testing.T) {
	t.Parallel()

	for _, s := range contract.AllStatuses {
		r := NewRow(&contract.PriceItem{SKU: "x", Status: s})
		assert.Equal(t, string(s), r.Status)
	}
}
