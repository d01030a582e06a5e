package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `sku,product_id,variant_id,inventory_item_id,inventory_level,title
A-1,gid://product/1,gid://variant/11,gid://inv/111,25,Rose Oil
B-2,gid://product/2,gid://variant/22,,,Lavender
C-3,gid://product/3,gid://variant/33,gid://inv/333,many,Mint
`

func TestReadCSV(t *testing.T) {
	t.Parallel()

	records, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, contract.CatalogRecord{
		SKU:             "A-1",
		ProductID:       "gid://product/1",
		VariantID:       "gid://variant/11",
		InventoryItemID: "gid://inv/111",
		InventoryLevel:  contract.Int(25),
	}, records[0])
	assert.Nil(t, records[1].InventoryLevel)
	assert.Nil(t, records[2].InventoryLevel, "숫자가 아닌 재고 수준은 무시합니다")
}

func TestCSVFileProvider_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	records, err := NewCSVFileProvider(path).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = NewCSVFileProvider(filepath.Join(dir, "missing.csv")).Load(context.Background())
	assert.True(t, apperrors.Is(err, apperrors.NotFound))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewCSVFileProvider(path).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStaticProvider_ReturnsCopy(t *testing.T) {
	t.Parallel()

	p := StaticProvider{{SKU: "A", ProductID: "p"}}
	records, err := p.Load(context.Background())
	require.NoError(t, err)
	records[0].SKU = "changed"
	assert.Equal(t, "A", p[0].SKU)
}
