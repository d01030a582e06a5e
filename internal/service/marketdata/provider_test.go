package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/config"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(provider, baseURL string) config.MarketDataConfig {
	return config.MarketDataConfig{
		Provider:            provider,
		BaseURL:             baseURL,
		APIKey:              "test-key",
		APIKeyHeader:        "X-API-Key",
		PricesPath:          "competitors.#.price",
		PriceSelector:       ".offer .price",
		Timeout:             5 * time.Second,
		RequestsPerSecond:   1000,
		Burst:               10,
		MaxRetries:          0,
		RetryDelay:          time.Millisecond,
		PositionBandPercent: 5,
	}
}

func TestJSONAPIProvider_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("sku") {
		case "A-1":
			_, _ = w.Write([]byte(`{"competitors":[{"price":9},{"price":"£11.00"},{"price":10}]}`))
		case "EMPTY":
			_, _ = w.Write([]byte(`{"competitors":[]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	p, err := NewProvider(testConfig(config.MarketDataProviderJSON, srv.URL+"/prices"))
	require.NoError(t, err)

	md, err := p.Fetch(context.Background(), &contract.PriceItem{SKU: "A-1", NewPrice: contract.Float64(12)})
	require.NoError(t, err)
	assert.Equal(t, []float64{9, 11, 10}, md.CompetitorPrices)
	assert.Equal(t, contract.PositionHigh, md.PricePosition)

	_, err = p.Fetch(context.Background(), &contract.PriceItem{SKU: "EMPTY", NewPrice: contract.Float64(1)})
	assert.ErrorIs(t, err, ErrNoCompetitorPrices)

	_, err = p.Fetch(context.Background(), &contract.PriceItem{SKU: "UNKNOWN", NewPrice: contract.Float64(1)})
	assert.Equal(t, apperrors.NotFound, apperrors.UnderlyingType(err))
}

func TestHTMLProvider_Fetch(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if r.URL.Path != "/compare/B 2" {
			_, _ = w.Write([]byte(`<html><body>no offers</body></html>`))
			return
		}
		_, _ = w.Write([]byte(`<html><body>
			<div class="offer"><span class="price">£4.00</span></div>
			<div class="offer"><span class="price" content="6.00">six pounds</span></div>
			<div class="offer"><span class="price">Call us</span></div>
		</body></html>`))
	}))
	defer srv.Close()

	p, err := NewProvider(testConfig(config.MarketDataProviderHTML, srv.URL+"/compare/{sku}"))
	require.NoError(t, err)

	md, err := p.Fetch(context.Background(), &contract.PriceItem{SKU: "B 2", OldPrice: contract.Float64(3)})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 6}, md.CompetitorPrices)
	assert.Equal(t, contract.PositionLow, md.PricePosition, "신규 가격이 없으면 이전 가격으로 비교합니다")

	_, err = p.Fetch(context.Background(), &contract.PriceItem{SKU: "other"})
	assert.True(t, apperrors.Is(err, apperrors.ExecutionFailed))
}

func TestNewProvider_Disabled(t *testing.T) {
	t.Parallel()

	p, err := NewProvider(testConfig(config.MarketDataProviderNone, ""))
	require.NoError(t, err)
	assert.Nil(t, p)
}
