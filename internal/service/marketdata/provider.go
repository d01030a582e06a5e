// Package marketdata 외부 경쟁사 가격 출처에서 항목별 시장 데이터를 조회합니다.
package marketdata

import (
	"net/http"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/config"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/enrichment"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/marketdata/fetcher"
	"golang.org/x/time/rate"
)

const component = "marketdata"

// NewProvider 설정에 맞는 공급자를 생성합니다. 공급자가 none이면 nil을 반환합니다.
func NewProvider(cfg config.MarketDataConfig, opts ...fetcher.Option) (enrichment.Fetcher, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	f := fetcher.New(fetcher.Config{
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}, opts...)

	header := http.Header{}
	if cfg.APIKey != "" && cfg.APIKeyHeader != "" {
		header.Set(cfg.APIKeyHeader, cfg.APIKey)
	}

	switch cfg.Provider {
	case config.MarketDataProviderJSON:
		return NewJSONAPIProvider(f, cfg.BaseURL, cfg.PricesPath, header, cfg.PositionBandPercent), nil
	case config.MarketDataProviderHTML:
		return NewHTMLProvider(f, cfg.BaseURL, cfg.PriceSelector, header, cfg.PositionBandPercent), nil
	default:
		return nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 시장 데이터 공급자입니다: %s", cfg.Provider)
	}
}
