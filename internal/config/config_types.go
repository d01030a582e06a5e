package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/cronx"
)

// 시장 데이터 공급자 종류
const (
	MarketDataProviderNone = "none"
	MarketDataProviderJSON = "json"
	MarketDataProviderHTML = "html"
)

// AppConfig 애플리케이션의 모든 설정을 포함하는 최상위 구조체
type AppConfig struct {
	Debug      bool             `json:"debug"`
	Analysis   AnalysisConfig   `json:"analysis"`
	Enrichment EnrichmentConfig `json:"enrichment"`
	MarketData MarketDataConfig `json:"market_data"`
	Catalog    CatalogConfig    `json:"catalog"`
	Scheduler  SchedulerConfig  `json:"scheduler"`
	API        APIConfig        `json:"api"`
}

func (c *AppConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c.Analysis, "분석(analysis)"); err != nil {
		return err
	}
	if err := checkStruct(v, c.Enrichment, "보강(enrichment)"); err != nil {
		return err
	}
	if err := c.MarketData.validate(v); err != nil {
		return err
	}
	if err := checkStruct(v, c.Catalog, "카탈로그(catalog)"); err != nil {
		return err
	}
	if err := c.Scheduler.validate(c.MarketData.Enabled()); err != nil {
		return err
	}
	return c.API.validate(v)
}

// VerifyRecommendations 동작에는 문제가 없지만 운영상 권장되지 않는 설정에 대한 경고를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.API.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 관리자 권한이 필요할 수 있습니다", c.API.ListenPort))
	}
	if c.MarketData.Enabled() && c.MarketData.MaxRetries == 0 {
		warnings = append(warnings, "시장 데이터 조회 재시도(max_retries)가 0입니다. 일시적인 오류도 항목 실패로 처리됩니다")
	}
	if c.Enrichment.BatchDelay == 0 {
		warnings = append(warnings, "배치 라운드 간 대기(batch_delay)가 0입니다. 외부 API 호출 한도에 걸릴 수 있습니다")
	}

	return warnings
}

// AnalysisConfig 분류 및 통계 분석 설정
type AnalysisConfig struct {
	AnomalyThresholdPercent float64       `json:"anomaly_threshold_percent" validate:"gt=0"`
	MinCorrelationOverlap   int           `json:"min_correlation_overlap" validate:"min=2"`
	MinCompetingSuppliers   int           `json:"min_competing_suppliers" validate:"min=2"`
	SessionTTL              time.Duration `json:"session_ttl" validate:"gt=0"`
	MaxSessions             int           `json:"max_sessions" validate:"min=1"`
}

// EnrichmentConfig 배치 보강 오케스트레이터 설정
type EnrichmentConfig struct {
	BatchSize            int           `json:"batch_size" validate:"min=1"`
	MaxConcurrentBatches int           `json:"max_concurrent_batches" validate:"min=1"`
	ItemConcurrency      int           `json:"item_concurrency" validate:"min=1"`
	BatchDelay           time.Duration `json:"batch_delay" validate:"gte=0"`
	CacheSize            int           `json:"cache_size" validate:"gte=0"`
	CacheTTL             time.Duration `json:"cache_ttl" validate:"gte=0"` // 0이면 만료되지 않음
}

// MarketDataConfig 외부 시장 데이터 조회 설정
type MarketDataConfig struct {
	Provider            string        `json:"provider" validate:"oneof=none json html"`
	BaseURL             string        `json:"base_url" validate:"omitempty,url"`
	APIKey              string        `json:"api_key"`
	APIKeyHeader        string        `json:"api_key_header"`
	PricesPath          string        `json:"prices_path"`
	PriceSelector       string        `json:"price_selector"`
	Timeout             time.Duration `json:"timeout" validate:"gt=0"`
	RequestsPerSecond   float64       `json:"requests_per_second" validate:"gt=0"`
	Burst               int           `json:"burst" validate:"min=1"`
	MaxRetries          int           `json:"max_retries" validate:"gte=0,lte=10"`
	RetryDelay          time.Duration `json:"retry_delay" validate:"gt=0"`
	PositionBandPercent float64       `json:"position_band_percent" validate:"gte=0,lt=100"`
}

// Enabled 시장 데이터 공급자가 설정되어 있으면 true를 반환합니다. 빈 값은 none과 같습니다.
func (c *MarketDataConfig) Enabled() bool {
	return c.Provider != "" && c.Provider != MarketDataProviderNone
}

func (c *MarketDataConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "시장 데이터(market_data)"); err != nil {
		return err
	}

	switch c.Provider {
	case MarketDataProviderJSON:
		if c.BaseURL == "" {
			return apperrors.New(apperrors.InvalidInput, "JSON 공급자는 API 주소(base_url)가 필요합니다")
		}
		if strings.TrimSpace(c.PricesPath) == "" {
			return apperrors.New(apperrors.InvalidInput, "JSON 공급자는 경쟁사 가격 경로(prices_path)가 필요합니다")
		}
	case MarketDataProviderHTML:
		if !strings.Contains(c.BaseURL, "{sku}") {
			return apperrors.New(apperrors.InvalidInput, "HTML 공급자의 주소(base_url)에는 '{sku}' 자리표시자가 있어야 합니다")
		}
		if strings.TrimSpace(c.PriceSelector) == "" {
			return apperrors.New(apperrors.InvalidInput, "HTML 공급자는 가격 CSS 선택자(price_selector)가 필요합니다")
		}
	}

	return nil
}

// CatalogConfig 커머스 카탈로그 설정
type CatalogConfig struct {
	// CSVFile 플랫폼에서 내보낸 카탈로그 CSV 경로. 비어 있으면 요청 본문의 카탈로그만 사용합니다.
	CSVFile string `json:"csv_file" validate:"omitempty,file"`
}

// SchedulerConfig 주기 작업 설정. 빈 표현식은 해당 작업을 비활성화합니다.
type SchedulerConfig struct {
	RefreshSpec string `json:"refresh_spec"`
	PruneSpec   string `json:"prune_spec"`
}

func (c *SchedulerConfig) validate(marketDataEnabled bool) error {
	if c.RefreshSpec != "" {
		if !marketDataEnabled {
			return apperrors.New(apperrors.InvalidInput, "시장 데이터 공급자(market_data.provider)가 없으면 갱신 작업(refresh_spec)을 설정할 수 없습니다")
		}
		if err := cronx.Validate(c.RefreshSpec); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "갱신 작업(refresh_spec)의 cron 표현식이 유효하지 않습니다")
		}
	}
	if c.PruneSpec != "" {
		if err := cronx.Validate(c.PruneSpec); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "세션 정리 작업(prune_spec)의 cron 표현식이 유효하지 않습니다")
		}
	}
	return nil
}

// APIConfig REST API 서버 설정
type APIConfig struct {
	ListenPort     int             `json:"listen_port" validate:"min=1,max=65535"`
	TLSServer      bool            `json:"tls_server"`
	TLSCertFile    string          `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile     string          `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
	RequestTimeout time.Duration   `json:"request_timeout" validate:"gt=0"`
	BodyLimit      string          `json:"body_limit" validate:"required"`
	RateLimit      RateLimitConfig `json:"rate_limit"`
	CORS           CORSConfig      `json:"cors"`
}

func (c *APIConfig) validate(v *validator.Validate) error {
	if err := checkStruct(v, c, "API 서버(api)"); err != nil {
		return err
	}
	return c.CORS.validate(v)
}

// RateLimitConfig IP별 요청 속도 제한 설정
type RateLimitConfig struct {
	RequestsPerSecond float64 `json:"requests_per_second" validate:"gt=0"`
	Burst             int     `json:"burst" validate:"min=1"`
}

// CORSConfig 교차 출처 리소스 공유 정책
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"min=1,dive,cors_origin"`
}

func (c *CORSConfig) validate(v *validator.Validate) error {
	if len(c.AllowOrigins) > 1 {
		for _, origin := range c.AllowOrigins {
			if origin == "*" {
				return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
			}
		}
	}
	return checkStruct(v, c, "CORS(api.cors)")
}
