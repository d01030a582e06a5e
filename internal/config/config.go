package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
)

const (
	// AppName 애플리케이션 식별자입니다. 로그 파일명과 기본 설정 파일명에 사용됩니다.
	AppName string = "price-watchdog"

	// DefaultFilename 실행 인자로 경로가 주어지지 않았을 때 읽는 설정 파일입니다.
	DefaultFilename = AppName + ".json"

	// envPrefix 환경 변수 접두사. 이중 언더스코어(__)는 계층 구분자입니다.
	// 예: PRICEWATCH_ENRICHMENT__BATCH_SIZE -> enrichment.batch_size
	envPrefix = "PRICEWATCH_"
)

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 기본값, 설정 파일, 환경 변수 순서로 병합한 뒤 검증된 AppConfig를 반환합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값
	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일
	if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
	}

	// 3. 환경 변수 (최우선)
	if err := k.Load(env.Provider(envPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	var cfg AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true, // 구조체에 없는 키는 오타로 간주한다.
			WeaklyTypedInput: true,
			Result:           &cfg,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 구조체로 변환하는데 실패했습니다")
	}

	if err := cfg.validate(newValidator()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &cfg, nil
}

func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// newDefaultConfig 설정 파일에 값이 없을 때 적용되는 기본값입니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		Debug: false,
		Analysis: AnalysisConfig{
			AnomalyThresholdPercent: 50,
			MinCorrelationOverlap:   2,
			MinCompetingSuppliers:   2,
			SessionTTL:              24 * time.Hour,
			MaxSessions:             100,
		},
		Enrichment: EnrichmentConfig{
			BatchSize:            50,
			MaxConcurrentBatches: 5,
			ItemConcurrency:      10,
			BatchDelay:           200 * time.Millisecond,
			CacheSize:            32,
			CacheTTL:             10 * time.Minute,
		},
		MarketData: MarketDataConfig{
			Provider:            MarketDataProviderNone,
			APIKeyHeader:        "X-API-Key",
			PricesPath:          "competitors.#.price",
			Timeout:             10 * time.Second,
			RequestsPerSecond:   5,
			Burst:               5,
			MaxRetries:          2,
			RetryDelay:          time.Second,
			PositionBandPercent: 5,
		},
		Scheduler: SchedulerConfig{
			PruneSpec: "0 0 * * * *",
		},
		API: APIConfig{
			ListenPort:     2443,
			RequestTimeout: 60 * time.Second,
			BodyLimit:      "10M",
			RateLimit: RateLimitConfig{
				RequestsPerSecond: 20,
				Burst:             40,
			},
			CORS: CORSConfig{
				AllowOrigins: []string{"*"},
			},
		},
	}
}
