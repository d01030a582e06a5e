package contract

import (
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
)

// Status 가격 비교 결과 상태입니다. (oldPrice, newPrice)와 이상 변동 임계값으로만 결정됩니다.
type Status string

const (
	StatusIncreased    Status = "increased"
	StatusDecreased    Status = "decreased"
	StatusUnchanged    Status = "unchanged"
	StatusNew          Status = "new"
	StatusDiscontinued Status = "discontinued"
	StatusAnomaly      Status = "anomaly"
)

// AllStatuses 요약 집계와 내보내기에 사용하는 고정 순서의 상태 목록입니다.
var AllStatuses = []Status{
	StatusIncreased,
	StatusDecreased,
	StatusUnchanged,
	StatusNew,
	StatusDiscontinued,
	StatusAnomaly,
}

func (s Status) IsValid() bool {
	switch s {
	case StatusIncreased, StatusDecreased, StatusUnchanged, StatusNew, StatusDiscontinued, StatusAnomaly:
		return true
	default:
		return false
	}
}

func (s Status) Validate() error {
	if !s.IsValid() {
		return apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 가격 상태입니다: '%s'", string(s))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// PricePosition 경쟁사 평균 대비 가격 위치입니다.
type PricePosition string

const (
	PositionLow     PricePosition = "low"
	PositionAverage PricePosition = "average"
	PositionHigh    PricePosition = "high"
)

func (p PricePosition) IsValid() bool {
	switch p {
	case PositionLow, PositionAverage, PositionHigh:
		return true
	default:
		return false
	}
}

func (p PricePosition) String() string {
	return string(p)
}
