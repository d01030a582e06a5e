package handler

import (
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/constants"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/httputil"
)

// NewErrInvalidBody 요청 본문을 파싱할 수 없을 때의 에러를 생성합니다.
func NewErrInvalidBody() error {
	return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
}

// NewErrInvalidCatalogCSV 카탈로그 CSV 본문을 읽을 수 없을 때의 에러를 생성합니다.
func NewErrInvalidCatalogCSV(err error) error {
	return httputil.NewBadRequestError("카탈로그 CSV를 읽을 수 없습니다: " + err.Error())
}

// NewErrEmptyAnalysis 두 가격표가 모두 비어 있을 때의 에러를 생성합니다.
func NewErrEmptyAnalysis() error {
	return httputil.NewBadRequestError("old와 new 중 적어도 하나의 가격표가 필요합니다")
}
