// Package request v1 API 요청 본문 모델을 정의합니다.
package request

import "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"

// AnalysisRequest 이전/신규 공급사 가격표 비교 요청
//
// 각 행의 값 검증(빈 SKU, 음수 가격, 중복 SKU 등)은 분류 단계에서 수행되며,
// 문제가 있는 행은 응답의 rejected 목록에 사유와 함께 담깁니다.
type AnalysisRequest struct {
	// 세션 이름 (선택)
	Label string `json:"label" validate:"max=200" example:"2026 Q4 공급사 가격표"`
	// 이전 가격표
	Old []contract.Record `json:"old" validate:"max=50000"`
	// 신규 가격표
	New []contract.Record `json:"new" validate:"max=50000"`
}

// Empty 두 가격표가 모두 비어 있으면 true를 반환합니다.
func (r *AnalysisRequest) Empty() bool {
	return len(r.Old) == 0 && len(r.New) == 0
}
