// Package response v1 API 응답 모델을 정의합니다.
package response

import "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/session"

// AnalysisResponse 분석 생성 결과
type AnalysisResponse struct {
	// 생성된 세션
	Session *session.Session `json:"session"`
	// 일부 행이 거부되었을 때의 안내 메시지
	Warning string `json:"warning,omitempty" example:"2개 행이 유효하지 않아 제외되었습니다"`
}

// AnalysisListResponse 세션 목록
type AnalysisListResponse struct {
	Count    int               `json:"count" example:"1"`
	Sessions []session.Summary `json:"sessions"`
}
