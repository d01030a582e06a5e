package response

// ErrorResponse API 오류 응답
type ErrorResponse struct {
	// ResultCode HTTP 상태 코드 (예: 400, 404, 500)
	ResultCode int `json:"result_code" example:"404"`

	// Message 에러 메시지
	Message string `json:"message" example:"분석 세션을 찾을 수 없습니다 (id=0b7d...)"`
}
