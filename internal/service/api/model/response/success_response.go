package response

// SuccessResponse 본문 없는 작업의 성공 응답
type SuccessResponse struct {
	// ResultCode 처리 결과 코드 (0: 성공)
	ResultCode int `json:"result_code" example:"0"`

	// Message 처리 결과 메시지
	Message string `json:"message,omitempty" example:"성공"`
}
