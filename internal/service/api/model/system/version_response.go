package system

// VersionResponse 서버 버전 정보 응답
type VersionResponse struct {
	// 릴리스 버전 (태그가 없으면 dev)
	Version string `json:"version" example:"v1.2.0"`
	// Git 커밋 해시 (short)
	Commit string `json:"commit" example:"abc1234"`
	// 빌드 시간(UTC, RFC3339)
	BuildDate string `json:"build_date" example:"2026-10-01T14:00:00Z"`
	// CI/CD 빌드 번호
	BuildNumber string `json:"build_number" example:"100"`
	// 컴파일러 버전
	GoVersion string `json:"go_version" example:"go1.24.0"`
}
