package request

import "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"

// CatalogMergeRequest 커머스 카탈로그 대조 요청
//
// records를 생략하면 서버에 설정된 카탈로그 파일(catalog.csv_file)을 사용합니다.
type CatalogMergeRequest struct {
	// 카탈로그 행 목록
	Records []contract.CatalogRecord `json:"records" validate:"max=100000"`
}
