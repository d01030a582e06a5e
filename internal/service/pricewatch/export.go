package pricewatch

import (
	"fmt"
	"io"
	"strings"

	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/export"
)

// Format 내보내기 파일 형식입니다.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat 대소문자를 무시하고 형식 이름을 해석합니다. 빈 문자열은 CSV입니다.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 내보내기 형식입니다: '%s' (csv, xlsx 중 하나)", s)
	}
}

// ContentType 형식에 맞는 Content-Type을 반환합니다.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return export.ContentTypeXLSX
	}
	return export.ContentTypeCSV
}

// Filename 세션 ID로 다운로드 파일 이름을 만듭니다.
func (f Format) Filename(id string) string {
	return fmt.Sprintf("price-changes-%s.%s", id, f)
}

// Export 세션 항목을 format 형식으로 w에 씁니다.
func (s *Service) Export(id string, format Format, w io.Writer) error {
	sess, err := s.store.Get(id)
	if err != nil {
		return err
	}

	switch format {
	case FormatCSV:
		err = export.WriteCSV(w, sess.Items)
	case FormatXLSX:
		err = export.WriteXLSX(w, sess.Items)
	default:
		return apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 내보내기 형식입니다: '%s'", format)
	}
	if err != nil {
		return err
	}
	s.metrics.observeExport(format)

	return nil
}
