package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/validation"
)

// newValidator 에러 메시지에 JSON 키 이름을 사용하는 Validator를 생성합니다.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("cors_origin", validateCORSOrigin); err != nil {
		panic(fmt.Sprintf("'cors_origin' 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return v
}

func validateCORSOrigin(fl validator.FieldLevel) bool {
	return validation.ValidateCORSOrigin(fl.Field().String()) == nil
}

// checkStruct 태그 규칙으로 검증하고 첫 번째 위반을 읽기 쉬운 InvalidInput 에러로 변환합니다.
func checkStruct(v *validator.Validate, s any, contextName string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유효성 검증에 실패했습니다", contextName))
	}

	fe := validationErrors[0]
	switch fe.StructField() {
	case "ListenPort":
		return apperrors.New(apperrors.InvalidInput, "API 서버 포트(listen_port)는 1에서 65535 사이의 값이어야 합니다")
	case "TLSCertFile", "TLSKeyFile":
		if fe.Tag() == "required_if" {
			return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("TLS 서버 활성화 시 %s는 필수입니다", fe.Field()))
		}
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지정된 TLS 파일(%s)을 찾을 수 없습니다: '%v'", fe.Field(), fe.Value()))
	case "CSVFile":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("카탈로그 CSV 파일(csv_file)을 찾을 수 없습니다: '%v'", fe.Value()))
	case "Provider":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지원하지 않는 시장 데이터 공급자입니다: '%v' (none, json, html)", fe.Value()))
	}

	if fe.Tag() == "cors_origin" {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port], 예: https://example.com)", fe.Value()))
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s의 설정이 올바르지 않습니다: %s=%v (조건: %s=%s)", contextName, fe.Field(), fe.Value(), fe.Tag(), fe.Param()))
}
