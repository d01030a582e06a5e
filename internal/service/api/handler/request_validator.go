package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/httputil"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// getValidator 초기화된 validator 인스턴스를 반환합니다.
func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())

		// 에러 메시지에는 클라이언트가 보낸 JSON 필드 이름을 사용한다.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})

	return validate
}

// RequestValidator echo.Validator 구현체입니다. c.Validate()가 호출되면 구조체의 validate 태그로 검증합니다.
type RequestValidator struct{}

// NewRequestValidator RequestValidator를 생성합니다.
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

// Validate 검증에 실패하면 첫 번째 위반 항목을 설명하는 400 에러를 반환합니다.
func (v *RequestValidator) Validate(i interface{}) error {
	if err := ValidateRequest(i); err != nil {
		return httputil.NewBadRequestError(FormatValidationError(err))
	}
	return nil
}

// ValidateRequest 구조체의 validate 태그를 기반으로 검증을 수행합니다.
func ValidateRequest(req interface{}) error {
	return getValidator().Struct(req)
}

// FormatValidationError validator 에러를 한글 메시지로 변환합니다.
// 여러 검증 에러가 있을 경우 첫 번째 에러만 반환합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	return formatFieldError(validationErrors[0])
}

// formatFieldError 개별 필드 에러를 한글 메시지로 변환합니다.
// 필드 이름은 중첩 경로(예: old[0].sku)를 포함합니다.
func formatFieldError(fieldErr validator.FieldError) string {
	fieldName := fieldPath(fieldErr)
	isString := fieldErr.Kind() == reflect.String
	isCollection := fieldErr.Kind() == reflect.Slice || fieldErr.Kind() == reflect.Map

	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s는 필수입니다", fieldName)
	case "min":
		switch {
		case isString:
			return fmt.Sprintf("%s는 최소 %s자 이상이어야 합니다", fieldName, fieldErr.Param())
		case isCollection:
			return fmt.Sprintf("%s는 최소 %s개 이상이어야 합니다", fieldName, fieldErr.Param())
		}
		return fmt.Sprintf("%s는 최소 %s 이상이어야 합니다", fieldName, fieldErr.Param())
	case "max":
		switch {
		case isString:
			return fmt.Sprintf("%s는 최대 %s자까지 입력 가능합니다", fieldName, fieldErr.Param())
		case isCollection:
			return fmt.Sprintf("%s는 최대 %s개까지 입력 가능합니다", fieldName, fieldErr.Param())
		}
		return fmt.Sprintf("%s는 최대 %s까지 입력 가능합니다", fieldName, fieldErr.Param())
	case "gt":
		return fmt.Sprintf("%s는 %s보다 커야 합니다", fieldName, fieldErr.Param())
	case "gte":
		return fmt.Sprintf("%s는 %s 이상이어야 합니다", fieldName, fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s는 [%s] 중 하나여야 합니다", fieldName, fieldErr.Param())
	case "url":
		return fmt.Sprintf("%s는 올바른 URL 형식이어야 합니다", fieldName)
	default:
		return fmt.Sprintf("%s 검증 실패: %s", fieldName, fieldErr.Tag())
	}
}

// fieldPath 최상위 구조체 이름을 뺀 필드 경로를 반환합니다.
func fieldPath(fieldErr validator.FieldError) string {
	ns := fieldErr.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fieldErr.Field()
}
