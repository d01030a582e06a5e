package httputil

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/constants"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/model/response"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

// StatusCode AppError 타입을 HTTP 상태 코드로 변환합니다.
// 체인의 가장 바깥쪽 AppError 타입을 기준으로 합니다.
func StatusCode(errType apperrors.ErrorType) int {
	switch errType {
	case apperrors.InvalidInput, apperrors.ParsingFailed:
		return http.StatusBadRequest
	case apperrors.Unauthorized:
		return http.StatusUnauthorized
	case apperrors.Forbidden:
		return http.StatusForbidden
	case apperrors.NotFound:
		return http.StatusNotFound
	case apperrors.Conflict:
		return http.StatusConflict
	case apperrors.ExecutionFailed:
		return http.StatusBadGateway
	case apperrors.Timeout:
		return http.StatusGatewayTimeout
	case apperrors.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// resolve 에러를 응답 상태 코드와 메시지로 변환합니다.
func resolve(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		switch m := he.Message.(type) {
		case string:
			message = m
		case response.ErrorResponse:
			message = m.Message
		}
		// 라우터가 만든 기본 404 메시지는 한국어 메시지로 통일한다.
		if he.Code == http.StatusNotFound && message == http.StatusText(http.StatusNotFound) {
			message = constants.ErrMsgNotFound
		}
		if he.Code == http.StatusRequestEntityTooLarge {
			message = constants.ErrMsgRequestEntityTooLarge
		}
		return he.Code, message
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		code := StatusCode(appErr.Type())
		if code == http.StatusInternalServerError {
			// 내부 오류의 상세 내용은 로그에만 남긴다.
			return code, constants.ErrMsgInternalServer
		}
		return code, appErr.Message()
	}

	return http.StatusInternalServerError, constants.ErrMsgInternalServer
}

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// echo.HTTPError와 AppError를 표준 ErrorResponse JSON 형식으로 변환하여 반환합니다.
// 에러 발생 시 상태 코드에 맞는 로그 레벨(Error/Warn)로 상세 정보를 기록합니다.
func ErrorHandler(err error, c echo.Context) {
	code, message := resolve(err)

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이미 응답이 전송된 경우 추가 응답을 시도하지 않는다.
	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}
