package middleware

import (
	"mime"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/constants"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

// ValidateContentType 요청 본문의 Content-Type이 허용 목록 중 하나인지 검증하는 미들웨어를 반환합니다.
//
// 본문이 없는 요청(GET, DELETE 등)은 검증하지 않습니다.
// MIME 파라미터(charset 등)는 무시하고 대소문자 구분 없이 비교합니다.
func ValidateContentType(allowed ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.ContentLength == 0 {
				return next(c)
			}

			contentType := req.Header.Get(echo.HeaderContentType)
			if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
				for _, a := range allowed {
					if strings.EqualFold(mediaType, a) {
						return next(c)
					}
				}
			}

			applog.WithComponentAndFields(constants.ComponentMiddlewareContentType, applog.Fields{
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"method":     req.Method,
				"path":       req.URL.Path,
				"expected":   allowed,
				"actual":     contentType,
				"remote_ip":  c.RealIP(),
			}).Warn(constants.LogMsgUnsupportedContentType)

			return ErrUnsupportedMediaType
		}
	}
}
