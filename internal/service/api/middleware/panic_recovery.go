package middleware

import (
	"net/http"
	"runtime"

	"github.com/labstack/echo/v4"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/constants"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

// stackBufferSize panic 발생 시 스택 트레이스를 저장할 버퍼 크기 (4KB)
const stackBufferSize = 4 << 10

// PanicRecovery 핸들러에서 발생한 panic을 복구하고 스택 트레이스와 함께 기록한 뒤
// 에러 핸들러로 500 응답을 넘기는 미들웨어를 반환합니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				// http.ErrAbortHandler는 서버가 연결을 끊도록 그대로 전파한다.
				if r == http.ErrAbortHandler {
					panic(r)
				}

				err = newErrPanicRecovered(r)

				stack := make([]byte, stackBufferSize)
				length := runtime.Stack(stack, false)

				fields := applog.Fields{
					"error":  err,
					"method": c.Request().Method,
					"path":   c.Request().URL.Path,
					"stack":  string(stack[:length]),
				}
				if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
					fields["request_id"] = requestID
				}

				applog.WithComponentAndFields(constants.ComponentMiddlewarePanicRecovery, fields).Error(constants.LogMsgPanicRecovered)
			}()

			return next(c)
		}
	}
}
