package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/constants"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/httputil"
)

var (
	// ErrRateLimitExceeded 허용된 요청 빈도를 초과한 클라이언트에게 반환하는 429 에러입니다.
	ErrRateLimitExceeded = httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)

	// ErrUnsupportedMediaType 지원하지 않는 Content-Type으로 요청했을 때 반환하는 415 에러입니다.
	ErrUnsupportedMediaType = echo.NewHTTPError(http.StatusUnsupportedMediaType, constants.ErrMsgUnsupportedMediaType)
)

// newErrPanicRecovered 캡처된 패닉 값을 내부 오류로 래핑합니다.
func newErrPanicRecovered(r any) error {
	if err, ok := r.(error); ok {
		return apperrors.Wrap(err, apperrors.Internal, "요청 처리 중 패닉이 발생했습니다")
	}
	return apperrors.New(apperrors.Internal, fmt.Sprintf("요청 처리 중 패닉이 발생했습니다: %v", r))
}
