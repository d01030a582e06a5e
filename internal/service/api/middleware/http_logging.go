package middleware

import (
	"net/url"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/constants"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/strutil"
)

// defaultBytesIn Content-Length 헤더가 없을 때(Chunked 전송 등) bytes_in 필드에 기록하는 값입니다.
const defaultBytesIn = "0"

// HTTPLogger HTTP 요청/응답을 구조화된 로그로 기록하는 미들웨어를 반환합니다.
//
// 요청 정보(IP, 메서드, URI, User-Agent), 응답 정보(상태 코드, 크기, Request ID)와 처리 시간을 남기며,
// 민감한 쿼리 파라미터(api_key, token 등)는 마스킹합니다.
// 5xx 응답은 Error, 4xx 응답은 Warn, 그 외는 Info 레벨로 기록합니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return httpLoggerHandler(c, next)
		}
	}
}

func httpLoggerHandler(c echo.Context, next echo.HandlerFunc) error {
	req := c.Request()
	res := c.Response()
	start := time.Now()

	// 패닉이 전파되는 경우에도 로그를 남긴다.
	defer func() {
		latency := time.Since(start)

		path := req.URL.Path
		if path == "" {
			path = "/"
		}

		bytesIn := req.Header.Get(echo.HeaderContentLength)
		if bytesIn == "" {
			bytesIn = defaultBytesIn
		}

		entry := applog.WithFields(applog.Fields{
			"method":   req.Method,
			"path":     path,
			"uri":      maskSensitiveQueryParams(req.RequestURI),
			"host":     req.Host,
			"protocol": req.Proto,

			"remote_ip":  c.RealIP(),
			"user_agent": req.UserAgent(),
			"referer":    req.Referer(),

			"status":    res.Status,
			"bytes_in":  bytesIn,
			"bytes_out": strconv.FormatInt(res.Size, 10),

			"latency":       strconv.FormatInt(latency.Microseconds(), 10),
			"latency_human": latency.String(),

			"request_id": res.Header().Get(echo.HeaderXRequestID),
		})

		switch {
		case res.Status >= 500:
			entry.Error("HTTP 요청")
		case res.Status >= 400:
			entry.Warn("HTTP 요청")
		default:
			entry.Info("HTTP 요청")
		}
	}()

	// 상태 코드를 기록하기 위해 에러는 여기서 에러 핸들러로 넘긴다.
	if err := next(c); err != nil {
		c.Error(err)
	}

	return nil
}

// maskSensitiveQueryParams URI의 민감한 쿼리 파라미터 값을 strutil.Mask로 가립니다.
// URI 파싱에 실패하면 원본을 반환합니다.
//
//	입력: "/api/v1/analyses?api_key=secret123&id=100"
//	출력: "/api/v1/analyses?api_key=secr%2A%2A%2A&id=100"
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	q := u.Query()
	masked := false
	for _, param := range constants.SensitiveQueryParams {
		if q.Has(param) {
			q.Set(param, strutil.Mask(q.Get(param)))
			masked = true
		}
	}

	if !masked {
		return uri
	}

	u.RawQuery = q.Encode()
	return u.String()
}
