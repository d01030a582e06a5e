package api

import (
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/api/constants"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

var (
	// ErrPriceWatchServiceNotInitialized 서비스 시작 시 가격 감시 서비스가 주입되지 않았을 때 반환하는 에러입니다.
	ErrPriceWatchServiceNotInitialized = apperrors.New(apperrors.Internal, "가격 감시 서비스 객체가 초기화되지 않았습니다")
)

// promErrorLogger 메트릭 수집 중 발생한 에러를 애플리케이션 로거로 기록합니다.
type promErrorLogger struct{}

func (promErrorLogger) Println(v ...interface{}) {
	applog.WithComponent(constants.ComponentService).Error(v...)
}
