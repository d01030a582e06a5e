package scheduler

import (
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
)

// ErrMaintainerNotInitialized 서비스 시작 시 주기 작업 대상(Maintainer)이 초기화되지 않았을 때 반환하는 에러입니다.
var ErrMaintainerNotInitialized = apperrors.New(apperrors.Internal, "Maintainer 객체가 초기화되지 않았습니다")

// newErrInvalidCronSpec Cron 표현식이 올바르지 않아 스케줄 등록에 실패했을 때 반환하는 에러를 생성합니다.
func newErrInvalidCronSpec(job, spec string, cause error) error {
	return apperrors.Wrapf(cause, apperrors.InvalidInput, "스케줄 등록 실패: 잘못된 Cron 표현식입니다 (job=%s, spec='%s')", job, spec)
}
