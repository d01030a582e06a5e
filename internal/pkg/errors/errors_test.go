package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStd = errors.New("standard error")

// =============================================================================
// 생성 / 래핑
// =============================================================================

func TestNew(t *testing.T) {
	t.Parallel()

	err := New(InvalidInput, "SKU가 비어 있습니다")
	require.Error(t, err)

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, InvalidInput, appErr.Type())
	assert.Equal(t, "SKU가 비어 있습니다", appErr.Message())
	assert.Equal(t, "[InvalidInput] SKU가 비어 있습니다", err.Error())
	assert.NotEmpty(t, appErr.Stack())
	assert.Contains(t, appErr.Stack()[0].Function, "TestNew")
}

func TestNewf(t *testing.T) {
	t.Parallel()

	err := Newf(NotFound, "분석 세션을 찾을 수 없습니다 (id=%s)", "abc")
	assert.Equal(t, "[NotFound] 분석 세션을 찾을 수 없습니다 (id=abc)", err.Error())
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("nil 에러는 nil을 반환한다", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, Wrap(nil, Internal, "무시됨"))
		assert.Nil(t, Wrapf(nil, Internal, "무시됨 %d", 1))
	})

	t.Run("원인 에러가 메시지와 Unwrap에 보존된다", func(t *testing.T) {
		t.Parallel()

		err := Wrap(errStd, ExecutionFailed, "시장 가격 조회 실패")
		assert.Equal(t, "[ExecutionFailed] 시장 가격 조회 실패: standard error", err.Error())
		assert.ErrorIs(t, err, errStd)
		assert.Equal(t, errStd, errors.Unwrap(err))
	})

	t.Run("Wrapf는 포맷 메시지를 사용한다", func(t *testing.T) {
		t.Parallel()

		err := Wrapf(errStd, System, "파일(%s) 읽기 실패", "catalog.csv")
		assert.Equal(t, "[System] 파일(catalog.csv) 읽기 실패: standard error", err.Error())
	})
}

// =============================================================================
// 체인 탐색
// =============================================================================

func TestIs(t *testing.T) {
	t.Parallel()

	err := Wrap(Wrap(New(NotFound, "세션 없음"), Internal, "조회 실패"), ExecutionFailed, "내보내기 실패")

	tests := []struct {
		name    string
		err     error
		errType ErrorType
		want    bool
	}{
		{"최상위 타입", err, ExecutionFailed, true},
		{"중간 타입", err, Internal, true},
		{"가장 안쪽 타입", err, NotFound, true},
		{"체인에 없는 타입", err, Timeout, false},
		{"표준 에러", errStd, Internal, false},
		{"nil", nil, Internal, false},
		{"fmt.Errorf로 감싼 AppError", fmt.Errorf("outer: %w", New(Conflict, "중복")), Conflict, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Is(tt.err, tt.errType))
		})
	}
}

func TestRootCause(t *testing.T) {
	t.Parallel()

	assert.Nil(t, RootCause(nil))
	assert.Equal(t, errStd, RootCause(errStd))
	assert.Equal(t, context.Canceled, RootCause(Wrap(Wrap(context.Canceled, Timeout, "a"), Internal, "b")))
}

func TestUnderlyingType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Unknown, UnderlyingType(nil))
	assert.Equal(t, Unknown, UnderlyingType(errStd))
	assert.Equal(t, NotFound, UnderlyingType(Wrap(New(NotFound, "x"), Internal, "y")))
	assert.Equal(t, Timeout, UnderlyingType(Wrap(context.DeadlineExceeded, Timeout, "x")))
}

func TestAs(t *testing.T) {
	t.Parallel()

	var appErr *AppError
	assert.True(t, As(fmt.Errorf("wrap: %w", New(Unavailable, "점검 중")), &appErr))
	assert.Equal(t, Unavailable, appErr.Type())
	assert.False(t, As(errStd, &appErr))
}

// =============================================================================
// 포맷팅
// =============================================================================

func TestAppError_Format(t *testing.T) {
	t.Parallel()

	err := Wrap(New(InvalidInput, "가격이 음수입니다"), ExecutionFailed, "분류 실패")

	assert.Equal(t, err.Error(), fmt.Sprintf("%s", err))
	assert.Equal(t, err.Error(), fmt.Sprintf("%v", err))
	assert.Equal(t, fmt.Sprintf("%q", err.Error()), fmt.Sprintf("%q", err))

	detailed := fmt.Sprintf("%+v", err)
	assert.True(t, strings.HasPrefix(detailed, "[ExecutionFailed] 분류 실패"))
	assert.Contains(t, detailed, "Caused by:")
	assert.Contains(t, detailed, "[InvalidInput] 가격이 음수입니다")
	// 스택은 체인의 Root에서만 한 번 출력된다.
	assert.Equal(t, 1, strings.Count(detailed, "Stack trace:"))
}

func TestAppError_Format_ExternalCause(t *testing.T) {
	t.Parallel()

	detailed := fmt.Sprintf("%+v", Wrap(errStd, System, "디스크 오류"))
	assert.Contains(t, detailed, "Stack trace:")
	assert.Contains(t, detailed, "\tstandard error")
}

func TestErrorType_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Unknown", Unknown.String())
	assert.Equal(t, "InvalidInput", InvalidInput.String())
	assert.Equal(t, "Unavailable", Unavailable.String())
	assert.Equal(t, "ErrorType(99)", ErrorType(99).String())
	assert.Equal(t, "ErrorType(-1)", ErrorType(-1).String())
}
