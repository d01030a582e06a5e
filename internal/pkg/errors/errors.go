// Package errors 가격 감시 서비스 전반에서 사용하는 타입 기반 에러를 제공합니다.
//
// 모든 에러는 ErrorType으로 분류되며, 호출 계층을 따라 Wrap으로 문맥을 누적합니다.
// HTTP 계층은 UnderlyingType으로 근본 타입을 찾아 응답 코드를 결정하고,
// 배치 계층은 Is로 실패 성격(입력 오류 / 외부 조회 실패 / 취소)을 구분합니다.
//
// # 사용 예
//
//	err := errors.New(errors.InvalidInput, "SKU가 비어 있습니다")
//
//	if err != nil {
//	    return errors.Wrap(err, errors.ExecutionFailed, "시장 가격 조회 실패")
//	}
//
//	if errors.Is(err, errors.NotFound) {
//	    // 분석 세션이 존재하지 않음
//	}
//
// # 계층별 타입 선택
//
//   - 업로드 레코드 검증: InvalidInput
//   - 분석 세션 / 카탈로그 조회 실패: NotFound
//   - 외부 시장 데이터 조회, 배치 전체 실패: ExecutionFailed
//   - 응답 본문 파싱: ParsingFailed
//   - 파일, 네트워크, 설정 로드: System
//   - 동일 세션에 대한 중복 보강 요청: Conflict
package errors

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// AppError 타입, 메시지, 원인 에러, 생성 시점의 호출 스택을 함께 보관하는 에러입니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	stack   []StackFrame
}

// Type 에러의 타입을 반환합니다.
func (e *AppError) Type() ErrorType {
	return e.errType
}

// Message 원인 에러를 제외한 메시지를 반환합니다.
func (e *AppError) Message() string {
	return e.message
}

// Stack 에러 생성 시점에 수집된 호출 스택을 반환합니다.
func (e *AppError) Stack() []StackFrame {
	return e.stack
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.errType, e.message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// Format %+v 동사에 대해 에러 체인과 스택을 함께 출력합니다.
//
// 스택은 체인의 경계(Root 에러 또는 외부 에러를 감싼 AppError)에서만 출력하여
// 같은 스택이 여러 번 찍히지 않도록 합니다.
func (e *AppError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "[%s] %s", e.errType, e.message)

			var target *AppError
			if (e.cause == nil || !errors.As(e.cause, &target)) && len(e.stack) > 0 {
				fmt.Fprint(s, "\nStack trace:")
				for _, frame := range e.stack {
					funcName := frame.Function
					if idx := strings.LastIndex(funcName, "/"); idx != -1 {
						funcName = funcName[idx+1:]
					}
					fmt.Fprintf(s, "\n\t%s:%d %s", frame.File, frame.Line, funcName)
				}
			}

			if e.cause != nil {
				fmt.Fprint(s, "\nCaused by:\n")
				if formatter, ok := e.cause.(fmt.Formatter); ok {
					formatter.Format(s, verb)
				} else {
					fmt.Fprintf(s, "\t%v", e.cause)
				}
			}
			return
		}
		fallthrough
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// New 새로운 에러를 생성합니다.
func New(errType ErrorType, message string) error {
	return &AppError{
		errType: errType,
		message: message,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Newf 포맷 문자열로 메시지를 구성하여 새로운 에러를 생성합니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrap 기존 에러에 타입과 문맥을 덧붙입니다. err이 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: message,
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Wrapf 포맷 문자열로 문맥을 구성하여 기존 에러를 감쌉니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &AppError{
		errType: errType,
		message: fmt.Sprintf(format, args...),
		cause:   err,
		stack:   captureStack(defaultCallerSkip),
	}
}

// Is 에러 체인 어딘가에 errType의 AppError가 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.errType == errType {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// As 표준 errors.As의 별칭입니다.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// RootCause 체인의 가장 안쪽 에러를 반환합니다.
func RootCause(err error) error {
	if err == nil {
		return nil
	}
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

// UnderlyingType 체인에서 가장 안쪽(Root에 가까운) AppError의 타입을 반환합니다.
//
// 체인에 AppError가 없거나 err이 nil이면 Unknown을 반환합니다.
//
//	err := Wrap(New(NotFound, "session not found"), Internal, "export failed")
//	UnderlyingType(err) // NotFound
func UnderlyingType(err error) ErrorType {
	last := Unknown
	for err != nil {
		if appErr, ok := err.(*AppError); ok {
			last = appErr.errType
		}
		err = errors.Unwrap(err)
	}
	return last
}
