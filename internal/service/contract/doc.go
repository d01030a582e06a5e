// Package contract 가격 감시 서비스의 컴포넌트들이 공유하는 데이터 모델을 정의합니다.
//
// JSON 필드명과 Status 값은 내보내기 파일과 외부 도구가 의존하는 호환성 표면이므로 변경하지 않습니다.
package contract
