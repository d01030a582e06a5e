// Package service 애플리케이션을 구성하는 서비스의 공통 생명주기 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 종료 신호(serviceStopCtx)를 받을 때까지 동작하는 백그라운드 서비스입니다.
//
// 호출자는 Start 전에 serviceStopWG.Add(1)을 호출하고, 서비스는 정리를 마친 뒤(또는 시작에 실패하면 즉시) Done을 호출합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
