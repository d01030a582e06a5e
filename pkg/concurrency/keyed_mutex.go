// Package concurrency 키 단위 동기화 도구를 제공합니다.
package concurrency

import (
	"sync"
)

// KeyedMutex 키마다 독립적인 Mutex를 제공합니다.
//
// 서로 다른 키에 대한 임계 구역은 병렬로 실행되며, 아무도 잡고 있지 않은 키의 항목은
// 참조 카운트가 0이 되는 즉시 맵에서 제거됩니다.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedEntry
	pool  sync.Pool
}

type keyedEntry struct {
	mu       sync.Mutex
	refCount int
}

// NewKeyedMutex 새로운 KeyedMutex를 생성합니다.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{
		locks: make(map[string]*keyedEntry),
		pool: sync.Pool{
			New: func() any { return &keyedEntry{} },
		},
	}
}

// Len 락을 보유 중이거나 대기 중인 키의 개수를 반환합니다.
func (km *KeyedMutex) Len() int {
	km.mu.Lock()
	defer km.mu.Unlock()

	return len(km.locks)
}

// Lock key에 대한 락을 획득할 때까지 대기합니다.
func (km *KeyedMutex) Lock(key string) {
	km.mu.Lock()
	e := km.acquire(key)
	km.mu.Unlock()

	e.mu.Lock()
}

// TryLock key에 대한 락을 대기 없이 시도합니다.
// true를 반환한 경우에만 Unlock을 호출해야 합니다.
func (km *KeyedMutex) TryLock(key string) bool {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		e = km.acquire(key)
		e.mu.Lock()
		return true
	}

	if !e.mu.TryLock() {
		return false
	}
	e.refCount++

	return true
}

// Unlock key에 대한 락을 해제합니다. 잠기지 않은 키를 해제하면 panic이 발생합니다.
func (km *KeyedMutex) Unlock(key string) {
	km.mu.Lock()
	defer km.mu.Unlock()

	e, ok := km.locks[key]
	if !ok {
		panic("concurrency: 잠기지 않은 키의 잠금 해제 시도: " + key)
	}

	e.mu.Unlock()

	e.refCount--
	if e.refCount <= 0 {
		delete(km.locks, key)
		km.pool.Put(e)
	}
}

// acquire km.mu를 보유한 상태에서 호출해야 합니다.
func (km *KeyedMutex) acquire(key string) *keyedEntry {
	e, ok := km.locks[key]
	if !ok {
		e = km.pool.Get().(*keyedEntry)
		e.refCount = 0
		km.locks[key] = e
	}
	e.refCount++

	return e
}
