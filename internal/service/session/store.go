package session

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/pkg/errors"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/classifier"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/service/contract"
	"github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/concurrency"
	applog "github.com/rakeshescentual/supplier-price-watchdog-sub002/pkg/log"
)

const component = "session"

// DefaultMaxSessions 보관할 수 있는 최대 세션 수
const DefaultMaxSessions = 100

// Store 분석 세션 저장소입니다.
//
// 맵 접근은 mu로, 세션 하나의 읽기/수정은 세션 ID 단위 락으로 직렬화합니다.
// 서로 다른 세션의 수정은 병렬로 진행됩니다.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	locks *concurrency.KeyedMutex

	maxSessions int
	now         func() time.Time
}

// NewStore 새로운 Store를 생성합니다. maxSessions가 0 이하이면 기본값을 사용합니다.
func NewStore(maxSessions int) *Store {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Store{
		sessions:    make(map[string]*Session),
		locks:       concurrency.NewKeyedMutex(),
		maxSessions: maxSessions,
		now:         time.Now,
	}
}

// Create 분류 결과로 새 세션을 만들고 복사본을 반환합니다.
// 보관 한도에 도달하면 보강이 진행 중이지 않은 세션 중 가장 오래 갱신되지 않은 것을 제거합니다.
func (s *Store) Create(label string, items []*contract.PriceItem, rejected []classifier.RejectedRecord) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:         uuid.NewString(),
		Label:      label,
		CreatedAt:  now,
		UpdatedAt:  now,
		Items:      contract.CloneItems(items),
		Rejected:   slices.Clone(rejected),
		Enrichment: EnrichmentStatus{State: EnrichmentIdle, Total: len(items)},
	}
	if sess.Items == nil {
		sess.Items = []*contract.PriceItem{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.sessions) >= s.maxSessions {
		if !s.evictOldestLocked() {
			return nil, apperrors.Newf(apperrors.Unavailable, "보관 가능한 세션 수(%d)를 초과했습니다. 진행 중인 보강이 끝난 뒤 다시 시도하세요", s.maxSessions)
		}
	}
	s.sessions[sess.ID] = sess

	return sess.clone(), nil
}

// evictOldestLocked mu를 잡은 상태에서 호출해야 합니다.
func (s *Store) evictOldestLocked() bool {
	var oldest *Session
	for _, sess := range s.sessions {
		if !s.locks.TryLock(sess.ID) {
			continue
		}
		running := sess.Enrichment.State == EnrichmentRunning
		updatedAt := sess.UpdatedAt
		s.locks.Unlock(sess.ID)

		if running {
			continue
		}
		if oldest == nil || updatedAt.Before(oldest.UpdatedAt) {
			oldest = sess
		}
	}
	if oldest == nil {
		return false
	}

	delete(s.sessions, oldest.ID)
	applog.WithComponentAndFields(component, applog.Fields{
		"session_id":   oldest.ID,
		"max_sessions": s.maxSessions,
	}).Info("세션 보관 한도에 도달하여 가장 오래된 세션을 제거했습니다")

	return true
}

func (s *Store) lookup(id string) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, apperrors.Newf(apperrors.NotFound, "분석 세션을 찾을 수 없습니다 (id=%s)", id)
	}
	return sess, nil
}

// Get 세션의 복사본을 반환합니다.
func (s *Store) Get(id string) (*Session, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	return sess.clone(), nil
}

// List 세션 요약 목록을 최근 생성 순으로 반환합니다.
func (s *Store) List() []Summary {
	s.mu.RLock()
	all := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		all = append(all, sess)
	}
	s.mu.RUnlock()

	summaries := make([]Summary, 0, len(all))
	for _, sess := range all {
		s.locks.Lock(sess.ID)
		summaries = append(summaries, sess.summary())
		s.locks.Unlock(sess.ID)
	}

	slices.SortFunc(summaries, func(a, b Summary) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return summaries
}

// Update 세션 락을 잡은 상태에서 fn으로 세션을 수정합니다.
// fn이 에러를 반환하면 UpdatedAt은 바뀌지 않으며, fn이 세션을 일부 수정했더라도 되돌리지 않습니다.
func (s *Store) Update(id string, fn func(*Session) error) error {
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	if err := fn(sess); err != nil {
		return err
	}
	sess.UpdatedAt = s.now()

	return nil
}

// Delete 세션을 제거합니다. 보강이 진행 중이면 Conflict 에러를 반환합니다.
func (s *Store) Delete(id string) error {
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}

	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	if sess.Enrichment.State == EnrichmentRunning {
		return apperrors.Newf(apperrors.Conflict, "보강이 진행 중인 세션은 삭제할 수 없습니다 (id=%s)", id)
	}

	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()

	return nil
}

// Len 보관 중인 세션 수를 반환합니다.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

// Prune ttl 동안 갱신되지 않은 세션을 제거하고 제거한 수를 반환합니다.
// 보강이 진행 중인 세션은 제거하지 않습니다.
func (s *Store) Prune(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if !s.locks.TryLock(id) {
			continue
		}
		stale := sess.UpdatedAt.Before(cutoff) && sess.Enrichment.State != EnrichmentRunning
		s.locks.Unlock(id)

		if stale {
			delete(s.sessions, id)
			removed++
		}
	}

	if removed > 0 {
		applog.WithComponentAndFields(component, applog.Fields{
			"removed":   removed,
			"remaining": len(s.sessions),
			"ttl":       ttl.String(),
		}).Info("오래된 분석 세션을 정리했습니다")
	}

	return removed
}
