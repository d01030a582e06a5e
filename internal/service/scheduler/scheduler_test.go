package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rakeshescentual/supplier-price-watchdog-sub002/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockMaintainer struct {
	mock.Mock
}

func (m *mockMaintainer) RefreshMarketData() int {
	return m.Called().Int(0)
}

func (m *mockMaintainer) Prune() int {
	return m.Called().Int(0)
}

// countingMaintainer 호출 횟수만 기록합니다.
type countingMaintainer struct {
	refreshes atomic.Int32
	prunes    atomic.Int32
	panicOn   bool
}

func (c *countingMaintainer) RefreshMarketData() int {
	c.refreshes.Add(1)
	if c.panicOn {
		panic("refresh failed")
	}
	return 1
}

func (c *countingMaintainer) Prune() int {
	c.prunes.Add(1)
	return 0
}

func checkWaitGroupDone(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("WaitGroup이 타임아웃 내에 완료되지 않았습니다")
	}
}

func TestNewService(t *testing.T) {
	t.Parallel()

	cfg := config.SchedulerConfig{PruneSpec: "0 0 * * * *"}
	m := &mockMaintainer{}

	s := NewService(cfg, m)
	assert.Equal(t, cfg, s.schedulerConfig)
	assert.Equal(t, m, s.maintainer)
	assert.False(t, s.running)

	assert.PanicsWithValue(t, "Maintainer는 필수입니다", func() {
		NewService(cfg, nil)
	})
}

func TestScheduler_RegisterJobs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		cfg           config.SchedulerConfig
		expectedCount int
	}{
		{"작업 없음", config.SchedulerConfig{}, 0},
		{"정리 작업만", config.SchedulerConfig{PruneSpec: "0 0 * * * *"}, 1},
		{"두 작업 모두", config.SchedulerConfig{RefreshSpec: "@every 1h", PruneSpec: "0 */5 * * * *"}, 2},
		{"잘못된 표현식은 건너뜀", config.SchedulerConfig{RefreshSpec: "invalid", PruneSpec: "@daily"}, 1},
		{"5필드 표현식은 지원하지 않음", config.SchedulerConfig{PruneSpec: "*/5 * * * *"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := NewService(tt.cfg, &mockMaintainer{})

			ctx, cancel := context.WithCancel(context.Background())
			wg := &sync.WaitGroup{}
			wg.Add(1)
			require.NoError(t, s.Start(ctx, wg))

			s.runningMu.Lock()
			assert.Len(t, s.cron.Entries(), tt.expectedCount)
			s.runningMu.Unlock()

			cancel()
			checkWaitGroupDone(t, wg)
		})
	}
}

func TestScheduler_Lifecycle(t *testing.T) {
	t.Parallel()

	s := NewService(config.SchedulerConfig{PruneSpec: "@hourly"}, &mockMaintainer{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wg := &sync.WaitGroup{}

	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))
	assert.True(t, s.running)
	assert.NotNil(t, s.cron)

	// 중복 시작은 무시되고 WaitGroup을 바로 해제한다.
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	cancel()
	checkWaitGroupDone(t, wg)

	assert.False(t, s.running)
	assert.Nil(t, s.cron)

	// 중지 후 다시 시작할 수 있다.
	ctx2, cancel2 := context.WithCancel(context.Background())
	wg.Add(1)
	require.NoError(t, s.Start(ctx2, wg))
	assert.True(t, s.running)

	cancel2()
	checkWaitGroupDone(t, wg)
}

func TestScheduler_Start_NilMaintainer(t *testing.T) {
	t.Parallel()

	s := &Scheduler{}

	wg := &sync.WaitGroup{}
	wg.Add(1)
	err := s.Start(context.Background(), wg)

	assert.ErrorIs(t, err, ErrMaintainerNotInitialized)
	assert.False(t, s.running)
	checkWaitGroupDone(t, wg)
}

func TestScheduler_RunsJobs(t *testing.T) {
	t.Parallel()

	m := &countingMaintainer{}
	s := NewService(config.SchedulerConfig{RefreshSpec: "* * * * * *", PruneSpec: "* * * * * *"}, m)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	assert.Eventually(t, func() bool {
		return m.refreshes.Load() > 0 && m.prunes.Load() > 0
	}, 3*time.Second, 50*time.Millisecond)

	cancel()
	checkWaitGroupDone(t, wg)
}

func TestScheduler_RecoversFromPanic(t *testing.T) {
	t.Parallel()

	m := &countingMaintainer{panicOn: true}
	s := NewService(config.SchedulerConfig{RefreshSpec: "* * * * * *"}, m)

	ctx, cancel := context.WithCancel(context.Background())
	wg := &sync.WaitGroup{}
	wg.Add(1)
	require.NoError(t, s.Start(ctx, wg))

	// panic 이후에도 다음 주기에 다시 실행된다.
	assert.Eventually(t, func() bool {
		return m.refreshes.Load() >= 2
	}, 4*time.Second, 50*time.Millisecond)

	cancel()
	checkWaitGroupDone(t, wg)
}

func TestScheduler_JobHandlers(t *testing.T) {
	t.Parallel()

	m := &mockMaintainer{}
	m.On("RefreshMarketData").Return(3).Once()
	m.On("Prune").Return(0).Once()
	m.On("Prune").Return(2).Once()

	s := NewService(config.SchedulerConfig{}, m)

	assert.NotPanics(t, func() {
		s.refreshMarketData()
		s.pruneSessions()
		s.pruneSessions()
	})

	m.AssertExpectations(t)
}
