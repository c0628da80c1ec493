package gallery

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maxito7/wedding_card/internal/domain"
	"github.com/Maxito7/wedding_card/internal/scheduler"
)

type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }

func (t *fakeTicker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
}

func (t *fakeTicker) isStopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

type fakeClock struct {
	mu       sync.Mutex
	tickers  []*fakeTicker
	interval time.Duration
}

func (f *fakeClock) NewTicker(d time.Duration) scheduler.Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.interval = d
	t := &fakeTicker{ch: make(chan time.Time, 1)}
	f.tickers = append(f.tickers, t)
	return t
}

func (f *fakeClock) running() []*fakeTicker {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*fakeTicker
	for _, t := range f.tickers {
		if !t.isStopped() {
			out = append(out, t)
		}
	}
	return out
}

func (f *fakeClock) created() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

func testImages(n int) domain.ImageSet {
	set := make(domain.ImageSet, n)
	for i := range set {
		id := fmt.Sprintf("%d.jpg", i+1)
		set[i] = domain.GalleryImage{ID: id, URL: "/images/" + id, SortOrder: i, IsActive: true}
	}
	return set
}

func newTestController(t *testing.T, n int) (*Controller, *fakeClock) {
	t.Helper()
	clock := &fakeClock{}
	c, err := NewController(testImages(n), Options{NewTicker: clock.NewTicker})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, clock
}

func TestNewControllerInitialState(t *testing.T) {
	c, clock := newTestController(t, 13)

	snap := c.Snapshot()
	assert.Equal(t, 0, snap.State.CurrentIndex)
	assert.False(t, snap.State.IsUserInteracting)
	assert.False(t, snap.State.IsFullscreenOpen)
	assert.True(t, snap.AutoplayActive)
	assert.Equal(t, domain.DefaultAutoplayInterval, snap.State.AutoplayInterval)
	assert.Equal(t, 4000*time.Millisecond, clock.interval)
	assert.Len(t, clock.running(), 1)
}

func TestNewControllerRejectsEmptySet(t *testing.T) {
	_, err := NewController(nil, Options{})
	assert.ErrorIs(t, err, domain.ErrEmptyImageSet)
}

func TestAdvanceNextWrapsAround(t *testing.T) {
	for _, n := range []int{1, 2, 5, 13} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			c, _ := newTestController(t, n)
			for i := 0; i < n; i++ {
				require.NoError(t, c.Advance(domain.Next))
			}
			snap := c.Snapshot()
			assert.Equal(t, 0, snap.State.CurrentIndex)
			assert.True(t, snap.State.IsUserInteracting)
		})
	}
}

func TestAdvancePrevFromZero(t *testing.T) {
	c, _ := newTestController(t, 13)

	require.NoError(t, c.Advance(domain.Prev))
	assert.Equal(t, 12, c.Snapshot().State.CurrentIndex)
}

func TestAdvanceStopsAutoplay(t *testing.T) {
	c, clock := newTestController(t, 13)

	require.NoError(t, c.Advance(domain.Next))
	snap := c.Snapshot()
	assert.False(t, snap.AutoplayActive)
	assert.Empty(t, clock.running())

	assert.False(t, c.Tick())
	assert.Equal(t, 1, c.Snapshot().State.CurrentIndex)
}

func TestTickAdvancesLikeNext(t *testing.T) {
	c, _ := newTestController(t, 13)
	require.NoError(t, c.SelectIndex(12))

	assert.True(t, c.Tick())
	snap := c.Snapshot()
	assert.Equal(t, 0, snap.State.CurrentIndex)
	assert.False(t, snap.State.IsUserInteracting)
}

func TestTickSuppressedByFullscreen(t *testing.T) {
	c, clock := newTestController(t, 13)
	require.NoError(t, c.SelectIndex(5))

	assert.True(t, c.Tick())
	assert.Equal(t, 6, c.Snapshot().State.CurrentIndex)

	require.NoError(t, c.OpenFullscreen())
	assert.Empty(t, clock.running())
	assert.False(t, c.Tick())
	assert.Equal(t, 6, c.Snapshot().State.CurrentIndex)

	require.NoError(t, c.CloseFullscreen())
	assert.Len(t, clock.running(), 1)
	assert.True(t, c.Tick())
	assert.Equal(t, 7, c.Snapshot().State.CurrentIndex)
}

func TestFullscreenDoesNotResumeAfterInteraction(t *testing.T) {
	c, clock := newTestController(t, 4)

	require.NoError(t, c.OpenFullscreen())
	require.NoError(t, c.Advance(domain.Next))
	require.NoError(t, c.CloseFullscreen())

	assert.Empty(t, clock.running())
	assert.False(t, c.Snapshot().AutoplayActive)
}

func TestSelectIndex(t *testing.T) {
	c, _ := newTestController(t, 13)

	require.NoError(t, c.SelectIndex(7))
	snap := c.Snapshot()
	assert.Equal(t, 7, snap.State.CurrentIndex)
	assert.False(t, snap.State.IsUserInteracting)
	assert.True(t, snap.AutoplayActive)

	for _, bad := range []int{-1, 13, 100} {
		err := c.SelectIndex(bad)
		assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	}
	assert.Equal(t, 7, c.Snapshot().State.CurrentIndex)
}

func TestResumeAutoplay(t *testing.T) {
	c, clock := newTestController(t, 3)

	require.NoError(t, c.Advance(domain.Next))
	require.Empty(t, clock.running())

	require.NoError(t, c.ResumeAutoplay())
	assert.Len(t, clock.running(), 1)
	assert.True(t, c.Tick())
	assert.Equal(t, 2, c.Snapshot().State.CurrentIndex)
}

func TestTimerFiresTick(t *testing.T) {
	c, clock := newTestController(t, 13)

	running := clock.running()
	require.Len(t, running, 1)
	running[0].ch <- time.Now()

	require.Eventually(t, func() bool {
		return c.Snapshot().State.CurrentIndex == 1
	}, time.Second, 5*time.Millisecond)
}

func TestStaleRunIsIgnored(t *testing.T) {
	c, _ := newTestController(t, 13)

	c.mu.Lock()
	stale := c.activeRun
	c.mu.Unlock()

	require.NoError(t, c.OpenFullscreen())
	require.NoError(t, c.CloseFullscreen())

	c.autoplayTick(stale)
	assert.Equal(t, 0, c.Snapshot().State.CurrentIndex)

	c.mu.Lock()
	current := c.activeRun
	c.mu.Unlock()
	assert.NotEqual(t, stale, current)

	c.autoplayTick(current)
	assert.Equal(t, 1, c.Snapshot().State.CurrentIndex)
}

func TestOnlyOneTimerRuns(t *testing.T) {
	c, clock := newTestController(t, 5)

	for i := 0; i < 10; i++ {
		require.NoError(t, c.OpenFullscreen())
		require.NoError(t, c.CloseFullscreen())
		require.NoError(t, c.CloseFullscreen())
		assert.LessOrEqual(t, len(clock.running()), 1)
	}
	assert.Len(t, clock.running(), 1)
	assert.Equal(t, 11, clock.created())
}

func TestCloseCancelsTimer(t *testing.T) {
	clock := &fakeClock{}
	c, err := NewController(testImages(3), Options{NewTicker: clock.NewTicker})
	require.NoError(t, err)

	updates, _ := c.Subscribe()
	c.Close()
	c.Close()

	assert.True(t, c.Closed())
	assert.Empty(t, clock.running())
	assert.False(t, c.Tick())
	assert.True(t, errors.Is(c.Advance(domain.Next), domain.ErrGalleryClosed))
	assert.ErrorIs(t, c.SelectIndex(0), domain.ErrGalleryClosed)
	assert.ErrorIs(t, c.OpenFullscreen(), domain.ErrGalleryClosed)

	for range updates {
	}
}

func TestSubscribeReceivesLatestSnapshot(t *testing.T) {
	c, _ := newTestController(t, 13)

	updates, cancel := c.Subscribe()
	defer cancel()

	initial := <-updates
	assert.Equal(t, 0, initial.State.CurrentIndex)

	require.NoError(t, c.SelectIndex(3))
	require.NoError(t, c.SelectIndex(4))

	latest := <-updates
	assert.Equal(t, 4, latest.State.CurrentIndex)

	cancel()
	cancel()
	_, ok := <-updates
	assert.False(t, ok)
}

func TestSubscribersCount(t *testing.T) {
	c, _ := newTestController(t, 3)
	assert.Equal(t, 0, c.Subscribers())

	_, cancelA := c.Subscribe()
	_, cancelB := c.Subscribe()
	assert.Equal(t, 2, c.Subscribers())

	cancelA()
	assert.Equal(t, 1, c.Subscribers())

	c.Close()
	assert.Equal(t, 0, c.Subscribers())
	cancelB()
}
