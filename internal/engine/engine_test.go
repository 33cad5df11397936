package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokerfloor/pokerfloor/internal/clock"
	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/pokerfloor/pokerfloor/internal/snapshot"
	"github.com/pokerfloor/pokerfloor/internal/structure"
)

func testTournament() *model.Tournament {
	return &model.Tournament{
		ID:   uuid.New(),
		Name: "Engine Test Event",
		Structure: structure.Structure{
			{Level: 1, SmallBlind: 100, BigBlind: 100, DurationMinutes: 20},
			{Level: 2, SmallBlind: 100, BigBlind: 200, DurationMinutes: 20},
		},
	}
}

// viewRecorder collects every emitted view under a lock, since ticks arrive
// from the engine's goroutine.
type viewRecorder struct {
	mu    sync.Mutex
	views []View
}

func (r *viewRecorder) record(v View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, v)
}

func (r *viewRecorder) last() (View, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.views) == 0 {
		return View{}, false
	}
	return r.views[len(r.views)-1], true
}

func (r *viewRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func TestInitDefaultsToPausedFullDuration(t *testing.T) {
	e := New(clockwork.NewFakeClock(), snapshot.NewMemStore())
	defer e.Close()

	e.Init(testTournament(), 0)

	view := e.View()
	assert.Equal(t, clock.StatusPaused, view.Clock.Status)
	assert.Equal(t, 0, view.Clock.CurrentLevelIndex)
	assert.Equal(t, int64(20*60*1000), view.Clock.MillisLeft)
	assert.True(t, view.Clock.AutoAdvance)
	require.Len(t, view.Levels, 2)
}

func TestSubscribeDeliversCurrentViewAndCancelStops(t *testing.T) {
	e := New(clockwork.NewFakeClock(), snapshot.NewMemStore())
	defer e.Close()
	e.Init(testTournament(), 0)

	rec := &viewRecorder{}
	cancel := e.Subscribe(rec.record)

	require.Equal(t, 1, rec.count(), "subscriber gets the current view immediately")

	e.NextLevel()
	require.Equal(t, 2, rec.count())
	last, _ := rec.last()
	assert.Equal(t, 1, last.Clock.CurrentLevelIndex)
	assert.Equal(t, clock.StatusPaused, last.Clock.Status)

	cancel()
	e.PrevLevel()
	assert.Equal(t, 2, rec.count(), "cancelled subscriber receives nothing")
}

func TestControlsPersistSnapshots(t *testing.T) {
	store := snapshot.NewMemStore()
	e := New(clockwork.NewFakeClock(), store)
	defer e.Close()

	tournament := testTournament()
	e.Init(tournament, 0)
	e.NextLevel()
	e.AdjustMinutes(-5)

	saved, found, err := store.Get(snapshot.Key(tournament.ID.String(), 0))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, saved.CurrentLevelIndex)
	assert.Equal(t, int64(15*60*1000), saved.MillisLeft)
	assert.Equal(t, clock.StatusPaused, saved.Status)
}

func TestInitRestoresPersistedSnapshot(t *testing.T) {
	store := snapshot.NewMemStore()
	tournament := testTournament()
	require.NoError(t, store.Put(snapshot.Key(tournament.ID.String(), 0), clock.Snapshot{
		Status:            clock.StatusPaused,
		CurrentLevelIndex: 1,
		MillisLeft:        300_000,
		AutoAdvance:       true,
	}))

	e := New(clockwork.NewFakeClock(), store)
	defer e.Close()
	e.Init(tournament, 0)

	view := e.View()
	assert.Equal(t, 1, view.Clock.CurrentLevelIndex)
	assert.Equal(t, int64(300_000), view.Clock.MillisLeft)
}

func TestSetDayRestartsClock(t *testing.T) {
	store := snapshot.NewMemStore()
	e := New(clockwork.NewFakeClock(), store)
	defer e.Close()

	day1 := time.Date(2026, 9, 4, 18, 0, 0, 0, time.UTC)
	tournament := testTournament()
	tournament.Days = structure.Days{
		{Label: "Day 1", StartTimeUTC: day1, Structure: tournament.Structure},
		{Label: "Day 2", StartTimeUTC: day1.Add(24 * time.Hour), Structure: structure.Structure{
			{Level: 5, SmallBlind: 1000, BigBlind: 2000, DurationMinutes: 40},
		}},
	}

	e.Init(tournament, 0)
	e.NextLevel()
	e.SetRemaining(1000)

	e.SetDay(1)
	view := e.View()
	assert.Equal(t, 1, view.DayIndex)
	assert.Equal(t, "Day 2", view.DayLabel)
	assert.Equal(t, 0, view.Clock.CurrentLevelIndex)
	assert.Equal(t, int64(40*60*1000), view.Clock.MillisLeft)
	assert.Equal(t, clock.StatusPaused, view.Clock.Status)

	// day 1 position survives in its own snapshot
	e.SetDay(0)
	view = e.View()
	assert.Equal(t, 1, view.Clock.CurrentLevelIndex)
	assert.Equal(t, int64(1000), view.Clock.MillisLeft)
}

func TestReinitSameDayKeepsPosition(t *testing.T) {
	e := New(clockwork.NewFakeClock(), snapshot.NewMemStore())
	defer e.Close()

	tournament := testTournament()
	e.Init(tournament, 0)
	e.NextLevel()

	e.Init(tournament, 0)
	view := e.View()
	assert.Equal(t, 1, view.Clock.CurrentLevelIndex)
}

func TestTickCountsDownAgainstWallClock(t *testing.T) {
	fc := clockwork.NewFakeClock()
	e := New(fc, snapshot.NewMemStore())
	defer e.Close()

	e.Init(testTournament(), 0)

	rec := &viewRecorder{}
	defer e.Subscribe(rec.record)()

	e.StartOrResume()
	fc.BlockUntil(1)
	fc.Advance(time.Second)

	require.Eventually(t, func() bool {
		last, ok := rec.last()
		return ok && last.Clock.MillisLeft == 20*60*1000-1000
	}, time.Second, 5*time.Millisecond)

	last, _ := rec.last()
	assert.Equal(t, clock.StatusRunning, last.Clock.Status)
	assert.Equal(t, 0, last.Clock.CurrentLevelIndex)
}

func TestPauseStopsTicking(t *testing.T) {
	fc := clockwork.NewFakeClock()
	e := New(fc, snapshot.NewMemStore())
	defer e.Close()

	e.Init(testTournament(), 0)
	e.StartOrResume()
	fc.BlockUntil(1)
	e.Pause()

	view := e.View()
	assert.Equal(t, clock.StatusPaused, view.Clock.Status)
	assert.Equal(t, int64(20*60*1000), view.Clock.MillisLeft)
}
