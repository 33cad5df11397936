// Package engine hosts the single process-wide tournament clock. One Engine is
// constructed at startup and injected into every screen that drives or renders
// the clock, so the countdown keeps running across navigation and observers
// come and go freely.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pokerfloor/pokerfloor/internal/clock"
	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/pokerfloor/pokerfloor/internal/snapshot"
	"github.com/pokerfloor/pokerfloor/internal/structure"
)

const tickInterval = time.Second

// View is what subscribers receive: the active structure plus the clock
// snapshot, enough to derive every displayed value.
type View struct {
	TournamentID string
	DayIndex     int
	DayLabel     string
	Levels       structure.Structure
	Clock        clock.Snapshot
}

type Engine struct {
	wallClock clockwork.Clock
	store     snapshot.Store

	mu           sync.Mutex
	machine      *clock.Machine
	tournament   *model.Tournament
	tournamentID string
	dayIndex     int
	lastTickAt   time.Time
	ticking      bool
	stopTick     chan struct{}

	subs    map[int]func(View)
	nextSub int

	closed chan struct{}
}

func New(wallClock clockwork.Clock, store snapshot.Store) *Engine {
	return &Engine{
		wallClock: wallClock,
		store:     store,
		machine:   clock.NewMachine(nil),
		subs:      make(map[int]func(View)),
		closed:    make(chan struct{}),
	}
}

// Init points the engine at a tournament and day, restoring that key's
// persisted snapshot or defaulting to level 0, paused, full duration.
// Re-initing the same tournament and day only re-emits the current view.
func (e *Engine) Init(t *model.Tournament, dayIndex int) {
	if dayIndex < 0 {
		dayIndex = 0
	}
	e.mu.Lock()
	id := t.ID.String()
	same := e.tournamentID == id && e.dayIndex == dayIndex
	e.tournament = t
	e.tournamentID = id
	e.dayIndex = dayIndex
	if !same {
		e.loadLocked()
	}
	e.afterChangeLocked(false)
}

// SetDay switches the active day. Day changes always restart that day's clock
// from its own persisted snapshot or defaults; position never carries over.
func (e *Engine) SetDay(dayIndex int) {
	if dayIndex < 0 {
		dayIndex = 0
	}
	e.mu.Lock()
	if e.tournament == nil {
		e.mu.Unlock()
		return
	}
	e.dayIndex = dayIndex
	e.loadLocked()
	e.afterChangeLocked(false)
}

// loadLocked rebuilds the machine for the current tournament+day and restores
// its saved snapshot if one exists.
func (e *Engine) loadLocked() {
	levels := structure.Structure{}
	if e.tournament != nil {
		levels = e.tournament.LevelsForDay(e.dayIndex)
	}
	e.machine = clock.NewMachine(levels)
	saved, found, err := e.store.Get(snapshot.Key(e.tournamentID, e.dayIndex))
	if err != nil {
		slog.Debug("failed to load clock snapshot", "tournament", e.tournamentID, "day", e.dayIndex, "error", err)
	}
	if found {
		e.machine.Restore(saved)
	} else {
		e.machine.Restore(clock.Snapshot{
			Status:      clock.StatusPaused,
			MillisLeft:  levelDuration(levels, 0),
			AutoAdvance: true,
		})
	}
}

func levelDuration(levels structure.Structure, idx int) int64 {
	if idx < 0 || idx >= len(levels) {
		return 0
	}
	return levels[idx].DurationMs()
}

func (e *Engine) StartOrResume() { e.control(func(m *clock.Machine) { m.StartOrResume() }) }
func (e *Engine) Pause()         { e.control(func(m *clock.Machine) { m.Pause() }) }
func (e *Engine) NextLevel()     { e.control(func(m *clock.Machine) { m.NextLevel() }) }
func (e *Engine) PrevLevel()     { e.control(func(m *clock.Machine) { m.PrevLevel() }) }

func (e *Engine) SetLevel(idx int)        { e.control(func(m *clock.Machine) { m.SetLevel(idx) }) }
func (e *Engine) AdjustMinutes(delta int) { e.control(func(m *clock.Machine) { m.AdjustMinutes(delta) }) }
func (e *Engine) SetRemaining(ms int64)   { e.control(func(m *clock.Machine) { m.SetRemaining(ms) }) }
func (e *Engine) SetAutoAdvance(on bool)  { e.control(func(m *clock.Machine) { m.SetAutoAdvance(on) }) }

func (e *Engine) control(fn func(*clock.Machine)) {
	e.mu.Lock()
	fn(e.machine)
	e.afterChangeLocked(true)
}

// afterChangeLocked persists, reconciles the tick loop with the new status and
// emits to subscribers. Takes e.mu held and releases it.
func (e *Engine) afterChangeLocked(save bool) {
	if save {
		e.saveLocked()
	}
	e.ensureTickingLocked()
	view := e.viewLocked()
	subs := make([]func(View), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	e.mu.Unlock()
	for _, fn := range subs {
		fn(view)
	}
}

func (e *Engine) saveLocked() {
	if e.tournamentID == "" {
		return
	}
	if err := e.store.Put(snapshot.Key(e.tournamentID, e.dayIndex), e.machine.Snapshot()); err != nil {
		slog.Debug("failed to save clock snapshot", "tournament", e.tournamentID, "day", e.dayIndex, "error", err)
	}
}

func (e *Engine) viewLocked() View {
	dayLabel := ""
	if e.tournament != nil {
		dayLabel = e.tournament.DayLabel(e.dayIndex)
	}
	return View{
		TournamentID: e.tournamentID,
		DayIndex:     e.dayIndex,
		DayLabel:     dayLabel,
		Levels:       e.machine.Levels(),
		Clock:        e.machine.Snapshot(),
	}
}

// View returns the current view without subscribing.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewLocked()
}

// Subscribe registers an observer. The observer receives the current view
// synchronously, then every subsequent change. The returned cancel stops
// delivery to this observer only; the tick loop is shared and keeps running.
func (e *Engine) Subscribe(fn func(View)) func() {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	view := e.viewLocked()
	e.mu.Unlock()

	fn(view)
	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

// ensureTickingLocked starts the tick goroutine while running and stops it
// otherwise. Elapsed time is measured against the wall clock on every tick, so
// a suspended process neither loses nor gains time.
func (e *Engine) ensureTickingLocked() {
	running := e.machine.Status() == clock.StatusRunning
	if !running {
		if e.ticking {
			close(e.stopTick)
			e.ticking = false
		}
		return
	}
	if e.ticking {
		return
	}
	e.ticking = true
	e.lastTickAt = e.wallClock.Now()
	stop := make(chan struct{})
	e.stopTick = stop
	go e.runTicker(stop)
}

func (e *Engine) runTicker(stop chan struct{}) {
	ticker := e.wallClock.NewTicker(tickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.Chan():
			if !e.onTick(stop) {
				return
			}
		case <-stop:
			return
		case <-e.closed:
			return
		}
	}
}

// onTick applies one wall-clock delta. Returns false once this loop has been
// replaced or stopped.
func (e *Engine) onTick(stop chan struct{}) bool {
	e.mu.Lock()
	if !e.ticking || e.stopTick != stop {
		e.mu.Unlock()
		return false
	}
	now := e.wallClock.Now()
	delta := now.Sub(e.lastTickAt)
	if delta < 0 {
		delta = 0
	}
	e.lastTickAt = now
	e.machine.Tick(delta.Milliseconds())
	e.saveLocked()
	e.afterTickLocked()
	return true
}

// afterTickLocked is afterChangeLocked minus the save (already done) so the
// tick path keeps the mutate -> save -> emit ordering.
func (e *Engine) afterTickLocked() {
	e.ensureTickingLocked()
	view := e.viewLocked()
	subs := make([]func(View), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	e.mu.Unlock()
	for _, fn := range subs {
		fn(view)
	}
}

// Close stops the tick loop. Only used at process shutdown and in tests.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	select {
	case <-e.closed:
	default:
		close(e.closed)
	}
	if e.ticking {
		close(e.stopTick)
		e.ticking = false
	}
}
