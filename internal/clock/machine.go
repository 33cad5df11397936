package clock

import (
	"time"

	"github.com/pokerfloor/pokerfloor/internal/structure"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusRunning    Status = "running"
	StatusPaused     Status = "paused"
	StatusFinished   Status = "finished"
)

// Snapshot is the minimal tuple needed to reconstruct a clock. SavedAt is
// informational only; restored snapshots are applied verbatim regardless of age.
type Snapshot struct {
	Status            Status `json:"status"`
	CurrentLevelIndex int    `json:"currentLevelIndex"`
	MillisLeft        int64  `json:"millisLeft"`
	AutoAdvance       bool   `json:"autoAdvance"`
	SavedAt           int64  `json:"savedAt"`
}

// Machine is the per-tournament-per-day clock state machine. It holds the
// active structure, the current position and the remaining time, and applies
// the transition rules. It never errors on bad input: indices clamp, times
// floor at zero, and an empty structure turns every control into a no-op.
// Machine is not safe for concurrent use; the engine serializes access.
type Machine struct {
	levels      structure.Structure
	status      Status
	levelIndex  int
	remainingMs int64
	autoAdvance bool
}

func NewMachine(levels structure.Structure) *Machine {
	m := &Machine{
		levels:      levels,
		status:      StatusNotStarted,
		autoAdvance: true,
	}
	m.remainingMs = m.levelDurationMs(0)
	return m
}

func (m *Machine) Status() Status              { return m.status }
func (m *Machine) LevelIndex() int             { return m.levelIndex }
func (m *Machine) RemainingMs() int64          { return m.remainingMs }
func (m *Machine) AutoAdvance() bool           { return m.autoAdvance }
func (m *Machine) Levels() structure.Structure { return m.levels }

func (m *Machine) levelDurationMs(idx int) int64 {
	if len(m.levels) == 0 {
		return 0
	}
	idx = clamp(idx, 0, len(m.levels)-1)
	return m.levels[idx].DurationMs()
}

// StartOrResume transitions to running from any non-running state. Starting
// from finished restarts the day at level 0 with a full duration.
func (m *Machine) StartOrResume() {
	if len(m.levels) == 0 {
		return
	}
	if m.status == StatusFinished {
		m.levelIndex = 0
		m.remainingMs = m.levelDurationMs(0)
	}
	m.status = StatusRunning
}

// Pause freezes the remaining time at its current value.
func (m *Machine) Pause() {
	m.status = StatusPaused
}

// NextLevel and PrevLevel are manual jumps; in-range jumps land paused so the
// floor has to explicitly restart the clock after repositioning it. Advancing
// past the last entry finishes the day whether the jump was manual or not.
func (m *Machine) NextLevel() { m.advance(false, +1) }
func (m *Machine) PrevLevel() { m.advance(false, -1) }

func (m *Machine) advance(fromAuto bool, dir int) {
	if len(m.levels) == 0 {
		return
	}
	next := m.levelIndex + dir
	if next >= len(m.levels) {
		m.levelIndex = len(m.levels) - 1
		m.remainingMs = m.levelDurationMs(m.levelIndex)
		m.status = StatusFinished
		return
	}
	if next < 0 {
		next = 0
	}
	m.levelIndex = next
	m.remainingMs = m.levelDurationMs(next)
	if !fromAuto {
		m.status = StatusPaused
	}
}

// SetLevel jumps to the given level with its full duration, paused.
func (m *Machine) SetLevel(idx int) {
	if len(m.levels) == 0 {
		return
	}
	m.levelIndex = clamp(idx, 0, len(m.levels)-1)
	m.remainingMs = m.levelDurationMs(m.levelIndex)
	m.status = StatusPaused
}

// AdjustMinutes shifts the remaining time without touching status or level.
func (m *Machine) AdjustMinutes(delta int) {
	m.remainingMs += int64(delta) * 60_000
	if m.remainingMs < 0 {
		m.remainingMs = 0
	}
}

// SetRemaining replaces the remaining time outright (quick presets).
func (m *Machine) SetRemaining(ms int64) {
	if ms < 0 {
		ms = 0
	}
	m.remainingMs = ms
}

func (m *Machine) SetAutoAdvance(on bool) {
	m.autoAdvance = on
}

// SetLevels swaps the active structure (a day change) and restarts: level 0,
// paused, full duration. Position is never carried across days.
func (m *Machine) SetLevels(levels structure.Structure) {
	m.levels = levels
	m.levelIndex = 0
	m.remainingMs = m.levelDurationMs(0)
	m.status = StatusPaused
}

// Tick subtracts an elapsed wall-clock delta from the remaining time. On
// expiry, auto-advance moves to the next level without pausing; otherwise the
// clock clamps at zero and pauses. Ticks are ignored unless running.
func (m *Machine) Tick(deltaMs int64) {
	if m.status != StatusRunning {
		return
	}
	if deltaMs < 0 {
		deltaMs = 0
	}
	next := m.remainingMs - deltaMs
	if next <= 0 {
		if m.autoAdvance {
			m.advance(true, +1)
		} else {
			m.remainingMs = 0
			m.status = StatusPaused
		}
		return
	}
	m.remainingMs = next
}

func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		Status:            m.status,
		CurrentLevelIndex: m.levelIndex,
		MillisLeft:        m.remainingMs,
		AutoAdvance:       m.autoAdvance,
		SavedAt:           time.Now().UnixMilli(),
	}
}

// Restore applies a saved snapshot, clamping the level index into the current
// structure and the remaining time to that level's duration so that structure
// edits since the save cannot leave the clock out of range.
func (m *Machine) Restore(snap Snapshot) {
	idx := 0
	if len(m.levels) > 0 {
		idx = clamp(snap.CurrentLevelIndex, 0, len(m.levels)-1)
	}
	m.levelIndex = idx
	dur := m.levelDurationMs(idx)
	left := snap.MillisLeft
	if left < 0 {
		left = 0
	}
	if left > dur {
		left = dur
	}
	m.remainingMs = left
	m.autoAdvance = snap.AutoAdvance
	switch snap.Status {
	case StatusRunning, StatusPaused, StatusFinished, StatusNotStarted:
		m.status = snap.Status
	default:
		m.status = StatusPaused
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
