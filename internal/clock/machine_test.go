package clock

import (
	"testing"

	"github.com/pokerfloor/pokerfloor/internal/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLevels() structure.Structure {
	return structure.Structure{
		{SmallBlind: 25, BigBlind: 50, DurationMinutes: 20},
		{SmallBlind: 50, BigBlind: 100, DurationMinutes: 20},
		{DurationMinutes: 10, IsBreak: true},
	}
}

func TestNewMachine_Defaults(t *testing.T) {
	m := NewMachine(testLevels())
	assert.Equal(t, StatusNotStarted, m.Status())
	assert.Equal(t, 0, m.LevelIndex())
	assert.Equal(t, int64(20*60_000), m.RemainingMs())
	assert.True(t, m.AutoAdvance())
}

func TestStartPauseResume(t *testing.T) {
	m := NewMachine(testLevels())

	m.StartOrResume()
	assert.Equal(t, StatusRunning, m.Status())

	m.Tick(5_000)
	m.Pause()
	assert.Equal(t, StatusPaused, m.Status())
	remaining := m.RemainingMs()

	// Ticks while paused are ignored.
	m.Tick(60_000)
	assert.Equal(t, remaining, m.RemainingMs())

	m.StartOrResume()
	assert.Equal(t, StatusRunning, m.Status())
	assert.Equal(t, remaining, m.RemainingMs())
}

func TestStartFromFinished_RestartsAtLevelZero(t *testing.T) {
	m := NewMachine(testLevels())
	m.StartOrResume()
	m.NextLevel()
	m.NextLevel()
	m.StartOrResume()
	m.NextLevel() // past the last entry
	require.Equal(t, StatusFinished, m.Status())
	require.Equal(t, 2, m.LevelIndex())

	m.StartOrResume()
	assert.Equal(t, StatusRunning, m.Status())
	assert.Equal(t, 0, m.LevelIndex())
	assert.Equal(t, int64(20*60_000), m.RemainingMs())
}

func TestManualAdvance_AlwaysPauses(t *testing.T) {
	m := NewMachine(testLevels())
	m.StartOrResume()

	m.NextLevel()
	assert.Equal(t, StatusPaused, m.Status())
	assert.Equal(t, 1, m.LevelIndex())
	assert.Equal(t, int64(20*60_000), m.RemainingMs())

	m.StartOrResume()
	m.PrevLevel()
	assert.Equal(t, StatusPaused, m.Status())
	assert.Equal(t, 0, m.LevelIndex())
	assert.Equal(t, int64(20*60_000), m.RemainingMs())
}

func TestAdvance_ClampsAtBounds(t *testing.T) {
	m := NewMachine(testLevels())

	m.PrevLevel()
	assert.Equal(t, 0, m.LevelIndex())

	m.NextLevel()
	m.NextLevel()
	require.Equal(t, 2, m.LevelIndex())

	m.NextLevel()
	assert.Equal(t, StatusFinished, m.Status())
	assert.Equal(t, 2, m.LevelIndex(), "index never increments past the last entry")
}

func TestManualAdvancePastEnd_Finishes(t *testing.T) {
	m := NewMachine(testLevels())
	m.SetLevel(2)
	m.StartOrResume()

	m.NextLevel()
	assert.Equal(t, StatusFinished, m.Status(), "a manual advance past the end finishes the day")
	assert.Equal(t, 2, m.LevelIndex())

	m.NextLevel()
	assert.Equal(t, StatusFinished, m.Status())
	assert.Equal(t, 2, m.LevelIndex())
}

func TestTick_AutoAdvanceKeepsRunning(t *testing.T) {
	m := NewMachine(testLevels())
	m.StartOrResume()

	m.Tick(20 * 60_000)
	assert.Equal(t, StatusRunning, m.Status(), "expiry with auto-advance must not pause")
	assert.Equal(t, 1, m.LevelIndex())
	assert.Equal(t, int64(20*60_000), m.RemainingMs())
}

func TestTick_NoAutoAdvanceClampsAndPauses(t *testing.T) {
	m := NewMachine(testLevels())
	m.SetAutoAdvance(false)
	m.StartOrResume()

	m.Tick(25 * 60_000)
	assert.Equal(t, StatusPaused, m.Status())
	assert.Equal(t, 0, m.LevelIndex())
	assert.Equal(t, int64(0), m.RemainingMs())
}

// Structure [25/50 20m, 50/100 20m, break 10m], auto-advance on: after 20
// minutes of one-second ticks the clock sits at level 1 with a fresh 20
// minutes, still running.
func TestTick_TwentyMinuteScenario(t *testing.T) {
	m := NewMachine(testLevels())
	m.StartOrResume()

	for i := 0; i < 1200; i++ {
		m.Tick(1000)
	}

	assert.Equal(t, StatusRunning, m.Status())
	assert.Equal(t, 1, m.LevelIndex())
	assert.Equal(t, int64(1_200_000), m.RemainingMs())
}

func TestAdjustMinutes_FloorsAtZero(t *testing.T) {
	m := NewMachine(testLevels())
	m.StartOrResume()

	m.AdjustMinutes(5)
	assert.Equal(t, int64(25*60_000), m.RemainingMs())
	assert.Equal(t, StatusRunning, m.Status(), "adjusting must not change status")

	m.AdjustMinutes(-60)
	assert.Equal(t, int64(0), m.RemainingMs())
	assert.Equal(t, 0, m.LevelIndex(), "adjusting must not change level")
}

func TestSetRemaining(t *testing.T) {
	m := NewMachine(testLevels())
	m.SetRemaining(90_000)
	assert.Equal(t, int64(90_000), m.RemainingMs())
	m.SetRemaining(-1)
	assert.Equal(t, int64(0), m.RemainingMs())
}

func TestSetLevels_RestartsDay(t *testing.T) {
	m := NewMachine(testLevels())
	m.StartOrResume()
	m.NextLevel()

	day2 := structure.Structure{{SmallBlind: 100, BigBlind: 200, DurationMinutes: 30}}
	m.SetLevels(day2)
	assert.Equal(t, StatusPaused, m.Status())
	assert.Equal(t, 0, m.LevelIndex())
	assert.Equal(t, int64(30*60_000), m.RemainingMs())
}

func TestEmptyStructure_ControlsNoOp(t *testing.T) {
	m := NewMachine(nil)
	m.StartOrResume()
	assert.Equal(t, StatusNotStarted, m.Status())
	m.NextLevel()
	assert.Equal(t, 0, m.LevelIndex())
	m.SetLevel(3)
	assert.Equal(t, 0, m.LevelIndex())
	assert.Equal(t, int64(0), m.RemainingMs())
}

func TestSnapshotRestore_RoundTrip(t *testing.T) {
	m := NewMachine(testLevels())
	m.StartOrResume()
	m.Tick(90_000)
	m.SetAutoAdvance(false)
	m.Pause()
	snap := m.Snapshot()

	restored := NewMachine(testLevels())
	restored.Restore(snap)
	assert.Equal(t, m.Status(), restored.Status())
	assert.Equal(t, m.LevelIndex(), restored.LevelIndex())
	assert.Equal(t, m.RemainingMs(), restored.RemainingMs())
	assert.Equal(t, m.AutoAdvance(), restored.AutoAdvance())
}

func TestRestore_ClampsToEditedStructure(t *testing.T) {
	snap := Snapshot{Status: StatusRunning, CurrentLevelIndex: 9, MillisLeft: 99 * 60_000, AutoAdvance: true}

	m := NewMachine(testLevels())
	m.Restore(snap)
	assert.Equal(t, 2, m.LevelIndex())
	assert.Equal(t, int64(10*60_000), m.RemainingMs(), "remaining clamps to the level duration")

	// Unknown statuses coerce to paused.
	m.Restore(Snapshot{Status: "exploded", CurrentLevelIndex: 0, MillisLeft: 1000})
	assert.Equal(t, StatusPaused, m.Status())
}
