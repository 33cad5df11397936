package structure

import "fmt"

// DefaultLevelMinutes is substituted whenever a level's duration is missing or
// non-positive. Legacy records exist with broken durations and still have to
// render a clock, so derivations default instead of erroring.
const DefaultLevelMinutes = 20

// DurationMs returns the level length in milliseconds, falling back to
// DefaultLevelMinutes for malformed durations.
func (l BlindLevel) DurationMs() int64 {
	minutes := l.DurationMinutes
	if minutes <= 0 {
		minutes = DefaultLevelMinutes
	}
	return int64(minutes) * 60_000
}

// PlayableNumber returns the 1-based number of the playable level at index i,
// counting only non-break entries. The second return is false for breaks and
// out-of-range indices; callers render those as "Break" or a placeholder.
func PlayableNumber(levels Structure, i int) (int, bool) {
	if i < 0 || i >= len(levels) {
		return 0, false
	}
	if levels[i].IsBreak {
		return 0, false
	}
	n := 0
	for j := 0; j <= i; j++ {
		if !levels[j].IsBreak {
			n++
		}
	}
	return n, true
}

// SumDurationMs sums DurationMs over levels[from..toInclusive]. Out-of-range
// indices clamp to the valid range; an empty structure sums to zero.
func SumDurationMs(levels Structure, from, toInclusive int) int64 {
	if len(levels) == 0 {
		return 0
	}
	if from < 0 {
		from = 0
	}
	if toInclusive > len(levels)-1 {
		toInclusive = len(levels) - 1
	}
	var ms int64
	for i := from; i <= toInclusive; i++ {
		ms += levels[i].DurationMs()
	}
	return ms
}

// NextBreakFromMs returns the time until the next break starts: the remaining
// time of the current level plus the full duration of every playable level
// before the break. The break's own duration is not counted, it is the
// destination. Returns false when no break remains.
func NextBreakFromMs(levels Structure, currentIndex int, remainingMs int64) (int64, bool) {
	if len(levels) == 0 || currentIndex < 0 || currentIndex >= len(levels) {
		return 0, false
	}
	if remainingMs < 0 {
		remainingMs = 0
	}
	total := remainingMs
	for i := currentIndex + 1; i < len(levels); i++ {
		if levels[i].IsBreak {
			return total, true
		}
		total += levels[i].DurationMs()
	}
	return 0, false
}

// LateRegCloseIndex returns the index of the entry at whose end late
// registration closes: the lateRegLevels-th playable level, extended through an
// immediately following break. Returns false when the structure has fewer
// playable levels than lateRegLevels, in which case registration never closes.
func LateRegCloseIndex(levels Structure, lateRegLevels int) (int, bool) {
	if lateRegLevels <= 0 {
		return 0, false
	}
	count := 0
	for i := range levels {
		if levels[i].IsBreak {
			continue
		}
		count++
		if count == lateRegLevels {
			if i+1 < len(levels) && levels[i+1].IsBreak {
				return i + 1, true
			}
			return i, true
		}
	}
	return 0, false
}

// PickLevels selects the structure in effect for a day: the day's own
// structure when a multi-day schedule exists (day index clamped in range),
// otherwise the global structure. Either may be empty; callers treat an empty
// result as "no data".
func PickLevels(global Structure, days Days, dayIndex int) Structure {
	if len(days) > 0 {
		if dayIndex < 0 {
			dayIndex = 0
		}
		if dayIndex > len(days)-1 {
			dayIndex = len(days) - 1
		}
		return days[dayIndex].Structure
	}
	return global
}

// Label renders a display label for the entry at idx: "Break" for breaks,
// otherwise "Level N - sb/bb" with the ante appended when present.
func Label(lv BlindLevel, idx int) string {
	if lv.IsBreak {
		return "Break"
	}
	n := lv.Level
	if n == 0 {
		n = idx + 1
	}
	if lv.Ante > 0 {
		return fmt.Sprintf("Level %d - %d/%d/%d", n, lv.SmallBlind, lv.BigBlind, lv.Ante)
	}
	return fmt.Sprintf("Level %d - %d/%d", n, lv.SmallBlind, lv.BigBlind)
}
