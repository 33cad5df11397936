package sync

import (
	"fmt"
	"time"

	"github.com/pokerfloor/pokerfloor/internal/model"
)

// ScheduleFallback renders the schedule-based display used when no live state
// exists: "Starts in Xh Ym" within 24 hours of the nominal start, otherwise a
// neutral placeholder.
func ScheduleFallback(t *model.Tournament, now time.Time) string {
	if t == nil {
		return "-"
	}
	start := t.EarliestStart()
	if start.IsZero() {
		return "-"
	}
	until := start.Sub(now)
	if until > 0 && until <= 24*time.Hour {
		h := int(until / time.Hour)
		m := int(until%time.Hour) / int(time.Minute)
		return fmt.Sprintf("Starts in %dh %dm", h, m)
	}
	return "-"
}
