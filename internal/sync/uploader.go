// Package sync keeps a driving client's clock snapshot and the shared
// server-side live state loosely in step: debounced best-effort uploads from
// the driver, periodic polling for every viewer. The local clock is always
// authoritative for the driver; network failures never gate it.
package sync

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pokerfloor/pokerfloor/internal/clock"
	"github.com/pokerfloor/pokerfloor/internal/engine"
	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/pokerfloor/pokerfloor/internal/utils"
)

// DebounceInterval batches rapid successive edits into one upload.
const DebounceInterval = time.Second

// Pusher uploads one tournament's live state. Implemented by client.Client.
type Pusher interface {
	PushLiveState(ctx context.Context, tournamentID string, update model.LiveStateUpdate) error
}

// Uploader debounces engine views and pushes the latest one. Uploads are
// best-effort: failures are logged and dropped, the next change retries.
type Uploader struct {
	pusher    Pusher
	wallClock clockwork.Clock

	mu      sync.Mutex
	latest  engine.View
	pending bool
	timer   clockwork.Timer
}

func NewUploader(pusher Pusher, wallClock clockwork.Clock) *Uploader {
	return &Uploader{pusher: pusher, wallClock: wallClock}
}

// Notify records the latest view and arms the debounce window. Safe to call
// from the engine's subscriber callback on every change.
func (u *Uploader) Notify(view engine.View) {
	if view.TournamentID == "" {
		return
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.latest = view
	if u.pending {
		return
	}
	u.pending = true
	u.timer = u.wallClock.AfterFunc(DebounceInterval, u.flush)
}

func (u *Uploader) flush() {
	u.mu.Lock()
	view := u.latest
	u.pending = false
	u.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := u.pusher.PushLiveState(ctx, view.TournamentID, RemoteUpdate(view)); err != nil {
		slog.Debug("live state upload failed", "tournament", view.TournamentID, "error", err)
	}
}

// Stop cancels a pending upload. Nothing is flushed; uploads are best-effort.
func (u *Uploader) Stop() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.timer != nil {
		u.timer.Stop()
	}
	u.pending = false
}

// RemoteUpdate maps a local view to the remote upsert body. The remote schema
// has no not-started state, so a not-started clock uploads as paused; finished
// maps to completed.
func RemoteUpdate(view engine.View) model.LiveStateUpdate {
	update := model.LiveStateUpdate{
		Status:      remoteStatus(view.Clock.Status),
		DayIndex:    view.DayIndex,
		LevelIndex:  view.Clock.CurrentLevelIndex,
		RemainingMs: view.Clock.MillisLeft,
		TotalLevels: len(view.Levels),
	}
	if view.DayLabel != "" {
		update.DayLabel = utils.Ptr(view.DayLabel)
	}
	return update
}

func remoteStatus(s clock.Status) model.LiveStatus {
	switch s {
	case clock.StatusRunning:
		return model.LiveRunning
	case clock.StatusFinished:
		return model.LiveCompleted
	default:
		// paused and not_started both read as paused remotely
		return model.LivePaused
	}
}
