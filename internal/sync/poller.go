package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pokerfloor/pokerfloor/internal/model"
)

// PollInterval is how often viewers re-fetch the shared live state.
const PollInterval = 3 * time.Second

// Fetcher reads one tournament's live state. A nil state with nil error means
// no live record exists yet. Implemented by client.Client.
type Fetcher interface {
	FetchLiveState(ctx context.Context, tournamentID string) (*model.LiveTournamentState, error)
}

// Poller periodically fetches a tournament's live state and hands it to a
// callback. Fetch failures degrade to nil, the "no live state" display; they
// are never surfaced as errors.
type Poller struct {
	fetcher      Fetcher
	wallClock    clockwork.Clock
	tournamentID string
	onState      func(*model.LiveTournamentState)
	stop         chan struct{}
}

// StartPoller fetches immediately, then every PollInterval until Stop.
func StartPoller(fetcher Fetcher, wallClock clockwork.Clock, tournamentID string, onState func(*model.LiveTournamentState)) *Poller {
	p := &Poller{
		fetcher:      fetcher,
		wallClock:    wallClock,
		tournamentID: tournamentID,
		onState:      onState,
		stop:         make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *Poller) run() {
	p.poll()
	ticker := p.wallClock.NewTicker(PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.Chan():
			p.poll()
		case <-p.stop:
			return
		}
	}
}

func (p *Poller) poll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	state, err := p.fetcher.FetchLiveState(ctx, p.tournamentID)
	if err != nil {
		slog.Debug("live state poll failed", "tournament", p.tournamentID, "error", err)
		state = nil
	}
	p.onState(state)
}

func (p *Poller) Stop() {
	select {
	case <-p.stop:
	default:
		close(p.stop)
	}
}
