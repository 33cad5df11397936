// Command floorclock is a terminal tournament clock. In drive mode it runs the
// local clock for a tournament day, persists its position across restarts and
// uploads the state to the server; in watch mode it only polls the server's
// shared live state.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/pokerfloor/pokerfloor/internal/client"
	"github.com/pokerfloor/pokerfloor/internal/clock"
	"github.com/pokerfloor/pokerfloor/internal/engine"
	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/pokerfloor/pokerfloor/internal/snapshot"
	"github.com/pokerfloor/pokerfloor/internal/structure"
	syncpkg "github.com/pokerfloor/pokerfloor/internal/sync"
)

func main() {
	var (
		server       = flag.String("server", "http://localhost:8080", "API server base URL")
		tournamentID = flag.String("tournament", "", "tournament id")
		day          = flag.Int("day", 0, "day index for multi-day tournaments")
		email        = flag.String("email", "", "login email (drive mode)")
		password     = flag.String("password", "", "login password (drive mode)")
		watch        = flag.Bool("watch", false, "watch the shared live state instead of driving")
	)
	flag.Parse()

	if *tournamentID == "" {
		log.Fatal("-tournament is required")
	}

	api := client.New(*server)
	ctx := context.Background()

	if *watch {
		runWatcher(ctx, api, *tournamentID)
		return
	}

	if *email == "" {
		*email = os.Getenv("POKERFLOOR_EMAIL")
	}
	if *password == "" {
		*password = os.Getenv("POKERFLOOR_PASSWORD")
	}
	if *email == "" || *password == "" {
		log.Fatal("-email and -password (or POKERFLOOR_EMAIL/POKERFLOOR_PASSWORD) are required to drive the clock")
	}
	if _, err := api.Login(ctx, *email, *password); err != nil {
		log.Fatal("Login failed: ", err)
	}

	tournament, err := api.FetchTournament(ctx, *tournamentID)
	if err != nil {
		log.Fatal("Failed to fetch tournament: ", err)
	}

	runDriver(api, tournament, *day)
}

func snapshotPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "floorclock", "snapshots.db")
}

func runDriver(api *client.Client, tournament *model.Tournament, dayIndex int) {
	lateReg = tournament.LateRegLevels

	store, err := snapshot.NewBoltStore(snapshotPath())
	if err != nil {
		log.Fatal("Failed to open snapshot store: ", err)
	}
	defer store.Close()

	wallClock := clockwork.NewRealClock()
	e := engine.New(wallClock, store)
	defer e.Close()

	uploader := syncpkg.NewUploader(api, wallClock)
	defer uploader.Stop()

	defer e.Subscribe(render)()
	defer e.Subscribe(uploader.Notify)()
	e.Init(tournament, dayIndex)

	fmt.Println()
	fmt.Println("commands: [space] start/pause  [n]ext  [p]rev  [+/-] adjust 1m  [a]uto  [d]ay N  [q]uit")

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	lines := make(chan string)
	go readLines(lines)

	for {
		select {
		case <-sigs:
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if !applyCommand(e, line) {
				return
			}
		}
	}
}

func readLines(out chan<- string) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		out <- strings.TrimSpace(scanner.Text())
	}
	close(out)
}

// applyCommand runs one console command against the engine. Returns false on
// quit.
func applyCommand(e *engine.Engine, line string) bool {
	switch {
	case line == "" || line == " ":
		if e.View().Clock.Status == clock.StatusRunning {
			e.Pause()
		} else {
			e.StartOrResume()
		}
	case line == "n":
		e.NextLevel()
	case line == "p":
		e.PrevLevel()
	case line == "+":
		e.AdjustMinutes(1)
	case line == "-":
		e.AdjustMinutes(-1)
	case line == "a":
		e.SetAutoAdvance(!e.View().Clock.AutoAdvance)
	case strings.HasPrefix(line, "d "):
		var n int
		if _, err := fmt.Sscanf(line, "d %d", &n); err == nil {
			e.SetDay(n)
		}
	case line == "q":
		return false
	default:
		fmt.Println("unknown command:", line)
	}
	return true
}

func render(v engine.View) {
	label := "No structure"
	if v.Clock.CurrentLevelIndex < len(v.Levels) {
		label = structure.Label(v.Levels[v.Clock.CurrentLevelIndex], v.Clock.CurrentLevelIndex)
	}

	line := fmt.Sprintf("[%s] %s  %s", v.Clock.Status, label, formatMs(v.Clock.MillisLeft))
	if v.DayLabel != "" {
		line = v.DayLabel + "  " + line
	}
	if untilBreak, ok := structure.NextBreakFromMs(v.Levels, v.Clock.CurrentLevelIndex, v.Clock.MillisLeft); ok {
		line += fmt.Sprintf("  | break in %s", formatMs(untilBreak))
	}
	if closeIdx, ok := structure.LateRegCloseIndex(v.Levels, lateReg); ok && v.Clock.CurrentLevelIndex <= closeIdx {
		untilClose := v.Clock.MillisLeft + structure.SumDurationMs(v.Levels, v.Clock.CurrentLevelIndex+1, closeIdx)
		line += fmt.Sprintf("  | late reg %s", formatMs(untilClose))
	}
	if !v.Clock.AutoAdvance {
		line += "  | auto off"
	}
	fmt.Println(line)
}

// lateReg holds the tournament's late registration window in levels. Views
// carry the structure but not this field, so the renderer reads it here.
var lateReg int

func formatMs(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

func runWatcher(ctx context.Context, api *client.Client, tournamentID string) {
	tournament, err := api.FetchTournament(ctx, tournamentID)
	if err != nil {
		log.Fatal("Failed to fetch tournament: ", err)
	}
	lateReg = tournament.LateRegLevels

	poller := syncpkg.StartPoller(api, clockwork.NewRealClock(), tournamentID, func(state *model.LiveTournamentState) {
		if state == nil {
			fmt.Println(syncpkg.ScheduleFallback(tournament, time.Now().UTC()))
			return
		}
		line := fmt.Sprintf("[%s] Level %d/%d  %s", state.Status, state.LevelIndex+1, state.TotalLevels, formatMs(state.RemainingMs))
		if state.DayLabel != nil && *state.DayLabel != "" {
			line = *state.DayLabel + "  " + line
		}
		fmt.Println(line)
	})
	defer poller.Stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs
}
