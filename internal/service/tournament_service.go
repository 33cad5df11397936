package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pokerfloor/pokerfloor/internal/model"
	"github.com/pokerfloor/pokerfloor/internal/store"
	"github.com/pokerfloor/pokerfloor/internal/structure"
)

type TournamentService struct {
	db          *sqlx.DB
	store       *store.TournamentStore
	casinoStore *store.CasinoStore
}

func NewTournamentService(db *sqlx.DB, store *store.TournamentStore, casinoStore *store.CasinoStore) *TournamentService {
	return &TournamentService{db: db, store: store, casinoStore: casinoStore}
}

// TournamentInput is the create/update payload. Structures and days pass
// through normalization rather than validation: legacy clients send partial
// levels and those records must still round-trip.
type TournamentInput struct {
	CasinoID      uuid.UUID              `json:"casinoId"`
	Name          string                 `json:"name"`
	DateTimeUTC   time.Time              `json:"dateTimeUTC"`
	BuyIn         int                    `json:"buyIn"`
	Rake          int                    `json:"rake"`
	Bounty        int                    `json:"bounty"`
	PrizePool     int                    `json:"prizePool"`
	GameType      string                 `json:"gameType"`
	StartingStack int                    `json:"startingStack"`
	ReEntry       bool                   `json:"reEntry"`
	ReEntryUnlim  bool                   `json:"reEntryUnlimited"`
	ReEntryCount  int                    `json:"reEntryCount"`
	LateRegLevels int                    `json:"lateRegLevels"`
	Structure     structure.Structure    `json:"structure"`
	Days          structure.Days         `json:"days"`
	Notes         string                 `json:"notes"`
	Status        model.TournamentStatus `json:"status"`
}

// normalize applies the payload rules shared by create and update:
// unlimited re-entry implies re-entry with a zero count, structure entries are
// cleaned (breaks zeroed, level numbers defaulted from position), days are
// sorted by start time with empty day structures inheriting the root
// structure, and the nominal start becomes the earliest day's start.
func (in *TournamentInput) normalize() {
	if in.ReEntryUnlim {
		in.ReEntry = true
		in.ReEntryCount = 0
	}
	if in.GameType == "" {
		in.GameType = "No Limit Hold'em"
	}
	in.Structure = normalizeStructure(in.Structure)

	if len(in.Days) > 0 {
		days := make(structure.Days, 0, len(in.Days))
		for _, d := range in.Days {
			if d.StartTimeUTC.IsZero() {
				continue
			}
			d.Structure = normalizeStructure(d.Structure)
			if len(d.Structure) == 0 && len(in.Structure) > 0 {
				d.Structure = in.Structure
			}
			days = append(days, d)
		}
		sort.SliceStable(days, func(i, j int) bool {
			return days[i].StartTimeUTC.Before(days[j].StartTimeUTC)
		})
		in.Days = days
		if len(days) > 0 {
			in.DateTimeUTC = days[0].StartTimeUTC
		}
	}

	switch in.Status {
	case model.TournamentScheduled, model.TournamentRunning, model.TournamentCompleted, model.TournamentCancelled:
	default:
		in.Status = model.TournamentScheduled
	}
}

func normalizeStructure(levels structure.Structure) structure.Structure {
	out := make(structure.Structure, 0, len(levels))
	for i, lv := range levels {
		if lv.IsBreak {
			out = append(out, structure.BlindLevel{
				DurationMinutes: lv.DurationMinutes,
				IsBreak:         true,
			})
			continue
		}
		if lv.Level == 0 {
			lv.Level = i + 1
		}
		out = append(out, lv)
	}
	return out
}

func (in *TournamentInput) apply(t *model.Tournament) {
	t.Name = in.Name
	t.DateTimeUTC = in.DateTimeUTC
	t.BuyIn = in.BuyIn
	t.Rake = in.Rake
	t.Bounty = in.Bounty
	t.PrizePool = in.PrizePool
	t.GameType = in.GameType
	t.StartingStack = in.StartingStack
	t.ReEntry = in.ReEntry
	t.ReEntryUnlim = in.ReEntryUnlim
	t.ReEntryCount = in.ReEntryCount
	t.LateRegLevels = in.LateRegLevels
	t.Structure = in.Structure
	t.Days = in.Days
	t.Notes = in.Notes
	t.Status = in.Status
}

// CreateTournament normalizes the payload and creates the record. The caller
// must be admin or staff assigned to the target casino, and the casino must
// exist.
func (s *TournamentService) CreateTournament(ctx context.Context, user *model.User, input TournamentInput) (*model.Tournament, error) {
	if !user.CanManageCasino(input.CasinoID) {
		return nil, ErrNotAssigned
	}
	if _, err := s.casinoStore.GetCasino(ctx, input.CasinoID.String()); err != nil {
		return nil, err
	}

	input.normalize()
	t := &model.Tournament{
		ID:       uuid.New(),
		CasinoID: input.CasinoID,
	}
	input.apply(t)
	if err := s.store.CreateTournament(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, id string) (*model.Tournament, error) {
	return s.store.GetTournament(ctx, id)
}

func (s *TournamentService) ListTournaments(ctx context.Context, filter store.TournamentFilter) ([]model.Tournament, error) {
	return s.store.ListTournaments(ctx, filter)
}

// UpdateTournament applies a normalized payload to an existing tournament.
// The owning casino never changes on update.
func (s *TournamentService) UpdateTournament(ctx context.Context, user *model.User, id string, input TournamentInput) (*model.Tournament, error) {
	existing, err := s.store.GetTournament(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.CanManageCasino(existing.CasinoID) {
		return nil, ErrNotAssigned
	}

	input.normalize()
	input.apply(existing)
	if err := s.store.UpdateTournament(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *TournamentService) DeleteTournament(ctx context.Context, user *model.User, id string) error {
	existing, err := s.store.GetTournament(ctx, id)
	if err != nil {
		return err
	}
	if !user.CanManageCasino(existing.CasinoID) {
		return ErrNotAssigned
	}
	_, err = s.store.DeleteTournament(ctx, id)
	return err
}
