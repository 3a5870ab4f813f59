// Package season loads one season's league, users, rosters, and
// matchups, reading through a TTL cache for seasons that are already
// over and tolerating partial matchup data.
package season

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trav563/dynasty-analysis/internal/api/sleeper"
	"github.com/trav563/dynasty-analysis/internal/models"
)

const (
	// maxWeek is the last matchup week fetched for a season.
	maxWeek = 18
	// weekBatchSize bounds burst request rate: weeks are fetched in
	// sequential batches of this many.
	weekBatchSize = 6
)

// Cache kinds.
const (
	kindLeague       = "league"
	kindUsers        = "users"
	kindRosters      = "rosters"
	kindMatchups     = "matchups"
	kindTransactions = "transactions"
	kindDrafts       = "drafts"
	kindDraftPicks   = "draftpicks"
)

// DataSource is the slice of the API the reconciler needs.
type DataSource interface {
	GetLeague(ctx context.Context, leagueID string) (*models.League, error)
	GetLeagueUsers(ctx context.Context, leagueID string) ([]models.User, error)
	GetLeagueRosters(ctx context.Context, leagueID string) ([]models.Roster, error)
	GetMatchups(ctx context.Context, leagueID string, week int) ([]models.Matchup, error)
	GetTransactions(ctx context.Context, leagueID string) ([]models.Transaction, error)
	GetLeagueDrafts(ctx context.Context, leagueID string) ([]models.Draft, error)
	GetDraftPicks(ctx context.Context, draftID string) ([]models.DraftPick, error)
}

// Cache is a read-through store keyed by (kind, leagueID, season). An
// expired or absent entry reports ok=false.
type Cache interface {
	Get(kind, leagueID string, season int) (interface{}, bool)
	Set(kind, leagueID string, season int, value interface{})
}

type Reconciler struct {
	api   DataSource
	cache Cache
}

func NewReconciler(api DataSource, cache Cache) *Reconciler {
	return &Reconciler{api: api, cache: cache}
}

// LoadSeason assembles the dataset for one league season. Past
// seasons read through the cache; current and future seasons are
// always fetched live. League, users, and rosters are the season's
// core identity: failure to obtain any of them fails the load with an
// error naming the league. Matchups are best effort: a missing week
// contributes nothing, a future or not-yet-started season skips
// matchup fetching entirely, and every returned record is tagged with
// its week.
func (r *Reconciler) LoadSeason(ctx context.Context, leagueID string, season int, state *models.NflState) (*models.SeasonData, error) {
	isPast := season < state.SeasonYear()

	league, err := r.loadLeague(ctx, leagueID, season, isPast)
	if err != nil {
		return nil, fmt.Errorf("loading league %s: %w", leagueID, err)
	}

	users, err := r.loadUsers(ctx, leagueID, season, isPast)
	if err != nil {
		return nil, fmt.Errorf("loading users for league %s: %w", leagueID, err)
	}

	rosters, err := r.loadRosters(ctx, leagueID, season, isPast)
	if err != nil {
		return nil, fmt.Errorf("loading rosters for league %s: %w", leagueID, err)
	}

	matchups := r.loadMatchups(ctx, leagueID, season, isPast, state)

	return &models.SeasonData{
		League:   league,
		Users:    users,
		Rosters:  rosters,
		Matchups: matchups,
	}, nil
}

func (r *Reconciler) loadLeague(ctx context.Context, leagueID string, season int, isPast bool) (*models.League, error) {
	if isPast {
		if v, ok := r.cache.Get(kindLeague, leagueID, season); ok {
			if league, ok := v.(*models.League); ok {
				return league, nil
			}
		}
	}
	league, err := r.api.GetLeague(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if isPast {
		r.cache.Set(kindLeague, leagueID, season, league)
	}
	return league, nil
}

func (r *Reconciler) loadUsers(ctx context.Context, leagueID string, season int, isPast bool) ([]models.User, error) {
	if isPast {
		if v, ok := r.cache.Get(kindUsers, leagueID, season); ok {
			if users, ok := v.([]models.User); ok {
				return users, nil
			}
		}
	}
	users, err := r.api.GetLeagueUsers(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if isPast {
		r.cache.Set(kindUsers, leagueID, season, users)
	}
	return users, nil
}

func (r *Reconciler) loadRosters(ctx context.Context, leagueID string, season int, isPast bool) ([]models.Roster, error) {
	if isPast {
		if v, ok := r.cache.Get(kindRosters, leagueID, season); ok {
			if rosters, ok := v.([]models.Roster); ok {
				return rosters, nil
			}
		}
	}
	rosters, err := r.api.GetLeagueRosters(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if isPast {
		r.cache.Set(kindRosters, leagueID, season, rosters)
	}
	return rosters, nil
}

func (r *Reconciler) loadMatchups(ctx context.Context, leagueID string, season int, isPast bool, state *models.NflState) []models.Matchup {
	// No matchups exist yet for a future season.
	if season > state.SeasonYear() {
		return nil
	}
	// Current season that has not started: same.
	if !isPast && state.SeasonType != "regular" && state.SeasonType != "post" {
		return nil
	}

	if isPast {
		if v, ok := r.cache.Get(kindMatchups, leagueID, season); ok {
			if matchups, ok := v.([]models.Matchup); ok {
				return matchups
			}
		}
	}

	var all []models.Matchup
	for batchStart := 1; batchStart <= maxWeek; batchStart += weekBatchSize {
		for week := batchStart; week < batchStart+weekBatchSize && week <= maxWeek; week++ {
			weekly, err := r.api.GetMatchups(ctx, leagueID, week)
			if err != nil {
				if !errors.Is(err, sleeper.ErrNotFound) {
					slog.Warn("Skipping matchup week", "league", leagueID, "week", week, "error", err)
				}
				continue
			}
			for i := range weekly {
				weekly[i].Week = week
			}
			all = append(all, weekly...)
		}
	}

	if isPast {
		r.cache.Set(kindMatchups, leagueID, season, all)
	}
	return all
}

// LoadTransactions returns a season's transaction log under the same
// caching rules as the core identity: past seasons read through the
// cache, everything else is fetched live.
func (r *Reconciler) LoadTransactions(ctx context.Context, leagueID string, season int, state *models.NflState) ([]models.Transaction, error) {
	isPast := season < state.SeasonYear()
	if isPast {
		if v, ok := r.cache.Get(kindTransactions, leagueID, season); ok {
			if transactions, ok := v.([]models.Transaction); ok {
				return transactions, nil
			}
		}
	}
	transactions, err := r.api.GetTransactions(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if isPast {
		r.cache.Set(kindTransactions, leagueID, season, transactions)
	}
	return transactions, nil
}

// LoadDrafts returns a season's drafts, cached for past seasons.
func (r *Reconciler) LoadDrafts(ctx context.Context, leagueID string, season int, state *models.NflState) ([]models.Draft, error) {
	isPast := season < state.SeasonYear()
	if isPast {
		if v, ok := r.cache.Get(kindDrafts, leagueID, season); ok {
			if drafts, ok := v.([]models.Draft); ok {
				return drafts, nil
			}
		}
	}
	drafts, err := r.api.GetLeagueDrafts(ctx, leagueID)
	if err != nil {
		return nil, err
	}
	if isPast {
		r.cache.Set(kindDrafts, leagueID, season, drafts)
	}
	return drafts, nil
}

// LoadDraftPicks returns one draft's pick records. Picks are keyed by
// draft id rather than league id; a completed past draft never
// changes, so it follows the same past-season caching rule.
func (r *Reconciler) LoadDraftPicks(ctx context.Context, draftID string, season int, state *models.NflState) ([]models.DraftPick, error) {
	isPast := season < state.SeasonYear()
	if isPast {
		if v, ok := r.cache.Get(kindDraftPicks, draftID, season); ok {
			if picks, ok := v.([]models.DraftPick); ok {
				return picks, nil
			}
		}
	}
	picks, err := r.api.GetDraftPicks(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if isPast {
		r.cache.Set(kindDraftPicks, draftID, season, picks)
	}
	return picks, nil
}
