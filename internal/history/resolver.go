// Package history resolves a league's multi-season lineage by walking
// the previous-league chain the API exposes.
package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/trav563/dynasty-analysis/internal/models"
)

// maxAttempts bounds the chain walk. League ids form a linked list
// with no cycle guarantee from the API; the attempt cap is the sole
// safeguard.
const maxAttempts = 5

// maxConsecutiveFailures stops the walk early when the data source
// looks unhealthy.
const maxConsecutiveFailures = 2

// backfillYears is how many season keys the resolver guarantees in the
// returned map even when traversal fails entirely.
const backfillYears = 3

// LeagueFetcher is the slice of the data source the resolver needs.
type LeagueFetcher interface {
	GetLeague(ctx context.Context, leagueID string) (*models.League, error)
}

// Pacing throttles requests against the data source's implicit rate
// limit. Zero values disable the delays, which tests rely on.
type Pacing struct {
	PerRequest   time.Duration
	AfterFailure time.Duration
}

func DefaultPacing() Pacing {
	return Pacing{
		PerRequest:   500 * time.Millisecond,
		AfterFailure: time.Second,
	}
}

type Resolver struct {
	api    LeagueFetcher
	pacing Pacing
	clock  clockwork.Clock
}

func NewResolver(api LeagueFetcher, pacing Pacing, clock clockwork.Clock) *Resolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Resolver{api: api, pacing: pacing, clock: clock}
}

// SeasonLeagueMap walks the previous-league chain starting at
// startingLeagueID and returns a season-year to league-id map. The
// walk is best effort: fetch failures are logged and bounded, never
// surfaced. The starting league's season is recorded first, so when a
// historical league carries the same season label the current one
// wins. The current season and the two prior years are backfilled
// with the starting league id wherever traversal left a gap, so the
// map always has at least three seasons.
func (r *Resolver) SeasonLeagueMap(ctx context.Context, startingLeagueID string, currentSeasonYear int) map[int]string {
	type hop struct {
		leagueID string
		season   int
	}

	var collected []hop
	cursor := startingLeagueID
	failures := 0

	for attempt := 0; attempt < maxAttempts; attempt++ {
		league, err := r.api.GetLeague(ctx, cursor)
		if err != nil {
			failures++
			slog.Warn("Failed league hop", "league", cursor, "attempt", attempt+1, "error", err)
			if failures >= maxConsecutiveFailures {
				break
			}
			r.sleep(ctx, r.pacing.AfterFailure)
			continue
		}
		failures = 0

		collected = append(collected, hop{leagueID: cursor, season: league.SeasonYear()})
		if league.PreviousLeagueID == "" {
			break
		}
		cursor = league.PreviousLeagueID
		r.sleep(ctx, r.pacing.PerRequest)
	}

	seasonMap := make(map[int]string, len(collected)+backfillYears)
	for _, h := range collected {
		if h.season == 0 {
			continue
		}
		if _, ok := seasonMap[h.season]; !ok {
			seasonMap[h.season] = h.leagueID
		}
	}

	for i := 0; i < backfillYears; i++ {
		year := currentSeasonYear - i
		if _, ok := seasonMap[year]; !ok {
			seasonMap[year] = startingLeagueID
		}
	}

	return seasonMap
}

func (r *Resolver) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	select {
	case <-ctx.Done():
	case <-r.clock.After(d):
	}
}
