package narrative

import (
	"context"
	"testing"

	"github.com/jonboulle/clockwork"

	"github.com/trav563/dynasty-analysis/internal/cache"
	"github.com/trav563/dynasty-analysis/internal/models"
	"github.com/trav563/dynasty-analysis/internal/season"
)

// countingAPI stands in for the Sleeper API behind a real reconciler
// so the cached read path can be observed end to end.
type countingAPI struct {
	leagueCalls int
	txnCalls    int
	draftCalls  int
	pickCalls   int
}

func (c *countingAPI) GetLeague(context.Context, string) (*models.League, error) {
	c.leagueCalls++
	return &models.League{LeagueID: "LP", Season: "2024"}, nil
}

func (c *countingAPI) GetLeagueUsers(context.Context, string) ([]models.User, error) {
	return []models.User{{UserID: "U1", DisplayName: "Manager1"}}, nil
}

func (c *countingAPI) GetLeagueRosters(context.Context, string) ([]models.Roster, error) {
	return []models.Roster{{RosterID: 1, OwnerID: "U1"}}, nil
}

func (c *countingAPI) GetMatchups(context.Context, string, int) ([]models.Matchup, error) {
	return nil, nil
}

func (c *countingAPI) GetTransactions(context.Context, string) ([]models.Transaction, error) {
	c.txnCalls++
	return []models.Transaction{{
		TransactionID: "t1",
		Type:          models.TransactionWaiver,
		StatusUpdated: 1000,
		Adds:          map[string]int{"P1": 1},
	}}, nil
}

func (c *countingAPI) GetLeagueDrafts(context.Context, string) ([]models.Draft, error) {
	c.draftCalls++
	return []models.Draft{{DraftID: "D1", Season: "2024"}}, nil
}

func (c *countingAPI) GetDraftPicks(context.Context, string) ([]models.DraftPick, error) {
	c.pickCalls++
	return nil, nil
}

func TestBuildPlayerHistory_PastSeasonFetchedOnce(t *testing.T) {
	api := &countingAPI{}
	reconciler := season.NewReconciler(api, cache.New(cache.DefaultTTL, clockwork.NewFakeClock()))
	engine := NewEngine(reconciler)

	state := regularState()
	seasonMap := map[int]string{2024: "LP"}

	for i := 0; i < 2; i++ {
		events := engine.BuildPlayerHistory(context.Background(), "P1", seasonMap, testPlayers(), state)
		if len(events) != 1 {
			t.Fatalf("run %d: events = %d, want 1", i+1, len(events))
		}
	}

	if api.txnCalls != 1 {
		t.Errorf("transaction fetches = %d, want 1", api.txnCalls)
	}
	if api.draftCalls != 1 || api.pickCalls != 1 {
		t.Errorf("draft/pick fetches = %d/%d, want 1/1", api.draftCalls, api.pickCalls)
	}
	if api.leagueCalls != 1 {
		t.Errorf("league fetches = %d, want 1", api.leagueCalls)
	}
}
