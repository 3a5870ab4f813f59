package sleeper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trav563/dynasty-analysis/internal/models"
)

// transactionWeeks is the per-week fallback range when the bulk
// transaction endpoint is unavailable.
const transactionWeeks = 18

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) GetLeague(ctx context.Context, leagueID string) (*models.League, error) {
	var league models.League
	endpoint := fmt.Sprintf("/league/%s", leagueID)
	if err := a.client.Get(ctx, endpoint, &league); err != nil {
		return nil, fmt.Errorf("fetching league %s: %w", leagueID, err)
	}
	return &league, nil
}

func (a *API) GetLeagueUsers(ctx context.Context, leagueID string) ([]models.User, error) {
	var users []models.User
	endpoint := fmt.Sprintf("/league/%s/users", leagueID)
	if err := a.client.Get(ctx, endpoint, &users); err != nil {
		return nil, fmt.Errorf("fetching users for league %s: %w", leagueID, err)
	}
	return users, nil
}

func (a *API) GetLeagueRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	var rosters []models.Roster
	endpoint := fmt.Sprintf("/league/%s/rosters", leagueID)
	if err := a.client.Get(ctx, endpoint, &rosters); err != nil {
		return nil, fmt.Errorf("fetching rosters for league %s: %w", leagueID, err)
	}
	return rosters, nil
}

func (a *API) GetMatchups(ctx context.Context, leagueID string, week int) ([]models.Matchup, error) {
	var matchups []models.Matchup
	endpoint := fmt.Sprintf("/league/%s/matchups/%d", leagueID, week)
	if err := a.client.Get(ctx, endpoint, &matchups); err != nil {
		return nil, fmt.Errorf("fetching matchups for league %s week %d: %w", leagueID, week, err)
	}
	return matchups, nil
}

// GetAllPlayers fetches the full player directory. The payload is
// large (several MB); callers fetch it once and hold it for the life
// of the process.
func (a *API) GetAllPlayers(ctx context.Context) (map[string]models.Player, error) {
	var players map[string]models.Player
	if err := a.client.Get(ctx, "/players/nfl", &players); err != nil {
		return nil, fmt.Errorf("fetching player directory: %w", err)
	}
	return players, nil
}

func (a *API) GetNflState(ctx context.Context) (*models.NflState, error) {
	var state models.NflState
	if err := a.client.Get(ctx, "/state/nfl", &state); err != nil {
		return nil, fmt.Errorf("fetching nfl state: %w", err)
	}
	return &state, nil
}

func (a *API) GetLeagueDrafts(ctx context.Context, leagueID string) ([]models.Draft, error) {
	var drafts []models.Draft
	endpoint := fmt.Sprintf("/league/%s/drafts", leagueID)
	if err := a.client.Get(ctx, endpoint, &drafts); err != nil {
		return nil, fmt.Errorf("fetching drafts for league %s: %w", leagueID, err)
	}
	return drafts, nil
}

func (a *API) GetDraftPicks(ctx context.Context, draftID string) ([]models.DraftPick, error) {
	var picks []models.DraftPick
	endpoint := fmt.Sprintf("/draft/%s/picks", draftID)
	if err := a.client.Get(ctx, endpoint, &picks); err != nil {
		return nil, fmt.Errorf("fetching picks for draft %s: %w", draftID, err)
	}
	return picks, nil
}

// GetTransactions fetches a league's full transaction log. If the bulk
// endpoint is unavailable it falls back to fetching week by week,
// tolerating missing weeks, and concatenates the results.
func (a *API) GetTransactions(ctx context.Context, leagueID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	endpoint := fmt.Sprintf("/league/%s/transactions", leagueID)
	err := a.client.Get(ctx, endpoint, &transactions)
	if err == nil {
		return transactions, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("fetching transactions for league %s: %w", leagueID, err)
	}

	var all []models.Transaction
	for week := 1; week <= transactionWeeks; week++ {
		weekly, err := a.GetTransactionsForWeek(ctx, leagueID, week)
		if err != nil {
			if !errors.Is(err, ErrNotFound) {
				slog.Warn("Skipping transaction week", "league", leagueID, "week", week, "error", err)
			}
			continue
		}
		all = append(all, weekly...)
	}
	return all, nil
}

func (a *API) GetTransactionsForWeek(ctx context.Context, leagueID string, week int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	endpoint := fmt.Sprintf("/league/%s/transactions/%d", leagueID, week)
	if err := a.client.Get(ctx, endpoint, &transactions); err != nil {
		return nil, fmt.Errorf("fetching transactions for league %s week %d: %w", leagueID, week, err)
	}
	return transactions, nil
}
