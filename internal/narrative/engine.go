// Package narrative derives a human-readable transaction history for
// one player from the raw multi-season transaction log.
package narrative

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/trav563/dynasty-analysis/internal/models"
)

// SeasonLoader loads season-scoped data under the reconciler's
// caching rules: past seasons read through the cache, current and
// future seasons are fetched live.
type SeasonLoader interface {
	LoadSeason(ctx context.Context, leagueID string, season int, state *models.NflState) (*models.SeasonData, error)
	LoadTransactions(ctx context.Context, leagueID string, season int, state *models.NflState) ([]models.Transaction, error)
	LoadDrafts(ctx context.Context, leagueID string, season int, state *models.NflState) ([]models.Draft, error)
	LoadDraftPicks(ctx context.Context, draftID string, season int, state *models.NflState) ([]models.DraftPick, error)
}

type Engine struct {
	seasons SeasonLoader
}

func NewEngine(seasons SeasonLoader) *Engine {
	return &Engine{seasons: seasons}
}

// draftIndex holds the once-built pick lookups the formatting rules
// resolve against.
type draftIndex struct {
	draftsBySeason map[int][]models.Draft
	picksByDraft   map[string][]models.DraftPick
}

// BuildPlayerHistory walks every season in seasonLeagueMap, collects
// the transactions that moved playerID, and narrates each one exactly
// once. It is total: any fetch failure is logged and narrows the
// result rather than aborting it. The returned events are sorted
// ascending by transaction timestamp, with unknown timestamps first.
func (e *Engine) BuildPlayerHistory(ctx context.Context, playerID string, seasonLeagueMap map[int]string, players map[string]models.Player, state *models.NflState) []models.PlayerTransactionEvent {
	currentYear := state.SeasonYear()
	index := e.buildDraftIndex(ctx, seasonLeagueMap, state)

	seasons := make([]int, 0, len(seasonLeagueMap))
	for season := range seasonLeagueMap {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)

	seen := make(map[string]bool)
	var events []models.PlayerTransactionEvent

	for _, seasonYear := range seasons {
		leagueID := seasonLeagueMap[seasonYear]

		data, err := e.seasons.LoadSeason(ctx, leagueID, seasonYear, state)
		if err != nil {
			slog.Warn("Skipping season in player history", "league", leagueID, "season", seasonYear, "error", err)
			continue
		}

		transactions, err := e.seasons.LoadTransactions(ctx, leagueID, seasonYear, state)
		if err != nil {
			slog.Warn("Skipping season transactions", "league", leagueID, "season", seasonYear, "error", err)
			continue
		}

		for _, tx := range transactions {
			if !involvesPlayer(tx, playerID) {
				continue
			}
			// Adjacent season league ids can alias to the same
			// underlying league and return overlapping transaction
			// sets.
			if seen[tx.TransactionID] {
				continue
			}
			seen[tx.TransactionID] = true

			events = append(events, e.narrate(tx, playerID, seasonYear, data, players, index, currentYear))
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Transaction.StatusUpdated < events[j].Transaction.StatusUpdated
	})

	return events
}

// buildDraftIndex preloads drafts and their picks for every past
// season. Pick-to-player resolution depends on these lookups, so they
// are built before any transaction is processed.
func (e *Engine) buildDraftIndex(ctx context.Context, seasonLeagueMap map[int]string, state *models.NflState) draftIndex {
	index := draftIndex{
		draftsBySeason: make(map[int][]models.Draft),
		picksByDraft:   make(map[string][]models.DraftPick),
	}

	for seasonYear, leagueID := range seasonLeagueMap {
		if seasonYear >= state.SeasonYear() {
			continue
		}
		drafts, err := e.seasons.LoadDrafts(ctx, leagueID, seasonYear, state)
		if err != nil {
			slog.Warn("Skipping season drafts", "league", leagueID, "season", seasonYear, "error", err)
			continue
		}
		index.draftsBySeason[seasonYear] = drafts

		for _, draft := range drafts {
			picks, err := e.seasons.LoadDraftPicks(ctx, draft.DraftID, seasonYear, state)
			if err != nil {
				slog.Warn("Skipping draft picks", "draft", draft.DraftID, "error", err)
				continue
			}
			index.picksByDraft[draft.DraftID] = picks
		}
	}

	return index
}

func involvesPlayer(tx models.Transaction, playerID string) bool {
	if _, ok := tx.Adds[playerID]; ok {
		return true
	}
	_, ok := tx.Drops[playerID]
	return ok
}

func (e *Engine) narrate(tx models.Transaction, playerID string, seasonYear int, data *models.SeasonData, players map[string]models.Player, index draftIndex, currentYear int) models.PlayerTransactionEvent {
	addedTo, added := tx.Adds[playerID]
	droppedFrom, dropped := tx.Drops[playerID]

	event := models.PlayerTransactionEvent{
		Date:        time.UnixMilli(tx.StatusUpdated),
		Season:      seasonYear,
		Type:        tx.Type,
		Transaction: tx,
	}
	if added {
		event.To = managerName(data, addedTo)
	}
	if dropped {
		event.From = managerName(data, droppedFrom)
	}

	text := describeTransaction(tx, playerID, addedTo, added, droppedFrom, dropped, data)
	text += otherPlayersClause(tx, playerID, players)
	text += e.draftPicksClause(tx, data, players, index, currentYear)

	event.Narrative = text
	return event
}
