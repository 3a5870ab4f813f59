package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/trav563/dynasty-analysis/internal/api/sleeper"
	"github.com/trav563/dynasty-analysis/internal/history"
	"github.com/trav563/dynasty-analysis/internal/models"
	"github.com/trav563/dynasty-analysis/internal/narrative"
	"github.com/trav563/dynasty-analysis/internal/season"
	"github.com/trav563/dynasty-analysis/internal/stats"
)

// trendWeeks is how many recent weeks the trending report considers.
const trendWeeks = 4

type HistoryService struct {
	api       *sleeper.API
	resolver  *history.Resolver
	seasons   *season.Reconciler
	narrative *narrative.Engine
	leagueID  string

	mu      sync.RWMutex
	state   *models.NflState
	players map[string]models.Player
}

func NewHistoryService(api *sleeper.API, resolver *history.Resolver, seasons *season.Reconciler, engine *narrative.Engine, leagueID string) *HistoryService {
	return &HistoryService{
		api:       api,
		resolver:  resolver,
		seasons:   seasons,
		narrative: engine,
		leagueID:  leagueID,
	}
}

// Bootstrap fetches the NFL state snapshot and the player directory.
// Both are fetched once and treated as immutable afterwards; if the
// first fetch fails, later calls retry lazily through snapshot.
func (s *HistoryService) Bootstrap(ctx context.Context) error {
	_, _, err := s.snapshot(ctx)
	return err
}

func (s *HistoryService) snapshot(ctx context.Context) (*models.NflState, map[string]models.Player, error) {
	s.mu.RLock()
	state, players := s.state, s.players
	s.mu.RUnlock()
	if state != nil && players != nil {
		return state, players, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil {
		state, err := s.api.GetNflState(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("loading nfl state: %w", err)
		}
		s.state = state
	}
	if s.players == nil {
		players, err := s.api.GetAllPlayers(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("loading player directory: %w", err)
		}
		s.players = players
		slog.Info("Loaded player directory", "players", len(players))
	}
	return s.state, s.players, nil
}

func (s *HistoryService) GetStandings(ctx context.Context, yearArg string) (string, error) {
	state, _, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	year := state.SeasonYear()
	if yearArg != "" {
		parsed, err := strconv.Atoi(strings.TrimSpace(yearArg))
		if err != nil {
			return "", fmt.Errorf("invalid season year %q", yearArg)
		}
		year = parsed
	}

	seasonMap := s.resolver.SeasonLeagueMap(ctx, s.leagueID, state.SeasonYear())
	leagueID, ok := seasonMap[year]
	if !ok {
		return fmt.Sprintf("No league found for the %d season.", year), nil
	}

	data, err := s.seasons.LoadSeason(ctx, leagueID, year, state)
	if err != nil {
		return "", fmt.Errorf("error loading %d season: %w", year, err)
	}

	standings := stats.Standings(data.Rosters, data.Users)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 *%d Standings*\n\n", year))
	for _, team := range standings {
		sb.WriteString(fmt.Sprintf("%d. *%s*\n", team.Rank, team.TeamName))
		sb.WriteString(fmt.Sprintf("   Record: %d-%d-%d\n", team.Wins, team.Losses, team.Ties))
		sb.WriteString(fmt.Sprintf("   Points For: %.2f\n", team.PointsFor))
		sb.WriteString(fmt.Sprintf("   Points Against: %.2f\n\n", team.PointsAgainst))
	}

	return sb.String(), nil
}

func (s *HistoryService) GetTrendingTeams(ctx context.Context) (string, error) {
	state, _, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	data, err := s.seasons.LoadSeason(ctx, s.leagueID, state.SeasonYear(), state)
	if err != nil {
		return "", fmt.Errorf("error loading current season: %w", err)
	}

	trends := stats.TrendingTeams(data.Matchups, data.Rosters, data.Users, trendWeeks)
	if len(trends) == 0 {
		return "Not enough weekly data yet to compute trends.", nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📈 *Trending Teams (last %d weeks)*\n\n", trendWeeks))
	for _, t := range trends {
		arrow := "🔺"
		if t.Trend < 0 {
			arrow = "🔻"
		}
		sb.WriteString(fmt.Sprintf("%s *%s*: %+.2f (latest: %.2f)\n", arrow, t.TeamName, t.Trend, t.LatestPoints))
	}

	return sb.String(), nil
}

func (s *HistoryService) GetPlayerHistory(ctx context.Context, playerQuery string) (string, error) {
	state, players, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	playerID, player, found := findPlayer(players, playerQuery)
	if !found {
		return fmt.Sprintf("🔍 No player found matching '%s'.", playerQuery), nil
	}

	seasonMap := s.resolver.SeasonLeagueMap(ctx, s.leagueID, state.SeasonYear())
	events := s.narrative.BuildPlayerHistory(ctx, playerID, seasonMap, players, state)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📜 *%s %s* (%s - %s)\n", player.FirstName, player.LastName, player.Position, player.Team))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")

	if len(events) == 0 {
		sb.WriteString("No recorded transactions for this player in league history.")
		return sb.String(), nil
	}

	for _, event := range events {
		date := "Unknown date"
		if event.Transaction.StatusUpdated > 0 {
			date = event.Date.Format("Jan 2, 2006")
		}
		sb.WriteString(fmt.Sprintf("• _%s_ (%d): %s\n", date, event.Season, event.Narrative))
	}
	sb.WriteString(fmt.Sprintf("\n%d transaction(s) across league history.", len(events)))

	return sb.String(), nil
}

func (s *HistoryService) GetSeasons(ctx context.Context) (string, error) {
	state, _, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	seasonMap := s.resolver.SeasonLeagueMap(ctx, s.leagueID, state.SeasonYear())
	years := make([]int, 0, len(seasonMap))
	for year := range seasonMap {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	names := make(map[string]string)
	var sb strings.Builder
	sb.WriteString("📅 *League History*\n\n")
	for _, year := range years {
		leagueID := seasonMap[year]
		name, ok := names[leagueID]
		if !ok {
			league, err := s.api.GetLeague(ctx, leagueID)
			if err != nil {
				slog.Warn("Failed to name league season", "league", leagueID, "season", year, "error", err)
				name = "Unknown"
			} else {
				name = league.Name
			}
			names[leagueID] = name
		}
		sb.WriteString(fmt.Sprintf("*%d*: %s\n", year, name))
	}

	return sb.String(), nil
}

func (s *HistoryService) GetTeamSummary(ctx context.Context, teamQuery string) (string, error) {
	state, _, err := s.snapshot(ctx)
	if err != nil {
		return "", err
	}

	data, err := s.seasons.LoadSeason(ctx, s.leagueID, state.SeasonYear(), state)
	if err != nil {
		return "", fmt.Errorf("error loading current season: %w", err)
	}

	roster, teamName, found := findRoster(data, teamQuery)
	if !found {
		return fmt.Sprintf("🔍 No team found matching '%s'.", teamQuery), nil
	}

	winRate := stats.WinRate(data.Matchups, roster.RosterID)
	avg := stats.AveragePoints(data.Matchups, roster.RosterID)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *%s*\n", teamName))
	sb.WriteString("━━━━━━━━━━━━━━━━\n")
	sb.WriteString(fmt.Sprintf("Record: %d-%d-%d\n", roster.Settings.Wins, roster.Settings.Losses, roster.Settings.Ties))
	sb.WriteString(fmt.Sprintf("Win Rate: %.1f%%\n", winRate))
	sb.WriteString(fmt.Sprintf("Avg Points: %.2f\n", avg))
	sb.WriteString(fmt.Sprintf("Points For: %.2f\n", roster.Settings.PointsFor()))
	sb.WriteString(fmt.Sprintf("Points Against: %.2f\n", roster.Settings.PointsAgainst()))

	return sb.String(), nil
}

// findPlayer fuzzy-matches a free-text query against the player
// directory and returns the best match above a similarity threshold.
func findPlayer(players map[string]models.Player, query string) (string, models.Player, bool) {
	var bestID string
	var best models.Player
	bestScore := -1.0
	threshold := 0.7
	lowered := strings.ToLower(strings.TrimSpace(query))

	for id, player := range players {
		fullName := strings.ToLower(strings.TrimSpace(player.FirstName + " " + player.LastName))
		if fullName == "" {
			continue
		}
		distance := fuzzy.LevenshteinDistance(lowered, fullName)
		maxLen := float64(max(len(lowered), len(fullName)))
		similarity := 1 - float64(distance)/maxLen

		if similarity > threshold && similarity > bestScore {
			bestScore = similarity
			bestID = id
			best = player
		}
	}

	return bestID, best, bestScore >= 0
}

func findRoster(data *models.SeasonData, query string) (*models.Roster, string, bool) {
	var best *models.Roster
	bestName := ""
	bestScore := -1.0
	threshold := 0.6
	lowered := strings.ToLower(strings.TrimSpace(query))

	for i := range data.Rosters {
		roster := &data.Rosters[i]
		name := fmt.Sprintf("Team %d", roster.RosterID)
		if user := data.UserByID(roster.OwnerID); user != nil && user.DisplayName != "" {
			name = user.DisplayName
		}
		distance := fuzzy.LevenshteinDistance(lowered, strings.ToLower(name))
		maxLen := float64(max(len(lowered), len(name)))
		similarity := 1 - float64(distance)/maxLen

		if similarity > threshold && similarity > bestScore {
			bestScore = similarity
			best = roster
			bestName = name
		}
	}

	return best, bestName, best != nil
}
