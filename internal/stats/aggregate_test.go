package stats

import (
	"math"
	"testing"

	"github.com/trav563/dynasty-analysis/internal/models"
)

func matchup(week, matchupID, rosterID int, points float64) models.Matchup {
	return models.Matchup{Week: week, MatchupID: matchupID, RosterID: rosterID, Points: points}
}

func TestWinRate(t *testing.T) {
	matchups := []models.Matchup{
		matchup(1, 1, 1, 120.5),
		matchup(1, 1, 2, 98.2),
		matchup(2, 3, 1, 88.0),
		matchup(2, 3, 2, 101.4),
		matchup(3, 2, 1, 130.0),
		matchup(3, 2, 3, 129.9),
	}

	got := WinRate(matchups, 1)
	want := 100 * 2.0 / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("WinRate = %v, want %v", got, want)
	}
	if got < 0 || got > 100 {
		t.Errorf("WinRate out of range: %v", got)
	}
}

func TestWinRate_NoGames(t *testing.T) {
	if got := WinRate(nil, 1); got != 0 {
		t.Errorf("WinRate(nil) = %v, want 0", got)
	}

	// A roster alone in its pair has no opponent and no game.
	solo := []models.Matchup{matchup(1, 1, 1, 100)}
	if got := WinRate(solo, 1); got != 0 {
		t.Errorf("WinRate with bye week = %v, want 0", got)
	}
}

func TestWinRate_MultiTeamPairUsesFirstOpponent(t *testing.T) {
	matchups := []models.Matchup{
		matchup(1, 1, 1, 100),
		matchup(1, 1, 2, 90),
		matchup(1, 1, 3, 110),
	}
	// Opponent is the first non-target record (roster 2), so this is
	// counted as a win.
	if got := WinRate(matchups, 1); got != 100 {
		t.Errorf("WinRate = %v, want 100", got)
	}
}

func TestAveragePoints(t *testing.T) {
	matchups := []models.Matchup{
		matchup(1, 1, 1, 100),
		matchup(2, 1, 1, 110),
		matchup(3, 1, 1, 90),
		matchup(1, 1, 2, 55),
	}

	if got := AveragePoints(matchups, 1); got != 100 {
		t.Errorf("AveragePoints = %v, want 100", got)
	}
}

func TestAveragePoints_EmptyIsZero(t *testing.T) {
	if got := AveragePoints(nil, 7); got != 0 {
		t.Errorf("AveragePoints(nil) = %v, want 0", got)
	}
}

func TestAveragePoints_Linear(t *testing.T) {
	matchups := []models.Matchup{
		matchup(1, 1, 1, 80),
		matchup(2, 1, 1, 120),
	}
	doubled := []models.Matchup{
		matchup(1, 1, 1, 160),
		matchup(2, 1, 1, 240),
	}

	if got, want := AveragePoints(doubled, 1), 2*AveragePoints(matchups, 1); got != want {
		t.Errorf("doubled average = %v, want %v", got, want)
	}
}

func TestStandings_OrderAndTieBreak(t *testing.T) {
	rosters := []models.Roster{
		{RosterID: 1, OwnerID: "u1", Settings: models.RosterSettings{Wins: 8, FPts: 1200}},
		{RosterID: 2, OwnerID: "u2", Settings: models.RosterSettings{Wins: 10, FPts: 1100}},
		{RosterID: 3, OwnerID: "u3", Settings: models.RosterSettings{Wins: 8, FPts: 1250, FPtsDecimal: 50}},
	}
	users := []models.User{
		{UserID: "u1", DisplayName: "Alpha"},
		{UserID: "u2", DisplayName: "Bravo"},
	}

	standings := Standings(rosters, users)

	wantOrder := []string{"Bravo", "Team 3", "Alpha"}
	for i, want := range wantOrder {
		if standings[i].TeamName != want {
			t.Errorf("standings[%d] = %s, want %s", i, standings[i].TeamName, want)
		}
		if standings[i].Rank != i+1 {
			t.Errorf("standings[%d].Rank = %d, want %d", i, standings[i].Rank, i+1)
		}
	}
	if standings[1].PointsFor != 1250.5 {
		t.Errorf("PointsFor = %v, want 1250.5", standings[1].PointsFor)
	}
}

func TestTrendingTeams_SingleWeekIsEmpty(t *testing.T) {
	matchups := []models.Matchup{
		matchup(5, 1, 1, 100),
		matchup(5, 1, 2, 90),
	}

	if got := TrendingTeams(matchups, nil, nil, 4); len(got) != 0 {
		t.Errorf("TrendingTeams with one week = %v, want empty", got)
	}
}

func TestTrendingTeams_Deltas(t *testing.T) {
	matchups := []models.Matchup{
		matchup(1, 1, 1, 90),
		matchup(2, 1, 1, 110),
		matchup(3, 1, 1, 130), // trend = 130 - (90+110)/2 = +30
		matchup(1, 1, 2, 120),
		matchup(2, 1, 2, 100),
		matchup(3, 1, 2, 80), // trend = 80 - (120+100)/2 = -30
	}
	rosters := []models.Roster{
		{RosterID: 1, OwnerID: "u1"},
		{RosterID: 2, OwnerID: "u2"},
	}
	users := []models.User{
		{UserID: "u1", DisplayName: "Riser"},
		{UserID: "u2", DisplayName: "Faller"},
	}

	trends := TrendingTeams(matchups, rosters, users, 4)
	if len(trends) != 2 {
		t.Fatalf("len(trends) = %d, want 2", len(trends))
	}
	if trends[0].TeamName != "Riser" || trends[0].Trend != 30 {
		t.Errorf("trends[0] = %+v, want Riser +30", trends[0])
	}
	if trends[1].TeamName != "Faller" || trends[1].Trend != -30 {
		t.Errorf("trends[1] = %+v, want Faller -30", trends[1])
	}
}

func TestTrendingTeams_OmitsRosterMissingLatestWeek(t *testing.T) {
	matchups := []models.Matchup{
		matchup(1, 1, 1, 90),
		matchup(2, 1, 1, 110),
		matchup(3, 1, 1, 130),
		// Roster 2 has history but no latest-week record; a zero
		// stand-in would report an invented collapse.
		matchup(1, 1, 2, 120),
		matchup(2, 1, 2, 100),
	}

	trends := TrendingTeams(matchups, nil, nil, 4)
	if len(trends) != 1 {
		t.Fatalf("len(trends) = %d, want 1", len(trends))
	}
	if trends[0].RosterID != 1 {
		t.Errorf("RosterID = %d, want 1", trends[0].RosterID)
	}
}

func TestTrendingTeams_ConsidersOnlyRecentWeeks(t *testing.T) {
	matchups := []models.Matchup{
		matchup(1, 1, 1, 500), // outside the 2-week window, must be ignored
		matchup(2, 1, 1, 100),
		matchup(3, 1, 1, 120),
	}
	trends := TrendingTeams(matchups, nil, nil, 2)
	if len(trends) != 1 {
		t.Fatalf("len(trends) = %d, want 1", len(trends))
	}
	if trends[0].Trend != 20 {
		t.Errorf("Trend = %v, want 20", trends[0].Trend)
	}
	if trends[0].TeamName != "Team 1" {
		t.Errorf("TeamName = %s, want Team 1", trends[0].TeamName)
	}
}
