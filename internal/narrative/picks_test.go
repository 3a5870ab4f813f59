package narrative

import (
	"context"
	"strings"
	"testing"

	"github.com/trav563/dynasty-analysis/internal/models"
)

func TestBuildPlayerHistory_ResolvesPastPickToDraftedPlayer(t *testing.T) {
	tx := models.Transaction{
		TransactionID: "t1",
		Type:          models.TransactionTrade,
		Adds:          map[string]int{"P1": 2},
		Drops:         map[string]int{"P1": 1},
		RosterIDs:     []int{1, 2},
		DraftPicks: []models.TradedPick{
			// The reference claims round 3; the draft record (round 1)
			// is authoritative.
			{Season: "2024", Round: 3, PickNo: 7, RosterID: 1, OwnerID: 1},
		},
	}
	engine := NewEngine(&fakeSeasons{
		data: map[string]*models.SeasonData{
			"LP": leagueData(2),
			"L1": leagueData(2),
		},
		txns: map[string][]models.Transaction{"LP": {}, "L1": {tx}},
		drafts: map[string][]models.Draft{
			"LP": {{DraftID: "D1", Season: "2024", Status: "complete"}},
		},
		picks: map[string][]models.DraftPick{
			"D1": {{DraftID: "D1", PickNo: 7, Round: 1, DraftSlot: 7, PlayerID: "P9"}},
		},
	})

	events := engine.BuildPlayerHistory(context.Background(), "P1",
		map[int]string{2024: "LP", 2025: "L1"}, testPlayers(), regularState())

	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	narrative := events[0].Narrative
	if !strings.Contains(narrative, "Bijan Robinson (2024 Round 1 Pick 7) (owned by Manager1)") {
		t.Errorf("narrative %q does not resolve the drafted player with the authoritative round", narrative)
	}
	if strings.Contains(narrative, "Round 3") {
		t.Errorf("narrative %q kept the reference's round", narrative)
	}
}

func TestBuildPlayerHistory_FuturePickFallsBack(t *testing.T) {
	tx := models.Transaction{
		TransactionID: "t1",
		Type:          models.TransactionTrade,
		Adds:          map[string]int{"P1": 2},
		Drops:         map[string]int{"P1": 1},
		RosterIDs:     []int{1, 2},
		DraftPicks: []models.TradedPick{
			{Season: "2026", Round: 2, RosterID: 2, OwnerID: 2},
		},
	}
	engine := newTestEngine(
		map[string][]models.Transaction{"L1": {tx}},
		map[string]*models.SeasonData{"L1": leagueData(2)},
	)

	events := engine.BuildPlayerHistory(context.Background(), "P1",
		map[int]string{2025: "L1"}, testPlayers(), regularState())

	if !strings.Contains(events[0].Narrative, "2026 Round 2 (owned by Manager2)") {
		t.Errorf("narrative = %q, want future pick fallback", events[0].Narrative)
	}
}

func TestPlayerNameFallbacks(t *testing.T) {
	players := map[string]models.Player{
		"ghost": {PlayerID: "ghost"},
		"P1":    {PlayerID: "P1", FirstName: "Tyreek", LastName: "Hill"},
	}

	cases := []struct {
		id   string
		want string
	}{
		{"P1", "Tyreek Hill"},
		{"ghost", "Unknown Player"},
		{"missing", "Player missing"},
	}
	for _, tc := range cases {
		if got := playerName(players, tc.id); got != tc.want {
			t.Errorf("playerName(%s) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestManagerNameFallbacks(t *testing.T) {
	data := &models.SeasonData{
		Rosters: []models.Roster{
			{RosterID: 1, OwnerID: "u1"},
			{RosterID: 2, OwnerID: "orphan"},
			{RosterID: 3},
		},
		Users: []models.User{
			{UserID: "u1", DisplayName: "Alpha"},
		},
	}

	cases := []struct {
		rosterID int
		want     string
	}{
		{1, "Alpha"},
		{2, "Unknown Manager"},
		{3, "Roster 3"},
		{9, "Roster 9"},
	}
	for _, tc := range cases {
		if got := managerName(data, tc.rosterID); got != tc.want {
			t.Errorf("managerName(%d) = %q, want %q", tc.rosterID, got, tc.want)
		}
	}
}
