package models

import "strconv"

type League struct {
	LeagueID         string         `json:"league_id"`
	Name             string         `json:"name"`
	Season           string         `json:"season"`
	SeasonType       string         `json:"season_type"`
	Status           string         `json:"status"`
	PreviousLeagueID string         `json:"previous_league_id"`
	TotalRosters     int            `json:"total_rosters"`
	Settings         LeagueSettings `json:"settings"`
}

type LeagueSettings struct {
	PlayoffWeekStart int `json:"playoff_week_start"`
	NumTeams         int `json:"num_teams"`
	Leg              int `json:"leg"`
}

// SeasonYear returns the league's season as a year, or 0 when the
// season tag is missing or unparseable.
func (l *League) SeasonYear() int {
	year, err := strconv.Atoi(l.Season)
	if err != nil {
		return 0
	}
	return year
}

type User struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Avatar      string `json:"avatar"`
}

type Roster struct {
	RosterID int            `json:"roster_id"`
	OwnerID  string         `json:"owner_id"`
	Players  []string       `json:"players"`
	Starters []string       `json:"starters"`
	Settings RosterSettings `json:"settings"`
}

type RosterSettings struct {
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	Ties               int     `json:"ties"`
	FPts               float64 `json:"fpts"`
	FPtsDecimal        float64 `json:"fpts_decimal"`
	FPtsAgainst        float64 `json:"fpts_against"`
	FPtsAgainstDecimal float64 `json:"fpts_against_decimal"`
}

// PointsFor combines the whole and fractional point fields the API
// reports separately.
func (s RosterSettings) PointsFor() float64 {
	return s.FPts + s.FPtsDecimal/100
}

func (s RosterSettings) PointsAgainst() float64 {
	return s.FPtsAgainst + s.FPtsAgainstDecimal/100
}

type Matchup struct {
	RosterID      int                `json:"roster_id"`
	MatchupID     int                `json:"matchup_id"`
	Points        float64            `json:"points"`
	Starters      []string           `json:"starters"`
	PlayersPoints map[string]float64 `json:"players_points"`

	// Week is not part of the API payload; the reconciler tags each
	// record with the week it was fetched for.
	Week int `json:"-"`
}

type Transaction struct {
	TransactionID string               `json:"transaction_id"`
	Type          string               `json:"type"`
	StatusUpdated int64                `json:"status_updated"`
	Adds          map[string]int       `json:"adds"`
	Drops         map[string]int       `json:"drops"`
	RosterIDs     []int                `json:"roster_ids"`
	DraftPicks    []TradedPick         `json:"draft_picks"`
	Settings      *TransactionSettings `json:"settings"`
	Metadata      *TransactionMetadata `json:"metadata"`
}

type TransactionSettings struct {
	WaiverBid int `json:"waiver_bid"`
	Priority  int `json:"priority"`
	Seq       int `json:"seq"`
}

type TransactionMetadata struct {
	Round int `json:"round"`
	Pick  int `json:"pick"`
}

// Transaction types as reported by the API. Anything else falls
// through the narrative decision table's default arm.
const (
	TransactionTrade        = "trade"
	TransactionWaiver       = "waiver"
	TransactionFreeAgent    = "free_agent"
	TransactionCommissioner = "commissioner"
	TransactionDraft        = "draft"
)

// TradedPick is a reference to a draft pick moved in a transaction.
// PickNo is 0 until the draft has actually happened.
type TradedPick struct {
	Season   string `json:"season"`
	Round    int    `json:"round"`
	PickNo   int    `json:"pick_no"`
	RosterID int    `json:"roster_id"`
	OwnerID  int    `json:"owner_id"`
}

func (p TradedPick) SeasonYear() int {
	year, err := strconv.Atoi(p.Season)
	if err != nil {
		return 0
	}
	return year
}

type Draft struct {
	DraftID   string `json:"draft_id"`
	Season    string `json:"season"`
	Status    string `json:"status"`
	StartTime int64  `json:"start_time"`
}

type DraftPick struct {
	DraftID   string `json:"draft_id"`
	Round     int    `json:"round"`
	DraftSlot int    `json:"draft_slot"`
	PickNo    int    `json:"pick_no"`
	RosterID  int    `json:"roster_id"`
	PlayerID  string `json:"player_id"`
}

type Player struct {
	PlayerID  string `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	Team      string `json:"team"`
}

type NflState struct {
	Week       int    `json:"week"`
	Season     string `json:"season"`
	SeasonType string `json:"season_type"`
}

func (s *NflState) SeasonYear() int {
	year, err := strconv.Atoi(s.Season)
	if err != nil {
		return 0
	}
	return year
}
