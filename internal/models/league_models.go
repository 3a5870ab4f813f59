package models

import "time"

// SeasonData is one season's reconciled dataset: the league, its users
// and rosters, and every matchup record that could be obtained.
type SeasonData struct {
	League   *League
	Users    []User
	Rosters  []Roster
	Matchups []Matchup
}

// UserByID returns the user with the given id, or nil.
func (d *SeasonData) UserByID(userID string) *User {
	for i := range d.Users {
		if d.Users[i].UserID == userID {
			return &d.Users[i]
		}
	}
	return nil
}

// RosterByID returns the roster with the given id, or nil.
func (d *SeasonData) RosterByID(rosterID int) *Roster {
	for i := range d.Rosters {
		if d.Rosters[i].RosterID == rosterID {
			return &d.Rosters[i]
		}
	}
	return nil
}

// PlayerTransactionEvent is one narrated movement of a player between
// rosters, derived from a raw transaction.
type PlayerTransactionEvent struct {
	Date        time.Time
	Season      int
	Type        string
	From        string
	To          string
	Narrative   string
	Transaction Transaction
}

type TeamStanding struct {
	Rank          int
	RosterID      int
	TeamName      string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
}

type TeamTrend struct {
	RosterID     int
	TeamName     string
	Trend        float64
	LatestPoints float64
}
