// Package stats computes standings, win rate, scoring averages, and
// week-over-week trends from normalized roster and matchup data. All
// functions are pure: no I/O, zero-valued results on empty input.
package stats

import (
	"fmt"
	"sort"

	"github.com/trav563/dynasty-analysis/internal/models"
)

type pairKey struct {
	week      int
	matchupID int
}

// WinRate returns the percentage of head-to-head games the roster won,
// in [0, 100]. Matchup records are grouped by (week, matchup id); a
// group counts as a game only when it contains the target roster and
// at least one opponent. When a group holds more than two rosters the
// first non-target record found is treated as the opponent.
func WinRate(matchups []models.Matchup, rosterID int) float64 {
	groups := make(map[pairKey][]models.Matchup)
	for _, m := range matchups {
		key := pairKey{week: m.Week, matchupID: m.MatchupID}
		groups[key] = append(groups[key], m)
	}

	wins, games := 0, 0
	for _, group := range groups {
		var target, opponent *models.Matchup
		for i := range group {
			if group[i].RosterID == rosterID {
				if target == nil {
					target = &group[i]
				}
			} else if opponent == nil {
				opponent = &group[i]
			}
		}
		if target == nil || opponent == nil {
			continue
		}
		games++
		if target.Points > opponent.Points {
			wins++
		}
	}

	if games == 0 {
		return 0
	}
	return 100 * float64(wins) / float64(games)
}

// AveragePoints returns the mean points scored by the roster across
// its matchup records, or 0 when it has none.
func AveragePoints(matchups []models.Matchup, rosterID int) float64 {
	total, count := 0.0, 0
	for _, m := range matchups {
		if m.RosterID != rosterID {
			continue
		}
		total += m.Points
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// Standings orders rosters by wins, ties broken by points for. Team
// names come from the owning user's display name, falling back to
// "Team <roster id>".
func Standings(rosters []models.Roster, users []models.User) []models.TeamStanding {
	usersByID := make(map[string]models.User, len(users))
	for _, u := range users {
		usersByID[u.UserID] = u
	}

	standings := make([]models.TeamStanding, len(rosters))
	for i, roster := range rosters {
		name := fmt.Sprintf("Team %d", roster.RosterID)
		if u, ok := usersByID[roster.OwnerID]; ok && u.DisplayName != "" {
			name = u.DisplayName
		}
		standings[i] = models.TeamStanding{
			RosterID:      roster.RosterID,
			TeamName:      name,
			Wins:          roster.Settings.Wins,
			Losses:        roster.Settings.Losses,
			Ties:          roster.Settings.Ties,
			PointsFor:     roster.Settings.PointsFor(),
			PointsAgainst: roster.Settings.PointsAgainst(),
		}
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].PointsFor > standings[j].PointsFor
	})

	for i := range standings {
		standings[i].Rank = i + 1
	}

	return standings
}

// TrendingTeams compares each roster's most recent week against its
// average over the other considered weeks. At least two distinct
// weeks of data are required; otherwise the result is empty. Rosters
// without a record in the most recent week are omitted. Sorted
// descending by trend.
func TrendingTeams(matchups []models.Matchup, rosters []models.Roster, users []models.User, weeksToConsider int) []models.TeamTrend {
	weekSet := make(map[int]bool)
	for _, m := range matchups {
		weekSet[m.Week] = true
	}
	weeks := make([]int, 0, len(weekSet))
	for w := range weekSet {
		weeks = append(weeks, w)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(weeks)))
	if len(weeks) > weeksToConsider {
		weeks = weeks[:weeksToConsider]
	}
	if len(weeks) < 2 {
		return nil
	}

	considered := make(map[int]bool, len(weeks))
	for _, w := range weeks {
		considered[w] = true
	}
	latest := weeks[0]

	pointsByRoster := make(map[int]map[int]float64)
	for _, m := range matchups {
		if !considered[m.Week] {
			continue
		}
		if pointsByRoster[m.RosterID] == nil {
			pointsByRoster[m.RosterID] = make(map[int]float64)
		}
		pointsByRoster[m.RosterID][m.Week] = m.Points
	}

	usersByID := make(map[string]models.User, len(users))
	for _, u := range users {
		usersByID[u.UserID] = u
	}
	nameForRoster := func(rosterID int) string {
		for _, r := range rosters {
			if r.RosterID != rosterID {
				continue
			}
			if u, ok := usersByID[r.OwnerID]; ok && u.DisplayName != "" {
				return u.DisplayName
			}
		}
		return fmt.Sprintf("Team %d", rosterID)
	}

	var trends []models.TeamTrend
	for rosterID, byWeek := range pointsByRoster {
		// A roster with no record in the latest week (bye, data gap)
		// has no trend to report; treating the gap as 0 points would
		// fabricate a steep decline.
		latestPoints, ok := byWeek[latest]
		if !ok {
			continue
		}
		total, count := 0.0, 0
		for week, points := range byWeek {
			if week == latest {
				continue
			}
			total += points
			count++
		}
		mean := 0.0
		if count > 0 {
			mean = total / float64(count)
		}
		trends = append(trends, models.TeamTrend{
			RosterID:     rosterID,
			TeamName:     nameForRoster(rosterID),
			Trend:        latestPoints - mean,
			LatestPoints: latestPoints,
		})
	}

	sort.SliceStable(trends, func(i, j int) bool {
		return trends[i].Trend > trends[j].Trend
	})

	return trends
}
