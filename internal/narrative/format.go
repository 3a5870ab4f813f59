package narrative

import (
	"fmt"
	"sort"
	"strings"

	"github.com/trav563/dynasty-analysis/internal/models"
)

func describeTransaction(tx models.Transaction, playerID string, addedTo int, added bool, droppedFrom int, dropped bool, data *models.SeasonData) string {
	switch tx.Type {
	case models.TransactionTrade:
		return describeTrade(tx, addedTo, added, droppedFrom, dropped, data)
	case models.TransactionWaiver:
		if added {
			text := fmt.Sprintf("Claimed off waivers by %s", managerName(data, addedTo))
			if tx.Settings != nil && tx.Settings.WaiverBid > 0 {
				text += fmt.Sprintf(" for $%d FAAB", tx.Settings.WaiverBid)
			}
			if tx.Settings != nil && tx.Settings.Priority > 0 {
				text += fmt.Sprintf(" (waiver priority %d)", tx.Settings.Priority)
			}
			return text
		}
		return fmt.Sprintf("Waived by %s", managerName(data, droppedFrom))
	case models.TransactionFreeAgent:
		if added {
			text := fmt.Sprintf("Signed as free agent by %s", managerName(data, addedTo))
			if n := len(tx.Drops); n > 0 {
				text += fmt.Sprintf(", dropping %d player(s)", n)
			}
			return text
		}
		return fmt.Sprintf("Released to free agency by %s", managerName(data, droppedFrom))
	case models.TransactionCommissioner:
		if added {
			return fmt.Sprintf("Added to %s by commissioner action", managerName(data, addedTo))
		}
		return fmt.Sprintf("Removed from %s by commissioner action", managerName(data, droppedFrom))
	case models.TransactionDraft:
		if !added {
			return fmt.Sprintf("Dropped by %s", managerName(data, droppedFrom))
		}
		text := fmt.Sprintf("Drafted by %s", managerName(data, addedTo))
		if md := tx.Metadata; md != nil {
			if md.Round > 0 && md.Pick > 0 {
				text += fmt.Sprintf(" (Round %d, Pick %d)", md.Round, md.Pick)
			} else if md.Round > 0 {
				text += fmt.Sprintf(" (Round %d)", md.Round)
			}
		}
		return text
	default:
		return fmt.Sprintf("Involved in a %s transaction", tx.Type)
	}
}

func describeTrade(tx models.Transaction, addedTo int, added bool, droppedFrom int, dropped bool, data *models.SeasonData) string {
	var text string
	switch {
	case added && dropped:
		text = fmt.Sprintf("Traded from %s to %s", managerName(data, droppedFrom), managerName(data, addedTo))
	case added:
		if other, ok := firstOtherRoster(tx.RosterIDs, addedTo); ok {
			text = fmt.Sprintf("Acquired by %s in a trade with %s", managerName(data, addedTo), managerName(data, other))
		} else {
			text = fmt.Sprintf("Acquired by %s via trade (source not explicitly recorded)", managerName(data, addedTo))
		}
	default:
		if other, ok := firstOtherRoster(tx.RosterIDs, droppedFrom); ok {
			text = fmt.Sprintf("Traded away by %s in a trade with %s", managerName(data, droppedFrom), managerName(data, other))
		} else {
			text = fmt.Sprintf("Traded away by %s (destination not explicitly recorded)", managerName(data, droppedFrom))
		}
	}

	if extras := len(tx.Adds) + len(tx.Drops) - 2; extras > 0 {
		text += fmt.Sprintf(", along with %d other player(s)/pick(s)", extras)
	}
	if n := len(tx.DraftPicks); n > 0 {
		text += fmt.Sprintf(", with %d draft pick(s) included", n)
	}
	return text
}

func firstOtherRoster(rosterIDs []int, rosterID int) (int, bool) {
	for _, id := range rosterIDs {
		if id != rosterID {
			return id, true
		}
	}
	return 0, false
}

func otherPlayersClause(tx models.Transaction, playerID string, players map[string]models.Player) string {
	seen := make(map[string]bool)
	var names []string
	collect := func(m map[string]int) {
		for id := range m {
			if id == playerID || seen[id] {
				continue
			}
			seen[id] = true
			names = append(names, playerName(players, id))
		}
	}
	collect(tx.Adds)
	collect(tx.Drops)
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return ". Other players: " + strings.Join(names, ", ")
}

func (e *Engine) draftPicksClause(tx models.Transaction, data *models.SeasonData, players map[string]models.Player, index draftIndex, currentYear int) string {
	if len(tx.DraftPicks) == 0 {
		return ""
	}
	formatted := make([]string, 0, len(tx.DraftPicks))
	for _, pick := range tx.DraftPicks {
		formatted = append(formatted, formatPick(pick, data, players, index, currentYear))
	}
	return ". Draft picks: " + strings.Join(formatted, "; ")
}

// formatPick renders one traded pick. A past pick with a known overall
// number resolves, through that season's first draft, to the player
// actually selected; the drafted record's round is authoritative over
// the reference's. Everything else renders as "<year> Round <round>"
// plus the ownership clause.
func formatPick(pick models.TradedPick, data *models.SeasonData, players map[string]models.Player, index draftIndex, currentYear int) string {
	ownership := pickOwnership(pick, data)
	year := pick.SeasonYear()

	if year != 0 && year < currentYear && pick.PickNo > 0 {
		if drafts := index.draftsBySeason[year]; len(drafts) > 0 {
			for _, rec := range index.picksByDraft[drafts[0].DraftID] {
				if rec.PickNo != pick.PickNo {
					continue
				}
				if rec.PlayerID != "" {
					return fmt.Sprintf("%s (%d Round %d Pick %d) %s",
						playerName(players, rec.PlayerID), year, rec.Round, rec.DraftSlot, ownership)
				}
				break
			}
		}
	}

	text := fmt.Sprintf("%d Round %d", year, pick.Round)
	if pick.PickNo > 0 {
		text += fmt.Sprintf(" Pick %d", pick.PickNo)
	}
	return text + " " + ownership
}

func pickOwnership(pick models.TradedPick, data *models.SeasonData) string {
	current := managerName(data, pick.OwnerID)
	if pick.RosterID != pick.OwnerID {
		return fmt.Sprintf("(orig. %s to %s)", managerName(data, pick.RosterID), current)
	}
	return fmt.Sprintf("(owned by %s)", current)
}

// managerName resolves a roster id to its owner's display name,
// falling back to "Roster <id>" when the roster or owner link is
// missing and "Unknown Manager" when the user has no display name.
func managerName(data *models.SeasonData, rosterID int) string {
	roster := data.RosterByID(rosterID)
	if roster == nil || roster.OwnerID == "" {
		return fmt.Sprintf("Roster %d", rosterID)
	}
	user := data.UserByID(roster.OwnerID)
	if user == nil || user.DisplayName == "" {
		return "Unknown Manager"
	}
	return user.DisplayName
}

func playerName(players map[string]models.Player, playerID string) string {
	player, ok := players[playerID]
	if !ok {
		return fmt.Sprintf("Player %s", playerID)
	}
	name := strings.TrimSpace(player.FirstName + " " + player.LastName)
	if name == "" {
		return "Unknown Player"
	}
	return name
}
