package ranking

import (
	"sort"

	"github.com/outletfc/club-treasury/internal/domain/player"
)

// ShameThreshold is the total at or below which the club-wide alert fires.
const ShameThreshold = -10

type Breakdown struct {
	Positive int
	Negative int
}

// Entry is one player's aggregated score. NegativePoints is never positive.
type Entry struct {
	PlayerID       string
	Name           string
	AvatarURL      string
	Role           player.Role
	TotalPoints    int
	PositivePoints int
	NegativePoints int
	Breakdown      map[Category]Breakdown
}

func (e Entry) InShame() bool {
	return e.TotalPoints <= ShameThreshold
}

// Aggregate totals the player's non-pardoned events.
func Aggregate(playerID string, events []Event) Entry {
	entry := Entry{
		PlayerID:  playerID,
		Breakdown: make(map[Category]Breakdown, len(AllCategories)),
	}
	for _, category := range AllCategories {
		entry.Breakdown[category] = Breakdown{}
	}

	for _, e := range events {
		if e.PlayerID != playerID || !e.Counts() {
			continue
		}
		b := entry.Breakdown[e.Category]
		switch {
		case e.Points > 0:
			entry.PositivePoints += e.Points
			b.Positive += e.Points
		case e.Points < 0:
			entry.NegativePoints += e.Points
			b.Negative += e.Points
		}
		entry.Breakdown[e.Category] = b
		entry.TotalPoints += e.Points
	}
	return entry
}

// SortEntries orders by total points descending; ties break on name then id.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
}

func HasShameAlert(entries []Entry) bool {
	for _, e := range entries {
		if e.InShame() {
			return true
		}
	}
	return false
}

// Board is the leaderboard as presented: sorted entries, the negative tail and the alert flag.
type Board struct {
	Entries     []Entry
	WallOfShame []Entry
	ShameAlert  bool
}

// BuildBoard aggregates every player, including those without events.
func BuildBoard(players []player.Player, events []Event) Board {
	byPlayer := make(map[string][]Event, len(players))
	for _, e := range events {
		byPlayer[e.PlayerID] = append(byPlayer[e.PlayerID], e)
	}

	entries := make([]Entry, 0, len(players))
	for _, p := range players {
		entry := Aggregate(p.ID, byPlayer[p.ID])
		entry.Name = p.DisplayName()
		entry.AvatarURL = p.AvatarURL
		entry.Role = p.Role
		entries = append(entries, entry)
	}
	SortEntries(entries)

	board := Board{Entries: entries, ShameAlert: HasShameAlert(entries)}
	for _, e := range entries {
		if e.TotalPoints < 0 {
			board.WallOfShame = append(board.WallOfShame, e)
		}
	}
	return board
}

// SortEventsNewestFirst orders a player's event history for display.
func SortEventsNewestFirst(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].EventDate.Equal(events[j].EventDate) {
			return events[i].EventDate.After(events[j].EventDate)
		}
		return events[i].ID < events[j].ID
	})
}
