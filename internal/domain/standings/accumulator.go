package standings

import (
	"math"
	"sort"

	"coc_cwl_bot/internal/app"
	"coc_cwl_bot/internal/domain/war"
)

// ClanStanding is the running league record of one clan
type ClanStanding struct {
	Tag   string
	Name  string
	Stars int
	// Destruction is the sum of every attack's destruction percentage, not an average
	Destruction float64
	Wins        int
	Losses      int
	Battles     int
}

// RoundedDestruction returns Destruction rounded to two decimals for display
func (s ClanStanding) RoundedDestruction() float64 {
	return math.Round(s.Destruction*100) / 100
}

// Accumulator collects per-clan totals across the wars of one league group.
// It is built per request and is not safe for concurrent use.
type Accumulator struct {
	order    []string
	clans    map[string]*ClanStanding
	wars     int
	ended    int
	unknowns int
}

// NewAccumulator seeds an entry for every clan listed in the group, in group order
func NewAccumulator(group *app.LeagueGroup) *Accumulator {
	acc := &Accumulator{clans: make(map[string]*ClanStanding)}
	if group == nil {
		return acc
	}

	for _, clan := range group.Clans {
		if _, exists := acc.clans[clan.Tag]; exists {
			continue
		}
		acc.order = append(acc.order, clan.Tag)
		acc.clans[clan.Tag] = &ClanStanding{Tag: clan.Tag, Name: clan.Name}
	}
	return acc
}

// AddWar folds one war into the totals. Stars and attack destruction count for
// every war; battles, wins and losses only once the war has ended. The side with
// more stars wins, ties go to the higher destruction percentage, and a full tie
// is awarded to the opponent side.
func (a *Accumulator) AddWar(w *app.War) {
	if w == nil {
		return
	}
	a.wars++
	ended := war.IsEnded(w)

	for _, side := range []app.WarClan{w.Clan, w.Opponent} {
		standing, ok := a.clans[side.Tag]
		if !ok {
			a.unknowns++
			continue
		}
		standing.Stars += side.Stars
		standing.Destruction += SumAttackDestruction(side)
		if ended {
			standing.Battles++
		}
	}

	if !ended {
		return
	}
	a.ended++

	winner, loser := w.Opponent.Tag, w.Clan.Tag
	if ClanSideWins(w.Clan, w.Opponent) {
		winner, loser = w.Clan.Tag, w.Opponent.Tag
	}
	if standing, ok := a.clans[winner]; ok {
		standing.Wins++
	}
	if standing, ok := a.clans[loser]; ok {
		standing.Losses++
	}
}

// ClanSideWins decides an ended war from the "clan" side's perspective
func ClanSideWins(clan, opponent app.WarClan) bool {
	if clan.Stars != opponent.Stars {
		return clan.Stars > opponent.Stars
	}
	return clan.DestructionPercentage > opponent.DestructionPercentage
}

// SumAttackDestruction adds up the destruction percentage of every attack made by a side
func SumAttackDestruction(side app.WarClan) float64 {
	var total float64
	for _, member := range side.Members {
		for _, attack := range member.Attacks {
			total += attack.DestructionPercentage
		}
	}
	return total
}

// WarsCounted returns how many wars were added
func (a *Accumulator) WarsCounted() int {
	return a.wars
}

// EndedWars returns how many added wars had ended
func (a *Accumulator) EndedWars() int {
	return a.ended
}

// UnknownSides returns how many war sides belonged to clans missing from the group
func (a *Accumulator) UnknownSides() int {
	return a.unknowns
}

// Table returns the standings sorted by wins, then stars, then destruction,
// all descending. Clans with identical keys keep their group order.
func (a *Accumulator) Table() []ClanStanding {
	table := make([]ClanStanding, 0, len(a.order))
	for _, tag := range a.order {
		table = append(table, *a.clans[tag])
	}
	return SortStandings(table)
}

// SortStandings returns a new slice ordered by (wins, stars, destruction) descending.
// Pure function: stable, does not modify input
func SortStandings(standings []ClanStanding) []ClanStanding {
	sorted := make([]ClanStanding, len(standings))
	copy(sorted, standings)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Wins != sorted[j].Wins {
			return sorted[i].Wins > sorted[j].Wins
		}
		if sorted[i].Stars != sorted[j].Stars {
			return sorted[i].Stars > sorted[j].Stars
		}
		return sorted[i].Destruction > sorted[j].Destruction
	})

	return sorted
}
