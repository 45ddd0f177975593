package standings

import (
	"fmt"
	"testing"

	"coc_cwl_bot/internal/app"
	"coc_cwl_bot/internal/domain/war"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// warSpec is a compact generated war between two of the eight group clans
type warSpec struct {
	ClanIdx     int
	OppOffset   int
	ClanStars   int
	OppStars    int
	ClanPercent float64
	OppPercent  float64
}

// TestStandingsProperties verifies league-wide invariants of the accumulator
func TestStandingsProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("wins equal losses equal ended wars", prop.ForAll(
		func(specs []warSpec) bool {
			group, wars := buildLeague(specs, true)
			acc := NewAccumulator(group)
			for _, w := range wars {
				acc.AddWar(w)
			}

			wins, losses, battles := 0, 0, 0
			for _, standing := range acc.Table() {
				wins += standing.Wins
				losses += standing.Losses
				battles += standing.Battles
			}
			return wins == len(wars) && losses == len(wars) && battles == 2*len(wars)
		},
		gen.SliceOf(genWarSpec()),
	))

	properties.Property("unfinished wars never decide results", prop.ForAll(
		func(specs []warSpec) bool {
			group, wars := buildLeague(specs, false)
			acc := NewAccumulator(group)
			for _, w := range wars {
				acc.AddWar(w)
			}

			for _, standing := range acc.Table() {
				if standing.Wins != 0 || standing.Losses != 0 || standing.Battles != 0 {
					return false
				}
			}
			return acc.EndedWars() == 0
		},
		gen.SliceOf(genWarSpec()),
	))

	properties.Property("table sorted and stable", prop.ForAll(
		func(wins []int, stars []int) bool {
			n := len(wins)
			if len(stars) < n {
				n = len(stars)
			}
			input := make([]ClanStanding, n)
			for i := 0; i < n; i++ {
				input[i] = ClanStanding{Tag: fmt.Sprintf("#%d", i), Wins: wins[i], Stars: stars[i]}
			}

			sorted := SortStandings(input)
			index := make(map[string]int, n)
			for i, s := range input {
				index[s.Tag] = i
			}

			for i := 1; i < len(sorted); i++ {
				prev, cur := sorted[i-1], sorted[i]
				if prev.Wins < cur.Wins {
					return false
				}
				if prev.Wins == cur.Wins && prev.Stars < cur.Stars {
					return false
				}
				if prev.Wins == cur.Wins && prev.Stars == cur.Stars && index[prev.Tag] > index[cur.Tag] {
					return false
				}
			}
			return len(sorted) == n
		},
		gen.SliceOf(gen.IntRange(0, 7)),
		gen.SliceOf(gen.IntRange(0, 5)),
	))

	properties.TestingRun(t)
}

func genWarSpec() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(0, 7),
		gen.IntRange(1, 7),
		gen.IntRange(0, 45),
		gen.IntRange(0, 45),
		gen.Float64Range(0, 100),
		gen.Float64Range(0, 100),
	).Map(func(values []interface{}) warSpec {
		return warSpec{
			ClanIdx:     values[0].(int),
			OppOffset:   values[1].(int),
			ClanStars:   values[2].(int),
			OppStars:    values[3].(int),
			ClanPercent: values[4].(float64),
			OppPercent:  values[5].(float64),
		}
	})
}

// buildLeague turns specs into an 8-clan group and its wars, all ended or none ended
func buildLeague(specs []warSpec, ended bool) (*app.LeagueGroup, []*app.War) {
	group := &app.LeagueGroup{}
	for i := 0; i < 8; i++ {
		group.Clans = append(group.Clans, app.LeagueClan{Tag: fmt.Sprintf("#C%d", i), Name: fmt.Sprintf("Clan %d", i)})
	}

	state := war.StateInWar
	if ended {
		state = war.StateWarEnded
	}

	wars := make([]*app.War, 0, len(specs))
	for _, spec := range specs {
		clanTag := group.Clans[spec.ClanIdx].Tag
		oppTag := group.Clans[(spec.ClanIdx+spec.OppOffset)%8].Tag
		wars = append(wars, &app.War{
			State:    state,
			Clan:     side(clanTag, spec.ClanStars, spec.ClanPercent, spec.ClanPercent),
			Opponent: side(oppTag, spec.OppStars, spec.OppPercent, spec.OppPercent),
		})
	}
	return group, wars
}
