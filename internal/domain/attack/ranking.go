package attack

import (
	"sort"
	"strconv"

	"coc_cwl_bot/internal/app"
)

const (
	// UnknownDefenderName is shown when an attack's defender is not in the enemy lineup
	UnknownDefenderName = "Unknown"
	// UnknownRankLabel is shown in place of a rank for unknown defenders
	UnknownRankLabel = "??"
)

// Defender is an enemy base as seen from one of our attacks
type Defender struct {
	Tag  string
	Name string
	// Rank is 1..N, 1 being the highest mapPosition. Zero when Known is false.
	Rank  int
	Known bool
}

// RankLabel renders the rank for display, "??" for unknown defenders
func (d Defender) RankLabel() string {
	if !d.Known {
		return UnknownRankLabel
	}
	return strconv.Itoa(d.Rank)
}

// RankOpponents ranks enemy members 1..N by descending mapPosition and returns
// a lookup from member tag to defender. Members without a tag or mapPosition are
// left out. Equal positions keep their lineup order.
//
// Pure function: No I/O, does not modify input
func RankOpponents(members []app.WarMember) map[string]Defender {
	ranked := make([]app.WarMember, 0, len(members))
	for _, member := range members {
		if member.Tag == "" || member.MapPosition == nil {
			continue
		}
		ranked = append(ranked, member)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].MapPosition > *ranked[j].MapPosition
	})

	defenders := make(map[string]Defender, len(ranked))
	for i, member := range ranked {
		name := member.Name
		if name == "" {
			name = UnknownDefenderName
		}
		defenders[member.Tag] = Defender{
			Tag:   member.Tag,
			Name:  name,
			Rank:  i + 1,
			Known: true,
		}
	}
	return defenders
}

// LookupDefender returns the ranked defender for a tag, or an "Unknown"/"??"
// placeholder when the tag is not mapped
func LookupDefender(defenders map[string]Defender, defenderTag string) Defender {
	if defender, ok := defenders[defenderTag]; ok {
		return defender
	}
	return Defender{Tag: defenderTag, Name: UnknownDefenderName}
}
