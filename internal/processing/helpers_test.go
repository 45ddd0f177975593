package processing

import (
	"coc_cwl_bot/internal/app"
	"coc_cwl_bot/internal/processing/mocks"
)

const testClanTag = "#OURS"

func intPtr(v int) *int {
	return &v
}

// newTestWar builds a war between two clans with the given state
func newTestWar(state, clanTag, opponentTag string) *app.War {
	return &app.War{
		State:    state,
		EndTime:  "20240105T081500.000Z",
		Clan:     app.WarClan{Tag: clanTag, Name: "Clan " + clanTag},
		Opponent: app.WarClan{Tag: opponentTag, Name: "Clan " + opponentTag},
	}
}

// newTestGroup builds a league group from rounds of war tags
func newTestGroup(rounds ...[]string) *app.LeagueGroup {
	group := &app.LeagueGroup{Season: "2024-01"}
	for _, tags := range rounds {
		group.Rounds = append(group.Rounds, app.Round{WarTags: tags})
	}
	return group
}

// newTestResolver wires a resolver to the mock with a sequential fetcher
func newTestResolver(client *mocks.MockCocClient) *WarResolver {
	return NewWarResolver(client, NewWarFetcher(client, 1), testClanTag)
}

