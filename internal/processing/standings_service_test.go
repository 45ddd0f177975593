package processing

import (
	"context"
	"errors"
	"testing"

	"coc_cwl_bot/internal/app"
	"coc_cwl_bot/internal/coc"
	"coc_cwl_bot/internal/domain/war"
	"coc_cwl_bot/internal/processing/mocks"
)

func standingsWar(state string, clan, opponent app.WarClan) *app.War {
	return &app.War{State: state, Clan: clan, Opponent: opponent}
}

func standingsSide(tag string, stars int, destruction float64, attackPercents ...float64) app.WarClan {
	side := app.WarClan{Tag: tag, Stars: stars, DestructionPercentage: destruction}
	for i, pct := range attackPercents {
		side.Members = append(side.Members, app.WarMember{
			Tag:     tag + "M",
			Attacks: []app.Attack{{Stars: 1, DestructionPercentage: pct, Order: i + 1}},
		})
	}
	return side
}

func TestStandingsServiceTwoEndedWars(t *testing.T) {
	client := mocks.NewMockCocClient()
	group := newTestGroup([]string{"#W1", "#0"}, []string{"#W2"})
	group.Clans = []app.LeagueClan{
		{Tag: "#A", Name: "Alpha"},
		{Tag: "#B", Name: "Bravo"},
		{Tag: "#C", Name: "Charlie"},
	}
	client.LeagueGroupResponse = group
	client.Wars["#W1"] = standingsWar(war.StateWarEnded,
		standingsSide("#A", 20, 80, 50, 30),
		standingsSide("#B", 15, 70, 40),
	)
	client.Wars["#W2"] = standingsWar(war.StateWarEnded,
		standingsSide("#C", 18, 75, 60),
		standingsSide("#A", 22, 85, 70),
	)

	service := NewStandingsService(client, NewWarFetcher(client, 2), testClanTag)
	report, err := service.Standings(context.Background())

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.Season != "2024-01" {
		t.Errorf("Expected season 2024-01, got %s", report.Season)
	}

	if len(report.Table) != 3 {
		t.Fatalf("Expected 3 clans, got %d", len(report.Table))
	}

	first := report.Table[0]
	if first.Tag != "#A" || first.Wins != 2 || first.Losses != 0 || first.Stars != 42 {
		t.Errorf("Expected #A first with 2 wins and 42 stars, got %+v", first)
	}

	if first.Destruction != 150 {
		t.Errorf("Expected #A destruction sum 150, got %v", first.Destruction)
	}

	if report.WarsCounted != 2 || report.EndedWars != 2 || report.WarsSkipped != 0 {
		t.Errorf("Unexpected war counts: %+v", report)
	}

	for _, tag := range client.WarCalls() {
		if tag == war.SentinelWarTag {
			t.Error("Sentinel war tag was passed to the API client")
		}
	}
}

func TestStandingsServiceSkipsFailedWars(t *testing.T) {
	client := mocks.NewMockCocClient()
	group := newTestGroup([]string{"#W1", "#W2"})
	group.Clans = []app.LeagueClan{{Tag: "#A", Name: "Alpha"}, {Tag: "#B", Name: "Bravo"}}
	client.LeagueGroupResponse = group
	client.Wars["#W1"] = standingsWar(war.StateInWar,
		standingsSide("#A", 5, 30, 30),
		standingsSide("#B", 3, 20, 20),
	)
	client.WarErrors["#W2"] = &coc.FetchError{Status: 503}

	service := NewStandingsService(client, NewWarFetcher(client, 2), testClanTag)
	report, err := service.Standings(context.Background())

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.WarsSkipped != 1 || report.WarsCounted != 1 || report.EndedWars != 0 {
		t.Errorf("Unexpected war counts: %+v", report)
	}

	for _, standing := range report.Table {
		if standing.Wins != 0 || standing.Losses != 0 || standing.Battles != 0 {
			t.Errorf("Expected an in-progress war to decide nothing, got %+v", standing)
		}
	}
}

func TestStandingsServiceLeagueGroupFailure(t *testing.T) {
	client := mocks.NewMockCocClient()
	client.LeagueGroupError = &coc.FetchError{Status: 404, Reason: "notFound"}

	service := NewStandingsService(client, NewWarFetcher(client, 2), testClanTag)
	report, err := service.Standings(context.Background())

	if report != nil {
		t.Errorf("Expected nil report, got %+v", report)
	}

	if !errors.Is(err, ErrLeagueGroupUnavailable) {
		t.Errorf("Expected ErrLeagueGroupUnavailable, got %v", err)
	}

	if status, ok := coc.StatusOf(err); !ok || status != 404 {
		t.Errorf("Expected status 404, got %d (%v)", status, ok)
	}
}
