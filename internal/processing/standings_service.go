package processing

import (
	"context"
	"fmt"

	"coc_cwl_bot/internal/domain/standings"
	"coc_cwl_bot/internal/domain/war"

	"github.com/rs/zerolog/log"
)

// StandingsService builds the league table of the clan's current CWL group
type StandingsService struct {
	client  CocClientInterface
	fetcher WarFetcherInterface
	clanTag string
}

// NewStandingsService creates a new standings service
func NewStandingsService(client CocClientInterface, fetcher WarFetcherInterface, clanTag string) *StandingsService {
	return &StandingsService{
		client:  client,
		fetcher: fetcher,
		clanTag: clanTag,
	}
}

// Standings fetches every war of every round and ranks the group's clans.
// Wars that fail to fetch are left out of the totals.
func (s *StandingsService) Standings(ctx context.Context) (*StandingsReport, error) {
	group, err := s.client.GetLeagueGroup(ctx, s.clanTag)
	if err != nil {
		log.Error().
			Err(err).
			Str("clan_tag", s.clanTag).
			Msg("Failed to fetch CWL group data")
		return nil, fmt.Errorf("%w: %w", ErrLeagueGroupUnavailable, err)
	}

	tags := war.AllWarTags(group)
	log.Debug().
		Int("war_tags", len(tags)).
		Int64("predicted_calls", PredictCallsForStandings(group)).
		Msg("Building CWL standings")

	wars, err := s.fetcher.FetchWars(ctx, tags)
	if err != nil {
		return nil, err
	}

	acc := standings.NewAccumulator(group)
	for _, fetched := range wars {
		acc.AddWar(fetched.War)
	}

	if acc.UnknownSides() > 0 {
		log.Warn().
			Int("unknown_sides", acc.UnknownSides()).
			Msg("Wars referenced clans missing from the league group")
	}

	report := &StandingsReport{
		Season:      group.Season,
		Table:       acc.Table(),
		WarsCounted: acc.WarsCounted(),
		WarsSkipped: len(tags) - len(wars),
		EndedWars:   acc.EndedWars(),
	}

	log.Info().
		Str("season", report.Season).
		Int("clans", len(report.Table)).
		Int("wars_counted", report.WarsCounted).
		Int("wars_skipped", report.WarsSkipped).
		Msg("CWL standings built")

	return report, nil
}
