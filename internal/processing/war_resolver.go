package processing

import (
	"context"
	"errors"
	"fmt"

	"coc_cwl_bot/internal/app"
	"coc_cwl_bot/internal/domain/war"

	"github.com/rs/zerolog/log"
)

// ErrLeagueGroupUnavailable wraps any failure to fetch the clan's league group.
// It is fatal to the command that needed the group.
var ErrLeagueGroupUnavailable = errors.New("failed to fetch CWL league group")

// ErrClanUnavailable wraps any failure to fetch the configured clan
var ErrClanUnavailable = errors.New("failed to fetch clan")

// ResolvedWar is the in-progress war of our clan with sides assigned
type ResolvedWar struct {
	Round  int
	WarTag string
	War    *app.War
	Sides  war.SidePair
}

// WarResolver finds the league war our clan is currently fighting
type WarResolver struct {
	client  CocClientInterface
	fetcher WarFetcherInterface
	clanTag string
}

// NewWarResolver creates a resolver for the configured clan
func NewWarResolver(client CocClientInterface, fetcher WarFetcherInterface, clanTag string) *WarResolver {
	return &WarResolver{
		client:  client,
		fetcher: fetcher,
		clanTag: clanTag,
	}
}

// ResolveActiveWar fetches the league group and scans its rounds, newest first,
// for an in-progress war involving our clan. Every war tag of a round is checked
// since a round holds one war per clan pairing. Wars that fail to fetch are skipped.
// Returns war.ErrNoActiveWar when nothing is in progress.
func (r *WarResolver) ResolveActiveWar(ctx context.Context) (*ResolvedWar, error) {
	group, err := r.client.GetLeagueGroup(ctx, r.clanTag)
	if err != nil {
		log.Error().
			Err(err).
			Str("clan_tag", r.clanTag).
			Msg("Failed to fetch CWL group data")
		return nil, fmt.Errorf("%w: %w", ErrLeagueGroupUnavailable, err)
	}

	return r.ResolveFromGroup(ctx, group)
}

// ResolveFromGroup runs the round scan on an already fetched league group
func (r *WarResolver) ResolveFromGroup(ctx context.Context, group *app.LeagueGroup) (*ResolvedWar, error) {
	for _, round := range war.RoundsNewestFirst(group) {
		wars, err := r.fetcher.FetchWars(ctx, round.Tags)
		if err != nil {
			return nil, err
		}

		for _, fetched := range wars {
			if !war.IsActiveWarFor(fetched.War, r.clanTag) {
				continue
			}

			sides, err := war.IdentifySides(fetched.War, r.clanTag)
			if err != nil {
				return nil, err
			}

			log.Info().
				Int("round", round.Round).
				Str("war_tag", fetched.Tag).
				Str("ours", sides.Ours.Name).
				Str("enemy", sides.Enemy.Name).
				Msg("Active CWL war found")

			return &ResolvedWar{
				Round:  round.Round,
				WarTag: fetched.Tag,
				War:    fetched.War,
				Sides:  sides,
			}, nil
		}
	}

	log.Warn().
		Str("clan_tag", r.clanTag).
		Msg("No active CWL war found")
	return nil, war.ErrNoActiveWar
}
