package processing

import (
	"context"

	"coc_cwl_bot/internal/app"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// FetchedWar is a successfully fetched league war and the tag it was fetched by
type FetchedWar struct {
	Tag string
	War *app.War
}

// WarFetcher fetches league wars concurrently. A failed war lookup is logged and
// skipped; it never cancels the lookups running beside it.
type WarFetcher struct {
	client      CocClientInterface
	concurrency int
}

// NewWarFetcher creates a fetcher running at most concurrency lookups at once
func NewWarFetcher(client CocClientInterface, concurrency int) *WarFetcher {
	if concurrency <= 0 {
		concurrency = app.DefaultWarFetchConcurrency
	}
	return &WarFetcher{
		client:      client,
		concurrency: concurrency,
	}
}

// FetchWars fetches every tag and returns the wars that could be fetched, in tag order.
// The only error returned is the context's, when the caller gave up.
func (f *WarFetcher) FetchWars(ctx context.Context, warTags []string) ([]FetchedWar, error) {
	results := make([]*app.War, len(warTags))

	// plain group: one failed war must not cancel its siblings
	var g errgroup.Group
	g.SetLimit(f.concurrency)

	for i, tag := range warTags {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			war, err := f.client.GetLeagueWar(ctx, tag)
			if err != nil {
				log.Warn().
					Err(err).
					Str("war_tag", tag).
					Msg("Failed to fetch war data, skipping")
				return nil
			}
			results[i] = war
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fetched := make([]FetchedWar, 0, len(warTags))
	for i, war := range results {
		if war == nil {
			continue
		}
		fetched = append(fetched, FetchedWar{Tag: warTags[i], War: war})
	}

	log.Debug().
		Int("requested", len(warTags)).
		Int("fetched", len(fetched)).
		Msg("Fetched league wars")

	return fetched, nil
}
