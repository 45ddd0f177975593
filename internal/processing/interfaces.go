package processing

import (
	"context"

	"coc_cwl_bot/internal/app"
)

// CocClientInterface defines the Clash of Clans API client methods used by the pipelines
type CocClientInterface interface {
	GetClan(ctx context.Context, clanTag string) (*app.Clan, error)
	GetLeagueGroup(ctx context.Context, clanTag string) (*app.LeagueGroup, error)
	GetLeagueWar(ctx context.Context, warTag string) (*app.War, error)
}

// WarResolverInterface defines the active-war lookup used by the war report services
type WarResolverInterface interface {
	ResolveActiveWar(ctx context.Context) (*ResolvedWar, error)
}

// WarFetcherInterface defines the bulk war lookup used by the resolver and standings
type WarFetcherInterface interface {
	FetchWars(ctx context.Context, warTags []string) ([]FetchedWar, error)
}
