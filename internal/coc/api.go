package coc

import (
	"context"

	"coc_cwl_bot/internal/app"
)

// CocAPI defines the interface for interacting with the Clash of Clans API
// This separates infrastructure concerns from business logic
type CocAPI interface {
	// Core API endpoints
	GetClan(ctx context.Context, clanTag string) (*app.Clan, error)
	GetLeagueGroup(ctx context.Context, clanTag string) (*app.LeagueGroup, error)
	GetLeagueWar(ctx context.Context, warTag string) (*app.War, error)

	// API call tracking
	GetAPICallCount() int64
	IncrementAPICall()
	ResetAPICallCount()
}

var _ CocAPI = (*Client)(nil)
