package mocks

import (
	"context"
	"fmt"
	"sync"

	"coc_cwl_bot/internal/app"
)

// MockCocClient is a test double for coc.Client. It is safe for concurrent use.
type MockCocClient struct {
	// Responses to return
	ClanResponse        *app.Clan
	LeagueGroupResponse *app.LeagueGroup
	Wars                map[string]*app.War

	// Errors to return
	ClanError        error
	LeagueGroupError error
	WarErrors        map[string]error

	mu sync.Mutex

	// Call tracking
	GetClanCalledWith        []string
	GetLeagueGroupCalledWith []string
	GetLeagueWarCalledWith   []string
}

// NewMockCocClient creates a new mock client
func NewMockCocClient() *MockCocClient {
	return &MockCocClient{
		Wars:      make(map[string]*app.War),
		WarErrors: make(map[string]error),
	}
}

func (m *MockCocClient) GetClan(ctx context.Context, clanTag string) (*app.Clan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetClanCalledWith = append(m.GetClanCalledWith, clanTag)
	return m.ClanResponse, m.ClanError
}

func (m *MockCocClient) GetLeagueGroup(ctx context.Context, clanTag string) (*app.LeagueGroup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetLeagueGroupCalledWith = append(m.GetLeagueGroupCalledWith, clanTag)
	return m.LeagueGroupResponse, m.LeagueGroupError
}

// GetLeagueWar returns the configured war or error for a tag; unknown tags yield an error
func (m *MockCocClient) GetLeagueWar(ctx context.Context, warTag string) (*app.War, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetLeagueWarCalledWith = append(m.GetLeagueWarCalledWith, warTag)

	if err, ok := m.WarErrors[warTag]; ok {
		return nil, err
	}
	if war, ok := m.Wars[warTag]; ok {
		return war, nil
	}
	return nil, fmt.Errorf("mock: no war configured for tag %s", warTag)
}

// WarCalls returns a copy of the war tags requested so far
func (m *MockCocClient) WarCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]string, len(m.GetLeagueWarCalledWith))
	copy(calls, m.GetLeagueWarCalledWith)
	return calls
}

// Reset clears all call tracking and responses
func (m *MockCocClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ClanResponse = nil
	m.LeagueGroupResponse = nil
	m.Wars = make(map[string]*app.War)

	m.ClanError = nil
	m.LeagueGroupError = nil
	m.WarErrors = make(map[string]error)

	m.GetClanCalledWith = nil
	m.GetLeagueGroupCalledWith = nil
	m.GetLeagueWarCalledWith = nil
}
