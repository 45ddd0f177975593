package processing

import (
	"context"
	"sync"
	"time"

	"coc_cwl_bot/internal/app"
	"coc_cwl_bot/internal/domain/war"

	"github.com/rs/zerolog/log"
)

// Endpoint names used for call tracking
const (
	EndpointClan        = "clan"
	EndpointLeagueGroup = "league_group"
	EndpointLeagueWar   = "league_war"
)

// APICallTracker monitors API call usage per command
type APICallTracker struct {
	sessionStart    time.Time
	sessionCalls    int64
	failedCalls     int64
	callsByEndpoint map[string]int64
	mutex           sync.RWMutex
}

// NewAPICallTracker creates a new API call tracker
func NewAPICallTracker() *APICallTracker {
	return &APICallTracker{
		sessionStart:    time.Now(),
		callsByEndpoint: make(map[string]int64),
	}
}

// RecordCall records an API call for tracking
func (t *APICallTracker) RecordCall(endpoint string, err error) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.sessionCalls++
	t.callsByEndpoint[endpoint]++
	if err != nil {
		t.failedCalls++
	}
}

// GetSessionStats returns API call statistics for current session
func (t *APICallTracker) GetSessionStats() APICallStats {
	t.mutex.RLock()
	defer t.mutex.RUnlock()

	endpointCopy := make(map[string]int64, len(t.callsByEndpoint))
	for k, v := range t.callsByEndpoint {
		endpointCopy[k] = v
	}

	return APICallStats{
		SessionCalls:    t.sessionCalls,
		FailedCalls:     t.failedCalls,
		SessionDuration: time.Since(t.sessionStart),
		CallsByEndpoint: endpointCopy,
	}
}

// ResetSession resets session-specific counters
func (t *APICallTracker) ResetSession() {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	t.sessionStart = time.Now()
	t.sessionCalls = 0
	t.failedCalls = 0
	t.callsByEndpoint = make(map[string]int64)
}

// LogSessionSummary logs a summary of API usage for the session
func (t *APICallTracker) LogSessionSummary(ctx context.Context, command string) {
	stats := t.GetSessionStats()

	logEvent := log.Info().
		Str("command", command).
		Int64("session_calls", stats.SessionCalls).
		Int64("failed_calls", stats.FailedCalls).
		Dur("session_duration", stats.SessionDuration)

	for endpoint, count := range stats.CallsByEndpoint {
		logEvent = logEvent.Int64(endpoint+"_calls", count)
	}

	logEvent.Msg("API call session summary")
}

// APICallStats represents API call statistics
type APICallStats struct {
	SessionCalls    int64
	FailedCalls     int64
	SessionDuration time.Duration
	CallsByEndpoint map[string]int64
}

// PredictCallsForStandings estimates API calls needed to build league standings
func PredictCallsForStandings(group *app.LeagueGroup) int64 {
	// league group (1) + one call per real war tag
	return int64(1 + len(war.AllWarTags(group)))
}

// TrackedCocClient wraps a CocClientInterface and records every call in a tracker
type TrackedCocClient struct {
	client  CocClientInterface
	tracker *APICallTracker
}

// NewTrackedCocClient creates a tracking wrapper around a client
func NewTrackedCocClient(client CocClientInterface, tracker *APICallTracker) *TrackedCocClient {
	return &TrackedCocClient{client: client, tracker: tracker}
}

// Tracker returns the tracker calls are recorded in
func (c *TrackedCocClient) Tracker() *APICallTracker {
	return c.tracker
}

func (c *TrackedCocClient) GetClan(ctx context.Context, clanTag string) (*app.Clan, error) {
	clan, err := c.client.GetClan(ctx, clanTag)
	c.tracker.RecordCall(EndpointClan, err)
	return clan, err
}

func (c *TrackedCocClient) GetLeagueGroup(ctx context.Context, clanTag string) (*app.LeagueGroup, error) {
	group, err := c.client.GetLeagueGroup(ctx, clanTag)
	c.tracker.RecordCall(EndpointLeagueGroup, err)
	return group, err
}

func (c *TrackedCocClient) GetLeagueWar(ctx context.Context, warTag string) (*app.War, error) {
	leagueWar, err := c.client.GetLeagueWar(ctx, warTag)
	c.tracker.RecordCall(EndpointLeagueWar, err)
	return leagueWar, err
}
