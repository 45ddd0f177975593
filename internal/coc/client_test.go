package coc

import (
	"context"
	"errors"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"coc_cwl_bot/internal/app"
	"coc_cwl_bot/internal/config"

	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

var testRetryConfig = config.RetryConfig{
	MaxAttempts: 3,
	InitialWait: 1 * time.Millisecond,
	MaxWait:     5 * time.Millisecond,
	Timeout:     2 * time.Second,
}

// newTestClient wires a Client to an in-memory fasthttp server running handler
func newTestClient(t *testing.T, handler fasthttp.RequestHandler) *Client {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	server := &fasthttp.Server{Handler: handler}
	go func() {
		_ = server.Serve(ln)
	}()
	t.Cleanup(func() {
		_ = ln.Close()
	})

	httpClient := &fasthttp.Client{
		Dial: func(addr string) (net.Conn, error) {
			return ln.Dial()
		},
	}
	return newClient("test_token", "http://coc.test/v1/", httpClient, testRetryConfig)
}

func TestNewClient(t *testing.T) {
	client := NewClient(&app.Config{
		CocAPIToken:         "test_token",
		APIBaseURL:          app.DefaultAPIBaseURL,
		WarFetchConcurrency: 4,
	})

	if client.apiToken != "test_token" {
		t.Errorf("Expected API token 'test_token', got '%s'", client.apiToken)
	}

	if client.baseURL != app.DefaultAPIBaseURL {
		t.Errorf("Expected base URL '%s', got '%s'", app.DefaultAPIBaseURL, client.baseURL)
	}

	if client.retry != config.DefaultResilienceConfig.APIRequest {
		t.Errorf("Expected default API retry config, got %+v", client.retry)
	}

	if client.apiCallCount != 0 {
		t.Errorf("Expected API call count 0, got %d", client.apiCallCount)
	}
}

func TestAPICallCounter(t *testing.T) {
	client := newClient("test_token", "http://coc.test/v1", &fasthttp.Client{}, testRetryConfig)

	if count := client.GetAPICallCount(); count != 0 {
		t.Errorf("Expected initial count 0, got %d", count)
	}

	client.IncrementAPICall()
	client.IncrementAPICall()
	client.IncrementAPICall()
	if count := client.GetAPICallCount(); count != 3 {
		t.Errorf("Expected count 3 after multiple increments, got %d", count)
	}

	client.ResetAPICallCount()
	if count := client.GetAPICallCount(); count != 0 {
		t.Errorf("Expected count 0 after reset, got %d", count)
	}
}

func TestEncodeTag(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"#2PP0JCGY", "%232PP0JCGY"},
		{" #ABC ", "%23ABC"},
		{"#8QU8J9LP/x", "%238QU8J9LP%2Fx"},
	}

	for _, tc := range testCases {
		if got := EncodeTag(tc.input); got != tc.expected {
			t.Errorf("EncodeTag(%q): expected %q, got %q", tc.input, tc.expected, got)
		}
	}
}

func TestGetLeagueGroup(t *testing.T) {
	var gotURI, gotAuth string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		gotURI = string(ctx.RequestURI())
		gotAuth = string(ctx.Request.Header.Peek("Authorization"))
		ctx.SetContentType("application/json")
		ctx.SetBodyString(`{
			"state": "inWar",
			"season": "2024-01",
			"clans": [{"tag": "#AAA", "name": "Alpha"}, {"tag": "#BBB", "name": "Bravo"}],
			"rounds": [{"warTags": ["#W1", "#0"]}, {"warTags": ["#0", "#0"]}]
		}`)
	})

	group, err := client.GetLeagueGroup(context.Background(), "#AAA")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotURI != "/v1/clans/%23AAA/currentwar/leaguegroup" {
		t.Errorf("Expected encoded league group path, got '%s'", gotURI)
	}

	if gotAuth != "Bearer test_token" {
		t.Errorf("Expected bearer authorization header, got '%s'", gotAuth)
	}

	if len(group.Clans) != 2 || group.Clans[1].Name != "Bravo" {
		t.Errorf("Expected 2 clans with Bravo second, got %+v", group.Clans)
	}

	if len(group.Rounds) != 2 || group.Rounds[0].WarTags[0] != "#W1" {
		t.Errorf("Unexpected rounds: %+v", group.Rounds)
	}

	if client.GetAPICallCount() != 1 {
		t.Errorf("Expected 1 API call, got %d", client.GetAPICallCount())
	}
}

func TestGetLeagueWar(t *testing.T) {
	var gotURI string
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		gotURI = string(ctx.RequestURI())
		ctx.SetBodyString(`{
			"state": "inWar",
			"endTime": "20240105T081500.000Z",
			"clan": {"tag": "#AAA", "name": "Alpha", "stars": 5, "destructionPercentage": 41.5,
				"members": [{"tag": "#M1", "name": "One", "mapPosition": 1,
					"attacks": [{"defenderTag": "#E1", "stars": 2, "destructionPercentage": 55.5, "duration": 120}]}]},
			"opponent": {"tag": "#BBB", "name": "Bravo", "members": [{"tag": "#E1", "name": "Foe"}]}
		}`)
	})

	war, err := client.GetLeagueWar(context.Background(), "#W1")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotURI != "/v1/clanwarleagues/wars/%23W1" {
		t.Errorf("Expected encoded war path, got '%s'", gotURI)
	}

	if war.State != "inWar" || war.Clan.Stars != 5 {
		t.Errorf("Unexpected war payload: %+v", war)
	}

	attack := war.Clan.Members[0].Attacks[0]
	if attack.Stars != 2 || attack.DestructionPercentage != 55.5 || attack.DefenderTag != "#E1" {
		t.Errorf("Unexpected attack: %+v", attack)
	}

	if war.Opponent.Members[0].MapPosition != nil {
		t.Error("Expected missing mapPosition to decode as nil")
	}

	if war.Opponent.Stars != 0 {
		t.Errorf("Expected missing stars to default to 0, got %d", war.Opponent.Stars)
	}
}

func TestGetLeagueWarRejectsInvalidTags(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		atomic.AddInt32(&calls, 1)
	})

	if _, err := client.GetLeagueWar(context.Background(), "#0"); !errors.Is(err, ErrSentinelWarTag) {
		t.Errorf("Expected ErrSentinelWarTag, got %v", err)
	}

	if _, err := client.GetLeagueWar(context.Background(), " "); !errors.Is(err, ErrEmptyTag) {
		t.Errorf("Expected ErrEmptyTag, got %v", err)
	}

	if _, err := client.GetClan(context.Background(), ""); !errors.Is(err, ErrEmptyTag) {
		t.Errorf("Expected ErrEmptyTag, got %v", err)
	}

	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("Expected no requests to reach the server, got %d", calls)
	}
}

func TestClientErrorHandling(t *testing.T) {
	testCases := []struct {
		name          string
		statuses      []int
		expectErr     bool
		expectStatus  int
		expectReason  string
		expectedCalls int32
	}{
		{
			name:          "NotFoundFailsImmediately",
			statuses:      []int{404},
			expectErr:     true,
			expectStatus:  404,
			expectReason:  "notFound",
			expectedCalls: 1,
		},
		{
			name:          "ForbiddenFailsImmediately",
			statuses:      []int{403},
			expectErr:     true,
			expectStatus:  403,
			expectReason:  "accessDenied",
			expectedCalls: 1,
		},
		{
			name:          "ServerErrorRecovers",
			statuses:      []int{503, 200},
			expectErr:     false,
			expectedCalls: 2,
		},
		{
			name:          "RateLimitedRecovers",
			statuses:      []int{429, 200},
			expectErr:     false,
			expectedCalls: 2,
		},
		{
			name:          "ServerErrorExhaustsRetries",
			statuses:      []int{500, 500, 500, 500},
			expectErr:     true,
			expectStatus:  500,
			expectReason:  "unknownException",
			expectedCalls: 3,
		},
	}

	reasons := map[int]string{
		403: "accessDenied",
		404: "notFound",
		429: "requestThrottled",
		500: "unknownException",
		503: "inMaintenance",
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls int32
			client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
				n := atomic.AddInt32(&calls, 1)
				status := tc.statuses[int(n)-1]
				ctx.SetStatusCode(status)
				if status == 200 {
					ctx.SetBodyString(`{"tag": "#AAA", "name": "Alpha", "memberList": []}`)
					return
				}
				ctx.SetBodyString(`{"reason": "` + reasons[status] + `"}`)
			})

			clan, err := client.GetClan(context.Background(), "#AAA")

			if got := atomic.LoadInt32(&calls); got != tc.expectedCalls {
				t.Errorf("Expected %d calls, got %d", tc.expectedCalls, got)
			}

			if !tc.expectErr {
				if err != nil {
					t.Fatalf("Expected no error, got %v", err)
				}
				if clan.Name != "Alpha" {
					t.Errorf("Expected clan 'Alpha', got '%s'", clan.Name)
				}
				return
			}

			var fetchErr *FetchError
			if !errors.As(err, &fetchErr) {
				t.Fatalf("Expected *FetchError, got %T: %v", err, err)
			}

			if fetchErr.Status != tc.expectStatus {
				t.Errorf("Expected status %d, got %d", tc.expectStatus, fetchErr.Status)
			}

			if fetchErr.Reason != tc.expectReason {
				t.Errorf("Expected reason '%s', got '%s'", tc.expectReason, fetchErr.Reason)
			}

			if status, ok := StatusOf(err); !ok || status != tc.expectStatus {
				t.Errorf("Expected StatusOf to return %d, got %d (%v)", tc.expectStatus, status, ok)
			}
		})
	}
}

func TestClientHonorsCancelledContext(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(ctx *fasthttp.RequestCtx) {
		atomic.AddInt32(&calls, 1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetLeagueGroup(ctx, "#AAA")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}

	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("Expected no calls with a cancelled context, got %d", calls)
	}
}

func TestFetchErrorClassification(t *testing.T) {
	testCases := []struct {
		status    int
		notFound  bool
		retryable bool
	}{
		{400, false, false},
		{403, false, false},
		{404, true, false},
		{429, false, true},
		{500, false, true},
		{503, false, true},
	}

	for _, tc := range testCases {
		err := &FetchError{Status: tc.status, Path: "/clans/%23AAA"}
		if err.IsNotFound() != tc.notFound {
			t.Errorf("Status %d: expected IsNotFound %v", tc.status, tc.notFound)
		}
		if err.IsRetryable() != tc.retryable {
			t.Errorf("Status %d: expected IsRetryable %v", tc.status, tc.retryable)
		}
	}

	if _, ok := StatusOf(errors.New("plain")); ok {
		t.Error("Expected StatusOf to report false for a plain error")
	}
}

func TestNewClientFallsBackToDefaultRetryConfig(t *testing.T) {
	client := newClient("test_token", "http://coc.test/v1", &fasthttp.Client{}, config.RetryConfig{})

	if client.retry != config.DefaultResilienceConfig.APIRequest {
		t.Errorf("Expected default retry config for an invalid one, got %+v", client.retry)
	}
}
