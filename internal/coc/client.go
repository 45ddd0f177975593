package coc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"coc_cwl_bot/internal/app"
	"coc_cwl_bot/internal/config"

	"github.com/rs/zerolog/log"
	"github.com/sethvargo/go-retry"
	"github.com/valyala/fasthttp"
)

const sentinelWarTag = "#0"

type Client struct {
	apiToken     string
	baseURL      string
	client       *fasthttp.Client
	retry        config.RetryConfig
	apiCallCount int64
	apiCallMutex sync.Mutex
}

func NewClient(cfg *app.Config) *Client {
	return newClient(
		cfg.CocAPIToken,
		cfg.APIBaseURL,
		&fasthttp.Client{
			MaxConnsPerHost:     cfg.WarFetchConcurrency * 2,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		config.DefaultResilienceConfig.APIRequest,
	)
}

func newClient(apiToken, baseURL string, httpClient *fasthttp.Client, retryConfig config.RetryConfig) *Client {
	if err := retryConfig.Validate(); err != nil {
		log.Warn().
			Err(err).
			Msg("Invalid API retry config, using defaults")
		retryConfig = config.DefaultResilienceConfig.APIRequest
	}

	return &Client{
		apiToken: apiToken,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   httpClient,
		retry:    retryConfig,
	}
}

// IncrementAPICall safely increments the API call counter
func (c *Client) IncrementAPICall() {
	c.apiCallMutex.Lock()
	c.apiCallCount++
	c.apiCallMutex.Unlock()
}

// GetAPICallCount returns the current API call count
func (c *Client) GetAPICallCount() int64 {
	c.apiCallMutex.Lock()
	defer c.apiCallMutex.Unlock()
	return c.apiCallCount
}

// ResetAPICallCount resets the API call counter to zero
func (c *Client) ResetAPICallCount() {
	c.apiCallMutex.Lock()
	c.apiCallCount = 0
	c.apiCallMutex.Unlock()
}

// GetClan fetches clan details including the member list
func (c *Client) GetClan(ctx context.Context, clanTag string) (*app.Clan, error) {
	if strings.TrimSpace(clanTag) == "" {
		return nil, ErrEmptyTag
	}

	clan, err := doRequest[app.Clan](ctx, c, "/clans/"+EncodeTag(clanTag))
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("clan_tag", clanTag).
		Int("members", len(clan.MemberList)).
		Msg("Successfully fetched clan")

	return clan, nil
}

// GetLeagueGroup fetches the current CWL league group of a clan
func (c *Client) GetLeagueGroup(ctx context.Context, clanTag string) (*app.LeagueGroup, error) {
	if strings.TrimSpace(clanTag) == "" {
		return nil, ErrEmptyTag
	}

	group, err := doRequest[app.LeagueGroup](ctx, c, "/clans/"+EncodeTag(clanTag)+"/currentwar/leaguegroup")
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("clan_tag", clanTag).
		Str("season", group.Season).
		Int("clans", len(group.Clans)).
		Int("rounds", len(group.Rounds)).
		Msg("Successfully fetched league group")

	return group, nil
}

// GetLeagueWar fetches a single CWL war by its war tag
func (c *Client) GetLeagueWar(ctx context.Context, warTag string) (*app.War, error) {
	switch strings.TrimSpace(warTag) {
	case "":
		return nil, ErrEmptyTag
	case sentinelWarTag:
		return nil, ErrSentinelWarTag
	}

	war, err := doRequest[app.War](ctx, c, "/clanwarleagues/wars/"+EncodeTag(warTag))
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("war_tag", warTag).
		Str("state", war.State).
		Str("clan", war.Clan.Tag).
		Str("opponent", war.Opponent.Tag).
		Msg("Successfully fetched league war")

	return war, nil
}

// EncodeTag percent-encodes a tag for use as a single path segment ("#" becomes "%23")
func EncodeTag(tag string) string {
	return url.PathEscape(strings.TrimSpace(tag))
}

// doRequest issues a GET against the API and decodes the JSON body into T.
// 5xx, 429 and transport failures are retried; any other non-200 status fails at once.
func doRequest[T any](ctx context.Context, c *Client, path string) (*T, error) {
	var body []byte

	backoff := retry.NewExponential(c.retry.InitialWait)
	backoff = retry.WithCappedDuration(c.retry.MaxWait, backoff)
	backoff = retry.WithMaxRetries(c.retry.Retries(), backoff)

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		var err error
		body, err = c.fetch(ctx, path)
		if err == nil {
			return nil
		}

		var fetchErr *FetchError
		if errors.As(err, &fetchErr) && !fetchErr.IsRetryable() {
			return err
		}
		if ctx.Err() != nil {
			return err
		}

		log.Debug().
			Err(err).
			Str("path", path).
			Int("attempt", attempt).
			Msg("API request failed, will retry")
		return retry.RetryableError(err)
	})
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response from %s: %w", path, err)
	}
	return &result, nil
}

// fetch performs a single GET and returns the body of a 200 response
func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	// keep %23 in tags exactly as encoded
	req.URI().DisablePathNormalizing = true
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")

	deadline := time.Now().Add(c.retry.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		log.Debug().
			Err(err).
			Str("path", path).
			Msg("API request failed")
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	c.IncrementAPICall()

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &FetchError{
			Status: resp.StatusCode(),
			Path:   path,
			Reason: errorReason(resp.Body()),
		}
	}

	// the response is released on return
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}

// errorReason extracts the "reason" field of an API error body, if any
func errorReason(body []byte) string {
	var apiErr struct {
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return ""
	}
	return apiErr.Reason
}
