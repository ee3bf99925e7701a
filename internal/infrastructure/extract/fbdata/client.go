// Package fbdata is a client for the football-data.org v4 API, covering the
// one endpoint this pipeline consumes: Premier League teams (with squads) for
// a season.
package fbdata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/matchday-data/epl-warehouse/internal/domain/staging"
	"github.com/matchday-data/epl-warehouse/internal/platform/logging"
)

const (
	defaultBaseURL  = "https://api.football-data.org/v4"
	competitionPath = "/competitions/PL/teams"
	maxResponseSize = 6 << 20
)

var errFootballDataTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	Timeout    time.Duration
	MaxRetries int
	Logger     *logging.Logger
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	maxRetries int
	logger     *logging.Logger
	validate   *validator.Validate
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		maxRetries: maxRetries,
		logger:     logger,
		validate:   validator.New(),
	}
}

// FetchTeams fetches the PL teams payload for one season (season is the
// starting year, e.g. 2023 for 2023/24). The raw body comes back alongside
// the decoded response so callers can stage it verbatim.
func (c *Client) FetchTeams(ctx context.Context, season int) (TeamsResponse, []byte, error) {
	fullURL := c.baseURL + competitionPath + "?season=" + strconv.Itoa(season)

	raw, err := c.executeRequest(ctx, fullURL)
	if err != nil {
		return TeamsResponse{}, nil, fmt.Errorf("fetch teams season=%d: %w", season, err)
	}

	var out TeamsResponse
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return TeamsResponse{}, nil, fmt.Errorf("decode teams payload season=%d: %w", season, err)
	}
	if err := c.validate.Struct(out); err != nil {
		return TeamsResponse{}, nil, fmt.Errorf("malformed teams payload season=%d: %w", season, err)
	}

	return out, raw, nil
}

// FetchTeamRows fetches one season and flattens it straight into staging
// shapes. The returned endpoint is the request path recorded on each row.
func (c *Client) FetchTeamRows(ctx context.Context, season int) ([]staging.TeamRow, []staging.PlayerRow, string, error) {
	endpoint := competitionPath + "?season=" + strconv.Itoa(season)

	resp, _, err := c.FetchTeams(ctx, season)
	if err != nil {
		return nil, nil, endpoint, err
	}

	teamRows, playerRows := resp.StagingRows(endpoint)
	return teamRows, playerRows, endpoint, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if c.token != "" {
			req.Header.Set("X-Auth-Token", c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errFootballDataTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errFootballDataTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errFootballDataTransient, "provider status=%d", resp.StatusCode)
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.Warn("football-data request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}
