package api

import (
	"chess-leaderboard/internal/config"
	"chess-leaderboard/internal/constants"
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"
)

var ErrUnexpectedStatus = errors.New("unexpected status")

type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API error: %d for %s", e.StatusCode, e.URL)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// LichessClient fetches the raw payloads the discovery pipeline caches.
type LichessClient struct {
	token   string
	baseURL string
	client  *fasthttp.Client
}

func NewLichessClient(cfg *config.Config) *LichessClient {
	return NewLichessClientWith(cfg, &fasthttp.Client{
		MaxConnsPerHost:     constants.HTTPMaxConnsPerHost,
		ReadTimeout:         constants.ExternalAPITimeout,
		WriteTimeout:        10 * time.Second,
		MaxIdleConnDuration: constants.HTTPMaxIdleConnDuration,
		MaxResponseBodySize: constants.HTTPMaxResponseBodySize,
	})
}

func NewLichessClientWith(cfg *config.Config, client *fasthttp.Client) *LichessClient {
	return &LichessClient{
		token:   cfg.LichessToken,
		baseURL: cfg.LichessBaseURL,
		client:  client,
	}
}

// UserGames returns the user's PGN game export without moves.
func (c *LichessClient) UserGames(ctx context.Context, userID string) ([]byte, error) {
	u := fmt.Sprintf("%s/api/games/user/%s?moves=false", c.baseURL, url.PathEscape(userID))
	return c.get(ctx, u, true)
}

// GamePage returns the public HTML page of a game.
func (c *LichessClient) GamePage(ctx context.Context, gameID string) ([]byte, error) {
	u := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(gameID))
	return c.get(ctx, u, false)
}

func (c *LichessClient) Tournament(ctx context.Context, tournamentID string) ([]byte, error) {
	u := fmt.Sprintf("%s/api/tournament/%s", c.baseURL, url.PathEscape(tournamentID))
	return c.get(ctx, u, true)
}

// TournamentResults returns the NDJSON standings of a finished tournament.
func (c *LichessClient) TournamentResults(ctx context.Context, tournamentID string) ([]byte, error) {
	u := fmt.Sprintf("%s/api/tournament/%s/results", c.baseURL, url.PathEscape(tournamentID))
	return c.get(ctx, u, true)
}

func (c *LichessClient) get(ctx context.Context, u string, authenticated bool) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(u)
	req.Header.SetMethod(fasthttp.MethodGet)
	if authenticated && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := c.client.DoTimeout(req, resp, constants.ExternalAPITimeout); err != nil {
			return nil, err
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode(), URL: u}
	}

	// the response buffer goes back to the pool on release
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
