package api

import (
	"chess-leaderboard/internal/config"
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

type recorded struct {
	path  string
	query string
	auth  string
}

func newTestClient(t *testing.T, token string, handler fasthttp.RequestHandler) *LichessClient {
	t.Helper()

	ln := fasthttputil.NewInmemoryListener()
	srv := &fasthttp.Server{Handler: handler}
	go srv.Serve(ln) //nolint:errcheck
	t.Cleanup(func() {
		srv.Shutdown() //nolint:errcheck
		ln.Close()
	})

	client := &fasthttp.Client{
		Dial: func(string) (net.Conn, error) { return ln.Dial() },
	}
	return NewLichessClientWith(&config.Config{
		LichessToken:   token,
		LichessBaseURL: "http://lichess.test",
	}, client)
}

func TestClientEndpoints(t *testing.T) {
	var seen []recorded
	client := newTestClient(t, "tok", func(ctx *fasthttp.RequestCtx) {
		seen = append(seen, recorded{
			path:  string(ctx.Path()),
			query: string(ctx.QueryArgs().QueryString()),
			auth:  string(ctx.Request.Header.Peek("Authorization")),
		})
		ctx.SetBodyString("ok:" + string(ctx.Path()))
	})
	ctx := context.Background()

	body, err := client.UserGames(ctx, "Jfilho_AS")
	require.NoError(t, err)
	require.Equal(t, "ok:/api/games/user/Jfilho_AS", string(body))

	_, err = client.GamePage(ctx, "abcd1234")
	require.NoError(t, err)
	_, err = client.Tournament(ctx, "T1")
	require.NoError(t, err)
	_, err = client.TournamentResults(ctx, "T1")
	require.NoError(t, err)

	require.Equal(t, []recorded{
		{path: "/api/games/user/Jfilho_AS", query: "moves=false", auth: "Bearer tok"},
		{path: "/abcd1234", auth: ""},
		{path: "/api/tournament/T1", auth: "Bearer tok"},
		{path: "/api/tournament/T1/results", auth: "Bearer tok"},
	}, seen)
}

func TestClientWithoutTokenSendsNoAuth(t *testing.T) {
	var auth []byte
	client := newTestClient(t, "", func(ctx *fasthttp.RequestCtx) {
		auth = append([]byte(nil), ctx.Request.Header.Peek("Authorization")...)
	})

	_, err := client.Tournament(context.Background(), "T1")
	require.NoError(t, err)
	require.Empty(t, auth)
}

func TestClientStatusError(t *testing.T) {
	client := newTestClient(t, "tok", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
	})

	_, err := client.TournamentResults(context.Background(), "T1")
	require.ErrorIs(t, err, ErrUnexpectedStatus)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, fasthttp.StatusTooManyRequests, statusErr.StatusCode)
	require.Contains(t, statusErr.URL, "/api/tournament/T1/results")
}

func TestClientCancelledContext(t *testing.T) {
	client := newTestClient(t, "tok", func(ctx *fasthttp.RequestCtx) {
		t.Error("request must not be sent")
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GamePage(ctx, "g1")
	require.ErrorIs(t, err, context.Canceled)
}
