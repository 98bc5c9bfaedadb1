package server

import (
	"bytes"
	"chess-leaderboard/internal/config"
	"chess-leaderboard/internal/leaderboard"
	"chess-leaderboard/internal/middleware"
	"chess-leaderboard/internal/service"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

type ReportBuilder interface {
	Build(ctx context.Context) (*service.Report, error)
}

type LeaderboardServer struct {
	builder ReportBuilder
	baseURL string
	logger  zerolog.Logger
	group   singleflight.Group
}

func NewLeaderboardServer(svc *service.LeaderboardService, cfg *config.Config, logger zerolog.Logger) *LeaderboardServer {
	return New(svc, cfg.LichessBaseURL, logger)
}

func New(builder ReportBuilder, baseURL string, logger zerolog.Logger) *LeaderboardServer {
	return &LeaderboardServer{builder: builder, baseURL: baseURL, logger: logger}
}

type tournamentResponse struct {
	Label    string    `json:"label"`
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	StartsAt time.Time `json:"startsAt"`
}

func (s *LeaderboardServer) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(s.logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/leaderboard.csv", s.handleCSV)
	r.Get("/leaderboard.xlsx", s.handleXLSX)
	r.Get("/tournaments", s.handleTournaments)
	return r
}

// report shares one in-flight build between concurrent requests.
func (s *LeaderboardServer) report(ctx context.Context) (*service.Report, error) {
	ch := s.group.DoChan("report", func() (any, error) {
		return s.builder.Build(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*service.Report), nil
	}
}

func (s *LeaderboardServer) fail(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to build leaderboard")
	http.Error(w, "failed to build leaderboard (request "+middleware.GetRequestID(r.Context())+")", http.StatusBadGateway)
}

func (s *LeaderboardServer) handleCSV(w http.ResponseWriter, r *http.Request) {
	report, err := s.report(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	if err := leaderboard.WriteCSV(w, report.Board); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to write response")
	}
}

func (s *LeaderboardServer) handleXLSX(w http.ResponseWriter, r *http.Request) {
	report, err := s.report(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := leaderboard.WriteXLSX(&buf, report.Board); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="leaderboard.xlsx"`)
	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to write response")
	}
}

func (s *LeaderboardServer) handleTournaments(w http.ResponseWriter, r *http.Request) {
	report, err := s.report(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}

	headers := report.Board.TournamentHeaders()
	resp := make([]tournamentResponse, 0, len(report.Tournaments))
	for i, t := range report.Tournaments {
		resp = append(resp, tournamentResponse{
			Label:    headers[i],
			ID:       t.ID,
			Name:     t.FullName,
			URL:      s.baseURL + "/tournament/" + t.ID,
			StartsAt: t.StartsAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to write response")
	}
}
