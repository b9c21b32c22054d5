// Package web serves the dashboard JSON API: run history, loaded cases,
// summary cards, a suite trigger, and remote history sync.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/smokerun/smokerun/ghsync"
	"github.com/smokerun/smokerun/history"
	"github.com/smokerun/smokerun/model"
	"github.com/smokerun/smokerun/source"
)

// outputTail bounds how much combined trigger output is surfaced on a
// failed run.
const outputTail = 2000

// Server wires the core components behind HTTP handlers.
type Server struct {
	logger     zerolog.Logger
	store      *history.Store
	cases      source.Source
	sync       *ghsync.Client
	actionsURL string
	// runCommand launches the suite out of process, the same way the
	// original dashboard shells out to the runner script
	runCommand func(ctx context.Context) ([]byte, error)
}

// NewServer builds the dashboard server. cases may be nil when no source is
// configured; the cases endpoint then serves an empty list.
func NewServer(logger zerolog.Logger, store *history.Store, cases source.Source, sync *ghsync.Client, actionsURL string) *Server {
	s := &Server{
		logger:     logger,
		store:      store,
		cases:      cases,
		sync:       sync,
		actionsURL: actionsURL,
	}
	s.runCommand = s.runSelf
	return s
}

// Router returns the configured route table.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)
	r.HandleFunc("/api/runs", s.handleRuns).Methods(http.MethodGet)
	r.HandleFunc("/api/cases", s.handleCases).Methods(http.MethodGet)
	r.HandleFunc("/api/cards", s.handleCards).Methods(http.MethodGet)
	r.HandleFunc("/api/meta", s.handleMeta).Methods(http.MethodGet)
	r.HandleFunc("/api/run", s.handleTrigger).Methods(http.MethodPost)
	r.HandleFunc("/api/sync", s.handleSync).Methods(http.MethodPost)
	return r
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info().Str("addr", addr).Msg("Dashboard listening")
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("Request")
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write response")
	}
}

// handleRuns serves the history newest-first; on disk it is oldest-first.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs := s.store.ReadAll()
	reversed := make([]model.RunRecord, 0, len(runs))
	for i := len(runs) - 1; i >= 0; i-- {
		reversed = append(reversed, runs[i])
	}
	s.writeJSON(w, http.StatusOK, reversed)
}

func (s *Server) loadCases(ctx context.Context) ([]model.TestCase, error) {
	if s.cases == nil {
		return []model.TestCase{}, nil
	}
	cases, err := s.cases.LoadCases(ctx)
	if err != nil {
		return nil, err
	}
	if cases == nil {
		cases = []model.TestCase{}
	}
	return cases, nil
}

func (s *Server) handleCases(w http.ResponseWriter, r *http.Request) {
	cases, err := s.loadCases(r.Context())
	if err != nil {
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, cases)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	cases, err := s.loadCases(r.Context())
	if err != nil {
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}

	var latest *model.RunRecord
	if runs := s.store.ReadAll(); len(runs) > 0 {
		latest = &runs[len(runs)-1]
	}
	s.writeJSON(w, http.StatusOK, model.ComputeCards(latest, cases))
}

// handleMeta exposes the link to the CI workflow page so the dashboard can
// point at the remote runs.
func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"actions_url": s.actionsURL})
}

type triggerResponse struct {
	Status string `json:"status"`
	Output string `json:"output,omitempty"`
}

// handleTrigger runs the suite as a subprocess. A non-zero exit means the
// orchestration itself failed (bad config, unreachable source) and the tail
// of the combined output is returned; failing test cases still exit zero.
// The subprocess runs under a background context, not the request context:
// a run either completes all cases or the process is terminated externally,
// so a client disconnect must not kill it mid-suite and lose the results.
func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	out, err := s.runCommand(context.Background())
	if err != nil {
		s.logger.Error().Err(err).Msg("Suite run failed")
		s.writeJSON(w, http.StatusInternalServerError, triggerResponse{
			Status: "failed",
			Output: tail(string(out), outputTail),
		})
		return
	}
	s.writeJSON(w, http.StatusOK, triggerResponse{Status: "completed"})
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	records, err := s.sync.FetchLatestHistory(r.Context())
	if err != nil {
		// Sync failures never touch the local store
		s.writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	if err := s.store.ReplaceAll(records); err != nil {
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "synced", "runs": len(records)})
}

// runSelf re-invokes this binary's run command.
func (s *Server) runSelf(ctx context.Context) ([]byte, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, err
	}
	cmd := exec.CommandContext(ctx, exe, "run")
	return cmd.CombinedOutput()
}

func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	s = s[len(s)-n:]
	// Drop continuation bytes left by cutting inside a multi-byte rune
	for len(s) > 0 && !utf8.RuneStart(s[0]) {
		s = s[1:]
	}
	return s
}
