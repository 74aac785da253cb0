// Package scoresvc is the high-score service: an HTTP API over the SQLite
// store, a client for it, and an asynchronous submitter that feeds finished
// runs to either.
package scoresvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/vovakirdan/cosmic-defender/internal/storage"
)

const (
	// MaxNameLen caps pilot names, in runes.
	MaxNameLen = 10

	// topPage is how many entries a submission response carries.
	topPage = storage.DefaultPageSize

	maxBodyBytes = 4 << 10
)

// Submission is the body of POST /api/scores.
type Submission struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Time   string `json:"time"` // mm:ss
	Ship   string `json:"ship,omitempty"`
	RunID  string `json:"runId,omitempty"`
	Kills  int    `json:"kills,omitempty"`
	Bosses int    `json:"bosses,omitempty"`
}

// Score is one scoreboard row.
type Score struct {
	Name  string `json:"name"`
	Rank  int    `json:"rank"`
	Score int    `json:"score"`
	Time  string `json:"time"`
	Ship  string `json:"ship,omitempty"`
}

// Response is returned by both endpoints. Rank and Percentile are set only
// in reply to a submission.
type Response struct {
	Scores     []Score `json:"scores"`
	TotalPages int     `json:"totalPages"`
	Rank       int     `json:"rank,omitempty"`
	Percentile int     `json:"percentile,omitempty"`
}

// Server serves the score API.
type Server struct {
	store  *storage.Store
	log    *log.Logger
	router *mux.Router
}

// NewServer builds the API router over store.
func NewServer(store *storage.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{store: store, log: logger, router: mux.NewRouter()}

	s.router.Use(s.logRequests, cors)
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/scores", s.listScores).Methods(http.MethodGet)
	api.HandleFunc("/scores", s.postScore).Methods(http.MethodPost)
	api.HandleFunc("/scores", preflight).Methods(http.MethodOptions)
	s.router.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodGet)

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("score server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("scoresvc: %w", err)
	case <-ctx.Done():
		s.log.Info("stopping score server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("scoresvc: shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) listScores(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	// Invalid values fall back to the store defaults.
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	entries, pages, err := s.store.Page(page, limit)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, Response{Scores: toScores(entries), TotalPages: pages})
}

func (s *Server) postScore(w http.ResponseWriter, r *http.Request) {
	var sub Submission
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&sub); err != nil {
		s.fail(w, http.StatusBadRequest, fmt.Errorf("invalid body: %w", err))
		return
	}

	run, err := sub.validate()
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	id, err := s.store.SaveRun(run)
	if errors.Is(err, storage.ErrDuplicateRun) {
		s.fail(w, http.StatusConflict, err)
		return
	}
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	rank, total, err := s.store.RankOf(id)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}
	entries, pages, err := s.store.Page(1, topPage)
	if err != nil {
		s.fail(w, http.StatusInternalServerError, err)
		return
	}

	s.log.Info("score recorded", "name", run.Name, "score", run.Score, "rank", rank, "of", total)
	s.writeJSON(w, http.StatusCreated, Response{
		Scores:     toScores(entries),
		TotalPages: pages,
		Rank:       rank,
		Percentile: storage.Percentile(rank, total),
	})
}

// validate normalizes the submission into a storage record.
func (sub Submission) validate() (storage.Run, error) {
	name := strings.TrimSpace(sub.Name)
	if name == "" {
		return storage.Run{}, errors.New("name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		name = string([]rune(name)[:MaxNameLen])
	}
	if sub.Score < 0 || sub.Kills < 0 || sub.Bosses < 0 {
		return storage.Run{}, errors.New("score, kills and bosses must not be negative")
	}
	elapsed, err := ParseTime(sub.Time)
	if err != nil {
		return storage.Run{}, err
	}
	return storage.Run{
		RunID:   sub.RunID,
		Name:    name,
		Ship:    sub.Ship,
		Score:   sub.Score,
		Elapsed: elapsed,
		Kills:   sub.Kills,
		Bosses:  sub.Bosses,
	}, nil
}

func toScores(entries []storage.ScoreEntry) []Score {
	scores := make([]Score, 0, len(entries))
	for _, e := range entries {
		scores = append(scores, Score{
			Name:  e.Name,
			Rank:  e.Rank,
			Score: e.Score,
			Time:  FormatTime(e.Elapsed),
			Ship:  e.Ship,
		})
	}
	return scores
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("cannot encode response", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
		next.ServeHTTP(w, r)
	})
}

func preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request", "method", r.Method, "path", r.URL.Path, "status", rec.status, "took", time.Since(start))
	})
}
