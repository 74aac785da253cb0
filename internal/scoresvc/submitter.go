package scoresvc

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cosmic-defender/internal/sim"
	"github.com/vovakirdan/cosmic-defender/internal/storage"
)

// Backend records a submission and returns the resulting board.
type Backend interface {
	Submit(ctx context.Context, sub Submission) (*Response, error)
}

var (
	_ Backend       = (*Client)(nil)
	_ Backend       = (*LocalBackend)(nil)
	_ sim.ScoreSink = (*Submitter)(nil)
)

// LocalBackend records submissions straight into a store, for offline play.
type LocalBackend struct {
	Store *storage.Store
}

// Submit implements Backend.
func (b *LocalBackend) Submit(ctx context.Context, sub Submission) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	run, err := sub.validate()
	if err != nil {
		return nil, err
	}
	id, err := b.Store.SaveRun(run)
	if err != nil {
		return nil, err
	}
	rank, total, err := b.Store.RankOf(id)
	if err != nil {
		return nil, err
	}
	entries, pages, err := b.Store.Page(1, topPage)
	if err != nil {
		return nil, err
	}
	return &Response{
		Scores:     toScores(entries),
		TotalPages: pages,
		Rank:       rank,
		Percentile: storage.Percentile(rank, total),
	}, nil
}

// Outcome is the answer to one submitted run.
type Outcome struct {
	Result     sim.Result
	Rank       int
	Percentile int
	Board      []Score
	Err        error
}

// FromResult converts a finished run into a submission.
func FromResult(r sim.Result) Submission {
	name := r.Name
	if name == "" {
		name = "pilot"
	}
	return Submission{
		Name:   name,
		Score:  r.Score,
		Time:   FormatTime(r.Elapsed),
		Ship:   r.Ship,
		RunID:  r.RunID,
		Kills:  r.Kills,
		Bosses: r.Bosses,
	}
}

// Submitter hands results to a backend without blocking the caller.
// Outcomes arrive on Results.
type Submitter struct {
	backend Backend
	log     *log.Logger
	timeout time.Duration
	results chan Outcome
	wg      sync.WaitGroup
}

// NewSubmitter creates a submitter. A nil backend reports every submission
// as unavailable.
func NewSubmitter(backend Backend, logger *log.Logger) *Submitter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Submitter{
		backend: backend,
		log:     logger,
		timeout: 10 * time.Second,
		results: make(chan Outcome, 4),
	}
}

// Submit implements sim.ScoreSink.
func (s *Submitter) Submit(r sim.Result) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		out := s.send(r)
		select {
		case s.results <- out:
		default:
			s.log.Warn("score outcome dropped", "run", r.RunID)
		}
	}()
}

func (s *Submitter) send(r sim.Result) Outcome {
	out := Outcome{Result: r}
	if s.backend == nil {
		out.Err = ErrUnavailable
		return out
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	resp, err := s.backend.Submit(ctx, FromResult(r))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = errors.Join(ErrUnavailable, err)
		}
		s.log.Warn("score submission failed", "run", r.RunID, "err", err)
		out.Err = err
		return out
	}

	s.log.Info("score submitted", "run", r.RunID, "score", r.Score, "rank", resp.Rank)
	out.Rank = resp.Rank
	out.Percentile = resp.Percentile
	out.Board = resp.Scores
	return out
}

// Results delivers one Outcome per submitted run.
func (s *Submitter) Results() <-chan Outcome { return s.results }

// Wait blocks until every pending submission has finished.
func (s *Submitter) Wait() { s.wg.Wait() }
