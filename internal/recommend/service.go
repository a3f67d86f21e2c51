package recommend

import (
	"context"
	"errors"
	"time"

	"bookrec/internal/logger"
	"bookrec/internal/metrics"
)

// Service ties the catalog fetch, the result cache and the run history
// together for the HTTP handlers and the CLI.
type Service struct {
	fetcher Fetcher
	cache   *ResultCache
	runs    RunRepository
}

// NewService builds a Service. cache and runs may be nil.
func NewService(fetcher Fetcher, cache *ResultCache, runs RunRepository) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		runs:    runs,
	}
}

// Recommend returns every book fetched for genre, at most TotalCap of them.
// A transport failure is returned as an error wrapping ErrTransport; the
// Result then holds the partial books gathered before the failure.
func (s *Service) Recommend(ctx context.Context, genre string) (Result, error) {
	if res, ok := s.cache.Get(genre); ok {
		res.Genre = genre
		return res, nil
	}

	run := s.startRun(ctx, genre)
	res, err := s.fetcher.Fetch(ctx, genre)
	s.finishRun(ctx, run, res, err)

	status := statusOf(res, err)
	metrics.FetchesTotal.WithLabelValues(status).Inc()
	metrics.FetchedBooks.Observe(float64(len(res.Books)))

	if err != nil {
		return res, err
	}
	s.cache.Set(genre, res)
	return res, nil
}

// TopBooks returns the n highest-rated books for genre.
func (s *Service) TopBooks(ctx context.Context, genre string, n int) (Result, error) {
	res, err := s.Recommend(ctx, genre)
	res.Books = Top(res.Books, n)
	return res, err
}

// SelectBook looks up title in the top ten of genre.
func (s *Service) SelectBook(ctx context.Context, genre, title string) (Book, error) {
	res, err := s.TopBooks(ctx, genre, DefaultTopN)
	if err != nil {
		return Book{}, err
	}
	b, ok := SelectByTitle(res.Books, title)
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (s *Service) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if s.runs == nil {
		return nil, ErrNoHistory
	}
	return s.runs.ListRecent(ctx, limit)
}

func statusOf(res Result, err error) string {
	switch {
	case err != nil:
		return RunStatusFailed
	case res.Exhausted:
		return RunStatusExhausted
	default:
		return RunStatusCompleted
	}
}

func (s *Service) startRun(ctx context.Context, genre string) *Run {
	if s.runs == nil {
		return nil
	}
	run := &Run{
		Genre:     genre,
		Status:    RunStatusRunning,
		StartedAt: time.Now(),
	}
	id, err := s.runs.CreateRun(ctx, run)
	if err != nil {
		logger.For(ctx).WithError(err).Warn("failed to record fetch run")
		return nil
	}
	run.ID = id
	return run
}

func (s *Service) finishRun(ctx context.Context, run *Run, res Result, err error) {
	if run == nil {
		return
	}
	now := time.Now()
	run.FinishedAt = &now
	run.Status = statusOf(res, err)
	run.Pages = res.Pages
	run.Books = len(res.Books)
	if err != nil {
		run.Error = err.Error()
	}

	// The request context may already be canceled; the run row should still
	// be closed.
	ctx = context.WithoutCancel(ctx)
	if updateErr := s.runs.FinishRun(ctx, run); updateErr != nil {
		logger.For(ctx).WithError(updateErr).Warnf("failed to update fetch run %s", run.ID)
	}
}

// IsTransport reports whether err is an upstream transport failure.
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}
