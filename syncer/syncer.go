// Package syncer drives the compiler mirror: it composes the existence
// guard, artifact acquisition, and publishing into per-version tasks and runs
// them on a bounded worker pool.
//
// Tasks run independently; one task's failure never prevents others from
// completing. All shared state funnels into a single mutex-protected report.
package syncer

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/solidity-tools/solcsync/errors"
	"github.com/solidity-tools/solcsync/internal/logging"
	"github.com/solidity-tools/solcsync/resolver"
	"github.com/solidity-tools/solcsync/store"
)

const (
	// DefaultWorkers is the worker pool size when none is configured.
	DefaultWorkers = 3

	// downloadTimeout bounds one remote artifact fetch.
	downloadTimeout = 300 * time.Second
)

// Config is the immutable configuration of one sync run. It is passed in
// explicitly rather than read from ambient state so runs are reproducible and
// testable with fakes.
type Config struct {
	// Bucket is the object store bucket versions are published into.
	Bucket string

	// BaseURL is the base location remote artifact paths are relative to.
	BaseURL string

	// Workers is the worker pool size. Zero or negative selects
	// DefaultWorkers.
	Workers int

	// Limit truncates the task list to its first N entries before dispatch.
	// Zero means no limit.
	Limit int

	// DryRun resolves and probes but never acquires or publishes.
	DryRun bool
}

// Syncer runs Guard -> Acquire -> Publish for each resolved version.
type Syncer struct {
	store      *store.Store
	cfg        Config
	httpClient *http.Client
	log        zerolog.Logger
}

// New creates a Syncer publishing into the given store.
func New(st *store.Store, cfg Config) *Syncer {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = resolver.DefaultBaseURL
	}
	return &Syncer{
		store:      st,
		cfg:        cfg,
		httpClient: &http.Client{Timeout: downloadTimeout},
		log:        logging.GetLogger("syncer"),
	}
}

// Run dispatches one task per resolved entry to the worker pool and waits
// for every task to reach a terminal state.
//
// Cancelling the context stops dispatch of new tasks and aborts in-flight
// network and store operations; tasks interrupted mid-flight report as
// failed. Run returns the (possibly partial) report together with the
// context error in that case.
func (s *Syncer) Run(ctx context.Context, entries []resolver.Entry) (*Report, error) {
	startTime := time.Now()

	if s.cfg.Limit > 0 && len(entries) > s.cfg.Limit {
		s.log.Info().Int("limit", s.cfg.Limit).Msg("limiting versions to process")
		entries = entries[:s.cfg.Limit]
	}

	report := &Report{
		Total:  len(entries),
		DryRun: s.cfg.DryRun,
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		semaphore = make(chan struct{}, s.cfg.Workers)
	)

	var dispatchErr error
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			dispatchErr = err
			break
		}
		select {
		case semaphore <- struct{}{}:
		case <-ctx.Done():
			dispatchErr = ctx.Err()
		}
		if dispatchErr != nil {
			break
		}

		wg.Add(1)
		go func(task Task) {
			defer func() {
				<-semaphore
				wg.Done()
			}()

			outcome := s.process(ctx, task)
			s.logOutcome(outcome)

			mu.Lock()
			report.record(outcome)
			mu.Unlock()
		}(Task{Version: entry.Version, Source: entry.Source})
	}

	wg.Wait()
	report.Duration = time.Since(startTime)
	return report, dispatchErr
}

// process runs one task through its stages. Every error is folded into the
// returned outcome; nothing escapes the task boundary.
func (s *Syncer) process(ctx context.Context, task Task) Outcome {
	exists, err := s.store.Exists(ctx, s.cfg.Bucket, task.Version.BinaryKey())
	if err != nil {
		// A probe failure is not the same as confirmed absence: publishing
		// anyway could overwrite an existing artifact.
		return Outcome{
			Version: task.Version,
			Kind:    Failed,
			Err: errors.NewVersionError("guard", task.Version.String(), errors.ErrProbeFailed).
				WithMessage(err.Error()),
		}
	}
	if exists {
		return Outcome{Version: task.Version, Kind: Skipped}
	}

	if s.cfg.DryRun {
		return Outcome{Version: task.Version, Kind: Published}
	}

	if err := ctx.Err(); err != nil {
		return Outcome{Version: task.Version, Kind: Failed, Err: err}
	}

	art, err := s.acquire(ctx, task)
	if err != nil {
		return Outcome{Version: task.Version, Kind: Failed, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return Outcome{Version: task.Version, Kind: Failed, Err: err}
	}

	if err := s.publish(ctx, task.Version, art); err != nil {
		return Outcome{Version: task.Version, Kind: Failed, Err: err}
	}

	return Outcome{Version: task.Version, Kind: Published}
}

func (s *Syncer) logOutcome(o Outcome) {
	switch o.Kind {
	case Skipped:
		s.log.Info().Str("version", o.Version.String()).Msg("skipping existing version")
	case Published:
		if s.cfg.DryRun {
			s.log.Info().Str("version", o.Version.String()).Msg("would publish (dry run)")
		} else {
			s.log.Info().Str("version", o.Version.String()).Msg("published")
		}
	case Failed:
		s.log.Error().Err(o.Err).Str("version", o.Version.String()).Msg("task failed")
	}
}
