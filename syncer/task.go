package syncer

import (
	"time"

	"github.com/solidity-tools/solcsync/resolver"
	"github.com/solidity-tools/solcsync/version"
)

// Task is the unit of work submitted to the pool: one version paired with
// the source of its bytes. Stateless and immutable.
type Task struct {
	Version version.ID
	Source  resolver.Source
}

// OutcomeKind is the terminal state of a task.
type OutcomeKind int

const (
	// Skipped means the version was already present in the store.
	Skipped OutcomeKind = iota

	// Published means the binary and its hash sidecar were written.
	Published

	// Failed means the task hit an error at some stage; Outcome.Err says
	// which.
	Failed
)

// String returns a human-readable kind name for logging.
func (k OutcomeKind) String() string {
	switch k {
	case Skipped:
		return "skipped"
	case Published:
		return "published"
	default:
		return "failed"
	}
}

// Outcome is the terminal result of one task. Produced exactly once per task.
type Outcome struct {
	Version version.ID
	Kind    OutcomeKind
	Err     error
}

// Failure records one failed version for the final report.
type Failure struct {
	Version version.ID
	Err     error
}

// Report aggregates per-task outcomes for a whole run. The failure list is
// always complete; callers decide how much of it to display.
type Report struct {
	// Total is the number of tasks dispatched (after any limit).
	Total int

	// Published counts tasks that wrote a new artifact pair. In dry-run mode
	// it counts tasks that would have.
	Published int

	// Skipped counts tasks whose version was already present.
	Skipped int

	// Failures lists every failed version with its reason.
	Failures []Failure

	// Duration is the wall time of the run.
	Duration time.Duration

	// DryRun records whether publishes were suppressed.
	DryRun bool
}

// FailedVersions returns the identifiers of all failed tasks.
func (r *Report) FailedVersions() []version.ID {
	ids := make([]version.ID, 0, len(r.Failures))
	for _, f := range r.Failures {
		ids = append(ids, f.Version)
	}
	return ids
}

func (r *Report) record(o Outcome) {
	switch o.Kind {
	case Skipped:
		r.Skipped++
	case Published:
		r.Published++
	case Failed:
		r.Failures = append(r.Failures, Failure{Version: o.Version, Err: o.Err})
	}
}
