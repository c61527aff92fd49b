package resolver

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/solidity-tools/solcsync/errors"
	"github.com/solidity-tools/solcsync/internal/logging"
	"github.com/solidity-tools/solcsync/version"
)

// defaultExecTimeout bounds each `solc --version` invocation.
const defaultExecTimeout = 30 * time.Second

// LocalResolver resolves versions by scanning a directory of compiler
// binaries and asking each one what it is.
type LocalResolver struct {
	dir         string
	execTimeout time.Duration
}

// LocalOption configures a LocalResolver.
type LocalOption func(*LocalResolver)

// WithExecTimeout overrides the per-binary version query timeout.
func WithExecTimeout(d time.Duration) LocalOption {
	return func(r *LocalResolver) {
		if d > 0 {
			r.execTimeout = d
		}
	}
}

// NewLocalResolver creates a resolver scanning the given directory.
func NewLocalResolver(dir string, opts ...LocalOption) *LocalResolver {
	r := &LocalResolver{
		dir:         dir,
		execTimeout: defaultExecTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve scans the directory for compiler candidates and introspects each
// one with `--version`. The scan is non-recursive: it covers a root-level
// file named "solc", sibling files with a "solc" prefix, and one level of
// subdirectories each checked for a "solc" file.
//
// A candidate that cannot be executed or does not report a parseable version
// is skipped with a warning; only a missing directory aborts the run, as
// ErrLocalDirMissing.
func (r *LocalResolver) Resolve(ctx context.Context) ([]Entry, error) {
	log := logging.GetLogger("resolver")

	info, err := os.Stat(r.dir)
	if err != nil || !info.IsDir() {
		return nil, errors.NewError("resolve", errors.ErrLocalDirMissing).
			WithMessage(r.dir)
	}

	candidates, err := r.scan()
	if err != nil {
		return nil, errors.NewError("resolve", err)
	}

	var entries []Entry
	for _, path := range candidates {
		id, err := r.introspect(ctx, path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping compiler candidate")
			continue
		}
		log.Info().Str("path", path).Str("version", id.String()).Msg("found local compiler")
		entries = append(entries, Entry{
			Version: id,
			Source:  Source{Kind: SourceLocal, Path: path},
		})
	}

	log.Info().Int("versions", len(entries)).Str("dir", r.dir).Msg("resolved local compilers")
	return entries, nil
}

// scan collects candidate binary paths in a stable order: the root "solc"
// first, then sorted directory entries.
func (r *LocalResolver) scan() ([]string, error) {
	var candidates []string

	rootSolc := filepath.Join(r.dir, "solc")
	if info, err := os.Stat(rootSolc); err == nil && !info.IsDir() {
		candidates = append(candidates, rootSolc)
	}

	dirEntries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}

	for _, entry := range dirEntries {
		name := entry.Name()
		switch {
		case !entry.IsDir() && strings.HasPrefix(name, "solc"):
			if name == "solc" {
				// Already picked up above.
				continue
			}
			candidates = append(candidates, filepath.Join(r.dir, name))
		case entry.IsDir():
			nested := filepath.Join(r.dir, name, "solc")
			if info, err := os.Stat(nested); err == nil && !info.IsDir() {
				candidates = append(candidates, nested)
			}
		}
	}

	return candidates, nil
}

// introspect runs the candidate with --version and normalizes the first
// "Version:" line of its output.
func (r *LocalResolver) introspect(ctx context.Context, path string) (version.ID, error) {
	// The binary may have been unpacked without the execute bit.
	if err := os.Chmod(path, 0o755); err != nil {
		return "", errors.NewError("introspect", errors.ErrUnreadableBinary).
			WithMessage("chmod: " + err.Error())
	}

	// Inert files (notes, checksum lists) can share the solc name prefix;
	// don't bother executing anything that sniffs as plain text.
	if mt, err := mimetype.DetectFile(path); err == nil && mt.Is("text/plain") {
		return "", errors.NewError("introspect", errors.ErrUnreadableBinary).
			WithMessage("not an executable: " + mt.String())
	}

	execCtx, cancel := context.WithTimeout(ctx, r.execTimeout)
	defer cancel()

	out, err := exec.CommandContext(execCtx, path, "--version").Output()
	if err != nil {
		return "", errors.NewError("introspect", errors.ErrUnreadableBinary).
			WithMessage("exec --version: " + err.Error())
	}

	for _, line := range strings.Split(string(out), "\n") {
		if !strings.Contains(line, "Version:") {
			continue
		}
		_, raw, _ := strings.Cut(line, "Version:")
		return version.Normalize(raw), nil
	}

	return "", errors.NewError("introspect", errors.ErrUnreadableBinary).
		WithMessage("no Version: line in output")
}
