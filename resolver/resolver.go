// Package resolver discovers compiler versions to mirror, either from the
// canonical remote manifest or from a local directory of built binaries.
//
// Both modes produce the same output: an ordered list of entries pairing a
// normalized version identifier with the location of its bytes. Order is not
// semantically significant but is stable across runs so logs stay
// deterministic.
package resolver

import "github.com/solidity-tools/solcsync/version"

// SourceKind distinguishes where a version's bytes come from.
type SourceKind int

const (
	// SourceRemote locates bytes at a relative path under the manifest's
	// base URL.
	SourceRemote SourceKind = iota

	// SourceLocal locates bytes at an absolute path on the local filesystem.
	SourceLocal
)

// String returns a human-readable kind name for logging.
func (k SourceKind) String() string {
	if k == SourceLocal {
		return "local"
	}
	return "remote"
}

// Source locates the bytes of one compiler version. Exactly one kind applies
// per entry in a given sync run.
type Source struct {
	// Kind selects the acquisition strategy.
	Kind SourceKind

	// Path is a relative path under the base URL for remote sources, or an
	// absolute filesystem path for local sources.
	Path string
}

// Entry pairs a normalized version with the source of its bytes.
type Entry struct {
	Version version.ID
	Source  Source
}
