// Package version defines the canonical compiler version identifier and the
// normalization rules that map manifest entries and solc self-reported
// version strings onto it.
package version

import "strings"

// ID is a normalized compiler version identifier.
//
// The canonical form is "v<major>.<minor>.<patch>", optionally suffixed with
// "+commit.<hash>" where the hash is the 8-hex-digit commit identifier. An ID
// is derived deterministically from its input and never mutated afterwards.
type ID string

// String returns the canonical string form.
func (id ID) String() string {
	return string(id)
}

// BinaryKey returns the object store key of the compiler binary for this
// version. Consumers of the bucket rely on this layout.
func (id ID) BinaryKey() string {
	return string(id) + "/solc"
}

// HashKey returns the object store key of the SHA-256 sidecar for this
// version.
func (id ID) HashKey() string {
	return string(id) + "/sha256.hash"
}

// Normalize derives an ID from a raw solc self-reported version string, e.g.
// "0.8.29-develop.2025.9.18+commit.d4b8c7ae.Darwin.appleclang".
//
// For commit-bearing strings the prerelease suffix of the main segment and
// the platform/toolchain tags of the commit segment are discarded, keeping
// only the numeric triple and the commit hash. Strings without a commit
// segment keep everything up to the first "-".
func Normalize(raw string) ID {
	raw = strings.TrimSpace(raw)

	if main, commit, ok := strings.Cut(raw, "+commit."); ok {
		if prefix, _, dashed := strings.Cut(main, "-"); dashed {
			main = prefix
		}
		// Commit segment carries trailing platform tags
		// (e.g. "d4b8c7ae.Darwin.appleclang"); the hash is the first field.
		hash, _, _ := strings.Cut(commit, ".")
		return ID("v" + main + "+commit." + hash)
	}

	if prefix, _, dashed := strings.Cut(raw, "-"); dashed {
		return ID("v" + prefix)
	}
	return ID("v" + raw)
}

// FromLongVersion derives an ID from a manifest build descriptor's
// longVersion field, e.g. "0.8.30+commit.73712a01".
func FromLongVersion(longVersion string) ID {
	return ID("v" + strings.TrimSpace(longVersion))
}

// FromLabel derives an ID from a manifest release label, e.g. "0.8.30".
func FromLabel(label string) ID {
	return ID("v" + strings.TrimSpace(label))
}
