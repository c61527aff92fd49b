package resolver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/solidity-tools/solcsync/errors"
	"github.com/solidity-tools/solcsync/version"
)

// writeFakeSolc writes a shell script that reports the given raw version
// string the way solc does. The execute bit is deliberately left unset; the
// resolver is responsible for granting it.
func writeFakeSolc(t *testing.T, path, rawVersion string) {
	t.Helper()
	script := "#!/bin/sh\n" +
		"echo \"solc, the solidity compiler commandline interface\"\n" +
		"echo \"Version: " + rawVersion + "\"\n"
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(script), 0o644))
}

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o644))
}

func TestLocalResolver_Scan(t *testing.T) {
	dir := t.TempDir()
	writeFakeSolc(t, filepath.Join(dir, "solc"), "0.8.30+commit.73712a01")
	writeFakeSolc(t, filepath.Join(dir, "solc-0.8.29"), "0.8.29-develop.2025.9.18+commit.d4b8c7ae.Darwin.appleclang")
	writeFakeSolc(t, filepath.Join(dir, "nested", "solc"), "0.8.21+commit.d9974bed.Linux.g++")

	// Non-candidates: wrong name, too deep.
	writeFakeSolc(t, filepath.Join(dir, "clang"), "0.1.0")
	writeFakeSolc(t, filepath.Join(dir, "nested", "deeper", "solc"), "0.2.0")

	entries, err := NewLocalResolver(dir).Resolve(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Root solc first, then sorted directory entries.
	assert.Equal(t, version.ID("v0.8.30+commit.73712a01"), entries[0].Version)
	assert.Equal(t, filepath.Join(dir, "solc"), entries[0].Source.Path)
	assert.Equal(t, SourceLocal, entries[0].Source.Kind)
	assert.Equal(t, version.ID("v0.8.21+commit.d9974bed"), entries[1].Version)
	assert.Equal(t, filepath.Join(dir, "nested", "solc"), entries[1].Source.Path)
	assert.Equal(t, version.ID("v0.8.29+commit.d4b8c7ae"), entries[2].Version)
}

func TestLocalResolver_MissingDirectory(t *testing.T) {
	_, err := NewLocalResolver("/does/not/exist").Resolve(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrLocalDirMissing)
}

func TestLocalResolver_SkipsUnreadableCandidates(t *testing.T) {
	dir := t.TempDir()
	writeFakeSolc(t, filepath.Join(dir, "solc"), "0.8.30+commit.73712a01")

	// Exits non-zero.
	writeScript(t, filepath.Join(dir, "solc-broken"), "exit 1\n")
	// Produces output without a Version: line.
	writeScript(t, filepath.Join(dir, "solc-silent"), "echo no version here\n")
	// Plain text that shares the name prefix; skipped without executing.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "solc-notes"), []byte("build notes, nothing else\n"), 0o644))

	entries, err := NewLocalResolver(dir).Resolve(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, version.ID("v0.8.30+commit.73712a01"), entries[0].Version)
}

func TestLocalResolver_ExecTimeout(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, filepath.Join(dir, "solc"), "sleep 5\n")
	writeFakeSolc(t, filepath.Join(dir, "solc-ok"), "0.8.19+commit.7dd6d404")

	start := time.Now()
	entries, err := NewLocalResolver(dir, WithExecTimeout(200*time.Millisecond)).Resolve(context.Background())
	require.NoError(t, err)

	// The hung candidate is skipped, not waited out.
	require.Len(t, entries, 1)
	assert.Equal(t, version.ID("v0.8.19+commit.7dd6d404"), entries[0].Version)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestLocalResolver_GrantsExecutePermission(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "solc")
	writeFakeSolc(t, path, "0.8.30+commit.73712a01")

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Zero(t, info.Mode()&0o111, "fixture must start without the execute bit")

	entries, err := NewLocalResolver(dir).Resolve(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)

	info, err = os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o111)
}

func TestLocalResolver_EmptyDirectory(t *testing.T) {
	entries, err := NewLocalResolver(t.TempDir()).Resolve(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
