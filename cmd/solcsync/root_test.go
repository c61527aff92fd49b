package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()
	assert.Equal(t, "solcsync", cmd.Use)

	syncCmd, _, err := cmd.Find([]string{"sync"})
	require.NoError(t, err)
	assert.Equal(t, "sync", syncCmd.Use)

	for _, flag := range []string{"bucket", "base-url", "local-dir", "workers", "limit", "dry-run"} {
		assert.NotNil(t, syncCmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestRootCmd_Help(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "sha256.hash")
}
