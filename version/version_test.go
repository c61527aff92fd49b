package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ID
	}{
		{
			name: "full develop build with platform tags",
			raw:  "0.8.29-develop.2025.9.18+commit.d4b8c7ae.Darwin.appleclang",
			want: "v0.8.29+commit.d4b8c7ae",
		},
		{
			name: "release build with commit",
			raw:  "0.8.30+commit.73712a01",
			want: "v0.8.30+commit.73712a01",
		},
		{
			name: "commit with linux toolchain tags",
			raw:  "0.8.21+commit.d9974bed.Linux.g++",
			want: "v0.8.21+commit.d9974bed",
		},
		{
			name: "prerelease without commit",
			raw:  "0.8.30-nightly",
			want: "v0.8.30",
		},
		{
			name: "plain triple",
			raw:  "0.8.30",
			want: "v0.8.30",
		},
		{
			name: "surrounding whitespace",
			raw:  "  0.8.19+commit.7dd6d404  ",
			want: "v0.8.19+commit.7dd6d404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	raw := "0.8.29-develop.2025.9.18+commit.d4b8c7ae.Darwin.appleclang"
	first := Normalize(raw)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Normalize(raw))
	}
}

func TestFromLongVersion(t *testing.T) {
	assert.Equal(t, ID("v0.8.30+commit.73712a01"), FromLongVersion("0.8.30+commit.73712a01"))
}

func TestFromLabel(t *testing.T) {
	assert.Equal(t, ID("v0.8.30"), FromLabel("0.8.30"))
}

func TestID_Keys(t *testing.T) {
	id := ID("v0.8.30+commit.73712a01")
	assert.Equal(t, "v0.8.30+commit.73712a01/solc", id.BinaryKey())
	assert.Equal(t, "v0.8.30+commit.73712a01/sha256.hash", id.HashKey())
}
