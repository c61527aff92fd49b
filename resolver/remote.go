package resolver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/solidity-tools/solcsync/errors"
	"github.com/solidity-tools/solcsync/internal/logging"
	"github.com/solidity-tools/solcsync/version"
)

// DefaultBaseURL is the canonical location of Linux solc release builds.
const DefaultBaseURL = "https://solc-bin.ethereum.org/linux-amd64"

// manifestTimeout bounds the manifest fetch; artifact downloads have their
// own, much larger timeout in the syncer.
const manifestTimeout = 30 * time.Second

// manifest models the two recognized shapes of the version list document:
// a list of build descriptors, or a flat mapping of release label to path.
type manifest struct {
	Builds   []manifestBuild   `json:"builds"`
	Releases map[string]string `json:"releases"`
}

type manifestBuild struct {
	LongVersion string `json:"longVersion"`
	Path        string `json:"path"`
}

// RemoteResolver resolves versions from the remote manifest.
type RemoteResolver struct {
	baseURL string
	client  *http.Client
}

// NewRemoteResolver creates a resolver fetching `<baseURL>/list.json`.
// An empty baseURL selects DefaultBaseURL.
func NewRemoteResolver(baseURL string) *RemoteResolver {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &RemoteResolver{
		baseURL: baseURL,
		client:  &http.Client{Timeout: manifestTimeout},
	}
}

// BaseURL returns the manifest base URL; artifact paths are relative to it.
func (r *RemoteResolver) BaseURL() string {
	return r.baseURL
}

// Resolve fetches and parses the manifest, returning one entry per build.
// Build-descriptor manifests keep manifest order; label-mapping manifests are
// sorted by label so the output is stable. Any fetch or parse failure is
// fatal for the run and reported as ErrManifestUnavailable.
func (r *RemoteResolver) Resolve(ctx context.Context) ([]Entry, error) {
	log := logging.GetLogger("resolver")
	url := r.baseURL + "/list.json"
	log.Debug().Str("url", url).Msg("fetching version manifest")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewError("resolve", errors.ErrManifestUnavailable).WithMessage(err.Error())
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errors.NewError("resolve", errors.ErrManifestUnavailable).WithMessage(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewError("resolve", errors.ErrManifestUnavailable).
			WithMessage(fmt.Sprintf("unexpected status %d fetching %s", resp.StatusCode, url))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewError("resolve", errors.ErrManifestUnavailable).WithMessage(err.Error())
	}

	var m manifest
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, errors.NewError("resolve", errors.ErrManifestUnavailable).
			WithMessage("parsing manifest: " + err.Error())
	}

	entries := entriesFromManifest(&m)
	if entries == nil {
		return nil, errors.NewError("resolve", errors.ErrManifestUnavailable).
			WithMessage("manifest has neither builds nor releases")
	}

	log.Info().Int("versions", len(entries)).Msg("resolved remote version list")
	return entries, nil
}

func entriesFromManifest(m *manifest) []Entry {
	if len(m.Builds) > 0 {
		entries := make([]Entry, 0, len(m.Builds))
		for _, b := range m.Builds {
			entries = append(entries, Entry{
				Version: version.FromLongVersion(b.LongVersion),
				Source:  Source{Kind: SourceRemote, Path: b.Path},
			})
		}
		return entries
	}

	if len(m.Releases) > 0 {
		labels := make([]string, 0, len(m.Releases))
		for label := range m.Releases {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		entries := make([]Entry, 0, len(labels))
		for _, label := range labels {
			entries = append(entries, Entry{
				Version: version.FromLabel(label),
				Source:  Source{Kind: SourceRemote, Path: m.Releases[label]},
			})
		}
		return entries
	}

	return nil
}
