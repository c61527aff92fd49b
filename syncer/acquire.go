package syncer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/solidity-tools/solcsync/errors"
	"github.com/solidity-tools/solcsync/resolver"
)

// artifact holds one acquired compiler binary and its digest. Artifacts live
// for the duration of a single task and are never cached across runs.
type artifact struct {
	data   []byte
	digest string
}

// acquire obtains the raw bytes for a task and computes their SHA-256
// digest. The strategy follows the source kind: network fetch for remote
// entries, full file read for local ones.
func (s *Syncer) acquire(ctx context.Context, task Task) (*artifact, error) {
	var data []byte
	var err error

	switch task.Source.Kind {
	case resolver.SourceLocal:
		data, err = s.readLocal(task)
	default:
		data, err = s.download(ctx, task)
	}
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	art := &artifact{
		data:   data,
		digest: hex.EncodeToString(sum[:]),
	}

	s.log.Debug().
		Str("version", task.Version.String()).
		Int("bytes", len(data)).
		Str("sha256", art.digest[:16]).
		Msg("acquired artifact")
	return art, nil
}

func (s *Syncer) download(ctx context.Context, task Task) ([]byte, error) {
	url := s.cfg.BaseURL + "/" + task.Source.Path
	s.log.Info().Str("version", task.Version.String()).Str("url", url).Msg("downloading compiler")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewVersionError("acquire", task.Version.String(), errors.ErrDownloadFailed).
			WithMessage(err.Error())
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.NewVersionError("acquire", task.Version.String(), errors.ErrDownloadFailed).
			WithMessage(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewVersionError("acquire", task.Version.String(), errors.ErrDownloadFailed).
			WithMessage(fmt.Sprintf("unexpected status %d fetching %s", resp.StatusCode, url))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewVersionError("acquire", task.Version.String(), errors.ErrDownloadFailed).
			WithMessage(err.Error())
	}
	return data, nil
}

func (s *Syncer) readLocal(task Task) ([]byte, error) {
	s.log.Info().Str("version", task.Version.String()).Str("path", task.Source.Path).Msg("reading local compiler")

	data, err := os.ReadFile(task.Source.Path)
	if err != nil {
		return nil, errors.NewVersionError("acquire", task.Version.String(), errors.ErrLocalFileMissing).
			WithMessage(err.Error())
	}
	return data, nil
}
