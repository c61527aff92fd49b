package syncer

import (
	"context"

	"github.com/solidity-tools/solcsync/errors"
	"github.com/solidity-tools/solcsync/version"
)

// Content types of the published object pair.
const (
	binaryContentType = "application/octet-stream"
	hashContentType   = "text/plain"
)

// publish writes the artifact pair under the version's namespace.
//
// The hash sidecar goes first: the existence guard keys off the binary, so a
// failure after the first write leaves an orphaned sidecar that a later run
// will overwrite, never a binary the guard would wrongly treat as published.
func (s *Syncer) publish(ctx context.Context, id version.ID, art *artifact) error {
	if err := s.store.Put(ctx, s.cfg.Bucket, id.HashKey(), []byte(art.digest), hashContentType); err != nil {
		return errors.NewVersionError("publish", id.String(), errors.ErrPublishFailed).
			WithKey(id.HashKey()).
			WithMessage(err.Error())
	}

	if err := s.store.Put(ctx, s.cfg.Bucket, id.BinaryKey(), art.data, binaryContentType); err != nil {
		return errors.NewVersionError("publish", id.String(), errors.ErrPublishFailed).
			WithKey(id.BinaryKey()).
			WithMessage(err.Error())
	}

	return nil
}
