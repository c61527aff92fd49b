package store

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/solidity-tools/solcsync/errors"
)

// DefaultContentType is the content type used when none is specified.
const DefaultContentType = "application/octet-stream"

// Put uploads byte data to the given bucket and key.
// This is intended for objects that fit in memory; compiler binaries and
// their hash sidecars both qualify.
//
// Errors:
//   - ErrInvalidInput: If bucket or key is empty
//   - Network errors or AWS SDK errors wrapped in Error type
func (s *Store) Put(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	if bucket == "" {
		return errors.NewError("put", errors.ErrInvalidInput).
			WithKey(key).
			WithMessage("bucket name cannot be empty")
	}
	if key == "" {
		return errors.NewError("put", errors.ErrInvalidInput).
			WithMessage("object key cannot be empty")
	}
	if contentType == "" {
		contentType = DefaultContentType
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return errors.NewError("put", err).WithKey(key)
	}
	return nil
}

// Get downloads an entire object and returns it as a byte slice.
//
// Errors:
//   - ErrInvalidInput: If bucket or key is empty
//   - ErrObjectNotFound: If the object doesn't exist
//   - Network errors or AWS SDK errors wrapped in Error type
func (s *Store) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	if bucket == "" {
		return nil, errors.NewError("get", errors.ErrInvalidInput).
			WithKey(key).
			WithMessage("bucket name cannot be empty")
	}
	if key == "" {
		return nil, errors.NewError("get", errors.ErrInvalidInput).
			WithMessage("object key cannot be empty")
	}

	input := &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	out, err := s.client.GetObject(ctx, input)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NewError("get", errors.ErrObjectNotFound).WithKey(key)
		}
		return nil, errors.NewError("get", err).WithKey(key)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.NewError("get", err).WithKey(key)
	}
	return data, nil
}

// Exists checks if an object exists using a HEAD request.
//
// The result distinguishes confirmed absence from probe failure: a "not
// found" response returns (false, nil), while any other failure (network,
// auth, throttling) returns a non-nil error. Callers must not treat a probe
// error as absence, or an already-published object could be overwritten.
func (s *Store) Exists(ctx context.Context, bucket, key string) (bool, error) {
	if bucket == "" {
		return false, errors.NewError("exists", errors.ErrInvalidInput).
			WithKey(key).
			WithMessage("bucket name cannot be empty")
	}
	if key == "" {
		return false, errors.NewError("exists", errors.ErrInvalidInput).
			WithMessage("object key cannot be empty")
	}

	input := &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	if _, err := s.client.HeadObject(ctx, input); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, errors.NewError("exists", err).WithKey(key)
	}
	return true, nil
}

// Delete deletes a single object. Deleting a non-existent object is not an
// error.
func (s *Store) Delete(ctx context.Context, bucket, key string) error {
	if bucket == "" {
		return errors.NewError("delete", errors.ErrInvalidInput).
			WithKey(key).
			WithMessage("bucket name cannot be empty")
	}
	if key == "" {
		return errors.NewError("delete", errors.ErrInvalidInput).
			WithMessage("object key cannot be empty")
	}

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}

	if _, err := s.client.DeleteObject(ctx, input); err != nil {
		return errors.NewError("delete", err).WithKey(key)
	}
	return nil
}

// ListKeys lists object keys under the given prefix, following pagination
// until the listing is exhausted.
func (s *Store) ListKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	if bucket == "" {
		return nil, errors.NewError("list", errors.ErrInvalidInput).
			WithMessage("bucket name cannot be empty")
	}

	var keys []string
	var continuationToken *string

	for {
		input := &s3.ListObjectsV2Input{
			Bucket:            aws.String(bucket),
			Prefix:            aws.String(prefix),
			MaxKeys:           aws.Int32(1000),
			ContinuationToken: continuationToken,
		}

		out, err := s.client.ListObjectsV2(ctx, input)
		if err != nil {
			return nil, errors.NewError("list", err)
		}

		for _, obj := range out.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}

		if !aws.ToBool(out.IsTruncated) {
			return keys, nil
		}
		continuationToken = out.NextContinuationToken
	}
}

// isNotFound reports whether an S3 error indicates a missing object.
func isNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "NotFound") || strings.Contains(msg, "NoSuchKey")
}
