package testutil

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/solidity-tools/solcsync/internal/s3api"
)

// FakeBucket is an in-memory S3API implementation backed by a map. It is safe
// for concurrent use and supports per-key failure injection, which makes it
// suitable for exercising the sync engine end to end without a real bucket.
type FakeBucket struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string

	// HeadErrs and PutErrs inject failures for specific keys. A HeadErr is
	// returned as-is, so use an error without "NotFound" in its text to
	// simulate a probe failure rather than absence.
	HeadErrs map[string]error
	PutErrs  map[string]error
}

// NewFakeBucket creates an empty FakeBucket.
func NewFakeBucket() *FakeBucket {
	return &FakeBucket{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
		HeadErrs:     make(map[string]error),
		PutErrs:      make(map[string]error),
	}
}

// Object returns the stored bytes for a key and whether it exists.
func (f *FakeBucket) Object(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[key]
	return data, ok
}

// ContentType returns the content type recorded for a key.
func (f *FakeBucket) ContentType(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.contentTypes[key]
}

// Keys returns all stored keys in sorted order.
func (f *FakeBucket) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.objects))
	for k := range f.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Seed stores an object directly, bypassing failure injection.
func (f *FakeBucket) Seed(key string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
}

// PutObject stores the object body in memory.
func (f *FakeBucket) PutObject(
	_ context.Context,
	params *s3.PutObjectInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	key := aws.ToString(params.Key)

	f.mu.Lock()
	injected := f.PutErrs[key]
	f.mu.Unlock()
	if injected != nil {
		return nil, injected
	}

	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = data
	f.contentTypes[key] = aws.ToString(params.ContentType)
	return &s3.PutObjectOutput{ETag: aws.String("fake-etag")}, nil
}

// GetObject returns the stored object body.
func (f *FakeBucket) GetObject(
	_ context.Context,
	params *s3.GetObjectInput,
	_ ...func(*s3.Options),
) (*s3.GetObjectOutput, error) {
	key := aws.ToString(params.Key)

	f.mu.Lock()
	data, ok := f.objects[key]
	f.mu.Unlock()
	if !ok {
		return nil, &types.NoSuchKey{}
	}

	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
	}, nil
}

// HeadObject reports object presence, honoring injected probe failures.
func (f *FakeBucket) HeadObject(
	_ context.Context,
	params *s3.HeadObjectInput,
	_ ...func(*s3.Options),
) (*s3.HeadObjectOutput, error) {
	key := aws.ToString(params.Key)

	f.mu.Lock()
	injected := f.HeadErrs[key]
	_, ok := f.objects[key]
	f.mu.Unlock()

	if injected != nil {
		return nil, injected
	}
	if !ok {
		return nil, errors.New("operation error S3: HeadObject, https response error StatusCode: 404, NotFound")
	}
	return &s3.HeadObjectOutput{}, nil
}

// DeleteObject removes the object if present.
func (f *FakeBucket) DeleteObject(
	_ context.Context,
	params *s3.DeleteObjectInput,
	_ ...func(*s3.Options),
) (*s3.DeleteObjectOutput, error) {
	key := aws.ToString(params.Key)

	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	delete(f.contentTypes, key)
	return &s3.DeleteObjectOutput{}, nil
}

// ListObjectsV2 lists stored keys matching the prefix in a single page.
func (f *FakeBucket) ListObjectsV2(
	_ context.Context,
	params *s3.ListObjectsV2Input,
	_ ...func(*s3.Options),
) (*s3.ListObjectsV2Output, error) {
	prefix := aws.ToString(params.Prefix)

	f.mu.Lock()
	defer f.mu.Unlock()

	var contents []types.Object
	for key, data := range f.objects {
		if strings.HasPrefix(key, prefix) {
			contents = append(contents, types.Object{
				Key:  aws.String(key),
				Size: aws.Int64(int64(len(data))),
			})
		}
	}
	sort.Slice(contents, func(i, j int) bool {
		return aws.ToString(contents[i].Key) < aws.ToString(contents[j].Key)
	})

	return &s3.ListObjectsV2Output{
		Contents:    contents,
		IsTruncated: aws.Bool(false),
	}, nil
}

// Verify the fake satisfies the interface it stands in for.
var _ s3api.S3API = (*FakeBucket)(nil)
