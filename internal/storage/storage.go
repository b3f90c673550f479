package storage

import (
	"context"
	"io"

	"medicore-be/internal/logger"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Bucket drivers selected by URL scheme (file:///var/medicore, mem://).
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

var ErrObjectNotFound = errors.New("stored object not found")

// FileStore keeps uploaded documents in a blob bucket.
type FileStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) error
	Close() error
}

type bucketStore struct {
	bucket *blob.Bucket
}

// Open resolves a bucket URL such as "file:///srv/uploads" or "mem://".
func Open(ctx context.Context, url string) (FileStore, error) {
	b, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %q", url)
	}
	logger.FromCtx(ctx).Info("upload bucket opened", zap.String("url", url))
	return &bucketStore{bucket: b}, nil
}

// NewFromBucket wraps an already opened bucket.
func NewFromBucket(b *blob.Bucket) FileStore {
	return &bucketStore{bucket: b}
}

func (s *bucketStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		logger.FromCtx(ctx).Error("failed to write object",
			zap.String("layer", "storage"),
			zap.String("key", key),
			zap.Error(err),
		)
		return errors.Wrap(err, "write object")
	}
	return nil
}

func (s *bucketStore) Get(ctx context.Context, key string) ([]byte, string, error) {
	attrs, err := s.bucket.Attributes(ctx, key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil, "", ErrObjectNotFound
	}
	if err != nil {
		return nil, "", errors.Wrap(err, "read attributes")
	}

	r, err := s.bucket.NewReader(ctx, key, nil)
	if err != nil {
		return nil, "", errors.Wrap(err, "open reader")
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", errors.Wrap(err, "read object")
	}
	return data, attrs.ContentType, nil
}

func (s *bucketStore) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "delete object")
	}
	return nil
}

func (s *bucketStore) Close() error {
	return s.bucket.Close()
}
