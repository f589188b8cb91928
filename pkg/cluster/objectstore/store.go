package objectstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectInfo is what axon needs to know about a stored object.
type ObjectInfo struct {
	Bucket string
	Key    string
	Size   int64
	ETag   string
}

// URI renders the object location as "s3://bucket/key".
func (o ObjectInfo) URI() string {
	return fmt.Sprintf("s3://%s/%s", o.Bucket, o.Key)
}

// ParseURI splits "s3://bucket/key" into (bucket, key).
func ParseURI(uri string) (string, string, error) {
	rest, found := strings.CutPrefix(uri, "s3://")
	if !found {
		return "", "", fmt.Errorf(`object uri should start with "s3://": %s`, uri)
	}
	bucket, key, found := strings.Cut(rest, "/")
	if !found || bucket == "" || key == "" {
		return "", "", fmt.Errorf("object uri should be s3://BUCKET/KEY: %s", uri)
	}
	return bucket, key, nil
}

// Store is the S3 face of SeaweedFS (:8333).
type Store interface {
	// EnsureBucket creates the bucket unless it exists.
	EnsureBucket(ctx context.Context, bucket string) error

	// Put stores content of length size as bucket/key.
	Put(ctx context.Context, bucket string, key string, content io.Reader, size int64, contentType string) (ObjectInfo, error)

	// Get streams bucket/key to handler.
	Get(ctx context.Context, bucket string, key string, handler func(io.Reader) error) error

	// Stat tells whether bucket/key exists, and its size.
	Stat(ctx context.Context, bucket string, key string) (ObjectInfo, error)

	// Remove deletes bucket/key.
	Remove(ctx context.Context, bucket string, key string) error
}

type store struct {
	mc *minio.Client
}

// New connects to the S3 endpoint ("seaweedfs-s3:8333").
//
// SeaweedFS does not verify regions, but the minio SDK wants
// signature V4 credentials anyway.
func New(endpoint string, accessKey string, secretKey string) (Store, error) {
	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &store{mc: mc}, nil
}

func (s *store) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.mc.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.mc.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
}

func (s *store) Put(ctx context.Context, bucket string, key string, content io.Reader, size int64, contentType string) (ObjectInfo, error) {
	info, err := s.mc.PutObject(ctx, bucket, key, content, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Bucket: info.Bucket, Key: info.Key, Size: info.Size, ETag: info.ETag,
	}, nil
}

func (s *store) Get(ctx context.Context, bucket string, key string, handler func(io.Reader) error) error {
	obj, err := s.mc.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return err
	}
	defer obj.Close()

	return handler(obj)
}

func (s *store) Stat(ctx context.Context, bucket string, key string) (ObjectInfo, error) {
	info, err := s.mc.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Bucket: bucket, Key: key, Size: info.Size, ETag: info.ETag,
	}, nil
}

func (s *store) Remove(ctx context.Context, bucket string, key string) error {
	return s.mc.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{})
}
