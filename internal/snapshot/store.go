// Package snapshot caches the yearly combine pages so a rerun never hits the
// site twice for the same year.
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrNotCached is returned by Get when no snapshot exists for the year.
var ErrNotCached = errors.New("snapshot not cached")

// Store holds raw page bodies keyed by combine year.
type Store interface {
	Get(ctx context.Context, year int) ([]byte, error)
	Put(ctx context.Context, year int, body []byte) error
}

// FileName is the cache name of one year's page.
func FileName(year int) string { return fmt.Sprintf("%d-combine.htm", year) }

// DirStore keeps snapshots as plain files in one directory.
type DirStore struct {
	Dir string
}

func (d DirStore) Get(_ context.Context, year int) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(d.Dir, FileName(year)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotCached
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %d: %w", year, err)
	}
	return b, nil
}

func (d DirStore) Put(_ context.Context, year int, body []byte) error {
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp := filepath.Join(d.Dir, "."+FileName(year)+".tmp")
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return fmt.Errorf("write snapshot %d: %w", year, err)
	}
	return os.Rename(tmp, filepath.Join(d.Dir, FileName(year)))
}

// S3API is the subset of the S3 client the store needs.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps snapshots as objects under Prefix.
type S3Store struct {
	Client S3API
	Bucket string
	Prefix string
}

func (s S3Store) key(year int) string {
	p := strings.Trim(s.Prefix, "/")
	if p == "" {
		return FileName(year)
	}
	return path.Join(p, FileName(year))
}

func (s S3Store) Get(ctx context.Context, year int) ([]byte, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.key(year)),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotCached
		}
		return nil, fmt.Errorf("get s3://%s/%s: %w", s.Bucket, s.key(year), err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s S3Store) Put(ctx context.Context, year int, body []byte) error {
	_, err := s.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(s.key(year)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("text/html"),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", s.Bucket, s.key(year), err)
	}
	return nil
}
