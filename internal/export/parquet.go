package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	parquet "github.com/parquet-go/parquet-go"
)

// WriteParquet writes rows as one Snappy-compressed parquet file.
func WriteParquet[T any](w io.Writer, rows []T) error {
	pw := parquet.NewWriter(w, parquet.SchemaOf(new(T)), parquet.Compression(&parquet.Snappy))
	for _, r := range rows {
		if err := pw.Write(r); err != nil {
			_ = pw.Close()
			return err
		}
	}
	return pw.Close()
}

// PutObjectAPI is the part of the S3 client used for uploads.
type PutObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type Uploader struct {
	Client PutObjectAPI
	Bucket string
	Prefix string
	// Now stamps part file names; defaults to time.Now.
	Now func() time.Time
}

func (u *Uploader) Put(ctx context.Context, key string, body []byte) error {
	_, err := u.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.Bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", u.Bucket, key, err)
	}
	return nil
}

func (u *Uploader) stamp() string {
	now := time.Now
	if u.Now != nil {
		now = u.Now
	}
	return now().UTC().Format("20060102T150405Z")
}

// Location is the dataset's root, as registered with Athena.
func (u *Uploader) Location(dataset string) string {
	return fmt.Sprintf("s3://%s/%s/", u.Bucket, path.Join(strings.Trim(u.Prefix, "/"), dataset))
}

// PartKey is <prefix>/<dataset>/subset=<s>/group_key=<k>/part-<stamp>.parquet.
func (u *Uploader) PartKey(dataset, subset, groupKey string) string {
	return path.Join(strings.Trim(u.Prefix, "/"), dataset,
		"subset="+subset, "group_key="+groupKey, "part-"+u.stamp()+".parquet")
}

// Dataset encodes rows and uploads them as one partition part. Nothing is
// written for an empty slice.
func Dataset[T any](ctx context.Context, u *Uploader, dataset, subset, groupKey string, rows []T) (string, error) {
	if len(rows) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := WriteParquet(&buf, rows); err != nil {
		return "", fmt.Errorf("encode %s: %w", dataset, err)
	}
	key := u.PartKey(dataset, subset, groupKey)
	if err := u.Put(ctx, key, buf.Bytes()); err != nil {
		return "", err
	}
	return key, nil
}
