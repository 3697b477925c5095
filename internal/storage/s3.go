// Package storage reads pipeline output objects from S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ErrKeyNotFound reports that the requested object does not exist.
var ErrKeyNotFound = errors.New("object key not found")

// S3API is the subset of the S3 client the reader needs.
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Reader lists and fetches objects from a bucket.
type Reader struct {
	client S3API
}

// NewReader creates a reader using the default AWS credential chain.
func NewReader(ctx context.Context) (*Reader, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &Reader{client: s3.NewFromConfig(cfg)}, nil
}

// NewReaderWithClient creates a reader over an existing client.
func NewReaderWithClient(client S3API) *Reader {
	return &Reader{client: client}
}

// ListKeys returns all object keys under prefix, excluding the prefix marker
// itself. The prefix is normalized to end with a slash so sibling prefixes
// sharing the same leading characters are not swept in.
func (r *Reader) ListKeys(ctx context.Context, bucket, prefix string) ([]string, error) {
	prefix = strings.TrimRight(prefix, "/") + "/"

	var keys []string
	paginator := s3.NewListObjectsV2Paginator(r.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects in s3://%s/%s: %w", bucket, prefix, err)
		}
		for _, obj := range page.Contents {
			if key := aws.ToString(obj.Key); key != prefix {
				keys = append(keys, key)
			}
		}
	}
	return keys, nil
}

// ReadObject fetches the full contents of one object. A missing key yields
// ErrKeyNotFound.
func (r *Reader) ReadObject(ctx context.Context, bucket, key string) ([]byte, error) {
	out, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noSuchKey *types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, fmt.Errorf("s3://%s/%s: %w", bucket, key, ErrKeyNotFound)
		}
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3://%s/%s: %w", bucket, key, err)
	}
	return data, nil
}
