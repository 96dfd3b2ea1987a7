package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/murillocortez/olhar-autoral/internal/common"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}
)

type s3Lister interface {
	ListObjectsV2(ctx context.Context, in *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

type s3Presigner interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// S3Config configures an S3Bucket.
type S3Config struct {
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicBaseURL, when set, makes PublicURL return plain public links
	// instead of presigned ones.
	PublicBaseURL string
	PresignExpiry time.Duration
}

// S3Bucket is a Bucket backed by aws-sdk-go-v2. It works against AWS and any
// S3-compatible endpoint (MinIO, Supabase storage).
type S3Bucket struct {
	client  s3Lister
	presign s3Presigner
	cfg     S3Config
}

func NewS3Bucket(ctx context.Context, c S3Config) (*S3Bucket, error) {
	awsCfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(c.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(c.AccessKey, c.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		if c.Endpoint != "" {
			o.BaseEndpoint = aws.String(c.Endpoint)
		}
		o.UsePathStyle = true
	})

	return &S3Bucket{client: client, presign: newS3PresignClient(client), cfg: c}, nil
}

func (b *S3Bucket) List(ctx context.Context, folder string, limit int) ([]Object, error) {
	prefix := folderPrefix(folder)

	in := &s3.ListObjectsV2Input{
		Bucket:    aws.String(b.cfg.Bucket),
		Prefix:    aws.String(prefix),
		Delimiter: aws.String("/"),
	}
	if limit > 0 {
		in.MaxKeys = aws.Int32(int32(limit))
	}

	out, err := b.client.ListObjectsV2(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("%w: list %q: %w", common.ErrStorage, folder, err)
	}

	objects := make([]Object, 0, len(out.CommonPrefixes)+len(out.Contents))
	for _, p := range out.CommonPrefixes {
		name := strings.TrimSuffix(strings.TrimPrefix(aws.ToString(p.Prefix), prefix), "/")
		objects = append(objects, Object{Name: name})
	}
	for _, o := range out.Contents {
		key := aws.ToString(o.Key)
		if key == prefix {
			// folder placeholder object
			continue
		}
		id := strings.Trim(aws.ToString(o.ETag), `"`)
		if id == "" {
			id = key
		}
		objects = append(objects, Object{
			Name:         strings.TrimPrefix(key, prefix),
			ID:           id,
			Size:         aws.ToInt64(o.Size),
			LastModified: aws.ToTime(o.LastModified),
		})
	}

	if limit > 0 && len(objects) > limit {
		objects = objects[:limit]
	}
	return objects, nil
}

func (b *S3Bucket) PublicURL(ctx context.Context, path string) (string, error) {
	if b.cfg.PublicBaseURL != "" {
		return PublicObjectURL(b.cfg.PublicBaseURL, b.cfg.Bucket, path), nil
	}

	req, err := b.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.cfg.Bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(b.cfg.PresignExpiry))
	if err != nil {
		return "", fmt.Errorf("%w: presign %q: %w", common.ErrStorage, path, err)
	}
	return req.URL, nil
}
