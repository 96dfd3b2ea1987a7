package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/murillocortez/olhar-autoral/internal/common"
)

// ClientMinio is the part of *minio.Client used by MinioBucket.
type ClientMinio interface {
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	PresignedGetObject(ctx context.Context, bucketName, objectName string, expires time.Duration, reqParams url.Values) (*url.URL, error)
}

// MinioBucket is a Bucket backed by minio-go.
type MinioBucket struct {
	client ClientMinio
	cfg    S3Config
}

// NewMinioBucket connects to cfg.Endpoint, which may be given either as a
// bare host:port or as a URL; an https scheme switches TLS on.
func NewMinioBucket(c S3Config) (*MinioBucket, error) {
	host, secure := endpointHost(c.Endpoint)

	client, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: secure,
		Region: c.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &MinioBucket{client: client, cfg: c}, nil
}

func (b *MinioBucket) List(ctx context.Context, folder string, limit int) ([]Object, error) {
	// stops the listing goroutine once we have enough entries
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	prefix := folderPrefix(folder)
	objectCh := b.client.ListObjects(ctx, b.cfg.Bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
		MaxKeys:   limit,
	})

	var objects []Object
	for info := range objectCh {
		if info.Err != nil {
			return nil, fmt.Errorf("%w: list %q: %w", common.ErrStorage, folder, info.Err)
		}
		if limit > 0 && len(objects) >= limit {
			break
		}
		if info.Key == prefix {
			continue
		}

		name := strings.TrimPrefix(info.Key, prefix)
		if strings.HasSuffix(name, "/") {
			objects = append(objects, Object{Name: strings.TrimSuffix(name, "/")})
			continue
		}

		id := info.ETag
		if id == "" {
			id = info.Key
		}
		objects = append(objects, Object{
			Name:         name,
			ID:           id,
			Size:         info.Size,
			LastModified: info.LastModified,
		})
	}
	return objects, nil
}

func (b *MinioBucket) PublicURL(ctx context.Context, path string) (string, error) {
	if b.cfg.PublicBaseURL != "" {
		return PublicObjectURL(b.cfg.PublicBaseURL, b.cfg.Bucket, path), nil
	}

	u, err := b.client.PresignedGetObject(ctx, b.cfg.Bucket, path, b.cfg.PresignExpiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("%w: presign %q: %w", common.ErrStorage, path, err)
	}
	return u.String(), nil
}

func endpointHost(endpoint string) (string, bool) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return strings.TrimRight(endpoint, "/"), false
	}
	return u.Host, u.Scheme == "https"
}
