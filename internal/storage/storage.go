// Package storage lists image folders of an S3-compatible bucket and turns
// object keys into URLs the site can fetch.
package storage

import (
	"context"
	"net/url"
	"strings"
	"time"
)

// Object is one entry of a non-recursive folder listing.
type Object struct {
	// Name is relative to the listed folder.
	Name string
	// ID identifies a stored file; it is empty for sub-folders.
	ID           string
	Size         int64
	LastModified time.Time
}

// IsFolder reports whether the entry is a sub-folder rather than a file.
func (o Object) IsFolder() bool {
	return o.ID == ""
}

// Bucket is the object-storage backend the catalog is built from.
type Bucket interface {
	// List returns at most limit entries directly under folder.
	List(ctx context.Context, folder string, limit int) ([]Object, error)
	// PublicURL returns a URL from which path can be fetched.
	PublicURL(ctx context.Context, path string) (string, error)
}

// PublicObjectURL builds "<base>/<bucket>/<path>" with every path segment
// escaped, the layout of public buckets behind a storage gateway.
func PublicObjectURL(base, bucket, path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(bucket) + "/" + strings.Join(segments, "/")
}

func folderPrefix(folder string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return ""
	}
	return folder + "/"
}
