package catalog

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/murillocortez/olhar-autoral/internal/logging"
	"github.com/murillocortez/olhar-autoral/internal/storage"
)

// DefaultFolders are the bucket folders the site is built from, in listing order.
var DefaultFolders = []string{
	"Shows",
	"gastronomia",
	"retratos",
	"projeto_social",
	"Services",
	"site",
	"Services/Shows e Eventos",
}

const DefaultListLimit = 100

type LoaderConfig struct {
	Folders []string
	// Limit caps the entries requested per folder.
	Limit int
	// Concurrency bounds the folders listed at once; values below 1 list
	// them one by one.
	Concurrency int
	// FolderTimeout bounds each folder's listing. Zero disables it.
	FolderTimeout time.Duration
}

// Loader builds the catalog from a bucket.
type Loader struct {
	bucket storage.Bucket
	logger logging.Logger
	cfg    LoaderConfig
}

func NewLoader(bucket storage.Bucket, logger logging.Logger, cfg LoaderConfig) *Loader {
	if cfg.Folders == nil {
		cfg.Folders = DefaultFolders
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultListLimit
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Loader{bucket: bucket, logger: logger.With("module", "catalog.loader"), cfg: cfg}
}

// Load lists every configured folder and returns its files in folder order,
// then listing order. A folder that cannot be listed is logged and left out,
// so an unreachable backend yields an empty catalog. The only error is the
// cancellation of ctx.
func (l *Loader) Load(ctx context.Context) ([]Record, error) {
	perFolder := make([][]Record, len(l.cfg.Folders))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.Concurrency)

	for i, folder := range l.cfg.Folders {
		g.Go(func() error {
			perFolder[i] = l.loadFolder(gctx, folder)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []Record
	for _, rs := range perFolder {
		records = append(records, rs...)
	}

	l.logger.Info(ctx, "catalog loaded", "folders", len(l.cfg.Folders), "images", len(records))
	return records, nil
}

func (l *Loader) loadFolder(ctx context.Context, folder string) []Record {
	if l.cfg.FolderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.cfg.FolderTimeout)
		defer cancel()
	}

	objects, err := l.bucket.List(ctx, folder, l.cfg.Limit)
	if err != nil {
		l.logger.Warn(ctx, "folder listing failed", "folder", folder, "error", err)
		return nil
	}

	records := make([]Record, 0, len(objects))
	for _, obj := range objects {
		if obj.IsFolder() {
			continue
		}

		name := folder + "/" + obj.Name
		url, err := l.bucket.PublicURL(ctx, name)
		if err != nil {
			// kept without a URL; lookups skip it
			l.logger.Warn(ctx, "public url failed", "name", name, "error", err)
		}
		records = append(records, Record{Name: name, Category: folder, PublicURL: url})
	}

	l.logger.Debug(ctx, "folder listed", "folder", folder, "files", len(records))
	return records
}
