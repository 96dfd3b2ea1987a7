// Package server wires the portfolio backend together: image catalog,
// briefing intake, the HTTP API and the gRPC health endpoint.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/murillocortez/olhar-autoral/internal/catalog"
	"github.com/murillocortez/olhar-autoral/internal/logging"
	"github.com/murillocortez/olhar-autoral/internal/server/config"
	"github.com/murillocortez/olhar-autoral/internal/server/httpapi"
	"github.com/murillocortez/olhar-autoral/internal/server/notify"
	"github.com/murillocortez/olhar-autoral/internal/server/repositories/repomanager"
	"github.com/murillocortez/olhar-autoral/internal/server/services"
	"github.com/murillocortez/olhar-autoral/internal/storage"

	gs "github.com/murillocortez/olhar-autoral/internal/server/grpc"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	store     *catalog.Store
	briefings *services.BriefingService
	health    *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.Log.Level, c.Log.Format, os.Stdout)

	bucket, err := NewBucket(ctx, c.Storage)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	db, err := repomanager.Open(ctx, c.DB.DSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store := catalog.NewStore(catalog.NewLoader(bucket, logger, LoaderConfig(c.Catalog)), nil)
	bs := services.NewBriefingService(db, rm, NewNotifier(c.Notify), logger)
	health := gs.NewGRPCServer(c.GRPC.Addr, logger)

	store.OnReload(func(catalog.Snapshot) { health.SetServing(true) })

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		store:     store,
		briefings: bs,
		health:    health,
	}, nil
}

// NewBucket opens the configured storage driver.
func NewBucket(ctx context.Context, c config.StorageConfig) (storage.Bucket, error) {
	sc := storage.S3Config{
		Region:        c.Region,
		Endpoint:      c.Endpoint,
		AccessKey:     c.AccessKey,
		SecretKey:     c.SecretKey,
		Bucket:        c.Bucket,
		PublicBaseURL: c.PublicBaseURL,
		PresignExpiry: c.PresignExpiry.Duration,
	}

	switch c.Driver {
	case "s3":
		return storage.NewS3Bucket(ctx, sc)
	case "minio":
		return storage.NewMinioBucket(sc)
	}
	return nil, fmt.Errorf("unknown storage driver %q", c.Driver)
}

func LoaderConfig(c config.CatalogConfig) catalog.LoaderConfig {
	return catalog.LoaderConfig{
		Folders:       c.Folders,
		Limit:         c.ListLimit,
		Concurrency:   c.Concurrency,
		FolderTimeout: c.FolderTimeout.Duration,
	}
}

// NewNotifier enables every channel that has an address configured.
func NewNotifier(c config.NotifyConfig) notify.Notifier {
	var channels notify.Multi
	if c.WebhookURL != "" {
		channels = append(channels, notify.NewWebhook(c.WebhookURL, c.WebhookKey, c.WebhookTimeout.Duration))
	}
	if c.SMTPHost != "" {
		channels = append(channels, notify.NewMailer(notify.MailConfig{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			User:     c.SMTPUser,
			Password: c.SMTPPassword,
			From:     c.MailFrom,
			To:       c.MailTo,
		}))
	}

	switch len(channels) {
	case 0:
		return notify.Nop{}
	case 1:
		return channels[0]
	}
	return channels
}

// scheduleRefresh reloads the catalog on spec until ctx is done. An empty
// spec schedules nothing.
func scheduleRefresh(ctx context.Context, spec string, store *catalog.Store, logger logging.Logger) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if _, err := store.Reload(ctx); err != nil {
			logger.Warn(ctx, "scheduled catalog reload failed", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("catalog refresh spec %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) loadCatalog(ctx context.Context) {
	snap, err := app.store.Reload(ctx)
	if err != nil {
		app.logger.Warn(ctx, "initial catalog load aborted", "error", err)
		return
	}
	app.logger.Info(ctx, "catalog ready", "images", len(snap.Records))
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.health.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	router := httpapi.NewRouter(app.store, app.briefings, app.logger, httpapi.Options{
		CORSOrigins:    app.config.HTTP.CORSOrigins,
		TrustedProxies: app.config.HTTP.TrustedProxies,
		Pprof:          app.config.HTTP.Pprof,
		BriefingRate:   app.config.HTTP.BriefingRate,
		BriefingBurst:  app.config.HTTP.BriefingBurst,
		AdminSecret:    []byte(app.config.Admin.Secret),
	})

	if err := httpapi.Run(ctx, app.config.HTTP.Addr, router, app.logger); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or a server fails.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	refresher, err := scheduleRefresh(ctx, app.config.Catalog.RefreshSpec, app.store, app.logger)
	if err != nil {
		app.logger.Error(ctx, err.Error())
		app.closeDB(ctx)
		return
	}

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		app.loadCatalog(ctx)
	}()
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if refresher != nil {
		<-refresher.Stop().Done()
	}
	app.closeDB(ctx)
	app.logger.Info(ctx, "App stopped")
}

func (app *App) closeDB(ctx context.Context) {
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "closing database", "error", err)
	}
}
