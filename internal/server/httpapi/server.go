// Package httpapi serves the portfolio site's JSON API with gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/murillocortez/olhar-autoral/internal/catalog"
	"github.com/murillocortez/olhar-autoral/internal/logging"
	"github.com/murillocortez/olhar-autoral/internal/server/models"
)

// Catalog is the read side of the image catalog plus manual reloads.
// *catalog.Store implements it.
type Catalog interface {
	Snapshot() catalog.Snapshot
	Image(category, filename string) (string, bool)
	Gallery(layout []catalog.Slot) []catalog.GalleryItem
	Category(category string) []catalog.Record
	Reload(ctx context.Context) (catalog.Snapshot, error)
}

// Briefings accepts and lists contact-form submissions.
type Briefings interface {
	Submit(ctx context.Context, b *models.Briefing) (*models.Briefing, error)
	Recent(ctx context.Context, limit int) ([]models.Briefing, error)
}

type Options struct {
	CORSOrigins    []string
	TrustedProxies []string
	Pprof          bool
	// BriefingRate and BriefingBurst bound submissions per client IP. A zero
	// rate disables the limit.
	BriefingRate  float64
	BriefingBurst int
	AdminSecret   []byte
	// Layout is the gallery served by /api/gallery; nil means
	// catalog.DefaultLayout.
	Layout []catalog.Slot
}

type Handler struct {
	catalog   Catalog
	briefings Briefings
	logger    logging.Logger
	layout    []catalog.Slot
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(c Catalog, b Briefings, logger logging.Logger, opts Options) *gin.Engine {
	if logger == nil {
		logger = logging.Nop()
	}
	logger = logger.With("module", "http")

	layout := opts.Layout
	if layout == nil {
		layout = catalog.DefaultLayout
	}
	h := &Handler{catalog: c, briefings: b, logger: logger, layout: layout}

	router := gin.New()
	_ = router.SetTrustedProxies(opts.TrustedProxies)
	router.Use(gin.Recovery(), requestLogger(logger))

	if len(opts.CORSOrigins) > 0 {
		router.Use(cors.New(corsConfig(opts.CORSOrigins)))
	}
	if opts.Pprof {
		pprof.Register(router)
	}

	router.GET("/health", h.GetHealth)

	api := router.Group("/api")
	api.GET("/catalog", h.GetCatalog)
	api.GET("/catalog/:category", h.GetCategory)
	api.GET("/images", h.GetImage)
	api.GET("/gallery", h.GetGallery)

	submit := []gin.HandlerFunc{h.PostBriefing}
	if opts.BriefingRate > 0 {
		limiter := newIPLimiter(rate.Limit(opts.BriefingRate), opts.BriefingBurst)
		submit = append([]gin.HandlerFunc{limiter.middleware()}, submit...)
	}
	api.POST("/briefings", submit...)

	admin := api.Group("/admin", requireAdmin(opts.AdminSecret))
	admin.POST("/catalog/reload", h.PostReload)
	admin.GET("/briefings", h.GetBriefings)

	router.NoRoute(func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "not found"}) })

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}

// Run serves router on addr until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, addr string, router http.Handler, logger logging.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info(ctx, "HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info(ctx, "HTTP server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
