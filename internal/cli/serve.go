package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/roze-storefront/internal/cart"
	"github.com/nikolayk812/roze-storefront/internal/checkout"
	"github.com/nikolayk812/roze-storefront/internal/config"
	"github.com/nikolayk812/roze-storefront/internal/httpapi"
	"github.com/nikolayk812/roze-storefront/internal/port"
	"github.com/nikolayk812/roze-storefront/internal/repository"
	"github.com/nikolayk812/roze-storefront/internal/repository/memory"
	"github.com/nikolayk812/roze-storefront/internal/service"
	"github.com/nikolayk812/roze-storefront/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	shutdownTimeout    = 10 * time.Second
	sessionPurgePeriod = time.Hour
)

type ServeOptions struct {
	*RootOptions
	Migrate bool
}

func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the storefront HTTP API until SIGINT or SIGTERM.

Without database_url the store runs on in-memory repositories, and without
storage.bucket uploaded images are kept in memory and served under /images/.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Migrate, "migrate", false, "apply migrations before serving")

	return cmd
}

type backend struct {
	catalog  port.CatalogRepository
	accounts port.AccountRepository
	profiles port.ProfileRepository
	images   port.ImageStore

	// imageHandler is set when images are served by this process.
	imageHandler http.Handler
	closers      []func()
}

func (b *backend) close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func runServe(ctx context.Context, opts *ServeOptions) error {
	cfg, logger, err := opts.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, cfg, opts.Migrate, logger)
	if err != nil {
		return err
	}
	defer b.close()

	cur, err := cfg.Currency()
	if err != nil {
		return err
	}

	whatsapp, err := checkout.NewWhatsApp(cfg.Store.WhatsAppPhone)
	if err != nil {
		return fmt.Errorf("checkout.NewWhatsApp: %w", err)
	}

	auth := service.NewAuth(b.accounts, cfg.SessionTTL, logger.Named("auth"))

	srv := httpapi.NewServer(httpapi.Deps{
		Catalog:       service.NewCatalog(b.catalog, b.images, cur, logger.Named("catalog")),
		Auth:          auth,
		Profiles:      service.NewProfiles(b.profiles),
		Carts:         cart.NewRegistry(cur, cfg.SessionTTL),
		WhatsApp:      whatsapp,
		Images:        b.imageHandler,
		Logger:        logger.Named("http"),
		SecureCookies: cfg.CookieSecure,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go purgeSessions(ctx, auth, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("httpServer.Shutdown: %w", err)
	}

	return nil
}

func openBackend(ctx context.Context, cfg config.Config, runMigrations bool, logger *zap.Logger) (*backend, error) {
	b := &backend{}

	if cfg.DatabaseURL == "" {
		logger.Warn("database_url is empty, using in-memory repositories")
		b.catalog = memory.NewCatalog()
		b.accounts = memory.NewAccounts()
		b.profiles = memory.NewProfiles()
	} else {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("pgxpool.New: %w", err)
		}
		b.closers = append(b.closers, pool.Close)

		if err := pool.Ping(ctx); err != nil {
			b.close()
			return nil, fmt.Errorf("pool.Ping: %w", err)
		}

		if runMigrations {
			if err := migrate(ctx, pool, logger); err != nil {
				b.close()
				return nil, err
			}
		}

		b.catalog = repository.NewCatalog(pool)
		b.accounts = repository.NewAccount(pool)
		b.profiles = repository.NewProfile(pool)
	}

	if cfg.Storage.Bucket == "" {
		logger.Warn("storage.bucket is empty, keeping images in memory")
		images := memory.NewImages("/images")
		b.images = images
		b.imageHandler = images
		return b, nil
	}

	client, err := storage.NewClient(ctx, cfg.Storage.CredentialsFile)
	if err != nil {
		b.close()
		return nil, err
	}
	b.closers = append(b.closers, func() {
		if err := client.Close(); err != nil {
			logger.Warn("close storage client", zap.Error(err))
		}
	})

	gcs, err := storage.NewGCS(client, cfg.Storage.Bucket, cfg.Storage.PublicBaseURL)
	if err != nil {
		b.close()
		return nil, fmt.Errorf("storage.NewGCS: %w", err)
	}
	b.images = gcs

	return b, nil
}

func purgeSessions(ctx context.Context, auth *service.Auth, logger *zap.Logger) {
	ticker := time.NewTicker(sessionPurgePeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := auth.PurgeExpiredSessions(ctx)
			if err != nil {
				logger.Warn("purge expired sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("expired sessions purged", zap.Int64("count", n))
			}
		}
	}
}
