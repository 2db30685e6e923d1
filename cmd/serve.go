package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"scholarship-portal/internal/redisclient"
	"scholarship-portal/internal/seo"
	"scholarship-portal/internal/storage"
	"scholarship-portal/internal/web"
	"scholarship-portal/worker"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server and background workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		var (
			rdb   *redis.Client
			store *storage.RedisStore
		)
		if cfg.Redis.Enabled {
			rdb = redisclient.New(cfg.Redis)
			defer rdb.Close()
			store = storage.NewRedisStore(rdb)
		}

		client, err := newAPIClient(cfg, rdb)
		if err != nil {
			return err
		}
		uploader, err := newUploader(ctx, cfg.Upload, client)
		if err != nil {
			return err
		}
		writer, err := newWriter(cfg.OpenAI)
		if err != nil {
			return err
		}
		if cfg.Admin.PasswordHash == "" {
			slog.Warn("serve: admin.password_hash is empty, the admin area will refuse every login")
		}

		sitemapInterval, err := parseDuration("sitemap.interval", cfg.Sitemap.Interval)
		if err != nil {
			return err
		}
		readTimeout, err := parseDuration("server.read_timeout", cfg.Server.ReadTimeout)
		if err != nil {
			return err
		}
		writeTimeout, err := parseDuration("server.write_timeout", cfg.Server.WriteTimeout)
		if err != nil {
			return err
		}
		shutdownTimeout, err := parseDuration("server.shutdown_timeout", cfg.Server.ShutdownTimeout)
		if err != nil {
			return err
		}

		site := siteFromConfig(cfg.Site)
		snapshot := &seo.Snapshot{}
		opts := web.Options{
			API:            client,
			Uploader:       uploader,
			Writer:         writer,
			Site:           site,
			AdClient:       cfg.Site.AdClient,
			Admin:          cfg.Admin,
			SubscribeLimit: cfg.Server.SubscribeLimit,
			Sitemap:        snapshot,
			SitemapMaxAge:  2 * sitemapInterval,
		}
		refresher := &worker.SitemapRefresher{
			Builder:  seo.NewBuilder(site, client),
			Snapshot: snapshot,
			Interval: sitemapInterval,
		}
		if store != nil {
			opts.SitemapStore = store
			refresher.Store = store
		}
		if cfg.Server.MetricsEnabled {
			opts.Metrics = web.NewMetrics()
		}
		srv, err := web.New(opts)
		if err != nil {
			return err
		}

		ws := []worker.Worker{srv, refresher}
		if cfg.Digest.Enabled {
			d, err := newDigestBuilder(cfg, client, store, writer)
			if err != nil {
				return err
			}
			ws = append(ws, d)
		}

		httpSrv := &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      srv.Handler(),
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		}

		mgr := worker.NewManager(ws...)
		mgrErr := make(chan error, 1)
		go func() { mgrErr <- mgr.Start(ctx) }()

		listenErr := make(chan error, 1)
		go func() {
			slog.Info("serve: listening", "addr", cfg.Server.Addr, "api", cfg.API.BaseURL, "redis", cfg.Redis.Enabled, "digest", cfg.Digest.Enabled)
			listenErr <- httpSrv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			slog.Info("serve: shutting down")
		case err := <-listenErr:
			stop()
			<-mgrErr
			return fmt.Errorf("listen: %w", err)
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("serve: shutdown", "err", err)
		}
		return <-mgrErr
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
