package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/auth"
	"github.com/junaidrashid-git/storefront-api/config"
	"github.com/junaidrashid-git/storefront-api/database"
	"github.com/junaidrashid-git/storefront-api/notifier"
	"github.com/junaidrashid-git/storefront-api/realtime"
	"github.com/junaidrashid-git/storefront-api/routes"
	"github.com/junaidrashid-git/storefront-api/shutdown"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// serve runs the HTTP API until ctx is cancelled or the server fails.
func serve(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := shutdown.WithSignals(ctx)
	defer cancel()

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	var verifier auth.Verifier = auth.DisabledVerifier{}
	if cfg.FirebaseCredentialsJSON != "" || cfg.FirebaseProjectID != "" {
		v, err := auth.NewFirebaseVerifier(ctx, cfg.FirebaseCredentialsJSON, cfg.FirebaseProjectID)
		if err != nil {
			log.Warn("firebase unavailable, google sign-in disabled", "err", err)
		} else {
			verifier = v
		}
	}

	var mailer notifier.Mailer = notifier.NoopMailer{}
	if cfg.Email.Enabled() {
		m, err := notifier.NewSESMailer(ctx, cfg.Email)
		if err != nil {
			log.Warn("ses unavailable, emails disabled", "err", err)
		} else {
			mailer = m
		}
	}

	hub := realtime.NewHub()

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	if gin.Mode() == gin.DebugMode {
		r.Use(gin.Logger())
	}

	routes.SetupRoutes(r, routes.Deps{
		DB:            db,
		Hub:           hub,
		Tokens:        auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		Verifier:      verifier,
		Notifier:      notifier.New(db, hub, mailer),
		Admins:        auth.NewAdminList(cfg.AdminEmails),
		SessionSecret: cfg.SessionSecret,
		CORSOrigins:   cfg.CORSOrigins,
		Secure:        cfg.AppEnv == "prod",
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Purge expired guests at 2 AM daily
		startDailyGuestPurgeAtFixedTime(gctx, db, 2, 0)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer stopCancel()
		if err := srv.Shutdown(stopCtx); err != nil {
			log.Warn("graceful stop timeout, forcing stop", "err", err)
			return srv.Close()
		}
		return nil
	})

	err = g.Wait()
	log.Info("bye")
	return err
}

// startDailyGuestPurgeAtFixedTime deletes expired guest sessions and their carts once a day.
func startDailyGuestPurgeAtFixedTime(ctx context.Context, db *gorm.DB, hour, min int) {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, min, 0, 0, now.Location())
		if !next.After(now) {
			next = next.Add(24 * time.Hour)
		}
		slog.Info("next guest purge scheduled", "at", next.Format("2006-01-02 15:04:05"))

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		removed, err := auth.PurgeExpiredGuests(db, time.Now())
		if err != nil {
			slog.Error("failed to purge expired guests", "err", err)
			continue
		}
		slog.Info("expired guests purged", "count", removed)
	}
}
