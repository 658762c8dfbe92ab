package main

import (
	"fmt"
	"os"

	"github.com/junaidrashid-git/storefront-api/auth"
	"github.com/junaidrashid-git/storefront-api/config"
	productcontroller "github.com/junaidrashid-git/storefront-api/controllers/product"
	"github.com/junaidrashid-git/storefront-api/database"
	"github.com/junaidrashid-git/storefront-api/logger"
	"github.com/spf13/cobra"
)

const serviceName = "storefront-api"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "storefront",
		Short:        "Storefront API server and maintenance tasks",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newCreateAdminCmd(), newExportProductsCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			log := logger.New(logger.Options{Service: serviceName, Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})
			return serve(cmd.Context(), cfg, log)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(*cobra.Command, []string) error {
			cfg := config.Load()
			log := logger.New(logger.Options{Service: serviceName, Env: cfg.AppEnv, Level: cfg.LogLevel})

			db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			log.Info("migration complete")
			return nil
		},
	}
}

func newCreateAdminCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a password account for an email listed in ADMIN_EMAILS",
		RunE: func(*cobra.Command, []string) error {
			cfg := config.Load()
			log := logger.New(logger.Options{Service: serviceName, Env: cfg.AppEnv, Level: cfg.LogLevel})

			if !auth.NewAdminList(cfg.AdminEmails).Contains(email) {
				return fmt.Errorf("%s is not listed in ADMIN_EMAILS", email)
			}

			db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			user, err := auth.RegisterUser(db, name, email, password)
			if err != nil {
				return fmt.Errorf("create admin: %w", err)
			}
			log.Info("admin account created", "user_id", user.ID, "email", user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "admin email (must be in ADMIN_EMAILS)")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newExportProductsCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export-products",
		Short: "Write the product catalog to an xlsx workbook",
		RunE: func(*cobra.Command, []string) error {
			cfg := config.Load()
			log := logger.New(logger.Options{Service: serviceName, Env: cfg.AppEnv, Level: cfg.LogLevel})

			db, err := database.Open(cfg.DBDriver, cfg.DatabaseURL)
			if err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			defer f.Close()

			n, err := productcontroller.WriteProductsWorkbook(db, f)
			if err != nil {
				return err
			}
			log.Info("products exported", "count", n, "file", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "products.xlsx", "output file")
	return cmd
}
