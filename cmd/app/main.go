package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"climasite/cmd"
	httpin "climasite/internal/adapters/in/http"
	"climasite/internal/adapters/out/postgres"
	"climasite/internal/adapters/out/postgres/migrations"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var envFile string

var rootCmd = &cobra.Command{
	Use:           "climasite",
	Short:         "ClimaSite order service",
	Long:          "Order lifecycle and payment reconciliation service for the ClimaSite shop.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and scheduled jobs",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an admin access token signed with ADMIN_JWT_SECRET",
	RunE:  runToken,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	migrateCmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all pending migrations", RunE: migrateWith(migrations.Up)},
		&cobra.Command{Use: "down", Short: "Roll back the latest migration", RunE: migrateWith(migrations.Down)},
		&cobra.Command{Use: "status", Short: "Print migration status", RunE: migrateWith(migrations.Status)},
	)

	tokenCmd.Flags().String("subject", "", "admin user recorded as author of changes")
	tokenCmd.Flags().Duration("ttl", 8*time.Hour, "token lifetime")
	_ = tokenCmd.MarkFlagRequired("subject")

	rootCmd.AddCommand(serveCmd, migrateCmd, tokenCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	configs, err := cmd.LoadConfig(envFile)
	if err != nil {
		return err
	}
	if err = configs.Validate(); err != nil {
		return err
	}

	logger := newLogger(configs.LogLevel)
	slog.SetDefault(logger)

	app, err := cmd.NewCompositionRoot(ctx, configs, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("failed to close resources", "error", closeErr)
		}
	}()

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e, err := app.CreateRouter()
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", configs.HTTPPort)
		serverErr <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("http server failed: %v", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func migrateWith(run func(*sql.DB) error) func(*cobra.Command, []string) error {
	return func(c *cobra.Command, _ []string) error {
		configs, err := cmd.LoadConfig(envFile)
		if err != nil {
			return err
		}

		logger := newLogger(configs.LogLevel)
		_, sqlDB, err := postgres.Open(c.Context(), cmd.ConnectionConfig(configs), logger)
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		return run(sqlDB)
	}
}

func runToken(c *cobra.Command, _ []string) error {
	configs, err := cmd.LoadConfig(envFile)
	if err != nil {
		return err
	}
	if strings.TrimSpace(configs.AdminJWTSecret) == "" {
		return errors.New("ADMIN_JWT_SECRET is required")
	}

	subject, _ := c.Flags().GetString("subject")
	ttl, _ := c.Flags().GetDuration("ttl")

	token, err := httpin.IssueAdminToken([]byte(configs.AdminJWTSecret), subject, ttl, time.Now())
	if err != nil {
		return err
	}

	fmt.Fprintln(c.OutOrStdout(), token)
	return nil
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
