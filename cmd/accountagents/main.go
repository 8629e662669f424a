// @title			accountagents API
// @version		1.0
// @description	Lists accounts and their agent counts using three retrieval strategies.
// @BasePath		/api/v1

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mtlprog/accountagents/internal/config"
	"github.com/mtlprog/accountagents/internal/database"
	"github.com/mtlprog/accountagents/internal/handler"
	"github.com/mtlprog/accountagents/internal/logger"
	"github.com/mtlprog/accountagents/internal/middleware"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "accountagents",
		Usage: "List accounts and their agent counts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:     "database-url",
				Aliases:  []string{"d"},
				Value:    config.DefaultDatabaseURL,
				Usage:    "PostgreSQL database URL",
				EnvVars:  []string{"DATABASE_URL"},
				Required: true,
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the web server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "port",
						Aliases: []string{"p"},
						Value:   config.DefaultPort,
						Usage:   "HTTP server port",
						EnvVars: []string{"PORT"},
					},
				},
				Action: runServe,
			},
			{
				Name:   "migrate",
				Usage:  "Apply pending database migrations",
				Action: runMigrate,
			},
			{
				Name:  "seed",
				Usage: "Insert demo accounts and agents",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "accounts",
						Value: config.DefaultSeedAccounts,
						Usage: "Number of accounts to create",
					},
					&cli.IntFlag{
						Name:  "max-agents",
						Value: config.DefaultSeedMaxAgents,
						Usage: "Maximum agents per account",
					},
				},
				Action: runSeed,
			},
		},
		Action: runServe,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

// openAndMigrate connects to the database and applies pending migrations.
func openAndMigrate(c *cli.Context) (*database.DB, error) {
	ctx := c.Context

	db, err := database.New(ctx, c.String("database-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.RunMigrations(ctx, db.Pool()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

func runServe(c *cli.Context) error {
	ctx := c.Context

	port := c.String("port")
	if port == "" {
		port = config.DefaultPort
	}

	db, err := openAndMigrate(c)
	if err != nil {
		return err
	}
	defer db.Close()

	h := handler.New(db.Pool())

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           middleware.RequestLogger(mux),
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

func runMigrate(c *cli.Context) error {
	db, err := openAndMigrate(c)
	if err != nil {
		return err
	}
	db.Close()
	return nil
}

func runSeed(c *cli.Context) error {
	db, err := openAndMigrate(c)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := database.Seed(c.Context, db.Pool(), c.Int("accounts"), c.Int("max-agents")); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	return nil
}
