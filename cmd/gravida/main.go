package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/terraincognita07/gravida/internal/api"
	"github.com/terraincognita07/gravida/internal/cli"
	"github.com/terraincognita07/gravida/internal/config"
	"github.com/terraincognita07/gravida/internal/db"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string
	rootCmd := &cobra.Command{
		Use:           "gravida",
		Short:         "Cycle and pregnancy calendar API",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional env file read before the environment")

	rootCmd.AddCommand(serveCmd(&envFile))
	rootCmd.AddCommand(migrateCmd(&envFile))
	rootCmd.AddCommand(addSubjectCmd(&envFile))
	rootCmd.AddCommand(issueTokenCmd(&envFile))
	rootCmd.AddCommand(generateSecretCmd())
	return rootCmd
}

func serveCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFile(*envFile)
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
}

func migrateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(*envFile, func(cfg *config.Config, database *gorm.DB) error {
				return cli.RunMigrateCommand(database, cmd.OutOrStdout())
			})
		},
	}
}

func addSubjectCmd(envFile *string) *cobra.Command {
	var email, team string
	cmd := &cobra.Command{
		Use:   "add-subject",
		Short: "Register a subject inside a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(*envFile, func(cfg *config.Config, database *gorm.DB) error {
				_, err := cli.RunAddSubjectCommand(database, cmd.OutOrStdout(), email, team)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Subject email address")
	cmd.Flags().StringVar(&team, "team", "", "Team name, created when missing")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

func issueTokenCmd(envFile *string) *cobra.Command {
	var email string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Print a bearer token for a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(*envFile, func(cfg *config.Config, database *gorm.DB) error {
				if ttl <= 0 {
					ttl = cfg.TokenTTL
				}
				_, err := cli.RunIssueTokenCommand(database, cmd.OutOrStdout(), cfg.SecretKey, email, ttl, time.Now())
				return err
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Subject email address")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime, defaults to TOKEN_TTL")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func generateSecretCmd() *cobra.Command {
	var length int
	cmd := &cobra.Command{
		Use:   "generate-secret",
		Short: "Print a random SECRET_KEY line",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := cli.RunGenerateSecretCommand(cmd.OutOrStdout(), length)
			return err
		},
	}
	cmd.Flags().IntVar(&length, "length", 48, "Key length")
	return cmd
}

func withDatabase(envFile string, fn func(cfg *config.Config, database *gorm.DB) error) error {
	cfg, err := config.LoadFile(envFile)
	if err != nil {
		return err
	}
	log := newLogger(cfg.LogLevel)
	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		return fmt.Errorf("open sql db: %w", err)
	}
	defer sqlDB.Close()
	return fn(cfg, database)
}

func newLogger(level string) zerolog.Logger {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stdout).With().Timestamp().Logger().Level(parsed)
	if os.Getenv("ENV") == "development" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger().Level(parsed)
	}
	return log
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Gravida",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	return app
}

func runServer(cfg *config.Config) error {
	log := newLogger(cfg.LogLevel)

	location, err := cfg.Location()
	if err != nil {
		return err
	}
	time.Local = location

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	handler, err := api.NewHandler(database, cfg.SecretKey, location, log)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}
	app := newApp(handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().
		Str("addr", cfg.ListenAddr()).
		Str("db", cfg.DBPath).
		Str("tz", location.String()).
		Msg("gravida listening")
	if err := app.Listen(cfg.ListenAddr()); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}
