package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/urfave/cli/v2"

	"sharedcalendar/config"
	"sharedcalendar/internal/adapters/notify"
	deliveryhttp "sharedcalendar/internal/delivery/http"
	"sharedcalendar/internal/delivery/http/controllers"
	"sharedcalendar/internal/delivery/repl"
	"sharedcalendar/internal/domain"
	"sharedcalendar/internal/repository/memory"
	"sharedcalendar/internal/services"
)

// @title Shared Calendar API
// @version 1.0
// @description Scheduling and invitation engine for a shared team calendar.
// @BasePath /
func main() {
	app := &cli.App{
		Name:  "calendar",
		Usage: "Shared calendar scheduling and invitation engine.",
		Commands: []*cli.Command{
			replCommand(),
			serveCommand(),
		},
		DefaultCommand: "repl",
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application failed", "err", err)
		os.Exit(1)
	}
}

// buildCalendar assembles a fresh engine: one directory, one notifier, one
// service. State lives for the lifetime of the process only.
func buildCalendar(cfg *config.Config, logger *slog.Logger) (domain.Calendar, error) {
	notifier, err := notify.NewNotifier(cfg.Mail, logger)
	if err != nil {
		return nil, fmt.Errorf("build notifier: %w", err)
	}
	return services.NewCalendarService(memory.NewDirectory(), notifier, logger), nil
}

func replCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Run the line-oriented command interpreter on stdin/stdout.",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			// The interpreter owns stdout; keep logs on stderr.
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

			calendar, err := buildCalendar(cfg, logger)
			if err != nil {
				return err
			}
			return repl.New(calendar, os.Stdin, os.Stdout, logger).Run(c.Context)
		},
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the JSON API.",
		Action: func(c *cli.Context) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger := config.NewLogger(cfg.Environment)

			calendar, err := buildCalendar(cfg, logger)
			if err != nil {
				return err
			}
			controller := controllers.NewCalendarController(logger, calendar)
			handler := deliveryhttp.NewRouter(controller, logger)

			addr := ":" + cfg.Port
			logger.Info("listening", "addr", addr, "env", cfg.Environment)
			return http.ListenAndServe(addr, handler)
		},
	}
}
