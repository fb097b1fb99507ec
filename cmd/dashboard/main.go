package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rxtech-lab/argo-dashboard/internal/api"
	"github.com/rxtech-lab/argo-dashboard/internal/config"
	"github.com/rxtech-lab/argo-dashboard/internal/dashboard"
	"github.com/rxtech-lab/argo-dashboard/internal/logger"
	"github.com/rxtech-lab/argo-dashboard/internal/types"
	"github.com/rxtech-lab/argo-dashboard/internal/version"
	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// before loads .env, the config file and the logger.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	// a missing .env is fine, the environment may already be set
	if err := godotenv.Load(cmd.String("env-file")); err != nil && !os.IsNotExist(err) {
		return ctx, fmt.Errorf("failed to load %s: %w", cmd.String("env-file"), err)
	}

	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}

	if level := cmd.String("log-level"); level != "" {
		cfg.Log.Level = level
	}

	if cmd.Bool("dev") {
		cfg.Log.Development = true
	}

	log, err := logger.NewLogger(logger.Options{Level: cfg.Log.Level, Development: cfg.Log.Development})
	if err != nil {
		return ctx, err
	}

	location, err := cfg.Location()
	if err != nil {
		return ctx, err
	}

	a.config = cfg
	a.logger = log
	a.location = location
	a.now = time.Now

	log.Debug("Loaded configuration", zap.Stringer("config", cfg))

	return ctx, nil
}

func (a *app) after(_ context.Context, _ *cli.Command) error {
	if a.logger != nil {
		_ = a.logger.Sync()
	}

	return nil
}

func (a *app) overviewAction(ctx context.Context, cmd *cli.Command) error {
	service, err := a.buildService()
	if err != nil {
		return err
	}

	days := cmd.Int("days")

	result, err := withSpinner(os.Stderr, fmt.Sprintf("Fetching %d days of %s", days, a.config.Asset.Symbol), func() (*types.Dashboard, error) {
		return service.GetDashboard(ctx, a.config.Asset.ID, int(days))
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return writeJSON(cmd.Root().Writer, result)
	}

	_, err = fmt.Fprint(cmd.Root().Writer, RenderDashboard(result))

	return err
}

func (a *app) analysisAction(ctx context.Context, cmd *cli.Command) error {
	date := a.now().In(a.location)

	if raw := cmd.String("date"); raw != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, raw, a.location)
		if err != nil {
			return errors.Wrapf(errors.ErrCodeInvalidInput, err, "date must be YYYY-MM-DD, got %q", raw)
		}

		date = parsed
	}

	service, err := a.buildService()
	if err != nil {
		return err
	}

	result, err := withSpinner(os.Stderr, "Fetching daily bars and prediction", func() (*types.TechnicalAnalysis, error) {
		return service.GetTechnicalAnalysis(ctx, date)
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return writeJSON(cmd.Root().Writer, result)
	}

	_, err = fmt.Fprint(cmd.Root().Writer, RenderAnalysis(result))

	return err
}

func (a *app) serveAction(ctx context.Context, cmd *cli.Command) error {
	service, err := a.buildService()
	if err != nil {
		return err
	}

	cached := dashboard.NewCachedPipeline(service, a.location, a.logger)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := scheduleRefresh(ctx, cmd.String("refresh"), cached, a.logger); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid refresh schedule %q", cmd.String("refresh"))
	}

	addr := a.config.Server.Addr
	if cmd.IsSet("addr") {
		addr = cmd.String("addr")
	}

	server := api.NewServer(cached, api.Options{
		Addr:     addr,
		Asset:    a.config.AssetInfo(),
		Location: a.location,
		Logger:   a.logger,
		Now:      a.now,
	})

	errCh := make(chan error, 1)

	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.logger.Info("Shutting down API server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	}
}

func versionAction(_ context.Context, cmd *cli.Command) error {
	info := version.GetInfo()

	_, err := fmt.Fprintf(cmd.Root().Writer, "argo-dashboard %s (%s)\n", info.Version, info.GoVersion)

	return err
}

func writeJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(value)
}

func newCommand() *cli.Command {
	a := &app{}

	jsonFlag := func() cli.Flag {
		return &cli.BoolFlag{
			Name:  "json",
			Usage: "Print the result as JSON instead of the terminal view",
		}
	}

	return &cli.Command{
		Name:    "dashboard",
		Usage:   "Cryptocurrency market dashboard with RSI, MACD and a forecasted high",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
				Sources: cli.EnvVars("DASHBOARD_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "Path to a .env file with secrets such as COINGECKO_API_KEY",
				Value: ".env",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "Human readable logs",
			},
		},
		Before: a.before,
		After:  a.after,
		Commands: []*cli.Command{
			{
				Name:  "overview",
				Usage: "Show price, statistics and daily aggregates for a rolling window",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "days",
						Aliases: []string{"d"},
						Usage:   fmt.Sprintf("Lookback window, one of %v", dashboard.AllowedLookbackDays),
						Value:   30,
					},
					jsonFlag(),
				},
				Action: a.overviewAction,
			},
			{
				Name:  "analysis",
				Usage: "Show daily bars, RSI, MACD and the predicted high for a date",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "date",
						Usage: "Selected date in `YYYY-MM-DD` format. Defaults to today.",
					},
					jsonFlag(),
				},
				Action: a.analysisAction,
			},
			{
				Name:  "serve",
				Usage: "Serve the dashboard as a JSON API",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "addr",
						Usage: "Listen address, overrides server.addr",
					},
					&cli.StringFlag{
						Name:  "refresh",
						Usage: "Cron spec for dropping cached results, empty disables it",
						Value: "@every 30m",
					},
				},
				Action: a.serveAction,
			},
			{
				Name:   "version",
				Usage:  "Print the version",
				Action: versionAction,
			},
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
