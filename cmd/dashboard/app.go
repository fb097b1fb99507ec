package main

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rxtech-lab/argo-dashboard/internal/config"
	"github.com/rxtech-lab/argo-dashboard/internal/dashboard"
	"github.com/rxtech-lab/argo-dashboard/internal/indicator"
	"github.com/rxtech-lab/argo-dashboard/internal/logger"
	"github.com/rxtech-lab/argo-dashboard/pkg/marketdata"
	"github.com/rxtech-lab/argo-dashboard/pkg/marketdata/provider"
	"github.com/rxtech-lab/argo-dashboard/pkg/prediction"
	"go.uber.org/zap"
)

// app carries state from the root Before hook to the subcommands.
type app struct {
	config   *config.Config
	logger   *logger.Logger
	location *time.Location
	// now is shared by the service and the API so both agree on today.
	now func() time.Time
}

// buildService wires the market data client, prediction client and indicator engine.
func (a *app) buildService() (*dashboard.Service, error) {
	cfg := a.config

	marketData, err := marketdata.NewClient(marketdata.ClientConfig{
		ProviderType: marketdata.ProviderCoinGecko,
		Location:     a.location,
		CoinGecko: provider.CoinGeckoOptions{
			BaseURL:           cfg.CoinGecko.BaseURL,
			APIKey:            cfg.CoinGecko.APIKey,
			APIKeyHeader:      cfg.CoinGecko.APIKeyHeader,
			VsCurrency:        cfg.CoinGecko.VsCurrency,
			RequestsPerSecond: cfg.CoinGecko.RequestsPerSecond,
			Timeout:           cfg.CoinGecko.Timeout,
		},
	}, a.logger)
	if err != nil {
		return nil, err
	}

	predictor, err := prediction.NewClient(prediction.ClientOptions{
		BaseURL:  cfg.Prediction.BaseURL,
		Timeout:  cfg.Prediction.Timeout,
		Location: a.location,
		Logger:   a.logger,
	})
	if err != nil {
		return nil, err
	}

	engine, err := indicator.NewEngine(indicator.EngineConfig{
		RSIPeriod:        cfg.Indicators.RSIPeriod,
		MACDFastPeriod:   cfg.Indicators.MACDFastPeriod,
		MACDSlowPeriod:   cfg.Indicators.MACDSlowPeriod,
		MACDSignalPeriod: cfg.Indicators.MACDSignalPeriod,
	})
	if err != nil {
		return nil, err
	}

	return dashboard.NewService(marketData, predictor, engine, dashboard.Options{
		Asset:                cfg.AssetInfo(),
		Location:             a.location,
		AnalysisLookbackDays: cfg.Analysis.LookbackDays,
		MaxAgeDays:           cfg.Analysis.MaxAgeDays,
		Now:                  a.now,
		Logger:               a.logger,
	})
}

// scheduleRefresh invalidates the cache on spec until ctx is done. An empty spec disables it.
func scheduleRefresh(ctx context.Context, spec string, cache *dashboard.CachedPipeline, log *logger.Logger) (*cron.Cron, error) {
	if spec == "" {
		return nil, nil
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(spec, cache.Invalidate); err != nil {
		return nil, err
	}

	scheduler.Start()
	log.Info("Scheduled cache refresh", zap.String("spec", spec))

	go func() {
		<-ctx.Done()
		<-scheduler.Stop().Done()
	}()

	return scheduler, nil
}
