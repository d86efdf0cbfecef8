package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
	log "github.com/sirupsen/logrus"

	"hookhunter/internal/config"
	"hookhunter/internal/models"
	"hookhunter/internal/services"
	"hookhunter/internal/store"
	"hookhunter/internal/store/local"
	"hookhunter/internal/store/primary"
	"hookhunter/internal/upstream/kit"
	"hookhunter/internal/upstream/syndication"
	"hookhunter/internal/upstream/twitter"
)

// App owns every long-lived component built from the configuration.
type App struct {
	Config *config.Config

	HistoryStore store.SearchHistoryStore // nil when history.driver is none
	JobClient    store.JobClient          // nil unless history.async is set

	SearchService       *services.SearchService
	SubscriptionService *services.SubscriptionService
	EmbedService        *services.EmbedService
	HistoryService      *services.HistoryService
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	if err := app.initHistoryStore(ctx); err != nil {
		return nil, err
	}
	if err := app.initJobClient(); err != nil {
		app.Close()
		return nil, err
	}
	if err := app.initServices(ctx); err != nil {
		app.Close()
		return nil, err
	}

	log.WithFields(log.Fields{
		"history": cfg.History.Driver,
		"async":   app.JobClient != nil,
	}).Debug("application initialization complete")
	return app, nil
}

// RedisOpt builds the asynq connection options from the redis section.
func RedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
}

// OpenHistoryStore opens the store selected by history.driver. It returns nil
// when history is disabled.
func OpenHistoryStore(ctx context.Context, cfg *config.Config) (store.SearchHistoryStore, error) {
	switch strings.ToLower(cfg.History.Driver) {
	case "", "none":
		return nil, nil
	case "sqlite":
		s, err := local.Open(ctx, cfg.History.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "postgres":
		s, err := primary.NewPrimaryStore(ctx, cfg.History.DSN)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", store.ErrUnsupportedDriver, cfg.History.Driver)
	}
}

func (a *App) initHistoryStore(ctx context.Context) error {
	hs, err := OpenHistoryStore(ctx, a.Config)
	if err != nil {
		return fmt.Errorf("init history store: %w", err)
	}
	a.HistoryStore = hs
	return nil
}

func (a *App) initJobClient() error {
	if a.HistoryStore == nil || !a.Config.History.Async {
		return nil
	}
	a.JobClient = store.NewAsynqJobClient(RedisOpt(a.Config))
	return nil
}

func (a *App) recorder() services.HistoryRecorder {
	switch {
	case a.JobClient != nil:
		return store.QueuedRecorder{Jobs: a.JobClient}
	case a.HistoryStore != nil:
		return store.DirectRecorder{Store: a.HistoryStore}
	}
	return nil
}

func (a *App) initServices(ctx context.Context) error {
	cfg := a.Config

	ranking, ok := models.ParseRankingHint(cfg.Search.ResultType, models.RankingTop)
	if !ok {
		return fmt.Errorf("%w: unknown search.result_type %q", models.ErrConfig, cfg.Search.ResultType)
	}

	searcher := twitter.NewClient(twitter.Options{
		BaseURL:     cfg.Twitter.BaseURL,
		QueryID:     cfg.Twitter.QueryID,
		BearerToken: cfg.Twitter.BearerToken,
		Timeout:     cfg.Twitter.Timeout,
		RetryCount:  cfg.Twitter.RetryCount,
		Credential:  config.TwitterAPIKey,
	})
	a.SearchService = services.NewSearchService(searcher, services.NewHookExtractor(), a.recorder(), services.SearchOptions{
		TargetCount:    cfg.Search.TargetCount,
		PageSize:       cfg.Search.PageSize,
		DefaultListID:  cfg.Search.DefaultListID,
		DefaultRanking: ranking,
	})

	a.SubscriptionService = services.NewSubscriptionService(kit.NewClient(cfg.Kit.BaseURL, cfg.Kit.Timeout, config.KitAPIKey))

	embeds, err := services.NewEmbedService(ctx, syndication.NewClient(cfg.Syndication.BaseURL, cfg.Syndication.Timeout), cfg.Syndication.CacheTTL)
	if err != nil {
		return fmt.Errorf("init embed service: %w", err)
	}
	a.EmbedService = embeds

	a.HistoryService = services.NewHistoryService(a.HistoryStore)
	return nil
}

// Close releases every component that holds a connection.
func (a *App) Close() {
	if a.JobClient != nil {
		if err := a.JobClient.Close(); err != nil {
			log.WithError(err).Warn("error closing job client")
		}
	}
	if a.HistoryStore != nil {
		if err := a.HistoryStore.Close(); err != nil {
			log.WithError(err).Warn("error closing history store")
		}
	}
	if a.EmbedService != nil {
		if err := a.EmbedService.Close(); err != nil {
			log.WithError(err).Warn("error closing embed cache")
		}
	}
}
