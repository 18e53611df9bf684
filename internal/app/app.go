package app

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/minicrushers/minitracker/internal/config"
	"github.com/minicrushers/minitracker/internal/domain/result"
	"github.com/minicrushers/minitracker/internal/domain/standing"
	"github.com/minicrushers/minitracker/internal/infrastructure/notify/discord"
	"github.com/minicrushers/minitracker/internal/infrastructure/repository/memory"
	"github.com/minicrushers/minitracker/internal/infrastructure/repository/mongodb"
	"github.com/minicrushers/minitracker/internal/infrastructure/repository/postgres"
	"github.com/minicrushers/minitracker/internal/infrastructure/scrape/nyt"
	"github.com/minicrushers/minitracker/internal/platform/charts"
	"github.com/minicrushers/minitracker/internal/platform/logging"
	"github.com/minicrushers/minitracker/internal/usecase"
)

// Store bundles the repositories of one backend with its shutdown hook.
type Store struct {
	Results   result.Repository
	Standings standing.Repository
	close     func(context.Context) error
}

func (s *Store) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// App holds the fully wired services for one tracker run.
type App struct {
	Ingestion     *usecase.IngestionService
	Standings     *usecase.StandingsService
	Recalculation *usecase.RecalculationService

	store  *Store
	logger *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	location, err := time.LoadLocation(cfg.PuzzleTimezone)
	if err != nil {
		return nil, errors.Wrapf(err, "load puzzle timezone %q", cfg.PuzzleTimezone)
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	var notifier usecase.Notifier
	if cfg.DiscordWebhookURL != "" {
		client, err := discord.NewClient(discord.ClientConfig{
			WebhookURL: cfg.DiscordWebhookURL,
			Timeout:    cfg.HTTPTimeout,
		}, logger)
		if err != nil {
			_ = store.Close(ctx)
			return nil, err
		}
		notifier = client
	} else {
		logger.Warn("discord webhook not configured, announcements disabled")
	}

	var provider usecase.LeaderboardProvider
	if cfg.NYTUsername != "" && cfg.NYTPassword != "" {
		provider = nyt.NewClient(nyt.ClientOptions{
			BaseURL:  cfg.NYTBaseURL,
			Username: cfg.NYTUsername,
			Password: cfg.NYTPassword,
			Timeout:  cfg.HTTPTimeout,
		}, logger)
	}

	var renderer usecase.ChartRenderer
	if cfg.ChartsEnabled {
		renderer = charts.NewRenderer()
	}

	return &App{
		Ingestion:     usecase.NewIngestionService(provider, store.Results, notifier, logger),
		Standings:     usecase.NewStandingsService(store.Results, store.Standings, notifier, renderer, location, logger),
		Recalculation: usecase.NewRecalculationService(store.Results, location, logger),
		store:         store,
		logger:        logger,
	}, nil
}

func (a *App) Close(ctx context.Context) error {
	return a.store.Close(ctx)
}

func openStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMongo:
		store, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			return nil, err
		}
		return &Store{
			Results:   store.Results(),
			Standings: store.Standings(),
			close:     store.Close,
		}, nil
	case config.BackendPostgres:
		store, err := postgres.Connect(ctx, cfg.DBURL, logger)
		if err != nil {
			return nil, err
		}
		return &Store{
			Results:   store.Results(),
			Standings: store.Standings(),
			close:     store.Close,
		}, nil
	case config.BackendMemory:
		return &Store{
			Results:   memory.NewResultRepository(),
			Standings: memory.NewStandingRepository(),
		}, nil
	default:
		return nil, errors.Wrapf(usecase.ErrInvalidInput, "unknown store backend %q", cfg.StoreBackend)
	}
}
