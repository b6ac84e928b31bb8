package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/pitchside/leaguedesk/internal/config"
	"github.com/pitchside/leaguedesk/internal/domain/document"
	"github.com/pitchside/leaguedesk/internal/infrastructure/repository/file"
	"github.com/pitchside/leaguedesk/internal/infrastructure/repository/memory"
	"github.com/pitchside/leaguedesk/internal/infrastructure/repository/postgres"
	"github.com/pitchside/leaguedesk/internal/interfaces/httpapi"
	"github.com/pitchside/leaguedesk/internal/platform/cache"
	"github.com/pitchside/leaguedesk/internal/platform/logging"
	"github.com/pitchside/leaguedesk/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger, appLogger *logging.Logger) (*http.Server, error) {
	store, err := newDocumentStore(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("init document store: %w", err)
	}

	var statsCache *cache.Store
	if cfg.CacheEnabled {
		statsCache = cache.NewStore(cfg.CacheTTL)
	}

	collectionSvc := usecase.NewCollectionService(store, statsCache, appLogger)

	handler := httpapi.NewHandler(collectionSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func newDocumentStore(cfg config.Config, logger *logging.Logger) (document.Store, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return memory.NewDocumentStore(), nil
	case config.StorageFile:
		return file.NewDocumentStore(cfg.DataDir, logger)
	case config.StoragePostgres:
		db, err := postgres.Open(cfg.DBURL)
		if err != nil {
			return nil, err
		}
		return postgres.NewDocumentStore(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
