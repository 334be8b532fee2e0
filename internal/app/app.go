package app

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/config"
	"github.com/abhisek/learnpath/internal/logging"
	"github.com/abhisek/learnpath/internal/mastery"
	"github.com/abhisek/learnpath/internal/metrics"
	"github.com/abhisek/learnpath/internal/recommend"
	"github.com/abhisek/learnpath/internal/store"
)

// MetricsNamespace prefixes every exported metric.
const MetricsNamespace = "learnpath"

// Options configures App construction.
type Options struct {
	Config config.Config

	// DBPath is the SQLite database file to open.
	DBPath string

	// Logger overrides the logger built from Config.LogLevel.
	Logger *zap.Logger
}

// App wires the store, the mastery service and the recommendation engine
// for one process.
type App struct {
	Config  config.Config
	Store   *store.Store
	Logger  *zap.Logger
	Metrics *metrics.Collector

	Catalog *catalog.StoreLoader
	Mastery *mastery.Service
	Engine  *recommend.Engine
}

// New opens the store at opts.DBPath and builds all services.
func New(opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		l, err := logging.New(opts.Config.LogLevel)
		if err != nil {
			return nil, err
		}
		logger = l
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	collector := metrics.NewCollector(MetricsNamespace)
	concepts := catalog.NewStoreLoader(st.ConceptRepo(), logger.Named("catalog"))

	svc, err := mastery.NewService(st.MasteryRepo(), opts.Config.Mastery,
		mastery.WithLogger(logger.Named("mastery")),
		mastery.WithMetrics(collector),
	)
	if err != nil {
		st.Close()
		return nil, err
	}

	engine, err := recommend.NewEngine(concepts, svc, opts.Config.Recommend,
		recommend.WithLogger(logger.Named("recommend")),
		recommend.WithMetrics(collector),
	)
	if err != nil {
		st.Close()
		return nil, err
	}

	logger.Debug("opened store", zap.String("path", opts.DBPath))
	return &App{
		Config:  opts.Config,
		Store:   st,
		Logger:  logger,
		Metrics: collector,
		Catalog: concepts,
		Mastery: svc,
		Engine:  engine,
	}, nil
}

// Close writes the metrics textfile if one is configured and closes the
// store.
func (a *App) Close() error {
	var errs []error
	if path := a.Config.MetricsFile; path != "" {
		if err := a.Metrics.WriteTextfile(path); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}
