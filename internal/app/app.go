package app

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/niksmo/catalog/config"
	"github.com/niksmo/catalog/internal/adapter"
	"github.com/niksmo/catalog/internal/adapter/httphandler"
	"github.com/niksmo/catalog/internal/adapter/kafka"
	"github.com/niksmo/catalog/internal/adapter/storage"
	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/mediator"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/internal/core/service"
	"github.com/niksmo/catalog/pkg/retry"
	"github.com/niksmo/catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

const (
	storageConnectAttempts = 5
	storageConnectDelay    = 500 * time.Millisecond
)

type App struct {
	ctx        context.Context
	cfg        config.Config
	db         storage.MongoDB
	events     port.ProductEventsProducer
	closeFns   []func()
	mediator   *mediator.Mediator
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStorage()
	app.initEvents()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	dbCfg := app.cfg.Database
	retryCfg := retry.RetryConfig{
		MaxAttempts: storageConnectAttempts,
		Backoff:     retry.ExponentialBackoff(storageConnectDelay),
		ShouldRetry: func(err error) bool {
			slog.Warn("database is not ready", "op", op, "err", err)
			return errors.Is(err, domain.ErrUnavailable)
		},
	}

	db, err := retry.DoWithResult(app.ctx, retryCfg, func() (storage.MongoDB, error) {
		return storage.NewMongoDB(app.ctx, storage.Config{
			URI:                dbCfg.ConnectionString,
			Database:           dbCfg.DatabaseName,
			ProductsCollection: dbCfg.ProductsCollection,
			BrandsCollection:   dbCfg.BrandsCollection,
			TypesCollection:    dbCfg.TypesCollection,
			ConnectTimeout:     dbCfg.ConnectTimeout,
		})
	})
	if err != nil {
		app.fallDown(op, err)
	}
	app.db = db
}

func (app *App) initEvents() {
	const op = "App.initEvents"

	if !app.cfg.EventsEnabled() {
		slog.Info("product events are disabled, no seed brokers", "op", op)
		return
	}

	srClient, err := sr.NewClient(sr.URLs(app.cfg.Broker.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	topic := app.cfg.Broker.ProductEventsTopic
	serde, err := schema.NewSerdeProductEventV1(
		app.ctx,
		schema.SubjectOpt(topic+"-value"),
		schema.SchemaIdentifierOpt(schema.NewSchemaIdentifier(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewProductEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx, app.cfg.Broker.SeedBrokers, topic, app.brokerTLS(),
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.events = producer
	app.closeFns = append(app.closeFns, producer.Close)
}

func (app *App) brokerTLS() *tls.Config {
	const op = "App.brokerTLS"

	if !app.cfg.TLSEnabled() {
		return nil
	}
	c := app.cfg.TLS
	tlsCfg, err := adapter.MakeTLSConfig(c.CA, c.Cert, c.Key)
	if err != nil {
		app.fallDown(op, err)
	}
	return tlsCfg
}

func (app *App) initCoreService() {
	repo := storage.NewCatalogRepository(app.db)

	app.mediator = mediator.New(mediator.Recover, mediator.Log, mediator.Validate)
	service.New(repo, repo, repo, app.events).Register(app.mediator)
}

func (app *App) initInboundAdapters() {
	httpCfg := app.cfg.HTTP
	handler := httphandler.NewRouter(app.mediator, app.db, httpCfg.HandlerTimeout)

	app.httpServer = httphandler.NewHTTPServer(httphandler.ServerConfig{
		Addr:              httpCfg.Addr,
		HandlerTimeout:    httpCfg.HandlerTimeout,
		ReadHeaderTimeout: httpCfg.ReadHeaderTimeout,
		IdleTimeout:       httpCfg.IdleTimeout,
	}, handler)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running", "addr", app.cfg.HTTP.Addr)
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	for _, closeFn := range app.closeFns {
		closeFn()
	}
	app.db.Close(ctx)

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
