package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/storefront/config"
	"github.com/niksmo/storefront/internal/adapter/fixtures"
	"github.com/niksmo/storefront/internal/adapter/gemini"
	"github.com/niksmo/storefront/internal/adapter/httphandler"
	"github.com/niksmo/storefront/internal/adapter/kafka"
	"github.com/niksmo/storefront/internal/adapter/kvstore"
	"github.com/niksmo/storefront/internal/adapter/notify"
	"github.com/niksmo/storefront/internal/adapter/xlsx"
	"github.com/niksmo/storefront/internal/core/catalog"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/niksmo/storefront/internal/core/snapshot"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/redis/go-redis/v9"
	"github.com/twmb/franz-go/pkg/sr"
)

type notifications struct {
	notifier   port.Notifier
	feed       port.NotificationFeed
	processors []port.NotificationsProcessor
	producer   *kafka.EventsProducer
}

type App struct {
	ctx           context.Context
	cfg           config.Config
	catalog       *catalog.Catalog
	kv            port.KVStore
	kvCloser      func()
	notifications notifications
	suggester     *gemini.Suggester
	service       *service.Service
	httpServer    httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initCatalog()
	app.initStorage()
	app.initNotifications()
	app.initSuggester()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initCatalog() {
	const op = "App.initCatalog"

	var loader port.CatalogLoader = fixtures.New()
	if app.cfg.Catalog.Source == config.CatalogXLSX {
		loader = xlsx.New(app.cfg.Catalog.Path)
	}

	data, err := loader.LoadCatalog(app.ctx)
	if err != nil {
		app.fallDown(op, err)
	}
	c, err := catalog.New(data)
	if err != nil {
		app.fallDown(op, err)
	}

	slog.Info("catalog loaded",
		"op", op,
		"source", app.cfg.Catalog.Source,
		"products", len(c.Products()),
	)
	app.catalog = c
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	st := app.cfg.Storage
	switch st.Driver {
	case config.StorageRedis:
		kv, err := kvstore.NewRedis(app.ctx, &redis.Options{
			Addr:     st.RedisAddr,
			Password: st.RedisPassword,
			DB:       st.RedisDB,
		}, st.TTL)
		if err != nil {
			app.fallDown(op, err)
		}
		app.kv, app.kvCloser = kv, kv.Close
	case config.StoragePostgres:
		kv, err := kvstore.OpenPostgres(app.ctx, st.DSN)
		if err != nil {
			app.fallDown(op, err)
		}
		app.kv, app.kvCloser = kv, kv.Close
	case config.StorageSQLite:
		kv, err := kvstore.OpenSQLite(app.ctx, st.DSN)
		if err != nil {
			app.fallDown(op, err)
		}
		app.kv, app.kvCloser = kv, kv.Close
	default:
		app.kv, app.kvCloser = kvstore.NewMemory(), func() {}
	}

	slog.Info("snapshot storage is ready", "op", op, "driver", st.Driver)
}

func (app *App) initNotifications() {
	if app.cfg.Notifications.Backend == config.NotificationsKafka {
		app.initKafkaNotifications()
		return
	}

	inbox := notify.NewInbox(app.cfg.Notifications.FeedSize)
	app.notifications = notifications{
		notifier: notify.Fanout{notify.Log{}, inbox},
		feed:     inbox,
	}
}

func (app *App) initKafkaNotifications() {
	const op = "App.initKafkaNotifications"

	b := app.cfg.Broker
	sec := kafka.Security{
		CAFile:   b.TLS.CAFile,
		CertFile: b.TLS.CertFile,
		KeyFile:  b.TLS.KeyFile,
		User:     b.SASL.User,
		Pass:     b.SASL.Pass,
	}

	srClient, err := sr.NewClient(sr.URLs(b.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	serde, err := schema.NewSerdeStoreEventV1(
		app.ctx,
		schema.SubjectOpt(b.Topics.StoreEvents+"-value"),
		schema.SchemaIdentifierOpt(schema.NewRegistryIdentifier(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	producer, err := kafka.NewEventsProducer(
		kafka.ProducerClientOpt(app.ctx, b.SeedBrokers, b.Topics.StoreEvents, sec),
		kafka.ProducerSerdeOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	processor, err := kafka.NewNotificationsProcessor(
		kafka.NotificationsProcessorConfig{
			SeedBrokers: b.SeedBrokers,
			Topic:       b.Topics.StoreEvents,
			Group:       b.Consumers.NotificationsGroup,
			FeedSize:    app.cfg.Notifications.FeedSize,
			Serde:       serde,
			Security:    sec,
		},
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewNotificationsView(kafka.NotificationsViewConfig{
		SeedBrokers: b.SeedBrokers,
		Group:       b.Consumers.NotificationsGroup,
		Security:    sec,
	})
	if err != nil {
		app.fallDown(op, err)
	}

	app.notifications = notifications{
		notifier:   notify.Fanout{notify.Log{}, producer},
		feed:       view,
		processors: []port.NotificationsProcessor{processor, view},
		producer:   producer,
	}
}

func (app *App) initSuggester() {
	const op = "App.initSuggester"

	cfg := app.cfg.AI
	if cfg.Provider != config.AIGemini {
		slog.Info("AI suggestions are disabled", "op", op)
		return
	}

	s, err := gemini.New(
		app.ctx,
		cfg.APIKey,
		gemini.ModelOpt(cfg.Model),
		gemini.ConcurrencyOpt(cfg.Concurrency),
		gemini.IntervalOpt(cfg.MinInterval),
		gemini.TemperatureOpt(cfg.Temperature),
		gemini.AttemptsOpt(cfg.Attempts),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.suggester = s
}

func (app *App) initCoreService() {
	snapshots := snapshot.New(
		app.kv,
		snapshot.CartKeyOpt(app.cfg.Storage.CartKey),
		snapshot.WishlistKeyOpt(app.cfg.Storage.WishlistKey),
	)

	opts := []service.Opt{
		service.FeedOpt(app.notifications.feed),
		service.CheckoutDelayOpt(app.cfg.Checkout.Delay),
		service.SessionIdleOpt(app.cfg.Storage.SessionIdle),
		service.SuggestionLimitOpt(app.cfg.AI.SuggestionLimit),
		service.ProcessorsOpt(app.notifications.processors...),
	}
	if app.suggester != nil {
		opts = append(opts, service.SuggesterOpt(app.suggester))
	}

	app.service = service.New(
		app.catalog, snapshots, app.notifications.notifier, opts...,
	)
}

func (app *App) initInboundAdapters() {
	app.httpServer = httphandler.NewHTTPServer(
		app.cfg.HTTPServerAddr,
		httphandler.NewHandler(app.service),
		app.cfg.RequestTimeout,
	)
}

// Run blocks until the background processors are ready, then starts
// serving HTTP.
func (app *App) Run(stopFn context.CancelFunc) {
	app.service.Run(app.ctx, stopFn)
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	app.service.Close()
	if app.notifications.producer != nil {
		app.notifications.producer.Close()
	}
	if app.suggester != nil {
		app.suggester.Close()
	}
	app.kvCloser()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
