package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/creatorstack/storefront/config"
	"github.com/creatorstack/storefront/internal/auth"
	"github.com/creatorstack/storefront/internal/catalog"
	"github.com/creatorstack/storefront/internal/chat"
	"github.com/creatorstack/storefront/internal/checkout"
	"github.com/creatorstack/storefront/internal/dashboard"
	"github.com/creatorstack/storefront/internal/eventbus"
	"github.com/creatorstack/storefront/internal/storage"
	"github.com/creatorstack/storefront/internal/store"
	"github.com/creatorstack/storefront/internal/upload"
	"github.com/creatorstack/storefront/internal/webapi"
	"github.com/creatorstack/storefront/internal/webserver"
)

// Application wires the storefront's components together and owns their
// lifecycle.
type Application struct {
	appConfig *config.AppConfig

	records   store.RecordStore
	boltStore *store.BoltStore
	bus       *eventbus.Bus
	catalogSv *catalog.Service
	authSvc   *auth.Service
	files     *storage.Local
	flow      *upload.Flow
	dash      *dashboard.Service
	checkout  *checkout.Client
	chatSvc   *chat.Service
	hub       *chat.Hub
	sched     *cron.Cron
	web       *webserver.Server
}

// Ensure Application implements all provider interfaces
var (
	_ ConfigProvider    = (*Application)(nil)
	_ StoreProvider     = (*Application)(nil)
	_ BusProvider       = (*Application)(nil)
	_ CatalogProvider   = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig      { return a.appConfig }
func (a *Application) RecordStore() store.RecordStore { return a.records }
func (a *Application) Bus() *eventbus.Bus             { return a.bus }
func (a *Application) Catalog() *catalog.Service      { return a.catalogSv }
func (a *Application) Scheduler() *cron.Cron          { return a.sched }

// Init configures logging and builds every component. It must run before Run.
func (a *Application) Init() error {
	cfg := a.appConfig
	initLogger(cfg)

	if err := os.MkdirAll(cfg.System.Workdir, 0o755); err != nil {
		return fmt.Errorf("create workdir %s: %w", cfg.System.Workdir, err)
	}

	bolt, err := store.OpenBolt(cfg.RecordStorePath())
	if err != nil {
		return err
	}
	a.boltStore = bolt
	a.records = bolt

	a.bus = eventbus.New()
	a.catalogSv = catalog.New(a.records)
	a.authSvc = auth.New(cfg.Web.JwtSecret)

	a.files, err = storage.NewLocal(cfg.System.Workdir+"/files", cfg.Checkout.Origin)
	if err != nil {
		return err
	}

	a.flow = upload.NewFlow(a.records, a.bus, a.files)
	a.dash = dashboard.New(a.records, a.bus)
	a.checkout = checkout.NewClient(checkout.Config{
		Endpoint:  cfg.Checkout.Endpoint,
		SecretKey: cfg.Checkout.SecretKey,
		Origin:    cfg.Checkout.Origin,
	})

	a.chatSvc = chat.New(chat.NewLoopbackChannel())
	a.hub = chat.NewHub(a.chatSvc, a.bus)

	a.sched = cron.New()
	a.initJobs()

	a.web = webserver.New()
	a.web.MountFiles(a.files.Root())
	if cfg.Web.Pprof {
		a.web.MountDebug()
	}
	handler := webapi.NewHandler(a.catalogSv, a.flow, a.dash, a.checkout, a.chatSvc, a.hub, a.authSvc)
	handler.Register(a.web.Echo())

	return nil
}

// Run starts the scheduler, the chat hub, and the web server, then blocks
// until ctx is cancelled and everything has shut down.
func (a *Application) Run(ctx context.Context) error {
	a.sched.Start()
	go a.hub.Run(ctx)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.web.Start(a.appConfig.Web.Listen)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.web.Shutdown(shutdownCtx); err != nil {
		zap.L().Warn("web server shutdown error", zap.Error(err))
	}
	<-a.sched.Stop().Done()
	if err := a.boltStore.Close(); err != nil {
		zap.L().Warn("record store close error", zap.Error(err))
	}
	zap.L().Info("storefront stopped")
	return nil
}

func initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}
