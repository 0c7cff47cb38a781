package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kaard/config"
	"kaard/database"
	"kaard/entities"
	"kaard/pkg/farmapi"
	"kaard/pkg/logger"
	"kaard/pkg/render"
	"kaard/pkg/resources"
	"kaard/pkg/shell"
	"kaard/pkg/telemetry"
	"kaard/pkg/view"
	"kaard/router"
	"kaard/web"

	// Auth
	authCtrlImp "kaard/pkg/auth/controllerImp"

	// Session
	sessionRepo "kaard/pkg/session/repository"
	sessionRepoImp "kaard/pkg/session/repositoryImp"
	"kaard/pkg/session/service"
	sessionSvcImp "kaard/pkg/session/serviceImp"

	// Pages
	dashCtrlImp "kaard/pkg/dashboard/controllerImp"
	resourceCtrlImp "kaard/pkg/resource/controllerImp"
	trackCtrlImp "kaard/pkg/tracking/controllerImp"

	// Health
	healthCtrlImp "kaard/pkg/health/controllerImp"
)

func main() {
	// 1) Config + logger
	cfg := config.Load()
	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()
	zl.Info("config loaded",
		zap.String("port", cfg.Port),
		zap.String("api", cfg.APIBaseURL),
		zap.String("session_store", cfg.SessionStore),
		zap.Duration("poll", cfg.PollInterval),
		zap.Bool("verify_session", cfg.VerifySession),
	)

	// 2) Farm API client
	api := farmapi.New(cfg.APIBaseURL, cfg.APITimeout, zl)
	checks := map[string]healthCtrlImp.Pinger{"farm_api": api}

	// 3) Session store: sqlite (default) or redis
	var (
		db    *gorm.DB
		store sessionRepo.Store
	)
	switch cfg.SessionStore {
	case "redis":
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()
		store = sessionRepoImp.NewRedis(rdb)
		checks["redis"] = healthCtrlImp.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	default:
		db, err = database.OpenSQLite(cfg.DBPath)
		if err != nil {
			zl.Fatal("open session db", zap.Error(err))
		}
		store = sessionRepoImp.NewSQLite(db)
	}

	var verifier service.Verifier
	if cfg.VerifySession {
		verifier = api
	}
	sess := sessionSvcImp.NewSessionService(store, api, verifier, zl.Named("session"))
	initCtx, cancelInit := context.WithTimeout(context.Background(), 10*time.Second)
	if err := sess.Init(initCtx); err != nil {
		zl.Warn("restore session", zap.Error(err))
	}
	cancelInit()

	// 4) Movement: live MQTT feed when configured, random jitter otherwise
	var mover view.Mover = view.NewJitter(cfg.SimulateBound, rand.NewSource(time.Now().UnixNano()))
	if cfg.MQTTBroker != "" {
		feed, err := telemetry.Connect(telemetry.Config{Broker: cfg.MQTTBroker, ClientID: cfg.MQTTClientID, Topic: cfg.MQTTTopic}, zl.Named("telemetry"))
		if err != nil {
			zl.Warn("location feed unavailable, using simulation", zap.Error(err))
		} else {
			defer feed.Close()
			mover = feed
		}
	}

	// 5) Views, one per tab
	vlog := zl.Named("view")
	dashboard := view.NewDashboardView(api, vlog)
	crops := view.NewCRUDView[entities.Crop](resources.Crops(), api.Crops(), vlog)
	equipment := view.NewCRUDView[entities.Equipment](resources.Equipment(), api.Equipment(), vlog)
	production := view.NewCRUDView[entities.ProductionRecord](resources.Production(), api.Production(), vlog)
	tracking := view.NewTrackingView(resources.Vehicles(), api.Vehicles(), mover, cfg.PollInterval, vlog)

	sh := shell.New(sess, map[shell.PageName]shell.Page{
		shell.Dashboard:  dashboard,
		shell.Crops:      crops,
		shell.Equipment:  equipment,
		shell.Production: production,
		shell.Vehicles:   tracking,
	}, zl.Named("shell"))

	// 6) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			zl.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
			)
			return nil
		},
	}))
	renderer, err := render.New(web.Templates)
	if err != nil {
		zl.Fatal("templates", zap.Error(err))
	}
	e.Renderer = renderer

	// 7) Controllers
	rlog := zl.Named("http")
	authCtrl := authCtrlImp.NewAuthController(sess, sh, rlog)
	dashCtrl := dashCtrlImp.NewDashboardController(sh, dashboard)
	trackCtrl := trackCtrlImp.NewTrackingController(sh, tracking, rlog)
	hCtrl := healthCtrlImp.NewHealthCtrl(db, checks)

	r := router.New(
		e,
		sess,
		authCtrl,
		dashCtrl,
		trackCtrl,
		hCtrl,
		resourceCtrlImp.New[entities.Crop](sh, shell.Crops, crops, rlog),
		resourceCtrlImp.New[entities.Equipment](sh, shell.Equipment, equipment, rlog),
		resourceCtrlImp.New[entities.ProductionRecord](sh, shell.Production, production, rlog),
		resourceCtrlImp.New[entities.Vehicle](sh, shell.Vehicles, tracking.CRUDView, rlog,
			resourceCtrlImp.WithTemplate[entities.Vehicle]("vehicles", trackCtrlImp.Body(tracking, cfg.PollInterval))),
	)

	// 8) Start, stop on signal
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		zl.Info("listening", zap.String("addr", ":"+cfg.Port))
		if err := r.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server", zap.Error(err))
		}
	}()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
	sh.Close()
	zl.Info("stopped")
}
