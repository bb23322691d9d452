package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/Gunvolt24/partswarm/config"
	"github.com/Gunvolt24/partswarm/internal/kafka"
	"github.com/Gunvolt24/partswarm/internal/ports"
	"github.com/Gunvolt24/partswarm/internal/swarm"
	rest "github.com/Gunvolt24/partswarm/internal/transport/http"
	"github.com/Gunvolt24/partswarm/pkg/logger"
	"github.com/Gunvolt24/partswarm/pkg/metrics"
	"github.com/Gunvolt24/partswarm/pkg/telemetry"
)

// Runner — фоновый компонент, работающий до отмены контекста (janitor).
type Runner interface {
	Run(ctx context.Context) error
}

// App — собранное приложение и его внешние интерфейсы (HTTP, consumer).
type App struct {
	Logger          ports.Logger   // логгер
	HTTPServer      *http.Server   // HTTP-сервер
	MetricsServer   *http.Server   // отдельный сервер /metrics (nil - метрики в основном роутере)
	PeerFeed        ports.PeerFeed // записи пиров из Kafka (nil - рассылка не через Kafka)
	Janitor         Runner         // очистка истёкших записей
	gracefulTimeout time.Duration  // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	zl, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}
	logg := zl.With("node", cfg.Node.ID)
	closeLogger := func() {
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Описания вендоров.
	vendors, err := config.LoadVendors(cfg.Lookup.VendorsFile)
	if err != nil {
		closeLogger()
		return nil, func() {}, err
	}

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию - no-op.
	shutdownTrace := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			NodeID:      cfg.Node.ID,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
		}
	}

	// Узел: вендоры, кэш Swarm, координатор.
	core, cleanupCore, err := BuildCore(ctx, cfg, vendors, logg)
	if err != nil {
		_ = shutdownTrace(context.Background())
		closeLogger()
		return nil, func() {}, err
	}

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер. Пиры обслуживаются, только если узел участвует в Swarm.
	var peerSvc ports.PeerService
	if cfg.Node.ServePeers {
		peerSvc = core.Swarm
	}
	httpHandler := rest.NewHandler(core.Lookup, peerSvc, logg, cfg.Lookup.Timeout)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	var metricsSrv *http.Server
	if cfg.Metrics.Addr != "" && cfg.Metrics.Addr != cfg.HTTP.Addr {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: cfg.Metrics.Addr, Handler: mux, ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout}
	}

	// Консьюмер Kafka - только при рассылке через Kafka.
	var consumer *kafka.Consumer
	if strings.EqualFold(strings.TrimSpace(cfg.Node.Broadcast), "kafka") {
		kafkaCfg := kafka.ConsumerConfig{
			Brokers:        cfg.Kafka.Brokers,
			GroupID:        cfg.Kafka.GroupID,
			Topic:          cfg.Kafka.Topic,
			StartOffset:    cfg.Kafka.StartOffset,
			NodeID:         cfg.Node.ID,
			ProcessTimeout: cfg.Kafka.ProcessTimeout,
			RetryInitial:   cfg.Kafka.RetryInitial,
			RetryMax:       cfg.Kafka.RetryMax,
		}
		consumer = kafka.NewConsumer(&kafkaCfg, core.Swarm, logg)
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		MetricsServer:   metricsSrv,
		Janitor:         swarm.NewJanitor(core.Local, core.Store, logg, cfg.Cache.JanitorInterval),
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}
	if consumer != nil {
		app.PeerFeed = consumer
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if consumer != nil {
			if err := consumer.Close(); err != nil {
				logg.Warnf(ctx, "kafka consumer close error: %v", err)
			}
		}
		cleanupCore()
		closeLogger()
	}

	return app, cleanup, nil
}

// Run держит узел до отмены ctx или до первой ошибки компонента, затем
// останавливает серверы и поток записей пиров. Отмена ctx ошибкой не считается.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if a.PeerFeed != nil {
		g.Go(func() error {
			a.Logger.Infof(ctx, "peer feed starting")
			return component("peer feed", a.PeerFeed.Run(gctx))
		})
	}
	if a.Janitor != nil {
		g.Go(func() error { return component("janitor", a.Janitor.Run(gctx)) })
	}
	for name, srv := range a.servers() {
		g.Go(func() error {
			a.Logger.Infof(ctx, "%s server listening addr=%s", name, srv.Addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("%s server: %w", name, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		a.shutdown(ctx)
		return nil
	})

	err := g.Wait()
	if err != nil {
		a.Logger.Warnf(ctx, "node stopped: %v", err)
	} else {
		a.Logger.Infof(ctx, "node stopped")
	}
	return err
}

func (a *App) servers() map[string]*http.Server {
	out := map[string]*http.Server{"http": a.HTTPServer}
	if a.MetricsServer != nil {
		out["metrics"] = a.MetricsServer
	}
	return out
}

// shutdown - серверы дорабатывают текущие запросы не дольше gracefulTimeout.
func (a *App) shutdown(ctx context.Context) {
	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}
	sctx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	for name, srv := range a.servers() {
		if err := srv.Shutdown(sctx); err != nil {
			a.Logger.Warnf(ctx, "%s server shutdown: %v", name, err)
		}
	}
	if a.PeerFeed != nil {
		if err := a.PeerFeed.Close(); err != nil {
			a.Logger.Warnf(ctx, "peer feed close: %v", err)
		}
	}
}

// component - остановка по отмене контекста штатная.
func component(name string, err error) error {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return fmt.Errorf("%s: %w", name, err)
}
