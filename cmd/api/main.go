package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/inventory-stock-api/docs"
	"github.com/jhoicas/inventory-stock-api/internal/application/inventory"
	"github.com/jhoicas/inventory-stock-api/internal/application/usecase"
	"github.com/jhoicas/inventory-stock-api/internal/infrastructure/cache"
	"github.com/jhoicas/inventory-stock-api/internal/infrastructure/messaging"
	"github.com/jhoicas/inventory-stock-api/internal/infrastructure/metrics"
	"github.com/jhoicas/inventory-stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/inventory-stock-api/internal/interfaces/http"
	"github.com/jhoicas/inventory-stock-api/pkg/config"
	"github.com/jhoicas/inventory-stock-api/pkg/logger"
	"github.com/jhoicas/inventory-stock-api/pkg/tracing"
)

// @title        Inventory Stock API
// @version      1.0
// @description  Actualización de stock por lotes (síncrona y por cola) con auditoría de lotes asíncronos.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Int("workers", cfg.Pipeline.Workers).
		Bool("kafka", cfg.Kafka.Enabled()).
		Bool("auth", cfg.JWT.Enabled()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	shutdownTracing, err := tracing.Setup(ctx, cfg.App.Name, cfg.Tracing.OTLPEndpoint)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar trazas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.Pipeline.Workers)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("crear esquema")
	}

	itemRepo := postgres.NewItemRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	pipelineMetrics := metrics.NewPipelineMetrics(reg)

	updater := inventory.NewItemUpdater(stockRepo, cfg.Pipeline.ItemTimeout, log.Component("inventory"))
	coordinator := inventory.NewBatchCoordinator(updater, log.Component("inventory"),
		inventory.WithWorkers(cfg.Pipeline.Workers),
		inventory.WithObserver(pipelineMetrics),
	)
	syncUC := inventory.NewSyncUpdateUseCase(coordinator, log.Component("inventory"))

	// Sin brokers el camino asíncrono responde 503.
	var publisher inventory.QueuePublisher
	var kafkaPublisher *messaging.Publisher
	if cfg.Kafka.Enabled() {
		kafkaPublisher = messaging.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log.Component("kafka"))
		publisher = kafkaPublisher
	}
	dispatcher := inventory.NewAsyncDispatcher(publisher, cfg.Pipeline.EnqueueTimeout, log.Component("inventory"))

	var auditCache inventory.AuditCache
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		auditCache = cache.NewRedisAuditCache(redisClient, cfg.Redis.AuditTTL)
	}
	auditQuery := inventory.NewAuditQueryUseCase(auditRepo, auditCache, log.Component("inventory"))

	var consumer *messaging.Consumer
	if cfg.Kafka.Enabled() {
		queueConsumer := inventory.NewQueueConsumer(coordinator, auditRepo, log.Component("inventory"))
		consumer = messaging.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, queueConsumer, log.Component("kafka"))
		consumer.Start(ctx)
	}

	itemUC := usecase.NewItemUseCase(itemRepo, txRunner, log.Component("catalog"))
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, log.Component("catalog"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventory Stock API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName:   cfg.App.Name,
		SyncUpdate:    syncUC,
		AsyncDispatch: dispatcher,
		AuditQuery:    auditQuery,
		ItemUC:        itemUC,
		CategoryUC:    categoryUC,
		JWTSecret:     cfg.JWT.Secret,
		Metrics:       promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
		HealthCheck:   pool.Ping,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	// El consumidor termina el lote en curso, guarda su auditoría y confirma el offset antes de cerrar.
	if consumer != nil {
		if err := consumer.Stop(); err != nil {
			log.Error().Err(err).Msg("cerrar consumidor kafka")
		}
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar productor kafka")
		}
	}
	if redisClient != nil {
		_ = redisClient.Close()
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("cerrar trazas")
	}

	log.Info().Msg("aplicación detenida")
}
