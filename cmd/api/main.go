package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jhoicas/fulfillment-api/docs"
	"github.com/jhoicas/fulfillment-api/internal/bootstrap"
	"github.com/jhoicas/fulfillment-api/internal/infrastructure/filewatch"
	httpRouter "github.com/jhoicas/fulfillment-api/internal/interfaces/http"
	"github.com/jhoicas/fulfillment-api/pkg/config"
	"github.com/jhoicas/fulfillment-api/pkg/logger"
	"github.com/jhoicas/fulfillment-api/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New("fulfillment")
	c, err := bootstrap.New(ctx, cfg, log, m)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar dependencias")
	}
	defer c.Close()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    16 * 1024 * 1024,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fulfillment API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrderSvc:           c.OrderSvc,
		ShipmentSvc:        c.ShipmentSvc,
		ShipmentImporter:   c.ShipmentImporter,
		ShipmentDraftSvc:   c.ShipmentDraftSvc,
		ProofOfDeliverySvc: c.ProofOfDeliverySvc,
		FileTemplateUC:     c.FileTemplateUC,
		TransferPropsUC:    c.TransferPropsUC,
		Metrics:            m,
		JWTSecret:          cfg.JWT.Secret,
	})

	// Directorios vigilados: el configurado más los de transferencia local registrados.
	dirs := []string{cfg.Shipment.WatchDir}
	localDirs, err := c.TransferPropsUC.LocalDirectories(ctx)
	if err != nil {
		log.Error().Err(err).Msg("leer directorios de transferencia local")
	}
	dirs = append(dirs, localDirs...)
	watcher := filewatch.New(c.ShipmentImporter, dirs, 2*time.Second, log.Component("filewatch"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return app.Listen(cfg.HTTP.Addr())
	})
	if len(watcher.Dirs()) > 0 {
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	} else {
		log.Info().Msg("sin directorios de transferencia local: watcher deshabilitado")
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("señal de apagado recibida, cerrando servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("servicio finalizado con error")
	}
	log.Info().Msg("aplicación detenida")
}
