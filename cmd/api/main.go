package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockflow-core/internal/application/forecast"
	"github.com/tu-usuario/stockflow-core/internal/application/restocking"
	"github.com/tu-usuario/stockflow-core/internal/domain/entity"
	"github.com/tu-usuario/stockflow-core/internal/infrastructure/memory"
	httpRouter "github.com/tu-usuario/stockflow-core/internal/interfaces/http"
	"github.com/tu-usuario/stockflow-core/pkg/config"
	"github.com/tu-usuario/stockflow-core/pkg/logger"
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

	// El inventario vive en memoria; la persistencia es un colaborador
	// externo que construye y guarda el agregado completo.
	inv := entity.NewInventory("Inventario principal")
	store := memory.New(inv)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Store: store,
		ForecastCfg: forecast.Config{
			WindowDays:   cfg.Forecast.WindowDays,
			SafetyFactor: cfg.Forecast.SafetyFactor,
		},
		RestockCfg: restocking.Config{
			FixedOrderCost: decimal.NewFromFloat(cfg.Restock.FixedOrderCost),
			HoldingRate:    cfg.Restock.HoldingRate,
		},
		HorizonDays: cfg.Scenario.HorizonDays,
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

	log.Info().Msg("aplicación detenida")
}
