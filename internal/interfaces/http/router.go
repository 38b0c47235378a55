package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stockflow-core/internal/application/forecast"
	"github.com/tu-usuario/stockflow-core/internal/application/restocking"
	"github.com/tu-usuario/stockflow-core/internal/infrastructure/memory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Store       *memory.Store
	ForecastCfg forecast.Config
	RestockCfg  restocking.Config
	HorizonDays int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Artículos
	articles := api.Group("/articles")
	articleHandler := NewArticleHandler(deps.Store)
	articles.Post("/", articleHandler.Create)
	articles.Get("/", articleHandler.List)
	articles.Get("/:id", articleHandler.GetByID)
	articles.Delete("/:id", articleHandler.Delete)

	// Movimientos y estadísticas del libro
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Store)
	invGroup.Post("/movements", inventoryHandler.RecordMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/stats", inventoryHandler.Stats)

	// Previsiones y anomalías
	fcGroup := api.Group("/forecast")
	forecastHandler := NewForecastHandler(deps.Store, deps.ForecastCfg)
	fcGroup.Get("/anomalies", forecastHandler.Anomalies)
	fcGroup.Post("/refresh", forecastHandler.Refresh)
	fcGroup.Get("/:articleId", forecastHandler.Forecast)
	fcGroup.Get("/:articleId/stockout", forecastHandler.Stockout)

	// Reaprovisionamiento
	restockGroup := api.Group("/restocking")
	restockingHandler := NewRestockingHandler(deps.Store, deps.ForecastCfg, deps.RestockCfg)
	restockGroup.Get("/recommendations", restockingHandler.Recommendations)
	restockGroup.Get("/purchase-orders", restockingHandler.PurchaseOrders)

	// Escenarios what-if
	scGroup := api.Group("/scenarios")
	scenarioHandler := NewScenarioHandler(deps.Store, deps.ForecastCfg, deps.HorizonDays)
	scGroup.Post("/compare", scenarioHandler.Compare)
	scGroup.Get("/predefined", scenarioHandler.Predefined)
	scGroup.Get("/impact/:articleId", scenarioHandler.Impact)
}
