package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stockflow-core/internal/application/forecast"
	"github.com/tu-usuario/stockflow-core/internal/domain/entity"
	"github.com/tu-usuario/stockflow-core/internal/infrastructure/memory"
)

// ForecastHandler expone previsiones, anomalías y proyecciones de ruptura.
type ForecastHandler struct {
	store *memory.Store
	cfg   forecast.Config
}

// NewForecastHandler construye el handler.
func NewForecastHandler(store *memory.Store, cfg forecast.Config) *ForecastHandler {
	return &ForecastHandler{store: store, cfg: cfg}
}

// Forecast devuelve la previsión de ventas de un artículo.
func (h *ForecastHandler) Forecast(c *fiber.Ctx) error {
	id := c.Params("articleId")

	var out *forecast.Forecast
	err := h.store.Do(func(inv *entity.Inventory) error {
		var err error
		out, err = forecast.NewEngine(inv, h.cfg).Forecast(id)
		return err
	})
	if err != nil {
		return articleError(c, err)
	}
	return c.JSON(out)
}

// Anomalies devuelve la lista de anomalías de todo el inventario.
func (h *ForecastHandler) Anomalies(c *fiber.Ctx) error {
	var out []forecast.Anomaly
	_ = h.store.Do(func(inv *entity.Inventory) error {
		out = forecast.NewEngine(inv, h.cfg).DetectAnomalies()
		return nil
	})
	if out == nil {
		out = []forecast.Anomaly{}
	}
	return c.JSON(out)
}

// Stockout devuelve la proyección de ruptura de un artículo.
func (h *ForecastHandler) Stockout(c *fiber.Ctx) error {
	id := c.Params("articleId")

	var out *forecast.StockoutProjection
	err := h.store.Do(func(inv *entity.Inventory) error {
		var err error
		out, err = forecast.NewEngine(inv, h.cfg).ProjectStockout(id)
		return err
	})
	if err != nil {
		return articleError(c, err)
	}
	return c.JSON(out)
}

// Refresh recalcula las estadísticas cacheadas de todos los artículos.
// Es idempotente: repetir la llamada no cambia el resultado.
func (h *ForecastHandler) Refresh(c *fiber.Ctx) error {
	_ = h.store.Do(func(inv *entity.Inventory) error {
		forecast.NewEngine(inv, h.cfg).RefreshAllStats()
		return nil
	})
	return c.JSON(fiber.Map{"status": "ok"})
}
