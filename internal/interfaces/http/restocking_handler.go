package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stockflow-core/internal/application/forecast"
	"github.com/tu-usuario/stockflow-core/internal/application/restocking"
	"github.com/tu-usuario/stockflow-core/internal/domain/entity"
	"github.com/tu-usuario/stockflow-core/internal/infrastructure/memory"
)

// RestockingHandler expone recomendaciones y bonos de pedido.
type RestockingHandler struct {
	store       *memory.Store
	forecastCfg forecast.Config
	cfg         restocking.Config
}

// NewRestockingHandler construye el handler.
func NewRestockingHandler(store *memory.Store, forecastCfg forecast.Config, cfg restocking.Config) *RestockingHandler {
	return &RestockingHandler{store: store, forecastCfg: forecastCfg, cfg: cfg}
}

// Recommendations devuelve la lista de reaprovisionamiento ordenada por
// urgencia. ?preventive=true incluye las recomendaciones preventivas.
func (h *RestockingHandler) Recommendations(c *fiber.Ctx) error {
	preventive := c.QueryBool("preventive", false)

	var out []restocking.Recommendation
	_ = h.store.Do(func(inv *entity.Inventory) error {
		fc := forecast.NewEngine(inv, h.forecastCfg)
		out = restocking.NewEngine(inv, fc, h.cfg).Recommendations(preventive)
		return nil
	})
	if out == nil {
		out = []restocking.Recommendation{}
	}
	return c.JSON(out)
}

// PurchaseOrders genera los bonos de pedido a partir de las recomendaciones
// actuales. ?grouped=false emite un bono por artículo.
func (h *RestockingHandler) PurchaseOrders(c *fiber.Ctx) error {
	grouped := c.QueryBool("grouped", true)

	var out []restocking.PurchaseOrder
	_ = h.store.Do(func(inv *entity.Inventory) error {
		fc := forecast.NewEngine(inv, h.forecastCfg)
		engine := restocking.NewEngine(inv, fc, h.cfg)
		out = engine.PurchaseOrders(engine.Recommendations(false), grouped)
		return nil
	})
	if out == nil {
		out = []restocking.PurchaseOrder{}
	}
	return c.JSON(out)
}
