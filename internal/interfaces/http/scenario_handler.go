package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stockflow-core/internal/application/dto"
	"github.com/tu-usuario/stockflow-core/internal/application/forecast"
	"github.com/tu-usuario/stockflow-core/internal/application/scenario"
	"github.com/tu-usuario/stockflow-core/internal/domain/entity"
	"github.com/tu-usuario/stockflow-core/internal/infrastructure/memory"
)

// ScenarioHandler expone la simulación y comparación de escenarios what-if.
type ScenarioHandler struct {
	store       *memory.Store
	forecastCfg forecast.Config
	horizonDays int
}

// NewScenarioHandler construye el handler.
func NewScenarioHandler(store *memory.Store, forecastCfg forecast.Config, horizonDays int) *ScenarioHandler {
	if horizonDays <= 0 {
		horizonDays = scenario.DefaultHorizonDays
	}
	return &ScenarioHandler{store: store, forecastCfg: forecastCfg, horizonDays: horizonDays}
}

// Compare simula los escenarios recibidos junto a la línea base y devuelve
// los resultados ordenados por puntuación.
func (h *ScenarioHandler) Compare(c *fiber.Ctx) error {
	var in dto.CompareScenariosRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	days := in.Days
	if days <= 0 {
		days = h.horizonDays
	}

	var out []scenario.SimulationResult
	_ = h.store.Do(func(inv *entity.Inventory) error {
		fc := forecast.NewEngine(inv, h.forecastCfg)
		out = scenario.NewEngine(inv, fc).Compare(in.Scenarios, days)
		return nil
	})
	return c.JSON(out)
}

// Predefined devuelve el catálogo de escenarios estándar.
func (h *ScenarioHandler) Predefined(c *fiber.Ctx) error {
	return c.JSON(scenario.PredefinedScenarios())
}

// Impact analiza el efecto de una ruptura prolongada de un artículo.
// ?days ajusta la duración de la ruptura simulada (por defecto 30).
func (h *ScenarioHandler) Impact(c *fiber.Ctx) error {
	id := c.Params("articleId")
	days := c.QueryInt("days", 30)

	var out *scenario.StockoutImpact
	err := h.store.Do(func(inv *entity.Inventory) error {
		fc := forecast.NewEngine(inv, h.forecastCfg)
		var err error
		out, err = scenario.NewEngine(inv, fc).Impact(id, days)
		return err
	})
	if err != nil {
		return articleError(c, err)
	}
	return c.JSON(out)
}
