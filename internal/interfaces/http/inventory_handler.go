package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stockflow-core/internal/application/dto"
	"github.com/tu-usuario/stockflow-core/internal/domain/entity"
	"github.com/tu-usuario/stockflow-core/internal/infrastructure/memory"
)

// InventoryHandler maneja los movimientos de stock y las estadísticas
// globales del inventario.
type InventoryHandler struct {
	store *memory.Store
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(store *memory.Store) *InventoryHandler {
	return &InventoryHandler{store: store}
}

// RecordMovement registra un movimiento contra el libro.
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ArticleID == "" || in.Quantity < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}

	var out dto.MovementResponse
	err := h.store.Do(func(inv *entity.Inventory) error {
		m := entity.NewMovement(
			in.ArticleID,
			entity.ParseMovementKind(in.Kind),
			in.Quantity,
			in.UnitPrice,
			entity.ParseMovementReason(in.Reason),
		)
		m.Operator = in.Operator
		m.Comment = in.Comment

		recorded, err := inv.RecordMovement(m)
		if err != nil {
			return err
		}
		out = dto.NewMovementResponse(recorded)
		return nil
	})
	if err != nil {
		return articleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements devuelve movimientos filtrados por artículo y/o periodo
// (from/to en RFC 3339 o fecha simple, límites inclusivos).
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	articleID := c.Query("article_id")
	from, okFrom := parseDate(c.Query("from"))
	to, okTo := parseDate(c.Query("to"))

	var out []dto.MovementResponse
	_ = h.store.Do(func(inv *entity.Inventory) error {
		var movements []*entity.Movement
		switch {
		case okFrom && okTo:
			movements = inv.MovementsBetween(from, to.Add(24*time.Hour-time.Nanosecond))
		case articleID != "":
			movements = inv.ArticleMovements(articleID, 0)
		default:
			movements = inv.Movements
		}
		out = make([]dto.MovementResponse, 0, len(movements))
		for _, m := range movements {
			if articleID != "" && m.ArticleID != articleID {
				continue
			}
			out = append(out, dto.NewMovementResponse(m))
		}
		return nil
	})
	return c.JSON(out)
}

// Stats devuelve las estadísticas globales del inventario.
func (h *InventoryHandler) Stats(c *fiber.Ctx) error {
	var stats entity.GlobalStats
	_ = h.store.Do(func(inv *entity.Inventory) error {
		stats = inv.Stats()
		return nil
	})
	return c.JSON(fiber.Map{
		"total_articles":       stats.TotalArticles,
		"active_articles":      stats.ActiveArticles,
		"total_stock_value":    stats.TotalStockValue,
		"potential_sale_value": stats.PotentialSaleValue,
		"potential_margin":     stats.PotentialMargin,
		"by_status":            stats.ByStatus,
		"by_category":          stats.ByCategory,
		"total_movements":      stats.TotalMovements,
	})
}

// parseDate acepta RFC 3339 o fecha simple YYYY-MM-DD.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}
