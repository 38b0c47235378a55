package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/stockflow-core/internal/application/dto"
	"github.com/tu-usuario/stockflow-core/internal/domain"
	"github.com/tu-usuario/stockflow-core/internal/domain/entity"
	"github.com/tu-usuario/stockflow-core/internal/infrastructure/memory"
)

// ArticleHandler maneja las peticiones HTTP de artículos.
type ArticleHandler struct {
	store *memory.Store
}

// NewArticleHandler construye el handler.
func NewArticleHandler(store *memory.Store) *ArticleHandler {
	return &ArticleHandler{store: store}
}

// Create da de alta un artículo nuevo.
func (h *ArticleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateArticleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el nombre es obligatorio"})
	}

	var out dto.ArticleResponse
	_ = h.store.Do(func(inv *entity.Inventory) error {
		article := entity.NewArticle(in.Name, in.Reference, in.Category)
		article.Quantity = in.Quantity
		article.MinThreshold = in.MinThreshold
		if in.OptimalStock > 0 {
			article.OptimalStock = in.OptimalStock
		}
		article.PurchasePrice = in.PurchasePrice
		article.SalePrice = in.SalePrice
		article.Supplier = in.Supplier
		if in.LeadTimeDays > 0 {
			article.LeadTimeDays = in.LeadTimeDays
		}
		article.Location = in.Location
		inv.AddArticle(article)
		out = dto.NewArticleResponse(article)
		return nil
	})
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List devuelve los artículos, con filtros opcionales por categoría,
// estado de stock y búsqueda libre por nombre o referencia.
func (h *ArticleHandler) List(c *fiber.Ctx) error {
	category := c.Query("category")
	status := c.Query("status")
	term := c.Query("q")

	var out []dto.ArticleResponse
	_ = h.store.Do(func(inv *entity.Inventory) error {
		articles := inv.Articles
		switch {
		case term != "":
			articles = inv.SearchArticles(term)
		case category != "":
			articles = inv.FilterByCategory(category)
		case status != "":
			articles = inv.FilterByStatus(entity.StockStatus(status))
		}
		out = make([]dto.ArticleResponse, 0, len(articles))
		for _, a := range articles {
			out = append(out, dto.NewArticleResponse(a))
		}
		return nil
	})
	return c.JSON(out)
}

// GetByID devuelve un artículo por su ID.
func (h *ArticleHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")

	var out dto.ArticleResponse
	err := h.store.Do(func(inv *entity.Inventory) error {
		article, err := inv.Article(id)
		if err != nil {
			return err
		}
		out = dto.NewArticleResponse(article)
		return nil
	})
	if err != nil {
		return articleError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina un artículo y sus movimientos en cascada.
func (h *ArticleHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")

	var removed bool
	_ = h.store.Do(func(inv *entity.Inventory) error {
		removed = inv.RemoveArticle(id)
		return nil
	})
	if !removed {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// articleError mapea errores de dominio a respuestas HTTP.
func articleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrArticleNotFound), errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}
