package entity

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockflow-core/internal/domain"
)

// Inventory es la raíz de agregado: posee los artículos y el libro completo
// de movimientos. Invariante: la cantidad de cada artículo es el efecto
// acumulado de sus movimientos desde la creación (entradas suman, salidas
// restan, corrección e inventario físico fijan la cantidad en absoluto).
// No hay bloqueo interno: los llamadores serializan las mutaciones.
type Inventory struct {
	ID        string
	Name      string
	Articles  []*Article
	Movements []*Movement
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewInventory crea un inventario vacío.
func NewInventory(name string) *Inventory {
	now := time.Now()
	return &Inventory{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddArticle agrega un artículo al inventario.
func (inv *Inventory) AddArticle(a *Article) *Article {
	inv.Articles = append(inv.Articles, a)
	inv.touch()
	return a
}

// RemoveArticle elimina un artículo y, en cascada, todos sus movimientos
// (evita historial huérfano).
func (inv *Inventory) RemoveArticle(articleID string) bool {
	found := false
	kept := inv.Articles[:0]
	for _, a := range inv.Articles {
		if a.ID == articleID {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	inv.Articles = kept
	if !found {
		return false
	}

	movs := inv.Movements[:0]
	for _, m := range inv.Movements {
		if m.ArticleID != articleID {
			movs = append(movs, m)
		}
	}
	inv.Movements = movs
	inv.touch()
	return true
}

// Article busca un artículo por ID. Devuelve ErrArticleNotFound si no existe.
func (inv *Inventory) Article(articleID string) (*Article, error) {
	for _, a := range inv.Articles {
		if a.ID == articleID {
			return a, nil
		}
	}
	return nil, domain.ErrArticleNotFound
}

// SearchArticles busca por nombre o referencia (sin distinguir mayúsculas).
func (inv *Inventory) SearchArticles(term string) []*Article {
	term = strings.ToLower(term)
	var out []*Article
	for _, a := range inv.Articles {
		if strings.Contains(strings.ToLower(a.Name), term) ||
			strings.Contains(strings.ToLower(a.Reference), term) {
			out = append(out, a)
		}
	}
	return out
}

// FilterByCategory devuelve los artículos de una categoría.
func (inv *Inventory) FilterByCategory(category string) []*Article {
	var out []*Article
	for _, a := range inv.Articles {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return out
}

// FilterByStatus devuelve los artículos con el estado de stock indicado.
func (inv *Inventory) FilterByStatus(status StockStatus) []*Article {
	var out []*Article
	for _, a := range inv.Articles {
		if a.Status() == status {
			out = append(out, a)
		}
	}
	return out
}

// RecordMovement aplica un movimiento al stock y lo agrega al libro.
// Una salida que dejaría la cantidad negativa falla con ErrInsufficientStock
// sin aplicar nada (no hay aplicación parcial).
func (inv *Inventory) RecordMovement(m *Movement) (*Movement, error) {
	article, err := inv.Article(m.ArticleID)
	if err != nil {
		return nil, err
	}

	switch m.Kind {
	case MovementIn:
		article.Quantity += m.Quantity
	case MovementOut:
		if article.Quantity-m.Quantity < 0 {
			return nil, domain.ErrInsufficientStock
		}
		article.Quantity -= m.Quantity
	case MovementCorrection, MovementCount:
		// Corrección e inventario físico fijan la cantidad en absoluto.
		article.Quantity = m.Quantity
	default:
		return nil, domain.ErrInvalidInput
	}

	article.UpdatedAt = time.Now()
	inv.Movements = append(inv.Movements, m)
	inv.touch()
	return m, nil
}

// AddStock registra una entrada de stock.
func (inv *Inventory) AddStock(articleID string, quantity int, unitPrice decimal.Decimal, reason MovementReason, comment string) (*Movement, error) {
	m := NewMovement(articleID, MovementIn, quantity, unitPrice, reason)
	m.Comment = comment
	return inv.RecordMovement(m)
}

// RemoveStock registra una salida de stock.
func (inv *Inventory) RemoveStock(articleID string, quantity int, unitPrice decimal.Decimal, reason MovementReason, comment string) (*Movement, error) {
	m := NewMovement(articleID, MovementOut, quantity, unitPrice, reason)
	m.Comment = comment
	return inv.RecordMovement(m)
}

// ArticleMovements devuelve los movimientos de un artículo, del más reciente
// al más antiguo. limit <= 0 devuelve todos.
func (inv *Inventory) ArticleMovements(articleID string, limit int) []*Movement {
	var out []*Movement
	for _, m := range inv.Movements {
		if m.ArticleID == articleID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if limit > 0 && len(out) > limit {
		return out[:limit]
	}
	return out
}

// MovementsBetween devuelve los movimientos del periodo [from, to] inclusive.
func (inv *Inventory) MovementsBetween(from, to time.Time) []*Movement {
	var out []*Movement
	for _, m := range inv.Movements {
		if !m.Date.Before(from) && !m.Date.After(to) {
			out = append(out, m)
		}
	}
	return out
}

// GlobalStats resume el estado del inventario completo.
type GlobalStats struct {
	TotalArticles      int
	ActiveArticles     int
	TotalStockValue    decimal.Decimal
	PotentialSaleValue decimal.Decimal
	PotentialMargin    decimal.Decimal
	ByStatus           map[StockStatus]int
	ByCategory         map[string]CategoryStats
	TotalMovements     int
}

// CategoryStats acumula artículos y valor de stock por categoría.
type CategoryStats struct {
	Count      int
	StockValue decimal.Decimal
}

// Stats calcula las estadísticas globales del inventario (solo lectura).
func (inv *Inventory) Stats() GlobalStats {
	stats := GlobalStats{
		TotalArticles:      len(inv.Articles),
		TotalStockValue:    decimal.Zero,
		PotentialSaleValue: decimal.Zero,
		ByStatus:           make(map[StockStatus]int),
		ByCategory:         make(map[string]CategoryStats),
		TotalMovements:     len(inv.Movements),
	}
	for _, a := range inv.Articles {
		if a.Active {
			stats.ActiveArticles++
		}
		stats.TotalStockValue = stats.TotalStockValue.Add(a.StockValue())
		stats.PotentialSaleValue = stats.PotentialSaleValue.Add(a.PotentialSaleValue())
		stats.ByStatus[a.Status()]++

		cat := stats.ByCategory[a.Category]
		cat.Count++
		cat.StockValue = cat.StockValue.Add(a.StockValue())
		stats.ByCategory[a.Category] = cat
	}
	stats.PotentialMargin = stats.PotentialSaleValue.Sub(stats.TotalStockValue)
	return stats
}

// Clone devuelve una copia profunda del inventario: todos los artículos y
// movimientos se copian por valor. Es el contrato de aislamiento del motor
// de escenarios: las simulaciones operan sobre la copia, nunca sobre el
// inventario de producción.
func (inv *Inventory) Clone() *Inventory {
	c := &Inventory{
		ID:        inv.ID,
		Name:      inv.Name,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
		Articles:  make([]*Article, 0, len(inv.Articles)),
		Movements: make([]*Movement, 0, len(inv.Movements)),
	}
	for _, a := range inv.Articles {
		c.Articles = append(c.Articles, a.Clone())
	}
	for _, m := range inv.Movements {
		c.Movements = append(c.Movements, m.Clone())
	}
	return c
}

func (inv *Inventory) touch() {
	inv.UpdatedAt = time.Now()
}
