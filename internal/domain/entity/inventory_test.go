package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockflow-core/internal/domain"
	"github.com/tu-usuario/stockflow-core/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newTestArticle crea un artículo con los parámetros mínimos de los tests.
func newTestArticle(name string, quantity int) *entity.Article {
	a := entity.NewArticle(name, "REF-"+name, "electronica")
	a.Quantity = quantity
	a.PurchasePrice = decimal.NewFromInt(10)
	a.SalePrice = decimal.NewFromInt(15)
	return a
}

func newTestInventory(t *testing.T, articles ...*entity.Article) *entity.Inventory {
	t.Helper()
	inv := entity.NewInventory("test")
	for _, a := range articles {
		inv.AddArticle(a)
	}
	return inv
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordMovement
// ──────────────────────────────────────────────────────────────────────────────

// Conservación: sin correcciones, la cantidad final es la inicial más las
// entradas menos las salidas.
func TestRecordMovement_Conservacion(t *testing.T) {
	article := newTestArticle("Teclado", 10)
	inv := newTestInventory(t, article)

	_, err := inv.AddStock(article.ID, 25, decimal.NewFromInt(10), entity.ReasonRestock, "")
	require.NoError(t, err)
	_, err = inv.RemoveStock(article.ID, 8, decimal.NewFromInt(15), entity.ReasonSale, "")
	require.NoError(t, err)
	_, err = inv.RemoveStock(article.ID, 7, decimal.NewFromInt(15), entity.ReasonSale, "")
	require.NoError(t, err)

	assert.Equal(t, 10+25-8-7, article.Quantity,
		"la cantidad debe ser el efecto acumulado de los movimientos")
	assert.Len(t, inv.Movements, 3)
}

// Una salida mayor al stock disponible falla con ErrInsufficientStock y no
// deja rastro: ni cantidad ni libro cambian.
func TestRecordMovement_StockInsuficiente(t *testing.T) {
	article := newTestArticle("Monitor", 5)
	inv := newTestInventory(t, article)

	_, err := inv.RemoveStock(article.ID, 6, decimal.NewFromInt(15), entity.ReasonSale, "")

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, article.Quantity, "la cantidad no debe cambiar tras un rechazo")
	assert.Empty(t, inv.Movements, "el movimiento rechazado no debe quedar en el libro")
}

// Una salida que deja el stock exactamente en cero es válida.
func TestRecordMovement_SalidaExacta(t *testing.T) {
	article := newTestArticle("Cable", 5)
	inv := newTestInventory(t, article)

	_, err := inv.RemoveStock(article.ID, 5, decimal.NewFromInt(15), entity.ReasonSale, "")

	require.NoError(t, err)
	assert.Equal(t, 0, article.Quantity)
}

// Corrección e inventario físico fijan la cantidad en absoluto, sin acumular.
func TestRecordMovement_CorreccionAbsoluta(t *testing.T) {
	article := newTestArticle("Ratón", 42)
	inv := newTestInventory(t, article)

	m := entity.NewMovement(article.ID, entity.MovementCorrection, 7, decimal.Zero, entity.ReasonAdjustment)
	_, err := inv.RecordMovement(m)
	require.NoError(t, err)
	assert.Equal(t, 7, article.Quantity, "la corrección reemplaza la cantidad")

	m = entity.NewMovement(article.ID, entity.MovementCount, 30, decimal.Zero, entity.ReasonAdjustment)
	_, err = inv.RecordMovement(m)
	require.NoError(t, err)
	assert.Equal(t, 30, article.Quantity, "el inventario físico también reemplaza")
}

func TestRecordMovement_ArticuloInexistente(t *testing.T) {
	inv := newTestInventory(t)

	_, err := inv.AddStock("no-existe", 10, decimal.Zero, entity.ReasonRestock, "")

	assert.ErrorIs(t, err, domain.ErrArticleNotFound)
}

func TestRecordMovement_TipoDesconocido(t *testing.T) {
	article := newTestArticle("Altavoz", 10)
	inv := newTestInventory(t, article)

	m := entity.NewMovement(article.ID, entity.ParseMovementKind("teleport"), 3, decimal.Zero, entity.ReasonOther)
	_, err := inv.RecordMovement(m)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, article.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Altas, bajas y consultas
// ──────────────────────────────────────────────────────────────────────────────

// Eliminar un artículo borra en cascada sus movimientos y solo los suyos.
func TestRemoveArticle_CascadaMovimientos(t *testing.T) {
	a := newTestArticle("A", 100)
	b := newTestArticle("B", 100)
	inv := newTestInventory(t, a, b)

	_, err := inv.RemoveStock(a.ID, 1, decimal.Zero, entity.ReasonSale, "")
	require.NoError(t, err)
	_, err = inv.RemoveStock(a.ID, 2, decimal.Zero, entity.ReasonSale, "")
	require.NoError(t, err)
	_, err = inv.RemoveStock(b.ID, 3, decimal.Zero, entity.ReasonSale, "")
	require.NoError(t, err)

	require.True(t, inv.RemoveArticle(a.ID))

	_, err = inv.Article(a.ID)
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)
	require.Len(t, inv.Movements, 1, "solo deben quedar los movimientos de B")
	assert.Equal(t, b.ID, inv.Movements[0].ArticleID)

	assert.False(t, inv.RemoveArticle("no-existe"))
}

func TestSearchArticles(t *testing.T) {
	a := newTestArticle("Portátil HP", 5)
	b := newTestArticle("Impresora", 5)
	b.Reference = "HP-PRINT-01"
	c := newTestArticle("Silla", 5)
	inv := newTestInventory(t, a, b, c)

	found := inv.SearchArticles("hp")

	require.Len(t, found, 2, "debe buscar en nombre y referencia, sin mayúsculas")
	assert.Contains(t, []string{found[0].Name, found[1].Name}, "Portátil HP")
	assert.Contains(t, []string{found[0].Name, found[1].Name}, "Impresora")
}

func TestFilterByStatusYCategoria(t *testing.T) {
	healthy := newTestArticle("Sano", 50)
	healthy.OptimalStock = 100
	out := newTestArticle("Agotado", 0)
	papeleria := newTestArticle("Cuaderno", 50)
	papeleria.Category = "papeleria"
	papeleria.OptimalStock = 100
	inv := newTestInventory(t, healthy, out, papeleria)

	assert.Len(t, inv.FilterByStatus(entity.StatusStockout), 1)
	assert.Len(t, inv.FilterByStatus(entity.StatusHealthy), 2)
	assert.Len(t, inv.FilterByCategory("papeleria"), 1)
	assert.Len(t, inv.FilterByCategory("electronica"), 2)
}

func TestMovementsBetween_LimitesInclusivos(t *testing.T) {
	article := newTestArticle("Lámpara", 100)
	inv := newTestInventory(t, article)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, day := range []int{0, 5, 10} {
		m := entity.NewMovement(article.ID, entity.MovementOut, i+1, decimal.Zero, entity.ReasonSale)
		m.Date = base.AddDate(0, 0, day)
		_, err := inv.RecordMovement(m)
		require.NoError(t, err)
	}

	got := inv.MovementsBetween(base, base.AddDate(0, 0, 5))
	assert.Len(t, got, 2, "los dos límites del periodo son inclusivos")

	got = inv.MovementsBetween(base.AddDate(0, 0, 1), base.AddDate(0, 0, 4))
	assert.Empty(t, got)
}

func TestArticleMovements_OrdenYLimite(t *testing.T) {
	article := newTestArticle("Libro", 100)
	inv := newTestInventory(t, article)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		m := entity.NewMovement(article.ID, entity.MovementOut, i+1, decimal.Zero, entity.ReasonSale)
		m.Date = base.AddDate(0, 0, i)
		_, err := inv.RecordMovement(m)
		require.NoError(t, err)
	}

	got := inv.ArticleMovements(article.ID, 2)

	require.Len(t, got, 2)
	assert.Equal(t, 5, got[0].Quantity, "el más reciente primero")
	assert.Equal(t, 4, got[1].Quantity)
}

func TestStats_Globales(t *testing.T) {
	a := newTestArticle("A", 10) // valor 100, venta potencial 150
	b := newTestArticle("B", 2)  // valor 20, venta potencial 30
	b.Active = false
	inv := newTestInventory(t, a, b)

	stats := inv.Stats()

	assert.Equal(t, 2, stats.TotalArticles)
	assert.Equal(t, 1, stats.ActiveArticles)
	assert.True(t, stats.TotalStockValue.Equal(decimal.NewFromInt(120)))
	assert.True(t, stats.PotentialSaleValue.Equal(decimal.NewFromInt(180)))
	assert.True(t, stats.PotentialMargin.Equal(decimal.NewFromInt(60)))
	assert.Equal(t, 2, stats.ByCategory["electronica"].Count)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clone
// ──────────────────────────────────────────────────────────────────────────────

// La copia es profunda: mutar artículos o movimientos del clon no toca el
// inventario original.
func TestClone_CopiaProfunda(t *testing.T) {
	article := newTestArticle("Original", 50)
	threshold := 12
	article.MinThreshold = &threshold
	inv := newTestInventory(t, article)
	_, err := inv.RemoveStock(article.ID, 5, decimal.NewFromInt(15), entity.ReasonSale, "")
	require.NoError(t, err)

	clone := inv.Clone()

	cloned, err := clone.Article(article.ID)
	require.NoError(t, err)
	cloned.Quantity = 0
	*cloned.MinThreshold = 99
	cloned.SalePrice = decimal.NewFromInt(999)
	clone.Movements[0].Quantity = 12345
	clone.Movements = append(clone.Movements, entity.NewMovement(article.ID, entity.MovementIn, 1, decimal.Zero, entity.ReasonRestock))

	assert.Equal(t, 45, article.Quantity, "la cantidad original no debe cambiar")
	assert.Equal(t, 12, *article.MinThreshold, "los punteros de umbral se copian por valor")
	assert.True(t, article.SalePrice.Equal(decimal.NewFromInt(15)))
	require.Len(t, inv.Movements, 1)
	assert.Equal(t, 5, inv.Movements[0].Quantity)
}
