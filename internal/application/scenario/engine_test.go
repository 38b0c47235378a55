package scenario_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stockflow-core/internal/application/forecast"
	"github.com/tu-usuario/stockflow-core/internal/application/scenario"
	"github.com/tu-usuario/stockflow-core/internal/domain"
	"github.com/tu-usuario/stockflow-core/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newEngine(inv *entity.Inventory) *scenario.Engine {
	fc := forecast.NewEngine(inv, forecast.Config{}).WithClock(func() time.Time { return testNow })
	return scenario.NewEngine(inv, fc)
}

// newArticle: vende 2/día, compra a 10 y vende a 15, umbral 10, óptimo 100.
func newArticle(name string, quantity int) *entity.Article {
	a := entity.NewArticle(name, "REF-"+name, "otros")
	a.Quantity = quantity
	threshold := 10
	a.MinThreshold = &threshold
	a.OptimalStock = 100
	a.PurchasePrice = decimal.NewFromInt(10)
	a.SalePrice = decimal.NewFromInt(15)
	a.DailySales = 2.0
	return a
}

// ──────────────────────────────────────────────────────────────────────────────
// Simulación
// ──────────────────────────────────────────────────────────────────────────────

func TestSimulate_Baseline(t *testing.T) {
	article := newArticle("A", 100)
	inv := entity.NewInventory("test")
	inv.AddArticle(article)

	result := newEngine(inv).Simulate(scenario.Scenario{Name: "base"}, 10)

	// 10 días × 2 unidades, sin rupturas ni reaprovisionamientos.
	assert.True(t, result.TotalRevenue.Equal(decimal.NewFromInt(300)), "20 × 15")
	assert.True(t, result.TotalCost.Equal(decimal.NewFromInt(200)), "20 × 10")
	assert.True(t, result.TotalMargin.Equal(decimal.NewFromInt(100)))
	assert.InDelta(t, 100.0/3, result.AvgMarginRate, 1e-9)
	assert.Zero(t, result.StockoutEvents)
	assert.Zero(t, result.StockoutDays)
	assert.Zero(t, result.Reorders)
	assert.True(t, result.LostSales.IsZero())

	// Puntuación: margen 26.67 + rupturas 40 + eficiencia 20.
	assert.InDelta(t, 100.0/3/50*40+60, result.Score, 1e-9)
}

// El inventario de producción nunca se muta: la simulación trabaja sobre
// una copia profunda, incluso con rupturas forzadas.
func TestSimulate_NoMutaProduccion(t *testing.T) {
	article := newArticle("A", 100)
	inv := entity.NewInventory("test")
	inv.AddArticle(article)

	sc := scenario.Scenario{
		Name: "agresivo",
		Changes: scenario.Changes{
			PriceDelta:         0.5,
			CostDelta:          0.3,
			LeadTimeDelta:      10,
			StockoutArticleIDs: []string{article.ID},
		},
	}
	newEngine(inv).Simulate(sc, 30)

	assert.Equal(t, 100, article.Quantity, "la ruptura forzada no toca producción")
	assert.True(t, article.SalePrice.Equal(decimal.NewFromInt(15)))
	assert.True(t, article.PurchasePrice.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 7, article.LeadTimeDays)
}

func TestSimulate_HorizonteCero(t *testing.T) {
	article := newArticle("A", 100)
	inv := entity.NewInventory("test")
	inv.AddArticle(article)

	result := newEngine(inv).Simulate(scenario.Scenario{}, 0)

	assert.Zero(t, result.Days, "cero días es un horizonte legítimo, no el defecto")
	assert.True(t, result.TotalRevenue.IsZero())
	assert.True(t, result.HoldingCost.IsZero())
}

func TestSimulate_HorizonteNegativoUsaElDefecto(t *testing.T) {
	inv := entity.NewInventory("test")

	result := newEngine(inv).Simulate(scenario.Scenario{}, -1)

	assert.Equal(t, scenario.DefaultHorizonDays, result.Days)
}

func TestSimulate_DeltaDeVentas(t *testing.T) {
	article := newArticle("A", 100)
	inv := entity.NewInventory("test")
	inv.AddArticle(article)

	// +50%: demanda diaria int(2 × 1.5) = 3.
	result := newEngine(inv).Simulate(scenario.Scenario{
		Changes: scenario.Changes{SalesDelta: 0.5},
	}, 10)

	assert.True(t, result.TotalRevenue.Equal(decimal.NewFromInt(450)), "30 × 15")
}

// Sobre la misma base, vender más factura más y nunca reduce los días de
// ruptura respecto a vender menos.
func TestSimulate_MasVentasContraMenosVentas(t *testing.T) {
	build := func() *entity.Inventory {
		article := newArticle("A", 100)
		article.DailySales = 5.0
		inv := entity.NewInventory("test")
		inv.AddArticle(article)
		return inv
	}

	up := newEngine(build()).Simulate(scenario.Scenario{
		Changes: scenario.Changes{SalesDelta: 0.2},
	}, 90)
	down := newEngine(build()).Simulate(scenario.Scenario{
		Changes: scenario.Changes{SalesDelta: -0.2},
	}, 90)

	assert.True(t, up.TotalRevenue.GreaterThan(down.TotalRevenue))
	assert.GreaterOrEqual(t, up.StockoutDays, down.StockoutDays)
}

func TestSimulate_DeltaDePrecios(t *testing.T) {
	article := newArticle("A", 100)
	inv := entity.NewInventory("test")
	inv.AddArticle(article)

	result := newEngine(inv).Simulate(scenario.Scenario{
		Changes: scenario.Changes{PriceDelta: 0.2},
	}, 1)

	assert.True(t, result.TotalRevenue.Equal(decimal.NewFromInt(36)), "2 × 15 × 1.2")
}

func TestSimulate_RupturaForzada(t *testing.T) {
	article := newArticle("A", 100)
	inv := entity.NewInventory("test")
	inv.AddArticle(article)

	result := newEngine(inv).Simulate(scenario.Scenario{
		Changes: scenario.Changes{StockoutArticleIDs: []string{article.ID}},
	}, 5)

	// Día 0: toda la demanda se pierde y se repone al óptimo; después, normal.
	assert.Equal(t, 1, result.StockoutDays)
	assert.Zero(t, result.StockoutEvents, "la ruptura total no cuenta como venta parcial")
	assert.Equal(t, 1, result.Reorders)
	assert.True(t, result.LostSales.Equal(decimal.NewFromInt(30)), "2 × 15")
}

func TestSimulate_VentaParcial(t *testing.T) {
	article := newArticle("A", 1)
	inv := entity.NewInventory("test")
	inv.AddArticle(article)

	result := newEngine(inv).Simulate(scenario.Scenario{}, 1)

	// Demanda 2, stock 1: se sirve 1, se pierde 1, y se repone.
	assert.Equal(t, 1, result.StockoutEvents)
	assert.Equal(t, 1, result.StockoutDays)
	assert.Equal(t, 1, result.Reorders)
	assert.True(t, result.TotalRevenue.Equal(decimal.NewFromInt(15)))
	assert.True(t, result.LostSales.Equal(decimal.NewFromInt(15)))
}

func TestSimulate_IgnoraInactivos(t *testing.T) {
	article := newArticle("Retirado", 100)
	article.Active = false
	inv := entity.NewInventory("test")
	inv.AddArticle(article)

	result := newEngine(inv).Simulate(scenario.Scenario{}, 30)

	assert.True(t, result.TotalRevenue.IsZero())
	assert.Zero(t, result.Reorders)
}

// ──────────────────────────────────────────────────────────────────────────────
// Comparación y catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestCompare_IncluyeBaselineYOrdenaPorPuntuacion(t *testing.T) {
	article := newArticle("A", 100)
	inv := entity.NewInventory("test")
	inv.AddArticle(article)

	// -100% de ventas: sin ingresos, puntuación 60 (40 + 20).
	frozen := scenario.Scenario{
		Name:    "Congelado",
		Changes: scenario.Changes{SalesDelta: -1},
	}
	results := newEngine(inv).Compare([]scenario.Scenario{frozen}, 10)

	require.Len(t, results, 2)
	assert.Equal(t, "Situación actual", results[0].Scenario.Name, "la base gana al escenario sin ventas")
	assert.Equal(t, "Congelado", results[1].Scenario.Name)
	assert.InDelta(t, 60.0, results[1].Score, 1e-9)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestPredefinedScenarios(t *testing.T) {
	scenarios := scenario.PredefinedScenarios()

	require.Len(t, scenarios, 7)
	for _, sc := range scenarios {
		assert.NotEmpty(t, sc.Name)
		assert.NotEmpty(t, sc.Description)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Impacto de ruptura
// ──────────────────────────────────────────────────────────────────────────────

func TestImpact_Calculo(t *testing.T) {
	article := newArticle("A", 100)
	inv := entity.NewInventory("test")
	inv.AddArticle(article)

	impact, err := newEngine(inv).Impact(article.ID, 30)
	require.NoError(t, err)

	assert.Equal(t, 60, impact.LostQuantity, "2/día × 30 días")
	assert.True(t, impact.LostRevenue.Equal(decimal.NewFromInt(900)))
	assert.True(t, impact.LostMargin.Equal(decimal.NewFromInt(300)), "60 × (15 − 10)")
	assert.InDelta(t, 30.0/365*100, impact.AnnualRevenuePct, 1e-9)
}

// El porcentaje sobre el ingreso anual solo depende de la duración, así que
// la escalera de gravedad se recorre variando los días.
func TestImpact_EscaleraDeGravedad(t *testing.T) {
	tests := []struct {
		days     int
		severity forecast.Severity
	}{
		{10, forecast.SeverityLow},      // 2.7%
		{20, forecast.SeverityMedium},   // 5.5%
		{40, forecast.SeverityElevated}, // 11.0%
		{80, forecast.SeverityCritical}, // 21.9%
	}
	for _, tc := range tests {
		article := newArticle("A", 100)
		inv := entity.NewInventory("test")
		inv.AddArticle(article)

		impact, err := newEngine(inv).Impact(article.ID, tc.days)
		require.NoError(t, err)
		assert.Equal(t, tc.severity, impact.Severity, "días: %d", tc.days)
	}
}

func TestImpact_DiasPorDefectoYErrores(t *testing.T) {
	article := newArticle("A", 100)
	quiet := newArticle("Quieto", 100)
	quiet.DailySales = 0
	inv := entity.NewInventory("test")
	inv.AddArticle(article)
	inv.AddArticle(quiet)
	engine := newEngine(inv)

	impact, err := engine.Impact(article.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, impact.Days)

	impact, err = engine.Impact(quiet.ID, 30)
	require.NoError(t, err)
	assert.True(t, impact.LostRevenue.IsZero())
	assert.Equal(t, forecast.SeverityLow, impact.Severity, "sin demanda no hay impacto")

	_, err = engine.Impact("no-existe", 30)
	assert.ErrorIs(t, err, domain.ErrArticleNotFound)
}
