package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/stockflow-core/internal/domain/entity"
)

// El umbral crítico prefiere el automático, luego el manual y por último
// el 10% del stock óptimo (con mínimo de 1).
func TestCriticalThreshold_Prioridad(t *testing.T) {
	article := entity.NewArticle("Test", "REF", "otros")
	article.OptimalStock = 80

	assert.Equal(t, 8, article.CriticalThreshold(), "sin umbrales: 10% del óptimo")

	manual := 20
	article.MinThreshold = &manual
	assert.Equal(t, 20, article.CriticalThreshold(), "el manual gana al defecto")

	auto := 35
	article.AutoMinThreshold = &auto
	assert.Equal(t, 35, article.CriticalThreshold(), "el automático gana al manual")
}

func TestCriticalThreshold_MinimoUno(t *testing.T) {
	article := entity.NewArticle("Pequeño", "REF", "otros")
	article.OptimalStock = 5

	assert.Equal(t, 1, article.CriticalThreshold())
}

func TestStatus_Escalera(t *testing.T) {
	threshold := 10
	cases := []struct {
		nombre   string
		quantity int
		want     entity.StockStatus
	}{
		{"agotado", 0, entity.StatusStockout},
		{"negativo", -3, entity.StatusStockout},
		{"en el umbral", 10, entity.StatusCritical},
		{"doble del umbral", 20, entity.StatusLow},
		{"nivel normal", 50, entity.StatusHealthy},
		{"sobre el óptimo", 120, entity.StatusOverstocked},
	}

	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			article := entity.NewArticle("Test", "REF", "otros")
			article.OptimalStock = 100
			article.MinThreshold = &threshold
			article.Quantity = tc.quantity

			assert.Equal(t, tc.want, article.Status())
		})
	}
}

func TestDaysToStockout(t *testing.T) {
	article := entity.NewArticle("Test", "REF", "otros")
	article.Quantity = 2

	assert.Nil(t, article.DaysToStockout(), "sin ventas no hay estimación")

	article.DailySales = 3.2
	days := article.DaysToStockout()
	if assert.NotNil(t, days) {
		assert.Equal(t, 0, *days, "floor(2/3.2) = 0")
	}

	article.Quantity = 16
	days = article.DaysToStockout()
	if assert.NotNil(t, days) {
		assert.Equal(t, 5, *days)
	}
}

func TestMargenes(t *testing.T) {
	article := entity.NewArticle("Test", "REF", "otros")
	article.Quantity = 10
	article.PurchasePrice = decimal.NewFromInt(40)
	article.SalePrice = decimal.NewFromInt(60)

	assert.True(t, article.UnitMargin().Equal(decimal.NewFromInt(20)))
	assert.True(t, article.MarginRate().Equal(decimal.NewFromInt(50)), "margen del 50% sobre el coste")
	assert.True(t, article.StockValue().Equal(decimal.NewFromInt(400)))
	assert.True(t, article.PotentialSaleValue().Equal(decimal.NewFromInt(600)))
}

func TestMarginRate_SinPrecioCompra(t *testing.T) {
	article := entity.NewArticle("Gratis", "REF", "otros")
	article.SalePrice = decimal.NewFromInt(10)

	assert.True(t, article.MarginRate().IsZero())
}

func TestParseMovementKind(t *testing.T) {
	assert.Equal(t, entity.MovementIn, entity.ParseMovementKind("in"))
	assert.Equal(t, entity.MovementCount, entity.ParseMovementKind("count"))
	assert.Equal(t, entity.MovementOther, entity.ParseMovementKind("quantum"))
	assert.Equal(t, entity.MovementOther, entity.ParseMovementKind(""))
}

func TestParseMovementReason(t *testing.T) {
	assert.Equal(t, entity.ReasonSale, entity.ParseMovementReason("sale"))
	assert.Equal(t, entity.ReasonLoss, entity.ParseMovementReason("loss"))
	assert.Equal(t, entity.ReasonOther, entity.ParseMovementReason("misterio"))
}
