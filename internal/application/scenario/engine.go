package scenario

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockflow-core/internal/application/forecast"
	"github.com/tu-usuario/stockflow-core/internal/domain/entity"
)

// Changes son los deltas opcionales de un escenario. El valor cero de cada
// campo significa "sin cambio"; claves desconocidas en el JSON de entrada
// simplemente se ignoran.
type Changes struct {
	SalesDelta         float64  `json:"sales_delta"`          // ej. 0.2 = +20% de ventas
	PriceDelta         float64  `json:"price_delta"`          // variación del precio de venta
	CostDelta          float64  `json:"cost_delta"`           // variación del coste de compra
	LeadTimeDelta      int      `json:"lead_time_delta"`      // días sumados al plazo (mínimo resultante: 1)
	StockoutArticleIDs []string `json:"stockout_article_ids"` // artículos forzados a ruptura inmediata
}

// Scenario es una condición de negocio alternativa a simular.
type Scenario struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Changes     Changes `json:"changes"`
}

// SimulationResult agrega las métricas de una simulación.
type SimulationResult struct {
	Scenario Scenario `json:"scenario"`
	Days     int      `json:"days"`

	// Finanzas
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalMargin   decimal.Decimal `json:"total_margin"`
	AvgMarginRate float64         `json:"avg_margin_rate"` // porcentaje; 0 si no hubo ingresos

	// Stock
	StockoutEvents int             `json:"stockout_events"`
	StockoutDays   int             `json:"stockout_days"`
	LostSales      decimal.Decimal `json:"lost_sales"`

	// Reaprovisionamientos
	Reorders    int             `json:"reorders"`
	HoldingCost decimal.Decimal `json:"holding_cost"`

	// Puntuación 0-100
	Score float64 `json:"score"`
}

// StockoutImpact estima el efecto de una ruptura prolongada de un artículo.
type StockoutImpact struct {
	ArticleID        string            `json:"article_id"`
	ArticleName      string            `json:"article_name"`
	Days             int               `json:"days"`
	LostQuantity     int               `json:"lost_quantity"`
	LostRevenue      decimal.Decimal   `json:"lost_revenue"`
	LostMargin       decimal.Decimal   `json:"lost_margin"`
	AnnualRevenuePct float64           `json:"annual_revenue_pct"`
	Severity         forecast.Severity `json:"severity"`
}

// DefaultHorizonDays horizonte de simulación por defecto.
const DefaultHorizonDays = 90

// Engine simula escenarios what-if sobre una copia privada del inventario.
// El inventario de producción nunca se muta desde este componente: es el
// invariante central del motor y está cubierto por tests.
type Engine struct {
	inv *entity.Inventory
	fc  *forecast.Engine
}

// NewEngine construye el motor de escenarios.
func NewEngine(inv *entity.Inventory, fc *forecast.Engine) *Engine {
	return &Engine{inv: inv, fc: fc}
}

// Simulate ejecuta un escenario día a día sobre una copia profunda del
// inventario durante el horizonte indicado (days <= 0 usa el horizonte por
// defecto salvo que sea exactamente 0, que produce métricas en cero).
func (e *Engine) Simulate(sc Scenario, days int) SimulationResult {
	if days < 0 {
		days = DefaultHorizonDays
	}

	sim := e.inv.Clone()
	applyChanges(sim, sc.Changes)

	revenue := decimal.Zero
	cost := decimal.Zero
	lost := decimal.Zero
	stockoutEvents := 0
	stockoutDays := 0
	reorders := 0

	for day := 0; day < days; day++ {
		for _, article := range sim.Articles {
			if !article.Active {
				continue
			}

			// Demanda del día con el delta de ventas aplicado.
			demand := int(article.DailySales * (1 + sc.Changes.SalesDelta))
			if demand < 0 {
				demand = 0
			}
			qty := decimal.NewFromInt(int64(demand))

			switch {
			case article.Quantity >= demand:
				// Venta completa
				article.Quantity -= demand
				revenue = revenue.Add(qty.Mul(article.SalePrice))
				cost = cost.Add(qty.Mul(article.PurchasePrice))

			case article.Quantity > 0:
				// Venta parcial: se sirve lo que hay, el resto se pierde
				served := decimal.NewFromInt(int64(article.Quantity))
				missing := decimal.NewFromInt(int64(demand - article.Quantity))
				revenue = revenue.Add(served.Mul(article.SalePrice))
				cost = cost.Add(served.Mul(article.PurchasePrice))
				lost = lost.Add(missing.Mul(article.SalePrice))
				article.Quantity = 0
				stockoutEvents++
				stockoutDays++

			default:
				// Ruptura completa: toda la demanda se pierde
				lost = lost.Add(qty.Mul(article.SalePrice))
				stockoutDays++
			}

			// Reaprovisionamiento instantáneo idealizado al caer bajo el
			// umbral: no se modela el plazo de entrega dentro del bucle
			// (simplificación deliberada del modelo).
			if article.Quantity <= article.CriticalThreshold() {
				refill := article.OptimalStock - article.Quantity
				article.Quantity += refill
				cost = cost.Add(decimal.NewFromInt(int64(refill)).Mul(article.PurchasePrice))
				reorders++
			}
		}
	}

	// Estimación del coste de almacenaje: capital inmovilizado al 25% anual.
	stockValue := decimal.Zero
	for _, article := range sim.Articles {
		stockValue = stockValue.Add(article.StockValue())
	}
	holding := stockValue.Mul(decimal.NewFromFloat(0.25)).
		Mul(decimal.NewFromFloat(float64(days) / 365))

	margin := revenue.Sub(cost)
	marginRate := 0.0
	if revenue.GreaterThan(decimal.Zero) {
		marginRate = margin.Div(revenue).InexactFloat64() * 100
	}

	result := SimulationResult{
		Scenario:       sc,
		Days:           days,
		TotalRevenue:   revenue,
		TotalCost:      cost,
		TotalMargin:    margin,
		AvgMarginRate:  marginRate,
		StockoutEvents: stockoutEvents,
		StockoutDays:   stockoutDays,
		LostSales:      lost,
		Reorders:       reorders,
		HoldingCost:    holding,
	}
	result.Score = score(result)
	return result
}

// applyChanges muta únicamente la copia simulada.
func applyChanges(sim *entity.Inventory, ch Changes) {
	if ch.PriceDelta != 0 {
		factor := decimal.NewFromFloat(1 + ch.PriceDelta)
		for _, article := range sim.Articles {
			article.SalePrice = article.SalePrice.Mul(factor)
		}
	}
	if ch.CostDelta != 0 {
		factor := decimal.NewFromFloat(1 + ch.CostDelta)
		for _, article := range sim.Articles {
			article.PurchasePrice = article.PurchasePrice.Mul(factor)
		}
	}
	if ch.LeadTimeDelta != 0 {
		for _, article := range sim.Articles {
			article.LeadTimeDays += ch.LeadTimeDelta
			if article.LeadTimeDays < 1 {
				article.LeadTimeDays = 1
			}
		}
	}
	for _, id := range ch.StockoutArticleIDs {
		if article, err := sim.Article(id); err == nil {
			article.Quantity = 0
		}
	}
}

// score puntúa el resultado de 0 a 100: margen (40), ausencia de rupturas
// (40) y eficiencia de reaprovisionamiento (20).
func score(r SimulationResult) float64 {
	marginScore := math.Min(40, (r.AvgMarginRate/50)*40)
	if marginScore < 0 {
		marginScore = 0
	}
	stockoutScore := math.Max(0, 40-float64(r.StockoutDays)*4)
	efficiencyScore := math.Max(0, 20-float64(r.Reorders)*4)
	return marginScore + stockoutScore + efficiencyScore
}

// Compare simula los escenarios recibidos junto a la línea base implícita
// ("sin modificaciones") y devuelve los resultados por puntuación
// descendente.
func (e *Engine) Compare(scenarios []Scenario, days int) []SimulationResult {
	results := make([]SimulationResult, 0, len(scenarios)+1)

	baseline := Scenario{
		Name:        "Situación actual",
		Description: "Sin modificaciones",
	}
	results = append(results, e.Simulate(baseline, days))

	for _, sc := range scenarios {
		results = append(results, e.Simulate(sc, days))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Impact estima las ventas y la margen perdidas por una ruptura prolongada
// de un artículo, sin pasar por el bucle de simulación.
func (e *Engine) Impact(articleID string, days int) (*StockoutImpact, error) {
	article, err := e.inv.Article(articleID)
	if err != nil {
		return nil, err
	}
	if days <= 0 {
		days = 30
	}

	lostQty := article.DailySales * float64(days)
	qty := decimal.NewFromFloat(lostQty)
	lostRevenue := qty.Mul(article.SalePrice)
	lostMargin := qty.Mul(article.UnitMargin())

	annualRevenue := decimal.NewFromFloat(article.DailySales * 365).Mul(article.SalePrice)
	pct := 0.0
	if annualRevenue.GreaterThan(decimal.Zero) {
		pct = lostRevenue.Div(annualRevenue).InexactFloat64() * 100
	}

	return &StockoutImpact{
		ArticleID:        articleID,
		ArticleName:      article.Name,
		Days:             days,
		LostQuantity:     int(lostQty),
		LostRevenue:      lostRevenue,
		LostMargin:       lostMargin,
		AnnualRevenuePct: pct,
		Severity:         impactSeverity(pct),
	}, nil
}

func impactSeverity(pct float64) forecast.Severity {
	switch {
	case pct >= 20:
		return forecast.SeverityCritical
	case pct >= 10:
		return forecast.SeverityElevated
	case pct >= 5:
		return forecast.SeverityMedium
	default:
		return forecast.SeverityLow
	}
}
