package restocking

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockflow-core/internal/application/forecast"
	"github.com/tu-usuario/stockflow-core/internal/domain"
	"github.com/tu-usuario/stockflow-core/internal/domain/entity"
)

// Urgency es el nivel de urgencia de una recomendación. El orden total es
// Critical < Elevated < Medium < Low.
type Urgency int

const (
	UrgencyCritical Urgency = iota + 1 // ruptura inminente
	UrgencyElevated                    // bajo el umbral crítico
	UrgencyMedium                      // acercándose al umbral
	UrgencyLow                         // preventivo
)

// String devuelve la etiqueta de la urgencia.
func (u Urgency) String() string {
	switch u {
	case UrgencyCritical:
		return "critical"
	case UrgencyElevated:
		return "elevated"
	case UrgencyMedium:
		return "medium"
	case UrgencyLow:
		return "low"
	}
	return "unknown"
}

// OrderStrategy selecciona el cálculo de la cantidad a pedir.
type OrderStrategy string

const (
	StrategyStockOptimal OrderStrategy = "stock_optimal" // reponer hasta el stock óptimo (por defecto)
	StrategyEOQ          OrderStrategy = "eoq"           // Economic Order Quantity (fórmula de Wilson)
	StrategyMinMax       OrderStrategy = "min_max"       // política min-max
)

// UnknownSupplier etiqueta centinela para artículos sin proveedor.
const UnknownSupplier = "Proveedor desconocido"

// Recommendation es la recomendación de reaprovisionamiento de un artículo.
type Recommendation struct {
	ArticleID        string `json:"article_id"`
	ArticleName      string `json:"article_name"`
	ArticleReference string `json:"article_reference"`

	// Estado actual
	Quantity          int `json:"quantity"`
	CriticalThreshold int `json:"critical_threshold"`
	OptimalStock      int `json:"optimal_stock"`

	// Recomendación
	RecommendedQty int             `json:"recommended_qty"`
	Urgency        Urgency         `json:"urgency"`
	UrgencyLabel   string          `json:"urgency_label"`
	DaysToStockout *int            `json:"days_to_stockout,omitempty"`
	EstimatedCost  decimal.Decimal `json:"estimated_cost"`

	// Proveedor
	Supplier     string `json:"supplier"`
	LeadTimeDays int    `json:"lead_time_days"`

	// Justificación
	Reason      string    `json:"reason"`
	SuggestedAt time.Time `json:"suggested_at"`
}

// OrderLine es una línea de un bono de pedido.
type OrderLine struct {
	ArticleID string          `json:"article_id"`
	Name      string          `json:"name"`
	Reference string          `json:"reference"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
	Urgency   string          `json:"urgency"`
}

// PurchaseOrder agrupa recomendaciones en un bono de pedido por proveedor.
type PurchaseOrder struct {
	Number        string          `json:"number"`
	Supplier      string          `json:"supplier"`
	CreatedAt     time.Time       `json:"created_at"`
	Lines         []OrderLine     `json:"lines"`
	TotalQuantity int             `json:"total_quantity"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	MaxUrgency    Urgency         `json:"max_urgency"`
}

// Config parámetros de coste del motor de reaprovisionamiento.
type Config struct {
	FixedOrderCost decimal.Decimal // coste fijo por pedido (EOQ)
	HoldingRate    float64         // coste anual de almacenaje como fracción del precio de compra
}

func (c Config) withDefaults() Config {
	if c.FixedOrderCost.LessThanOrEqual(decimal.Zero) {
		c.FixedOrderCost = decimal.NewFromInt(50)
	}
	if c.HoldingRate <= 0 {
		c.HoldingRate = 0.25
	}
	return c
}

// Engine genera recomendaciones de reaprovisionamiento y bonos de pedido.
// Solo lee del inventario, nunca lo muta.
type Engine struct {
	inv *entity.Inventory
	fc  *forecast.Engine
	cfg Config
}

// NewEngine construye el motor.
func NewEngine(inv *entity.Inventory, fc *forecast.Engine, cfg Config) *Engine {
	return &Engine{inv: inv, fc: fc, cfg: cfg.withDefaults()}
}

// Recommendations evalúa todos los artículos activos y devuelve las
// recomendaciones ordenadas por urgencia y días hasta la ruptura (los
// valores desconocidos al final).
func (e *Engine) Recommendations(includePreventive bool) []Recommendation {
	var recos []Recommendation

	for _, article := range e.inv.Articles {
		if !article.Active {
			continue
		}
		if reco := e.evaluate(article, includePreventive); reco != nil {
			recos = append(recos, *reco)
		}
	}

	sort.SliceStable(recos, func(i, j int) bool {
		a, b := recos[i], recos[j]
		if a.Urgency != b.Urgency {
			return a.Urgency < b.Urgency
		}
		da, db := a.DaysToStockout, b.DaysToStockout
		switch {
		case da == nil:
			return false
		case db == nil:
			return true
		default:
			return *da < *db
		}
	})

	return recos
}

// evaluate aplica la escalera de urgencia; la primera regla que encaja gana.
func (e *Engine) evaluate(article *entity.Article, includePreventive bool) *Recommendation {
	quantity := article.Quantity
	threshold := article.CriticalThreshold()
	optimal := article.OptimalStock

	var (
		urgency Urgency
		order   int
		reason  string
	)

	switch {
	case quantity == 0:
		urgency = UrgencyCritical
		order = optimal
		reason = "Ruptura de stock"

	case quantity <= threshold:
		urgency = UrgencyElevated
		order = optimal - quantity
		reason = fmt.Sprintf("Stock crítico (%d ≤ %d)", quantity, threshold)

	case quantity <= threshold*2:
		urgency = UrgencyMedium
		order = optimal - quantity
		reason = "Stock bajo, cerca del umbral"

	case includePreventive && article.DailySales > 0 && float64(quantity) < float64(optimal)*0.7:
		urgency = UrgencyLow
		order = optimal - quantity
		reason = "Reaprovisionamiento preventivo"

	default:
		return nil
	}

	var days *int
	if proj, err := e.fc.ProjectStockout(article.ID); err == nil && proj.Predicted {
		days = proj.DaysRemaining
	}

	cost := decimal.NewFromInt(int64(order)).Mul(article.PurchasePrice)

	return &Recommendation{
		ArticleID:         article.ID,
		ArticleName:       article.Name,
		ArticleReference:  article.Reference,
		Quantity:          quantity,
		CriticalThreshold: threshold,
		OptimalStock:      optimal,
		RecommendedQty:    order,
		Urgency:           urgency,
		UrgencyLabel:      urgency.String(),
		DaysToStockout:    days,
		EstimatedCost:     cost,
		Supplier:          article.Supplier,
		LeadTimeDays:      article.LeadTimeDays,
		Reason:            reason,
		SuggestedAt:       time.Now(),
	}
}

// OptimalOrderQuantity calcula la cantidad a pedir según la estrategia.
func (e *Engine) OptimalOrderQuantity(articleID string, strategy OrderStrategy) (int, error) {
	article, err := e.inv.Article(articleID)
	if err != nil {
		return 0, err
	}

	toOptimal := article.OptimalStock - article.Quantity
	if toOptimal < 0 {
		toOptimal = 0
	}

	switch strategy {
	case StrategyStockOptimal, StrategyMinMax, "":
		return toOptimal, nil

	case StrategyEOQ:
		// EOQ = sqrt((2 × demanda anual × coste de pedido) / coste de almacenaje)
		annualDemand := article.DailySales * 365
		if annualDemand <= 0 {
			return article.OptimalStock, nil
		}
		holding := article.PurchasePrice.InexactFloat64() * e.cfg.HoldingRate
		if holding <= 0 {
			return article.OptimalStock, nil
		}
		eoq := math.Sqrt(2 * annualDemand * e.cfg.FixedOrderCost.InexactFloat64() / holding)
		return int(eoq), nil
	}

	return 0, domain.ErrInvalidInput
}

// PurchaseOrders genera bonos de pedido a partir de las recomendaciones.
// Con groupBySupplier agrupa por proveedor y ordena por la urgencia máxima
// de cada bono; sin agrupar emite un bono por recomendación.
func (e *Engine) PurchaseOrders(recos []Recommendation, groupBySupplier bool) []PurchaseOrder {
	now := time.Now()

	if !groupBySupplier {
		orders := make([]PurchaseOrder, 0, len(recos))
		for _, reco := range recos {
			orders = append(orders, PurchaseOrder{
				Number:        orderNumber(now),
				Supplier:      supplierLabel(reco.Supplier),
				CreatedAt:     now,
				Lines:         []OrderLine{orderLine(reco)},
				TotalQuantity: reco.RecommendedQty,
				TotalCost:     reco.EstimatedCost,
				MaxUrgency:    reco.Urgency,
			})
		}
		return orders
	}

	bySupplier := make(map[string]*PurchaseOrder)
	var supplierOrder []string

	for _, reco := range recos {
		supplier := supplierLabel(reco.Supplier)
		order, ok := bySupplier[supplier]
		if !ok {
			order = &PurchaseOrder{
				Number:     orderNumber(now),
				Supplier:   supplier,
				CreatedAt:  now,
				TotalCost:  decimal.Zero,
				MaxUrgency: UrgencyLow,
			}
			bySupplier[supplier] = order
			supplierOrder = append(supplierOrder, supplier)
		}

		order.Lines = append(order.Lines, orderLine(reco))
		order.TotalQuantity += reco.RecommendedQty
		order.TotalCost = order.TotalCost.Add(reco.EstimatedCost)
		if reco.Urgency < order.MaxUrgency {
			order.MaxUrgency = reco.Urgency
		}
	}

	orders := make([]PurchaseOrder, 0, len(bySupplier))
	for _, supplier := range supplierOrder {
		orders = append(orders, *bySupplier[supplier])
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].MaxUrgency < orders[j].MaxUrgency
	})
	return orders
}

func orderLine(reco Recommendation) OrderLine {
	unit := decimal.Zero
	if reco.RecommendedQty > 0 {
		unit = reco.EstimatedCost.Div(decimal.NewFromInt(int64(reco.RecommendedQty)))
	}
	return OrderLine{
		ArticleID: reco.ArticleID,
		Name:      reco.ArticleName,
		Reference: reco.ArticleReference,
		Quantity:  reco.RecommendedQty,
		UnitPrice: unit,
		Total:     reco.EstimatedCost,
		Urgency:   reco.Urgency.String(),
	}
}

func supplierLabel(supplier string) string {
	if supplier == "" {
		return UnknownSupplier
	}
	return supplier
}

func orderNumber(now time.Time) string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("BC-%s-%s", now.Format("20060102"), suffix)
}
