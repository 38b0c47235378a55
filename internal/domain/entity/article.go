package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockStatus clasifica el nivel de stock de un artículo.
type StockStatus string

const (
	StatusStockout    StockStatus = "stockout"    // sin existencias
	StatusCritical    StockStatus = "critical"    // en o bajo el umbral crítico
	StatusLow         StockStatus = "low"         // entre el umbral y el doble del umbral
	StatusHealthy     StockStatus = "healthy"     // nivel normal
	StatusOverstocked StockStatus = "overstocked" // por encima de 1.2x el stock óptimo
)

// Article representa un artículo en stock.
// DailySales y StockRotation son estadísticas derivadas cacheadas; solo las
// refresca el motor de previsiones de forma explícita e idempotente.
type Article struct {
	ID        string
	Name      string
	Reference string // SKU / código de barras
	Category  string

	// Stock
	Quantity         int
	MinThreshold     *int // umbral manual
	AutoMinThreshold *int // umbral calculado por el motor de previsiones
	OptimalStock     int

	// Precios
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal

	// Proveedor
	Supplier     string
	LeadTimeDays int // plazo de reaprovisionamiento en días

	// Metadatos
	CreatedAt time.Time
	UpdatedAt time.Time
	Active    bool
	Location  string // pasillo, estantería, etc.

	// Estadísticas calculadas
	DailySales    float64 // media de ventas por día
	StockRotation float64 // veces que el stock rota al año
}

// NewArticle construye un artículo activo con ID y fechas generados.
func NewArticle(name, reference, category string) *Article {
	now := time.Now()
	return &Article{
		ID:           uuid.New().String(),
		Name:         name,
		Reference:    reference,
		Category:     category,
		OptimalStock: 100,
		LeadTimeDays: 7,
		CreatedAt:    now,
		UpdatedAt:    now,
		Active:       true,
	}
}

// UnitMargin devuelve la margen bruta unitaria (venta - compra).
func (a *Article) UnitMargin() decimal.Decimal {
	return a.SalePrice.Sub(a.PurchasePrice)
}

// MarginRate devuelve el porcentaje de margen respecto al precio de compra.
func (a *Article) MarginRate() decimal.Decimal {
	if a.PurchasePrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return a.UnitMargin().Div(a.PurchasePrice).Mul(decimal.NewFromInt(100))
}

// StockValue devuelve el valor del stock actual al precio de compra.
func (a *Article) StockValue() decimal.Decimal {
	return decimal.NewFromInt(int64(a.Quantity)).Mul(a.PurchasePrice)
}

// PotentialSaleValue devuelve el valor del stock si se vendiera completo.
func (a *Article) PotentialSaleValue() decimal.Decimal {
	return decimal.NewFromInt(int64(a.Quantity)).Mul(a.SalePrice)
}

// CriticalThreshold devuelve el umbral de alerta: el automático si existe,
// si no el manual, y en último caso el 10% del stock óptimo (mínimo 1).
func (a *Article) CriticalThreshold() int {
	if a.AutoMinThreshold != nil {
		return *a.AutoMinThreshold
	}
	if a.MinThreshold != nil {
		return *a.MinThreshold
	}
	t := int(float64(a.OptimalStock) * 0.1)
	if t < 1 {
		t = 1
	}
	return t
}

// Status clasifica el stock actual contra el umbral crítico y el óptimo.
func (a *Article) Status() StockStatus {
	threshold := a.CriticalThreshold()
	switch {
	case a.Quantity <= 0:
		return StatusStockout
	case a.Quantity <= threshold:
		return StatusCritical
	case a.Quantity <= threshold*2:
		return StatusLow
	case float64(a.Quantity) >= float64(a.OptimalStock)*1.2:
		return StatusOverstocked
	default:
		return StatusHealthy
	}
}

// DaysToStockout estima los días hasta la ruptura según las ventas diarias.
// Devuelve nil cuando no hay historial de ventas (no es un error).
func (a *Article) DaysToStockout() *int {
	if a.DailySales <= 0 {
		return nil
	}
	d := int(float64(a.Quantity) / a.DailySales)
	return &d
}

// Clone devuelve una copia por valor del artículo, incluidos los punteros
// de umbral (se copian los valores, no las referencias).
func (a *Article) Clone() *Article {
	c := *a
	if a.MinThreshold != nil {
		v := *a.MinThreshold
		c.MinThreshold = &v
	}
	if a.AutoMinThreshold != nil {
		v := *a.AutoMinThreshold
		c.AutoMinThreshold = &v
	}
	return &c
}
