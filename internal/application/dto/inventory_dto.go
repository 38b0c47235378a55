package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/stockflow-core/internal/domain/entity"
)

// CreateArticleRequest body para POST /api/articles.
type CreateArticleRequest struct {
	Name          string          `json:"name"`
	Reference     string          `json:"reference"`
	Category      string          `json:"category"`
	Quantity      int             `json:"quantity"`
	MinThreshold  *int            `json:"min_threshold,omitempty"`
	OptimalStock  int             `json:"optimal_stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Supplier      string          `json:"supplier"`
	LeadTimeDays  int             `json:"lead_time_days"`
	Location      string          `json:"location"`
}

// RecordMovementRequest body para POST /api/inventory/movements.
// Kind y Reason se normalizan con los parsers del dominio: valores no
// reconocidos caen en el caso "other".
type RecordMovementRequest struct {
	ArticleID string          `json:"article_id"`
	Kind      string          `json:"kind"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Reason    string          `json:"reason"`
	Operator  string          `json:"operator,omitempty"`
	Comment   string          `json:"comment,omitempty"`
}

// ArticleResponse representación JSON de un artículo.
type ArticleResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Reference        string          `json:"reference"`
	Category         string          `json:"category"`
	Quantity         int             `json:"quantity"`
	MinThreshold     *int            `json:"min_threshold,omitempty"`
	AutoMinThreshold *int            `json:"auto_min_threshold,omitempty"`
	OptimalStock     int             `json:"optimal_stock"`
	PurchasePrice    decimal.Decimal `json:"purchase_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	Supplier         string          `json:"supplier"`
	LeadTimeDays     int             `json:"lead_time_days"`
	Active           bool            `json:"active"`
	Location         string          `json:"location"`
	Status           string          `json:"status"`
	CriticalLevel    int             `json:"critical_level"`
	DailySales       float64         `json:"daily_sales"`
	StockRotation    float64         `json:"stock_rotation"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NewArticleResponse mapea la entidad al DTO de salida.
func NewArticleResponse(a *entity.Article) ArticleResponse {
	return ArticleResponse{
		ID:               a.ID,
		Name:             a.Name,
		Reference:        a.Reference,
		Category:         a.Category,
		Quantity:         a.Quantity,
		MinThreshold:     a.MinThreshold,
		AutoMinThreshold: a.AutoMinThreshold,
		OptimalStock:     a.OptimalStock,
		PurchasePrice:    a.PurchasePrice,
		SalePrice:        a.SalePrice,
		Supplier:         a.Supplier,
		LeadTimeDays:     a.LeadTimeDays,
		Active:           a.Active,
		Location:         a.Location,
		Status:           string(a.Status()),
		CriticalLevel:    a.CriticalThreshold(),
		DailySales:       a.DailySales,
		StockRotation:    a.StockRotation,
		UpdatedAt:        a.UpdatedAt,
	}
}

// MovementResponse representación JSON de un movimiento del libro.
type MovementResponse struct {
	ID        string          `json:"id"`
	ArticleID string          `json:"article_id"`
	Kind      string          `json:"kind"`
	Quantity  int             `json:"quantity"`
	Date      time.Time       `json:"date"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Reason    string          `json:"reason"`
	Operator  string          `json:"operator,omitempty"`
	Comment   string          `json:"comment,omitempty"`
}

// NewMovementResponse mapea la entidad al DTO de salida.
func NewMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:        m.ID,
		ArticleID: m.ArticleID,
		Kind:      string(m.Kind),
		Quantity:  m.Quantity,
		Date:      m.Date,
		UnitPrice: m.UnitPrice,
		Reason:    string(m.Reason),
		Operator:  m.Operator,
		Comment:   m.Comment,
	}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
