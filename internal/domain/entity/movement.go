package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementKind es el tipo cerrado de movimiento de stock.
type MovementKind string

const (
	MovementIn         MovementKind = "in"         // entrada
	MovementOut        MovementKind = "out"        // salida
	MovementCorrection MovementKind = "correction" // corrección absoluta de cantidad
	MovementCount      MovementKind = "count"      // inventario físico (también absoluto)
	MovementOther      MovementKind = "other"      // tipo no reconocido
)

// ParseMovementKind normaliza un string a MovementKind.
// Valores no reconocidos caen en MovementOther, nunca son fatales.
func ParseMovementKind(s string) MovementKind {
	switch MovementKind(s) {
	case MovementIn, MovementOut, MovementCorrection, MovementCount:
		return MovementKind(s)
	}
	return MovementOther
}

// MovementReason es el motivo cerrado de un movimiento.
type MovementReason string

const (
	ReasonSale       MovementReason = "sale"       // venta
	ReasonRestock    MovementReason = "restock"    // reaprovisionamiento
	ReasonReturn     MovementReason = "return"     // devolución
	ReasonLoss       MovementReason = "loss"       // pérdida o merma
	ReasonAdjustment MovementReason = "adjustment" // ajuste manual
	ReasonOther      MovementReason = "other"      // motivo no reconocido
)

// ParseMovementReason normaliza un string a MovementReason.
func ParseMovementReason(s string) MovementReason {
	switch MovementReason(s) {
	case ReasonSale, ReasonRestock, ReasonReturn, ReasonLoss, ReasonAdjustment:
		return MovementReason(s)
	}
	return ReasonOther
}

// Movement representa una entrada inmutable del libro de movimientos.
// Una vez registrado nunca se modifica ni se reordena; solo se elimina
// en cascada al borrar el artículo dueño.
type Movement struct {
	ID        string
	ArticleID string
	Kind      MovementKind
	Quantity  int
	Date      time.Time
	UnitPrice decimal.Decimal // precio unitario al momento del movimiento
	Reason    MovementReason
	Operator  string
	Comment   string
}

// NewMovement construye un movimiento con ID y fecha generados.
func NewMovement(articleID string, kind MovementKind, quantity int, unitPrice decimal.Decimal, reason MovementReason) *Movement {
	return &Movement{
		ID:        uuid.New().String(),
		ArticleID: articleID,
		Kind:      kind,
		Quantity:  quantity,
		Date:      time.Now(),
		UnitPrice: unitPrice,
		Reason:    reason,
	}
}

// Clone devuelve una copia por valor del movimiento.
func (m *Movement) Clone() *Movement {
	c := *m
	return &c
}
