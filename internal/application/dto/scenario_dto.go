package dto

import "github.com/tu-usuario/stockflow-core/internal/application/scenario"

// CompareScenariosRequest body para POST /api/scenarios/compare.
// Days en cero usa el horizonte configurado.
type CompareScenariosRequest struct {
	Scenarios []scenario.Scenario `json:"scenarios"`
	Days      int                 `json:"days"`
}
