package scenario

// PredefinedScenarios devuelve el catálogo de escenarios estándar listos
// para comparar.
func PredefinedScenarios() []Scenario {
	return []Scenario{
		{
			Name:        "Ventas +20%",
			Description: "Aumento de ventas del 20% (campaña de marketing)",
			Changes:     Changes{SalesDelta: 0.2},
		},
		{
			Name:        "Ventas -20%",
			Description: "Caída de ventas del 20% (temporada baja)",
			Changes:     Changes{SalesDelta: -0.2},
		},
		{
			Name:        "Precios +10%",
			Description: "Subida del precio de venta del 10%",
			Changes:     Changes{PriceDelta: 0.1},
		},
		{
			Name:        "Costes +15%",
			Description: "Aumento del coste de compra del 15% (inflación)",
			Changes:     Changes{CostDelta: 0.15},
		},
		{
			Name:        "Plazos +5d",
			Description: "Alargamiento de los plazos de reaprovisionamiento (+5 días)",
			Changes:     Changes{LeadTimeDelta: 5},
		},
		{
			Name:        "Optimista",
			Description: "Ventas +15% y precios +5%",
			Changes:     Changes{SalesDelta: 0.15, PriceDelta: 0.05},
		},
		{
			Name:        "Pesimista",
			Description: "Ventas -15% y costes +10%",
			Changes:     Changes{SalesDelta: -0.15, CostDelta: 0.1},
		},
	}
}
