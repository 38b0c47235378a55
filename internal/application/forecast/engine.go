package forecast

import (
	"fmt"
	"math"
	"time"

	"github.com/tu-usuario/stockflow-core/internal/domain/entity"
)

// Trend etiqueta la tendencia de ventas de un artículo.
type Trend string

const (
	TrendUp     Trend = "hausse"
	TrendDown   Trend = "baisse"
	TrendStable Trend = "stable"
)

// Severity clasifica la gravedad de una anomalía.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityElevated Severity = "elevated"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Tipos de anomalía detectables.
const (
	AnomalyNegativeStock = "negative_stock"
	AnomalyStockout      = "stockout"
	AnomalyCriticalStock = "critical_stock"
	AnomalyOverstock     = "overstock"
	AnomalyInactivity    = "inactivity"
	AnomalySuddenSpike   = "sudden_spike"
)

// Forecast es el resultado de una previsión de ventas por artículo.
type Forecast struct {
	ArticleID     string  `json:"article_id"`
	ArticleName   string  `json:"article_name"`
	AvgDailySales float64 `json:"avg_daily_sales"`
	WeeklySales   float64 `json:"weekly_sales"`
	MonthlySales  float64 `json:"monthly_sales"`
	Trend         Trend   `json:"trend"`
	TrendPct      float64 `json:"trend_pct"`
	Confidence    float64 `json:"confidence"` // 0-100
}

// Anomaly representa una anomalía detectada sobre un artículo.
type Anomaly struct {
	ArticleID     string    `json:"article_id"`
	ArticleName   string    `json:"article_name"`
	Kind          string    `json:"kind"`
	Severity      Severity  `json:"severity"`
	Message       string    `json:"message"`
	CurrentValue  float64   `json:"current_value"`
	ExpectedValue *float64  `json:"expected_value,omitempty"`
	DetectedAt    time.Time `json:"detected_at"`
}

// StockoutProjection estima cuándo un artículo quedará sin existencias.
type StockoutProjection struct {
	ArticleID     string     `json:"article_id"`
	ArticleName   string     `json:"article_name"`
	Quantity      int        `json:"quantity"`
	AvgDailySales float64    `json:"avg_daily_sales"`
	Predicted     bool       `json:"predicted"`
	DaysRemaining *int       `json:"days_remaining,omitempty"`
	Date          *time.Time `json:"date,omitempty"`
	Message       string     `json:"message"`
}

// Config parámetros del motor de previsiones. Se pasan explícitos: el motor
// no depende de estado global de proceso.
type Config struct {
	WindowDays   int     // ventana de análisis (por defecto 30 días)
	SafetyFactor float64 // margen de seguridad del umbral automático (por defecto 1.5)
}

func (c Config) withDefaults() Config {
	if c.WindowDays <= 0 {
		c.WindowDays = 30
	}
	if c.SafetyFactor <= 0 {
		c.SafetyFactor = 1.5
	}
	return c
}

// Engine es el motor de previsiones y detección de anomalías.
// Es de solo lectura sobre el inventario salvo el refresco explícito de
// estadísticas cacheadas (RefreshArticleStats), que es idempotente.
type Engine struct {
	inv *entity.Inventory
	cfg Config

	// now permite inyectar el reloj en tests.
	now func() time.Time
}

// NewEngine construye el motor sobre un inventario.
func NewEngine(inv *entity.Inventory, cfg Config) *Engine {
	return &Engine{inv: inv, cfg: cfg.withDefaults(), now: time.Now}
}

// WithClock reemplaza el reloj del motor (tests deterministas).
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// AvgDailySales calcula la media de ventas por día en la ventana [now-days, now].
// Divide por la longitud de la ventana, no por los días con ventas: los días
// sin ventas diluyen la media.
func (e *Engine) AvgDailySales(articleID string, days int) float64 {
	if days <= 0 {
		return 0
	}
	end := e.now()
	start := end.AddDate(0, 0, -days)

	total := 0
	for _, m := range e.inv.MovementsBetween(start, end) {
		if m.ArticleID == articleID && m.Kind == entity.MovementOut && m.Reason == entity.ReasonSale {
			total += m.Quantity
		}
	}
	if total == 0 {
		return 0
	}
	return float64(total) / float64(days)
}

// Forecast genera la previsión de ventas de un artículo.
func (e *Engine) Forecast(articleID string) (*Forecast, error) {
	article, err := e.inv.Article(articleID)
	if err != nil {
		return nil, err
	}

	daily := e.AvgDailySales(articleID, e.cfg.WindowDays)
	trend, trendPct := e.trend(articleID, e.cfg.WindowDays)

	// Confianza: 5% por venta registrada, tope 100%.
	sales := 0
	for _, m := range e.inv.ArticleMovements(articleID, 0) {
		if m.Kind == entity.MovementOut && m.Reason == entity.ReasonSale {
			sales++
		}
	}
	confidence := math.Min(100, float64(sales)*5)

	return &Forecast{
		ArticleID:     articleID,
		ArticleName:   article.Name,
		AvgDailySales: daily,
		WeeklySales:   daily * 7,
		MonthlySales:  daily * 30,
		Trend:         trend,
		TrendPct:      trendPct,
		Confidence:    confidence,
	}, nil
}

// trend compara las ventas de la primera mitad de la ventana contra la
// segunda. Sin ventas en la primera mitad la tendencia es estable al 0%.
func (e *Engine) trend(articleID string, days int) (Trend, float64) {
	end := e.now()
	mid := end.AddDate(0, 0, -days/2)
	start := end.AddDate(0, 0, -days)

	first := e.sumSales(articleID, start, mid)
	second := e.sumSales(articleID, mid, end)

	return classifyTrend(first, second)
}

// GlobalTrend aplica la misma regla de mitades a las ventas de todos los
// artículos del inventario.
func (e *Engine) GlobalTrend() (Trend, float64) {
	days := e.cfg.WindowDays
	end := e.now()
	mid := end.AddDate(0, 0, -days/2)
	start := end.AddDate(0, 0, -days)

	first := e.sumSales("", start, mid)
	second := e.sumSales("", mid, end)

	return classifyTrend(first, second)
}

// sumSales suma las cantidades de venta del periodo. articleID vacío
// considera todos los artículos.
func (e *Engine) sumSales(articleID string, from, to time.Time) int {
	total := 0
	for _, m := range e.inv.MovementsBetween(from, to) {
		if articleID != "" && m.ArticleID != articleID {
			continue
		}
		if m.Kind == entity.MovementOut && m.Reason == entity.ReasonSale {
			total += m.Quantity
		}
	}
	return total
}

func classifyTrend(first, second int) (Trend, float64) {
	if first == 0 {
		return TrendStable, 0
	}
	variation := (float64(second-first) / float64(first)) * 100
	switch {
	case variation > 10:
		return TrendUp, variation
	case variation < -10:
		return TrendDown, variation
	default:
		return TrendStable, variation
	}
}

// AutoThreshold calcula el umbral mínimo automático de un artículo:
// ceil(ventas_día × plazo × factor de seguridad), acotado a [1, stock óptimo].
// Sin historial de ventas devuelve el 10% del stock óptimo (mínimo 1).
func (e *Engine) AutoThreshold(articleID string) (int, error) {
	article, err := e.inv.Article(articleID)
	if err != nil {
		return 0, err
	}

	daily := e.AvgDailySales(articleID, e.cfg.WindowDays)
	if daily <= 0 {
		t := int(math.Round(float64(article.OptimalStock) * 0.1))
		if t < 1 {
			t = 1
		}
		return t, nil
	}

	threshold := int(math.Ceil(daily * float64(article.LeadTimeDays) * e.cfg.SafetyFactor))
	if threshold < 1 {
		threshold = 1
	}
	if threshold > article.OptimalStock {
		threshold = article.OptimalStock
	}
	return threshold, nil
}

// DetectAnomalies recorre todos los artículos y devuelve las anomalías
// encontradas. Un artículo puede reportar varias; no se deduplican.
func (e *Engine) DetectAnomalies() []Anomaly {
	var anomalies []Anomaly
	now := e.now()

	for _, article := range e.inv.Articles {
		threshold := float64(article.CriticalThreshold())

		// 1. Stock negativo
		if article.Quantity < 0 {
			expected := 0.0
			anomalies = append(anomalies, Anomaly{
				ArticleID:     article.ID,
				ArticleName:   article.Name,
				Kind:          AnomalyNegativeStock,
				Severity:      SeverityCritical,
				Message:       fmt.Sprintf("Stock negativo detectado: %d unidades", article.Quantity),
				CurrentValue:  float64(article.Quantity),
				ExpectedValue: &expected,
				DetectedAt:    now,
			})
		}

		// 2. Ruptura de stock
		if article.Quantity == 0 && article.Active {
			anomalies = append(anomalies, Anomaly{
				ArticleID:     article.ID,
				ArticleName:   article.Name,
				Kind:          AnomalyStockout,
				Severity:      SeverityCritical,
				Message:       "Artículo sin existencias",
				CurrentValue:  0,
				ExpectedValue: &threshold,
				DetectedAt:    now,
			})
		}

		// 3. Stock crítico (bajo el umbral)
		if article.Quantity > 0 && float64(article.Quantity) <= threshold {
			msg := fmt.Sprintf("Stock crítico: %d unidades", article.Quantity)
			if days := article.DaysToStockout(); days != nil {
				msg += fmt.Sprintf(" (ruptura estimada en %d días)", *days)
			}
			anomalies = append(anomalies, Anomaly{
				ArticleID:     article.ID,
				ArticleName:   article.Name,
				Kind:          AnomalyCriticalStock,
				Severity:      SeverityElevated,
				Message:       msg,
				CurrentValue:  float64(article.Quantity),
				ExpectedValue: &threshold,
				DetectedAt:    now,
			})
		}

		// 4. Sobrestock
		if float64(article.Quantity) > float64(article.OptimalStock)*1.5 {
			expected := float64(article.OptimalStock)
			anomalies = append(anomalies, Anomaly{
				ArticleID:     article.ID,
				ArticleName:   article.Name,
				Kind:          AnomalyOverstock,
				Severity:      SeverityMedium,
				Message:       fmt.Sprintf("Sobrestock: %d unidades (óptimo: %d)", article.Quantity, article.OptimalStock),
				CurrentValue:  float64(article.Quantity),
				ExpectedValue: &expected,
				DetectedAt:    now,
			})
		}

		// 5 y 6 miran los diez movimientos más recientes del artículo.
		recent := e.inv.ArticleMovements(article.ID, 10)

		// 5. Inactividad: ninguna venta reciente con stock disponible
		hasSales := false
		for _, m := range recent {
			if m.Kind == entity.MovementOut && m.Reason == entity.ReasonSale {
				hasSales = true
				break
			}
		}
		if !hasSales && article.Quantity > 0 {
			anomalies = append(anomalies, Anomaly{
				ArticleID:   article.ID,
				ArticleName: article.Name,
				Kind:        AnomalyInactivity,
				Severity:    SeverityLow,
				Message:     "Sin ventas registradas (¿artículo muerto?)",
				DetectedAt:  now,
			})
		}

		// 6. Pico brusco: la última salida triplica a la anterior
		if len(recent) >= 2 {
			last, prev := recent[0], recent[1]
			if last.Kind == entity.MovementOut && prev.Kind == entity.MovementOut &&
				last.Quantity > prev.Quantity*3 {
				expected := float64(prev.Quantity)
				anomalies = append(anomalies, Anomaly{
					ArticleID:     article.ID,
					ArticleName:   article.Name,
					Kind:          AnomalySuddenSpike,
					Severity:      SeverityMedium,
					Message:       fmt.Sprintf("Pico de salidas inusual: %d unidades", last.Quantity),
					CurrentValue:  float64(last.Quantity),
					ExpectedValue: &expected,
					DetectedAt:    now,
				})
			}
		}
	}

	return anomalies
}

// ProjectStockout estima los días restantes hasta la ruptura de un artículo.
// Sin ventas la proyección se reporta como indeterminada, nunca divide por cero.
func (e *Engine) ProjectStockout(articleID string) (*StockoutProjection, error) {
	article, err := e.inv.Article(articleID)
	if err != nil {
		return nil, err
	}

	daily := e.AvgDailySales(articleID, e.cfg.WindowDays)
	if daily <= 0 {
		return &StockoutProjection{
			ArticleID:   articleID,
			ArticleName: article.Name,
			Quantity:    article.Quantity,
			Predicted:   false,
			Message:     "Sin ventas registradas, imposible estimar la ruptura",
		}, nil
	}

	days := int(float64(article.Quantity) / daily)
	date := e.now().AddDate(0, 0, days)
	return &StockoutProjection{
		ArticleID:     articleID,
		ArticleName:   article.Name,
		Quantity:      article.Quantity,
		AvgDailySales: daily,
		Predicted:     true,
		DaysRemaining: &days,
		Date:          &date,
		Message:       fmt.Sprintf("Ruptura estimada en %d días (%s)", days, date.Format("2006-01-02")),
	}, nil
}

// RefreshArticleStats recalcula y escribe las estadísticas cacheadas de un
// artículo: ventas diarias, rotación anual y umbral mínimo automático.
// Es la única escritura permitida del motor y es idempotente.
func (e *Engine) RefreshArticleStats(articleID string) error {
	article, err := e.inv.Article(articleID)
	if err != nil {
		return err
	}

	article.DailySales = e.AvgDailySales(articleID, e.cfg.WindowDays)

	annual := article.DailySales * 365
	if article.Quantity > 0 {
		article.StockRotation = annual / float64(article.Quantity)
	} else {
		article.StockRotation = 0
	}

	threshold, err := e.AutoThreshold(articleID)
	if err != nil {
		return err
	}
	article.AutoMinThreshold = &threshold
	article.UpdatedAt = e.now()
	return nil
}

// RefreshAllStats refresca las estadísticas de todos los artículos.
func (e *Engine) RefreshAllStats() {
	for _, article := range e.inv.Articles {
		_ = e.RefreshArticleStats(article.ID)
	}
}
