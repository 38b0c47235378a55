package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo). Los parámetros de los motores viajan aquí
// de forma explícita: ningún componente depende de estado global.
type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	Forecast ForecastConfig
	Restock  RestockConfig
	Scenario ScenarioConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ForecastConfig parámetros del motor de previsiones.
type ForecastConfig struct {
	WindowDays   int     // ventana de análisis de ventas
	SafetyFactor float64 // margen de seguridad del umbral automático
}

// RestockConfig parámetros de coste del motor de reaprovisionamiento.
type RestockConfig struct {
	FixedOrderCost float64 // coste fijo por pedido (EOQ)
	HoldingRate    float64 // coste anual de almacenaje (fracción del precio de compra)
}

// ScenarioConfig parámetros del motor de escenarios.
type ScenarioConfig struct {
	HorizonDays int // horizonte de simulación por defecto
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde archivo). Las env vars tienen prioridad. Nombres esperados:
// APP_ENV, HTTP_PORT, FORECAST_WINDOW_DAYS, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "stockflow-core"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Forecast: ForecastConfig{
			WindowDays:   getInt(v, "FORECAST_WINDOW_DAYS", 30),
			SafetyFactor: getFloat(v, "FORECAST_SAFETY_FACTOR", 1.5),
		},
		Restock: RestockConfig{
			FixedOrderCost: getFloat(v, "RESTOCK_FIXED_ORDER_COST", 50),
			HoldingRate:    getFloat(v, "RESTOCK_HOLDING_RATE", 0.25),
		},
		Scenario: ScenarioConfig{
			HorizonDays: getInt(v, "SCENARIO_HORIZON_DAYS", 90),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			f, _ := strconv.ParseFloat(v.GetString(key), 64)
			return f
		default:
			return v.GetFloat64(key)
		}
	}
	return def
}
