package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio. Los pesos y umbrales del
// motor se exponen como variables para calibrarlos por ambiente; se validan
// una sola vez al arrancar.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`

	CacheTTLMinutes int `env:"CACHE_TTL_MINUTES" envDefault:"60"`

	// Pesos de composición; deben sumar 1.0 o el arranque falla.
	WeightAcademic float64 `env:"WEIGHT_ACADEMIC" envDefault:"0.60"`
	WeightActivity float64 `env:"WEIGHT_ACTIVITY" envDefault:"0.25"`
	WeightAward    float64 `env:"WEIGHT_AWARD" envDefault:"0.15"`

	// Umbrales de tier: p < reach → reach; p >= safety → safety.
	TierReachMax  float64 `env:"TIER_REACH_MAX" envDefault:"0.25"`
	TierSafetyMin float64 `env:"TIER_SAFETY_MIN" envDefault:"0.60"`

	// Casos históricos mínimos para confiar en la distribución de una escuela.
	MinReliableSample int `env:"MIN_RELIABLE_SAMPLE" envDefault:"10"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
