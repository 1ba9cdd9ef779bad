package domain

import "time"

// Tier clasifica la escuela relativa al aplicante.
type Tier string

const (
	TierReach  Tier = "reach"
	TierMatch  Tier = "match"
	TierSafety Tier = "safety"
)

// ConfidenceLevel indica cuánta evidencia respaldó la predicción;
// es independiente del valor de probabilidad.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// FactorImpact es la dirección en la que un factor empujó el resultado.
type FactorImpact string

const (
	ImpactPositive FactorImpact = "positive"
	ImpactNegative FactorImpact = "negative"
	ImpactNeutral  FactorImpact = "neutral"
)

// ActivityStrength es la etiqueta categórica de fuerza extracurricular.
type ActivityStrength string

const (
	ActivityWeak    ActivityStrength = "weak"
	ActivityAverage ActivityStrength = "average"
	ActivityStrong  ActivityStrength = "strong"
)

// ScoreBreakdown son los sub-scores de una corrida de la tubería.
// Cada componente vive en [0,100]; Overall es una combinación convexa
// de los tres, así que también.
type ScoreBreakdown struct {
	Academic float64 `json:"academic"`
	Activity float64 `json:"activity"`
	Award    float64 `json:"award"`
	Overall  float64 `json:"overall"`
}

// PredictionFactor explica un insumo que movió el score, en orden de peso.
// Improvement solo se completa cuando el impacto es negativo.
type PredictionFactor struct {
	Name        string       `json:"name"`
	Impact      FactorImpact `json:"impact"`
	Weight      float64      `json:"weight"`
	Detail      string       `json:"detail"`
	Improvement string       `json:"improvement,omitempty"`
}

// PredictionComparison posiciona al aplicante contra los admitidos
// históricos de la escuela. Percentiles nil significan "sin dato".
type PredictionComparison struct {
	GPAPercentile    *float64         `json:"gpa_percentile,omitempty"`
	TestPercentile   *float64         `json:"test_percentile,omitempty"`
	ActivityStrength ActivityStrength `json:"activity_strength"`
}

// PredictionResult es la salida inmutable de una corrida (perfil, escuela).
type PredictionResult struct {
	SchoolID    string               `json:"school_id"`
	Probability float64              `json:"probability"`
	Tier        Tier                 `json:"tier"`
	Confidence  ConfidenceLevel      `json:"confidence"`
	Breakdown   ScoreBreakdown       `json:"breakdown"`
	Factors     []PredictionFactor   `json:"factors"`
	Comparison  PredictionComparison `json:"comparison"`
	FromCache   bool                 `json:"from_cache"`
	GeneratedAt time.Time            `json:"generated_at"`
}
