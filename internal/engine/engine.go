package engine

import (
	"fmt"
	"time"

	"admitpath/internal/domain"
)

// Config reúne los pesos y umbrales ajustables del motor. Se carga una vez
// al arrancar el proceso y se trata como inmutable desde entonces.
type Config struct {
	Weights Weights

	// Umbrales de clasificación: p < ReachUpperBound es reach,
	// p >= SafetyLowerBound es safety, el medio es match.
	ReachUpperBound  float64
	SafetyLowerBound float64

	// Mínimo de casos históricos para tratar una distribución como confiable.
	MinReliableSample int
}

// DefaultConfig devuelve los valores documentados de la versión v1.
func DefaultConfig() Config {
	return Config{
		Weights:           DefaultWeights(),
		ReachUpperBound:   0.25,
		SafetyLowerBound:  0.60,
		MinReliableSample: 10,
	}
}

// Engine es la tubería de predicción completa. Es un valor sin estado
// mutable: Predict es puro y seguro para corridas concurrentes.
type Engine struct {
	cfg Config
}

// NewEngine valida la configuración y falla rápido, nunca por request.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Weights.Validate(); err != nil {
		return nil, err
	}
	if cfg.ReachUpperBound <= 0 || cfg.SafetyLowerBound >= 1 || cfg.ReachUpperBound >= cfg.SafetyLowerBound {
		return nil, fmt.Errorf("umbrales de tier inválidos: reach<%v, safety>=%v", cfg.ReachUpperBound, cfg.SafetyLowerBound)
	}
	if cfg.MinReliableSample < 1 {
		return nil, fmt.Errorf("muestra mínima inválida: %d", cfg.MinReliableSample)
	}
	return &Engine{cfg: cfg}, nil
}

// Predict corre la tubería completa para una escuela: normalización,
// sub-scores, composición, probabilidad, clasificación y explicación.
// Los datos faltantes degradan la confianza, nunca abortan.
func (e *Engine) Predict(profile domain.ProfileMetrics, school domain.SchoolMetrics, dist *domain.HistoricalDistribution) domain.PredictionResult {
	in := Normalize(profile)
	prior := selectivityPrior(school)

	academic, academicLow := e.academicScore(in, dist, prior)
	activity, activityLow := activityScore(in.Activities)
	award, awardLow := awardScore(in.Awards)

	breakdown := e.cfg.Weights.compose(academic, activity, award)
	probability := e.mapToProbability(breakdown.Overall, school, dist, prior)

	quality := dataQuality{
		SampleSize:    historicalSampleSize(dist),
		GPAKnown:      in.GPA.Known,
		TestKnown:     in.SAT.Known,
		HasActivities: len(in.Activities) > 0,
		LowSignals:    countLowSignals(in, academicLow, activityLow, awardLow),
	}

	return domain.PredictionResult{
		SchoolID:    school.SchoolID,
		Probability: probability,
		Tier:        e.classifyTier(probability),
		Confidence:  e.classifyConfidence(quality),
		Breakdown:   breakdown,
		Factors:     e.explain(in, breakdown, dist, prior),
		Comparison:  e.compare(in, dist, prior, activity),
		GeneratedAt: time.Now().UTC(),
	}
}

func historicalSampleSize(dist *domain.HistoricalDistribution) int {
	if dist == nil {
		return 0
	}
	return dist.SampleSize
}

func countLowSignals(in NormalizedInputs, lows ...bool) int {
	n := 0
	if in.GPA.LowConfidence {
		n++
	}
	if in.SAT.LowConfidence {
		n++
	}
	for _, l := range lows {
		if l {
			n++
		}
	}
	return n
}

// prior paramétrico por tier de selectividad, usado cuando la escuela no
// tiene distribución histórica utilizable.
type parametricPrior struct {
	AcceptanceRate float64
	GPAMean        float64
	GPAStdDev      float64
	TestMean       float64
	TestStdDev     float64
	ScoreMean      float64
	ScoreStdDev    float64
}

// selectivityPrior deriva un prior genérico del ranking y la tasa de
// aceptación. Sustituye a la distribución histórica cuando esta falta
// o es demasiado chica.
func selectivityPrior(school domain.SchoolMetrics) parametricPrior {
	rate := school.AcceptanceRate
	rank := school.Rank
	switch {
	case (rate > 0 && rate < 0.10) || (rank > 0 && rank <= 20):
		return parametricPrior{AcceptanceRate: 0.07, GPAMean: 3.90, GPAStdDev: 0.15, TestMean: 1520, TestStdDev: 60, ScoreMean: 78, ScoreStdDev: 8}
	case (rate > 0 && rate < 0.25) || (rank > 0 && rank <= 60):
		return parametricPrior{AcceptanceRate: 0.20, GPAMean: 3.70, GPAStdDev: 0.25, TestMean: 1420, TestStdDev: 90, ScoreMean: 68, ScoreStdDev: 10}
	case (rate > 0 && rate < 0.50) || (rank > 0 && rank <= 150):
		return parametricPrior{AcceptanceRate: 0.45, GPAMean: 3.40, GPAStdDev: 0.35, TestMean: 1280, TestStdDev: 120, ScoreMean: 58, ScoreStdDev: 12}
	default:
		return parametricPrior{AcceptanceRate: 0.70, GPAMean: 3.00, GPAStdDev: 0.45, TestMean: 1100, TestStdDev: 150, ScoreMean: 48, ScoreStdDev: 14}
	}
}
