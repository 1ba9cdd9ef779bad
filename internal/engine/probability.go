package engine

import "admitpath/internal/domain"

// Cotas globales y mezcla con la tasa de aceptación. El piso y el techo
// impiden que la curva contradiga a una escuela extremadamente selectiva
// o extremadamente abierta, incluso para aplicantes de borde.
const (
	// La probabilidad nunca se presenta como certeza.
	probabilityMin = 0.01
	probabilityMax = 0.99

	// floor = floorRateFraction*tasa; ceiling = ceilingBase + ceilingRateMultiple*tasa.
	floorRateFraction   = 0.30
	ceilingBase         = 0.08
	ceilingRateMultiple = 6.0

	// Camino sin histórico: p = tasa * (fallbackBase + fallbackScoreSlope*score/100).
	// Monótono en el score, con techo proporcional a la tasa.
	fallbackBase       = 0.5
	fallbackScoreSlope = 1.5
)

// mapToProbability convierte el score compuesto en probabilidad de admisión.
// Con distribución histórica utilizable aplica la CDF normal del z-score del
// aplicante contra los admitidos; sin ella, una función monótona simple de
// (score, tasa de aceptación). Ambos caminos respetan piso/techo por tasa y
// la cota global [0.01, 0.99].
func (e *Engine) mapToProbability(overall float64, school domain.SchoolMetrics, dist *domain.HistoricalDistribution, prior parametricPrior) float64 {
	rate := school.AcceptanceRate
	if rate <= 0 || rate > 1 {
		rate = prior.AcceptanceRate
	}

	var p float64
	if dist.Reliable(e.cfg.MinReliableSample) && dist.ScoreStdDev > 0 {
		z := (overall - dist.ScoreMean) / dist.ScoreStdDev
		p = normalCDF(z)
	} else {
		p = rate * (fallbackBase + fallbackScoreSlope*overall/100)
	}

	floor := floorRateFraction * rate
	ceiling := ceilingBase + ceilingRateMultiple*rate
	p = clamp(p, floor, ceiling)
	return clamp(p, probabilityMin, probabilityMax)
}
