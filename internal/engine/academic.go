package engine

import "admitpath/internal/domain"

// Pesos intra-académicos y defaults. El GPA pesa más que el examen porque
// resume cuatro años contra una mañana.
const (
	gpaAcademicWeight  = 0.60
	testAcademicWeight = 0.40

	// Mínimo de valores crudos para preferir percentil empírico sobre el
	// estimado normal.
	minEmpiricalCases = 10

	// Score bajo, no nulo, cuando el perfil no trajo datos académicos.
	missingAcademicScore = 40.0
)

// academicScore posiciona al aplicante contra los admitidos históricos de
// la escuela y mapea percentil → [0,100] de forma monótona. Devuelve el
// score y un marcador de baja confianza cuando faltó evidencia.
func (e *Engine) academicScore(in NormalizedInputs, dist *domain.HistoricalDistribution, prior parametricPrior) (float64, bool) {
	gpaPct, gpaOK := e.gpaPercentile(in.GPA, dist, prior)
	testPct, testOK := e.testPercentile(in.SAT, dist, prior)

	switch {
	case gpaOK && testOK:
		return (gpaAcademicWeight*gpaPct + testAcademicWeight*testPct) * 100, false
	case gpaOK:
		return gpaPct * 100, true
	case testOK:
		return testPct * 100, true
	default:
		return missingAcademicScore, true
	}
}

// gpaPercentile prefiere el percentil empírico; con pocos casos cae al
// estimado normal del resumen, y sin resumen al prior de selectividad.
func (e *Engine) gpaPercentile(gpa NormalizedGPA, dist *domain.HistoricalDistribution, prior parametricPrior) (float64, bool) {
	if !gpa.Known {
		return 0, false
	}
	if dist != nil && len(dist.GPAValues) >= minEmpiricalCases {
		return empiricalPercentile(gpa.Value, dist.GPAValues), true
	}
	mean, std := prior.GPAMean, prior.GPAStdDev
	if dist.Reliable(e.cfg.MinReliableSample) && dist.GPAStdDev > 0 {
		mean, std = dist.GPAMean, dist.GPAStdDev
	}
	if std <= 0 {
		return 0, false
	}
	return normalCDF((gpa.Value - mean) / std), true
}

func (e *Engine) testPercentile(test NormalizedTest, dist *domain.HistoricalDistribution, prior parametricPrior) (float64, bool) {
	if !test.Known {
		return 0, false
	}
	if dist != nil && len(dist.TestValues) >= minEmpiricalCases {
		return empiricalPercentile(test.Value, dist.TestValues), true
	}
	mean, std := prior.TestMean, prior.TestStdDev
	if dist.Reliable(e.cfg.MinReliableSample) && dist.TestStdDev > 0 {
		mean, std = dist.TestMean, dist.TestStdDev
	}
	if std <= 0 {
		return 0, false
	}
	return normalCDF((test.Value - mean) / std), true
}
