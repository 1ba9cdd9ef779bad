package engine

import (
	"fmt"
	"sort"

	"admitpath/internal/domain"
)

// Pesos de los factores explicativos. Los dimensionales derivan de la
// tabla de composición; el examen de idioma aporta fuera de ella.
const languageFactorWeight = 0.10

// Umbrales fijos para la etiqueta categórica de actividades.
const (
	activityStrongMin = 65.0
	activityWeakMax   = 40.0
)

// Umbral para leer el bloque de premios como fortaleza.
const awardStrongMin = 60.0

// Margen alrededor de la mediana histórica dentro del cual el factor se
// considera parejo y no empuja en ninguna dirección.
const (
	gpaNeutralBand  = 0.05
	testNeutralBand = 20.0
)

// explain reconstruye qué insumos movieron el score, en orden de peso
// absoluto descendente. El texto de mejora solo acompaña factores
// negativos y siempre es específico de la dimensión.
func (e *Engine) explain(in NormalizedInputs, breakdown domain.ScoreBreakdown, dist *domain.HistoricalDistribution, prior parametricPrior) []domain.PredictionFactor {
	factors := []domain.PredictionFactor{
		e.gpaFactor(in.GPA, dist, prior),
		e.testFactor(in.SAT, dist, prior),
		activityFactor(in.Activities, breakdown.Activity, e.cfg.Weights.Activity),
		awardFactor(in.Awards, breakdown.Award, e.cfg.Weights.Award),
	}
	if in.Language.Known {
		factors = append(factors, languageFactor(in.Language))
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Weight > factors[j].Weight
	})
	return factors
}

func (e *Engine) gpaFactor(gpa NormalizedGPA, dist *domain.HistoricalDistribution, prior parametricPrior) domain.PredictionFactor {
	f := domain.PredictionFactor{
		Name:   "gpa",
		Weight: e.cfg.Weights.Academic * gpaAcademicWeight,
	}
	if !gpa.Known {
		f.Impact = domain.ImpactNeutral
		f.Detail = "Sin GPA informado: la dimensión académica se estimó con baja confianza."
		return f
	}

	target := gpaMedian(dist, prior)
	switch {
	case gpa.Value >= target+gpaNeutralBand:
		f.Impact = domain.ImpactPositive
		f.Detail = fmt.Sprintf("GPA %.2f (escala 4.0) por encima de la mediana histórica de admitidos (%.2f).", gpa.Value, target)
	case gpa.Value <= target-gpaNeutralBand:
		f.Impact = domain.ImpactNegative
		f.Detail = fmt.Sprintf("GPA %.2f (escala 4.0) por debajo de la mediana histórica de admitidos (%.2f).", gpa.Value, target)
		f.Improvement = fmt.Sprintf("Priorizar materias donde se pueda subir nota: acercar el GPA a %.2f mejora la dimensión de mayor peso.", target)
	default:
		f.Impact = domain.ImpactNeutral
		f.Detail = fmt.Sprintf("GPA %.2f (escala 4.0) en línea con la mediana histórica de admitidos (%.2f).", gpa.Value, target)
	}
	return f
}

func (e *Engine) testFactor(test NormalizedTest, dist *domain.HistoricalDistribution, prior parametricPrior) domain.PredictionFactor {
	f := domain.PredictionFactor{
		Name:   "standardized_test",
		Weight: e.cfg.Weights.Academic * testAcademicWeight,
	}
	if !test.Known {
		f.Impact = domain.ImpactNeutral
		f.Detail = "Sin examen estandarizado informado: la comparación usó solo el GPA."
		return f
	}

	label := string(test.Type)
	target := testMedian(dist, prior)
	switch {
	case test.Value >= target+testNeutralBand:
		f.Impact = domain.ImpactPositive
		f.Detail = fmt.Sprintf("%s equivalente a %.0f SAT, por encima de la mediana histórica (%.0f).", label, test.Value, target)
	case test.Value <= target-testNeutralBand:
		f.Impact = domain.ImpactNegative
		f.Detail = fmt.Sprintf("%s equivalente a %.0f SAT, por debajo de la mediana histórica (%.0f).", label, test.Value, target)
		f.Improvement = fmt.Sprintf("Volver a rendir el %s apuntando a %.0f o más; un intento adicional suele sumar.", label, target)
	default:
		f.Impact = domain.ImpactNeutral
		f.Detail = fmt.Sprintf("%s equivalente a %.0f SAT, en línea con la mediana histórica (%.0f).", label, test.Value, target)
	}
	return f
}

func activityFactor(activities []domain.Activity, score, weight float64) domain.PredictionFactor {
	f := domain.PredictionFactor{Name: "activities", Weight: weight}
	if len(activities) == 0 {
		f.Impact = domain.ImpactNeutral
		f.Detail = "Sin actividades cargadas todavía: la dimensión extracurricular no se pudo evaluar."
		return f
	}
	switch {
	case score >= activityStrongMin:
		f.Impact = domain.ImpactPositive
		f.Detail = fmt.Sprintf("Perfil extracurricular fuerte (%d actividades, score %.0f/100).", len(activities), score)
	case score <= activityWeakMax:
		f.Impact = domain.ImpactNegative
		f.Detail = fmt.Sprintf("Perfil extracurricular débil (score %.0f/100).", score)
		f.Improvement = "Sumar un rol de liderazgo sostenido (presidente, fundador, capitán) en una actividad existente pesa más que agregar actividades nuevas."
	default:
		f.Impact = domain.ImpactNeutral
		f.Detail = fmt.Sprintf("Perfil extracurricular promedio (score %.0f/100).", score)
	}
	return f
}

func awardFactor(awards []domain.Award, score, weight float64) domain.PredictionFactor {
	f := domain.PredictionFactor{Name: "awards", Weight: weight}
	if len(awards) == 0 {
		f.Impact = domain.ImpactNeutral
		f.Detail = "Sin premios cargados todavía: la dimensión de distinciones no se pudo evaluar."
		return f
	}
	switch {
	case score >= awardStrongMin:
		f.Impact = domain.ImpactPositive
		f.Detail = fmt.Sprintf("Premios de peso (%d distinciones, score %.0f/100).", len(awards), score)
	default:
		f.Impact = domain.ImpactNegative
		f.Detail = fmt.Sprintf("Premios de alcance limitado (score %.0f/100).", score)
		f.Improvement = "Apuntar a una competencia de nivel nacional en el área fuerte del perfil: un solo podio nacional vale más que varios premios escolares."
	}
	return f
}

func languageFactor(test NormalizedTest) domain.PredictionFactor {
	f := domain.PredictionFactor{
		Name:   "language_test",
		Weight: languageFactorWeight,
	}
	// Escala TOEFL: 100+ suele alcanzar para programas selectivos.
	switch {
	case test.Value >= 100:
		f.Impact = domain.ImpactPositive
		f.Detail = fmt.Sprintf("%s equivalente a %.0f TOEFL, suficiente para programas selectivos.", test.Type, test.Value)
	case test.Value >= 80:
		f.Impact = domain.ImpactNeutral
		f.Detail = fmt.Sprintf("%s equivalente a %.0f TOEFL, dentro del rango habitual de corte.", test.Type, test.Value)
	default:
		f.Impact = domain.ImpactNegative
		f.Detail = fmt.Sprintf("%s equivalente a %.0f TOEFL, por debajo de los cortes habituales.", test.Type, test.Value)
		f.Improvement = "Volver a rendir el examen de idioma apuntando a 100 TOEFL (o 7.5 IELTS); muchos programas filtran por este corte antes de leer el resto."
	}
	return f
}

// compare arma el bloque de percentiles contra la distribución de la escuela
// y la etiqueta categórica de actividades.
func (e *Engine) compare(in NormalizedInputs, dist *domain.HistoricalDistribution, prior parametricPrior, activityScore float64) domain.PredictionComparison {
	cmp := domain.PredictionComparison{
		ActivityStrength: activityStrengthLabel(activityScore),
	}
	if pct, ok := e.gpaPercentile(in.GPA, dist, prior); ok {
		v := pct * 100
		cmp.GPAPercentile = &v
	}
	if pct, ok := e.testPercentile(in.SAT, dist, prior); ok {
		v := pct * 100
		cmp.TestPercentile = &v
	}
	return cmp
}

func activityStrengthLabel(score float64) domain.ActivityStrength {
	switch {
	case score >= activityStrongMin:
		return domain.ActivityStrong
	case score <= activityWeakMax:
		return domain.ActivityWeak
	default:
		return domain.ActivityAverage
	}
}

func gpaMedian(dist *domain.HistoricalDistribution, prior parametricPrior) float64 {
	if dist != nil && len(dist.GPAValues) >= minEmpiricalCases {
		return median(dist.GPAValues)
	}
	if dist != nil && dist.SampleSize > 0 && dist.GPAMean > 0 {
		return dist.GPAMean
	}
	return prior.GPAMean
}

func testMedian(dist *domain.HistoricalDistribution, prior parametricPrior) float64 {
	if dist != nil && len(dist.TestValues) >= minEmpiricalCases {
		return median(dist.TestValues)
	}
	if dist != nil && dist.SampleSize > 0 && dist.TestMean > 0 {
		return dist.TestMean
	}
	return prior.TestMean
}
