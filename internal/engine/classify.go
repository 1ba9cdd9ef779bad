package engine

import "admitpath/internal/domain"

// dataQuality resume cuánta evidencia respaldó una corrida, de ambos lados:
// la muestra histórica de la escuela y la completitud del propio perfil.
type dataQuality struct {
	SampleSize    int
	GPAKnown      bool
	TestKnown     bool
	HasActivities bool
	LowSignals    int
}

// classifyTier aplica los umbrales documentados: p < reach → reach,
// p >= safety → safety, el resto match. El borde inferior de cada banda
// es inclusivo (p = 0.25 ya es match).
func (e *Engine) classifyTier(p float64) domain.Tier {
	switch {
	case p < e.cfg.ReachUpperBound:
		return domain.TierReach
	case p < e.cfg.SafetyLowerBound:
		return domain.TierMatch
	default:
		return domain.TierSafety
	}
}

// classifyConfidence deriva la etiqueta de confianza. Nunca es "high"
// cuando algún lado de los datos está flaco.
func (e *Engine) classifyConfidence(q dataQuality) domain.ConfidenceLevel {
	profileComplete := q.GPAKnown && q.TestKnown && q.HasActivities
	if q.SampleSize >= e.cfg.MinReliableSample && profileComplete && q.LowSignals == 0 {
		return domain.ConfidenceHigh
	}
	if q.SampleSize >= e.cfg.MinReliableSample/2 && q.GPAKnown && q.TestKnown {
		return domain.ConfidenceMedium
	}
	return domain.ConfidenceLow
}
