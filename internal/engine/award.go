package engine

import (
	"math"

	"admitpath/internal/domain"
)

// Tabla fija de puntos: alcance de la competencia × posición obtenida.
var awardLevelPoints = map[domain.AwardLevel]float64{
	domain.AwardLevelSchool:        1,
	domain.AwardLevelRegional:      2,
	domain.AwardLevelNational:      4,
	domain.AwardLevelInternational: 8,
}

var awardTierMultiplier = map[domain.AwardTier]float64{
	domain.AwardTierThird:  1.0,
	domain.AwardTierSecond: 1.5,
	domain.AwardTierFirst:  2.0,
	domain.AwardTierGrand:  3.0,
}

const (
	// Escala de la suma amortiguada hacia [0,100]. Un único premio
	// internacional grand (24 puntos) queda cerca de 88, no satura.
	awardScaleFactor = 18.0

	// Niveles o posiciones no reconocidos valen lo mínimo, no cero.
	awardUnknownPoints     = 1.0
	awardUnknownMultiplier = 1.0

	// Score bajo, no nulo, para perfiles sin premios cargados.
	missingAwardScore = 30.0
)

// awardScore suma los puntos de cada premio y amortigua con raíz cuadrada
// para que ningún premio individual domine el score.
func awardScore(awards []domain.Award) (float64, bool) {
	if len(awards) == 0 {
		return missingAwardScore, true
	}

	var points float64
	for _, a := range awards {
		level, ok := awardLevelPoints[a.Level]
		if !ok {
			level = awardUnknownPoints
		}
		tier, ok := awardTierMultiplier[a.Tier]
		if !ok {
			tier = awardUnknownMultiplier
		}
		points += level * tier
	}

	return clamp(awardScaleFactor*math.Sqrt(points), 0, 100), false
}
