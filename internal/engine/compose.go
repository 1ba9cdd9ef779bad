package engine

import (
	"fmt"
	"math"

	"admitpath/internal/domain"
)

// weightSumTolerance es la tolerancia numérica para la suma de pesos.
const weightSumTolerance = 1e-9

// Weights define la combinación convexa de los tres sub-scores.
// Se valida una sola vez al armar el motor, nunca por request.
type Weights struct {
	Academic float64
	Activity float64
	Award    float64
}

// DefaultWeights es la tabla de pesos v1: académico-pesada, acorde al
// peso real del expediente en admisiones selectivas.
func DefaultWeights() Weights {
	return Weights{Academic: 0.60, Activity: 0.25, Award: 0.15}
}

// Validate exige pesos no negativos que sumen exactamente 1.
func (w Weights) Validate() error {
	if w.Academic < 0 || w.Activity < 0 || w.Award < 0 {
		return fmt.Errorf("pesos negativos: %+v", w)
	}
	sum := w.Academic + w.Activity + w.Award
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("los pesos deben sumar 1.0, suman %v", sum)
	}
	return nil
}

// compose arma el ScoreBreakdown final. Cada sub-score ya vive en [0,100],
// y la suma ponderada es convexa, así que Overall también.
func (w Weights) compose(academic, activity, award float64) domain.ScoreBreakdown {
	return domain.ScoreBreakdown{
		Academic: academic,
		Activity: activity,
		Award:    award,
		Overall:  w.Academic*academic + w.Activity*activity + w.Award*award,
	}
}
