package engine

import (
	"math"
	"sort"
)

// normalCDF evalúa Φ(z) vía la función error.
func normalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}

// empiricalPercentile devuelve la fracción de muestras por debajo del valor,
// con medio crédito por empates. Resultado en [0,1]; muestras vacías dan 0.5
// (sin evidencia en ninguna dirección).
func empiricalPercentile(value float64, samples []float64) float64 {
	if len(samples) == 0 {
		return 0.5
	}
	below, equal := 0, 0
	for _, s := range samples {
		switch {
		case s < value:
			below++
		case s == value:
			equal++
		}
	}
	return (float64(below) + 0.5*float64(equal)) / float64(len(samples))
}

// MeanStdDev calcula media y desvío estándar muestral. Exportada porque el
// repositorio de escuelas la usa para completar el resumen de casos crudos.
func MeanStdDev(samples []float64) (float64, float64) {
	n := len(samples)
	if n == 0 {
		return 0, 0
	}
	var sum float64
	for _, s := range samples {
		sum += s
	}
	mean := sum / float64(n)
	if n < 2 {
		return mean, 0
	}
	var sq float64
	for _, s := range samples {
		d := s - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(n-1))
}

// median sobre una copia ordenada; vacío da 0.
func median(samples []float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}
	sorted := make([]float64, n)
	copy(sorted, samples)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
