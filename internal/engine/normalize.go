package engine

import (
	"strconv"
	"strings"

	"admitpath/internal/domain"
)

// Constantes de normalización. Las conversiones entre exámenes son lineales
// y ajustables; no pretenden reproducir las tablas oficiales de concordancia.
const (
	// GPA ponderado puede superar 4.0; por encima de este techo se recorta.
	gpaCeiling = 4.3
	// Debajo de este piso (ya en escala 4.0) el dato se marca dudoso.
	gpaSanityFloor = 1.0

	// ACT → SAT-equivalente: sat = actToSATIntercept + act*actToSATSlope.
	actToSATIntercept = 160.0
	actToSATSlope     = 40.0

	// IELTS → escala TOEFL (0-120).
	ieltsToTOEFLFactor = 120.0 / 9.0

	// Un rango de SAT más ancho que esto baja la confianza del dato.
	wideSATRangeWidth = 100.0
)

// NormalizedGPA es el GPA llevado a escala 4.0. Known=false significa
// "no informado"; LowConfidence marca valores fuera de la ventana sana
// o escalas no reconocidas.
type NormalizedGPA struct {
	Value         float64
	Known         bool
	LowConfidence bool
}

// NormalizedTest es un puntaje llevado a un punto representativo.
// Width es el ancho del rango original (0 para puntajes exactos).
type NormalizedTest struct {
	Type          domain.TestType
	Value         float64
	Width         float64
	Known         bool
	LowConfidence bool
}

// NormalizedInputs es la representación canónica que consumen los
// calculadores. Es un valor puro: ninguna etapa posterior lo muta.
type NormalizedInputs struct {
	GPA        NormalizedGPA
	SAT        NormalizedTest // mejor puntaje SAT-equivalente (SAT nativo o ACT convertido)
	Language   NormalizedTest // TOEFL/IELTS en escala TOEFL
	Activities []domain.Activity
	Awards     []domain.Award
}

// Normalize convierte el perfil crudo a la representación canónica.
// Nunca falla: campos ausentes o malformados degradan a Known=false
// en lugar de abortar la corrida.
func Normalize(profile domain.ProfileMetrics) NormalizedInputs {
	in := NormalizedInputs{
		GPA:        normalizeGPA(profile.GPA),
		Activities: profile.Activities,
		Awards:     profile.Awards,
	}

	for _, t := range profile.Tests {
		mid, width, ok := parseScoreRange(t.Raw)
		if !ok {
			continue
		}
		switch t.Type {
		case domain.TestSAT:
			candidate := NormalizedTest{
				Type:          domain.TestSAT,
				Value:         clamp(mid, 400, 1600),
				Width:         width,
				Known:         true,
				LowConfidence: width > wideSATRangeWidth,
			}
			// SAT nativo le gana a cualquier conversión previa.
			if !in.SAT.Known || in.SAT.Type != domain.TestSAT || candidate.Value > in.SAT.Value {
				in.SAT = candidate
			}
		case domain.TestACT:
			converted := actToSATIntercept + clamp(mid, 1, 36)*actToSATSlope
			candidate := NormalizedTest{
				Type:          domain.TestACT,
				Value:         clamp(converted, 400, 1600),
				Width:         width * actToSATSlope,
				Known:         true,
				LowConfidence: width*actToSATSlope > wideSATRangeWidth,
			}
			if !in.SAT.Known {
				in.SAT = candidate
			}
		case domain.TestTOEFL:
			candidate := NormalizedTest{
				Type:  domain.TestTOEFL,
				Value: clamp(mid, 0, 120),
				Width: width,
				Known: true,
			}
			if !in.Language.Known || candidate.Value > in.Language.Value {
				in.Language = candidate
			}
		case domain.TestIELTS:
			candidate := NormalizedTest{
				Type:  domain.TestIELTS,
				Value: clamp(mid*ieltsToTOEFLFactor, 0, 120),
				Width: width * ieltsToTOEFLFactor,
				Known: true,
			}
			if !in.Language.Known {
				in.Language = candidate
			}
		}
	}

	return in
}

// normalizeGPA reescala linealmente a escala 4.0 y recorta al techo de
// GPA ponderado. Valores fuera de la ventana sana no se descartan:
// quedan marcados de baja confianza.
func normalizeGPA(gpa *domain.GPAValue) NormalizedGPA {
	if gpa == nil || gpa.Value <= 0 {
		return NormalizedGPA{}
	}

	value := gpa.Value
	lowConfidence := false
	switch gpa.Scale {
	case domain.GPAScale4:
		// ya está en escala destino
	case domain.GPAScale5:
		value = value * domain.GPAScale4 / domain.GPAScale5
	case domain.GPAScale100:
		value = value * domain.GPAScale4 / domain.GPAScale100
	default:
		// Escala no reconocida: si el valor cabe en 4.0+, se asume esa
		// escala con baja confianza; si no, se asume percentil sobre 100.
		lowConfidence = true
		if value > gpaCeiling {
			value = value * domain.GPAScale4 / domain.GPAScale100
		}
	}

	if value > gpaCeiling {
		value = gpaCeiling
		lowConfidence = true
	}
	if value < gpaSanityFloor {
		lowConfidence = true
	}
	return NormalizedGPA{Value: value, Known: true, LowConfidence: lowConfidence}
}

// parseScoreRange interpreta "1510" o "1500-1550" como punto medio + ancho.
// Strings malformados degradan a ok=false, nunca a pánico.
func parseScoreRange(raw string) (mid, width float64, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, 0, false
	}

	parts := strings.SplitN(raw, "-", 2)
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lo < 0 {
		return 0, 0, false
	}
	if len(parts) == 1 {
		return lo, 0, true
	}

	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || hi < lo {
		return 0, 0, false
	}
	return (lo + hi) / 2, hi - lo, true
}
