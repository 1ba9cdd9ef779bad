package domain

import "time"

// Escalas de GPA aceptadas por la plataforma.
const (
	GPAScale4   = 4.0
	GPAScale5   = 5.0
	GPAScale100 = 100.0
)

// TestType identifica el examen estandarizado reportado por el aplicante.
type TestType string

const (
	TestSAT   TestType = "SAT"
	TestACT   TestType = "ACT"
	TestTOEFL TestType = "TOEFL"
	TestIELTS TestType = "IELTS"
)

// GPAValue guarda el promedio en la escala original en la que fue cargado.
type GPAValue struct {
	Value float64 `json:"value"`
	Scale float64 `json:"scale"`
}

// TestScore guarda el puntaje crudo tal como lo ingresó el aplicante.
// Raw puede ser un número ("1510") o un rango ("1500-1550").
type TestScore struct {
	Type TestType `json:"type"`
	Raw  string   `json:"raw"`
}

// Activity describe una actividad extracurricular del perfil.
type Activity struct {
	Category       string `json:"category"`
	Role           string `json:"role"`
	Leadership     bool   `json:"leadership"`
	DurationMonths int    `json:"duration_months"`
	HoursPerWeek   int    `json:"hours_per_week"`
}

// AwardLevel es el alcance geográfico de la competencia.
type AwardLevel string

const (
	AwardLevelSchool        AwardLevel = "school"
	AwardLevelRegional      AwardLevel = "regional"
	AwardLevelNational      AwardLevel = "national"
	AwardLevelInternational AwardLevel = "international"
)

// AwardTier es la posición obtenida dentro de la competencia.
type AwardTier string

const (
	AwardTierThird  AwardTier = "third"
	AwardTierSecond AwardTier = "second"
	AwardTierFirst  AwardTier = "first"
	AwardTierGrand  AwardTier = "grand"
)

// Award es un premio o distinción del perfil.
type Award struct {
	Name  string     `json:"name"`
	Level AwardLevel `json:"level"`
	Tier  AwardTier  `json:"tier"`
}

// ProfileMetrics es la foto académica del aplicante. El motor solo la lee;
// la mutación vive en el servicio de perfiles. GPA nil significa
// "no informado", nunca un cero implícito.
type ProfileMetrics struct {
	ProfileID  string      `json:"profile_id"`
	GPA        *GPAValue   `json:"gpa,omitempty"`
	Tests      []TestScore `json:"tests,omitempty"`
	Activities []Activity  `json:"activities,omitempty"`
	Awards     []Award     `json:"awards,omitempty"`
	UpdatedAt  time.Time   `json:"updated_at"`
}
