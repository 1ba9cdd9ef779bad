package engine

import (
	"strings"

	"admitpath/internal/domain"
)

// Reparto del score de actividades: amplitud + profundidad + liderazgo.
const (
	activityBreadthPoints    = 30.0
	activityDepthPoints      = 40.0
	activityLeadershipPoints = 30.0

	// Categorías distintas que otorgan amplitud completa.
	activityBreadthFullCategories = 5
	// Meses acumulados que otorgan profundidad completa.
	activityDepthFullMonths = 48.0
	// Con esta dedicación semanal el mes cuenta con bonificación.
	activityIntensiveHoursPerWeek = 10
	activityIntensiveBonus        = 1.25
	// Roles de liderazgo que otorgan el bloque completo.
	activityLeadershipFullRoles = 2

	// Score bajo, no nulo, cuando el perfil no cargó actividades todavía:
	// la ausencia de datos ya baja la confianza, no se castiga dos veces.
	missingActivityScore = 35.0
)

// La plataforma atiende aplicantes hispanohablantes; los roles llegan en
// ambos idiomas.
var leadershipKeywords = []string{
	"presidente", "presidenta",
	"fundador", "fundadora",
	"capitán", "capitan", "capitana",
	"líder", "lider",
	"director", "directora",
	"coordinador", "coordinadora",
	"president", "founder", "captain", "lead", "chair", "head coach", "head",
}

// activityScore acota amplitud, profundidad y señal de liderazgo a [0,100].
// Sin actividades devuelve el default bajo con marcador de baja confianza.
func activityScore(activities []domain.Activity) (float64, bool) {
	if len(activities) == 0 {
		return missingActivityScore, true
	}

	categories := make(map[string]struct{})
	var effectiveMonths float64
	leaders := 0
	for _, a := range activities {
		if cat := strings.ToLower(strings.TrimSpace(a.Category)); cat != "" {
			categories[cat] = struct{}{}
		}
		months := float64(a.DurationMonths)
		if months < 0 {
			months = 0
		}
		if a.HoursPerWeek >= activityIntensiveHoursPerWeek {
			months *= activityIntensiveBonus
		}
		effectiveMonths += months
		if a.Leadership || isLeadershipRole(a.Role) {
			leaders++
		}
	}

	breadthRatio := clamp(float64(len(categories))/activityBreadthFullCategories, 0, 1)
	depthRatio := clamp(effectiveMonths/activityDepthFullMonths, 0, 1)
	leadershipRatio := clamp(float64(leaders)/activityLeadershipFullRoles, 0, 1)

	score := breadthRatio*activityBreadthPoints +
		depthRatio*activityDepthPoints +
		leadershipRatio*activityLeadershipPoints
	return clamp(score, 0, 100), false
}

func isLeadershipRole(role string) bool {
	r := strings.ToLower(strings.TrimSpace(role))
	if r == "" {
		return false
	}
	for _, kw := range leadershipKeywords {
		if strings.Contains(r, kw) {
			return true
		}
	}
	return false
}
