package engine

import (
	"math"
	"testing"

	"admitpath/internal/domain"
)

func TestAwardScore_MissingDataIsLowNotZero(t *testing.T) {
	score, low := awardScore(nil)
	if score != missingAwardScore {
		t.Fatalf("expected default %v, got %v", missingAwardScore, score)
	}
	if !low {
		t.Fatalf("expected low confidence marker for missing awards")
	}
}

func TestAwardScore_PointTable(t *testing.T) {
	// Un premio escolar de tercer puesto: 1 punto → 18*sqrt(1) = 18.
	score, low := awardScore([]domain.Award{{Level: domain.AwardLevelSchool, Tier: domain.AwardTierThird}})
	if low {
		t.Fatalf("did not expect low confidence with awards present")
	}
	if math.Abs(score-awardScaleFactor) > 1e-9 {
		t.Fatalf("expected %v, got %v", awardScaleFactor, score)
	}
}

// Un único premio top no debe saturar el score.
func TestAwardScore_DiminishingReturns(t *testing.T) {
	top, _ := awardScore([]domain.Award{{Level: domain.AwardLevelInternational, Tier: domain.AwardTierGrand}})
	if top >= 100 {
		t.Fatalf("a single top award must not saturate, got %v", top)
	}

	// Duplicar los puntos sube el score menos que el doble.
	double, _ := awardScore([]domain.Award{
		{Level: domain.AwardLevelInternational, Tier: domain.AwardTierGrand},
		{Level: domain.AwardLevelInternational, Tier: domain.AwardTierGrand},
	})
	if double <= top {
		t.Fatalf("more awards should never lower the score: %v <= %v", double, top)
	}
	if double-top >= top {
		t.Fatalf("expected sub-linear growth, got %v then %v", top, double)
	}
}

func TestAwardScore_UnknownLevelsCountMinimum(t *testing.T) {
	known, _ := awardScore([]domain.Award{{Level: domain.AwardLevelSchool, Tier: domain.AwardTierThird}})
	unknown, _ := awardScore([]domain.Award{{Level: "galáctico", Tier: "último"}})
	if unknown != known {
		t.Fatalf("unrecognized level/tier should count minimum points, got %v vs %v", unknown, known)
	}
}

func TestAwardScore_Bounded(t *testing.T) {
	var awards []domain.Award
	for i := 0; i < 50; i++ {
		awards = append(awards, domain.Award{Level: domain.AwardLevelInternational, Tier: domain.AwardTierGrand})
	}
	score, _ := awardScore(awards)
	if score != 100 {
		t.Fatalf("expected clamp at 100, got %v", score)
	}
}
