package engine

import (
	"testing"

	"admitpath/internal/domain"
)

// Los bordes documentados: 0.25 ya es match, 0.60 ya es safety.
func TestClassifyTier_Boundaries(t *testing.T) {
	e := mustEngine(t)
	cases := []struct {
		p    float64
		want domain.Tier
	}{
		{0.01, domain.TierReach},
		{0.24, domain.TierReach},
		{0.25, domain.TierMatch},
		{0.59, domain.TierMatch},
		{0.60, domain.TierSafety},
		{0.99, domain.TierSafety},
	}
	for _, tc := range cases {
		if got := e.classifyTier(tc.p); got != tc.want {
			t.Fatalf("p=%v: expected %v, got %v", tc.p, tc.want, got)
		}
	}
}

func TestClassifyConfidence(t *testing.T) {
	e := mustEngine(t)

	full := dataQuality{SampleSize: 40, GPAKnown: true, TestKnown: true, HasActivities: true}
	if got := e.classifyConfidence(full); got != domain.ConfidenceHigh {
		t.Fatalf("expected high with full data, got %v", got)
	}

	// Nunca high con datos flacos de cualquiera de los dos lados.
	thinSample := full
	thinSample.SampleSize = 6
	if got := e.classifyConfidence(thinSample); got == domain.ConfidenceHigh {
		t.Fatalf("high confidence with thin historical sample")
	}

	noTest := full
	noTest.TestKnown = false
	if got := e.classifyConfidence(noTest); got != domain.ConfidenceLow {
		t.Fatalf("expected low without test scores, got %v", got)
	}

	flagged := full
	flagged.LowSignals = 1
	if got := e.classifyConfidence(flagged); got == domain.ConfidenceHigh {
		t.Fatalf("high confidence despite low-confidence input signals")
	}

	anecdotal := dataQuality{SampleSize: 2, GPAKnown: true, TestKnown: true, HasActivities: true}
	if got := e.classifyConfidence(anecdotal); got != domain.ConfidenceLow {
		t.Fatalf("expected low with anecdotal sample, got %v", got)
	}
}
