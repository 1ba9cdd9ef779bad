package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"admitpath/internal/cache"
	"admitpath/internal/domain"
	"admitpath/internal/engine"
)

type stubProfileRepo struct {
	calls   atomic.Int64
	profile domain.ProfileMetrics
}

func (s *stubProfileRepo) GetMetrics(_ context.Context, profileID string) (domain.ProfileMetrics, error) {
	s.calls.Add(1)
	if profileID != s.profile.ProfileID {
		return domain.ProfileMetrics{}, pgx.ErrNoRows
	}
	return s.profile, nil
}

type stubSchoolRepo struct {
	calls   atomic.Int64
	delay   time.Duration
	schools map[string]domain.SchoolMetrics
	dists   map[string]*domain.HistoricalDistribution
	err     error
}

func (s *stubSchoolRepo) GetByID(_ context.Context, schoolID string) (domain.SchoolMetrics, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return domain.SchoolMetrics{}, s.err
	}
	school, ok := s.schools[schoolID]
	if !ok {
		return domain.SchoolMetrics{}, pgx.ErrNoRows
	}
	return school, nil
}

func (s *stubSchoolRepo) GetHistoricalDistribution(_ context.Context, schoolID string) (*domain.HistoricalDistribution, error) {
	return s.dists[schoolID], nil
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (domain.PredictionResult, bool, error) {
	return domain.PredictionResult{}, false, errors.New("cache down")
}
func (failingCache) Set(context.Context, string, domain.PredictionResult, time.Duration) error {
	return errors.New("cache down")
}
func (failingCache) InvalidateProfile(context.Context, string) error {
	return errors.New("cache down")
}

func testProfile() domain.ProfileMetrics {
	return domain.ProfileMetrics{
		ProfileID: "profile-1",
		GPA:       &domain.GPAValue{Value: 3.8, Scale: 4.0},
		Tests:     []domain.TestScore{{Type: domain.TestSAT, Raw: "1480"}},
		Activities: []domain.Activity{
			{Category: "deportes", Role: "capitán", DurationMonths: 24, HoursPerWeek: 10},
		},
		UpdatedAt: time.Unix(1700000000, 0),
	}
}

func newTestService(t *testing.T, schools *stubSchoolRepo, c cache.PredictionCache) (*PredictionService, *stubProfileRepo) {
	t.Helper()
	eng, err := engine.NewEngine(engine.DefaultConfig())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	profiles := &stubProfileRepo{profile: testProfile()}
	svc := NewPredictionService(zap.NewNop(), profiles, schools, c, eng, nil, time.Hour)
	return svc, profiles
}

func defaultSchools() *stubSchoolRepo {
	return &stubSchoolRepo{
		schools: map[string]domain.SchoolMetrics{
			"school-1": {SchoolID: "school-1", Name: "A", AcceptanceRate: 0.20},
			"school-2": {SchoolID: "school-2", Name: "B", AcceptanceRate: 0.55},
		},
		dists: map[string]*domain.HistoricalDistribution{
			"school-1": {SampleSize: 40, GPAMean: 3.7, GPAStdDev: 0.2, TestMean: 1430, TestStdDev: 80, ScoreMean: 68, ScoreStdDev: 10},
		},
	}
}

func TestPredict_ValidatesBatchBeforeAnyWork(t *testing.T) {
	svc, profiles := newTestService(t, defaultSchools(), cache.NewMemoryPredictionCache())

	if _, err := svc.Predict(context.Background(), PredictRequest{ProfileID: "profile-1"}); !errors.Is(err, ErrNoSchools) {
		t.Fatalf("expected ErrNoSchools, got %v", err)
	}

	ids := make([]string, MaxSchoolsPerRequest+1)
	for i := range ids {
		ids[i] = "school-1"
	}
	if _, err := svc.Predict(context.Background(), PredictRequest{ProfileID: "profile-1", SchoolIDs: ids}); !errors.Is(err, ErrTooManySchools) {
		t.Fatalf("expected ErrTooManySchools, got %v", err)
	}

	// Cero cómputo: ni siquiera se leyó el perfil.
	if n := profiles.calls.Load(); n != 0 {
		t.Fatalf("expected zero reads on validation failure, got %d", n)
	}
}

func TestPredict_UnknownSubjectsFailTheBatch(t *testing.T) {
	svc, _ := newTestService(t, defaultSchools(), cache.NewMemoryPredictionCache())

	_, err := svc.Predict(context.Background(), PredictRequest{ProfileID: "nadie", SchoolIDs: []string{"school-1"}})
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	_, err = svc.Predict(context.Background(), PredictRequest{ProfileID: "profile-1", SchoolIDs: []string{"school-1", "fantasma"}})
	if !errors.Is(err, ErrSchoolNotFound) {
		t.Fatalf("expected ErrSchoolNotFound to fail the whole batch, got %v", err)
	}
}

func TestPredict_ResultsKeepRequestOrder(t *testing.T) {
	svc, _ := newTestService(t, defaultSchools(), cache.NewMemoryPredictionCache())

	resp, err := svc.Predict(context.Background(), PredictRequest{
		ProfileID: "profile-1",
		SchoolIDs: []string{"school-2", "school-1"},
	})
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	if resp.Results[0].SchoolID != "school-2" || resp.Results[1].SchoolID != "school-1" {
		t.Fatalf("results out of request order: %v, %v", resp.Results[0].SchoolID, resp.Results[1].SchoolID)
	}
	if resp.ProcessingTimeMs < 0 {
		t.Fatalf("negative processing time: %d", resp.ProcessingTimeMs)
	}
}

// N requests concurrentes idénticos sobre cache frío: exactamente un cómputo.
func TestPredict_ColdCacheCoalescing(t *testing.T) {
	schools := defaultSchools()
	schools.delay = 50 * time.Millisecond
	svc, _ := newTestService(t, schools, cache.NewMemoryPredictionCache())

	const n = 8
	var wg sync.WaitGroup
	results := make([]PredictResponse, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Predict(context.Background(), PredictRequest{
				ProfileID: "profile-1",
				SchoolIDs: []string{"school-1"},
			})
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		if errs[i] != nil {
			t.Fatalf("request %d failed: %v", i, errs[i])
		}
		if len(results[i].Results) != 1 {
			t.Fatalf("request %d: expected 1 result", i)
		}
		if results[i].Results[0].Probability != results[0].Results[0].Probability {
			t.Fatalf("coalesced callers received different probabilities")
		}
	}
	if got := schools.calls.Load(); got != 1 {
		t.Fatalf("expected exactly 1 underlying computation, got %d", got)
	}
}

// Dos llamadas secuenciales sin forceRefresh: resultado idéntico salvo
// FromCache y el timestamp.
func TestPredict_IdempotentViaCache(t *testing.T) {
	schools := defaultSchools()
	svc, _ := newTestService(t, schools, cache.NewMemoryPredictionCache())
	req := PredictRequest{ProfileID: "profile-1", SchoolIDs: []string{"school-1"}}

	first, err := svc.Predict(context.Background(), req)
	if err != nil {
		t.Fatalf("first predict: %v", err)
	}
	second, err := svc.Predict(context.Background(), req)
	if err != nil {
		t.Fatalf("second predict: %v", err)
	}

	a, b := first.Results[0], second.Results[0]
	if a.FromCache {
		t.Fatalf("first call must compute, not hit cache")
	}
	if !b.FromCache {
		t.Fatalf("second call must hit cache")
	}
	if a.Probability != b.Probability || a.Tier != b.Tier || a.Confidence != b.Confidence || a.Breakdown != b.Breakdown {
		t.Fatalf("cached result differs from computed:\n%+v\n%+v", a, b)
	}
	if got := schools.calls.Load(); got != 1 {
		t.Fatalf("expected single computation across both calls, got %d", got)
	}
}

func TestPredict_ForceRefreshRecomputesAndWritesThrough(t *testing.T) {
	schools := defaultSchools()
	svc, _ := newTestService(t, schools, cache.NewMemoryPredictionCache())
	req := PredictRequest{ProfileID: "profile-1", SchoolIDs: []string{"school-1"}}

	if _, err := svc.Predict(context.Background(), req); err != nil {
		t.Fatalf("warmup: %v", err)
	}

	req.ForceRefresh = true
	resp, err := svc.Predict(context.Background(), req)
	if err != nil {
		t.Fatalf("force refresh: %v", err)
	}
	if resp.Results[0].FromCache {
		t.Fatalf("force refresh must recompute")
	}
	if got := schools.calls.Load(); got != 2 {
		t.Fatalf("expected recomputation, got %d calls", got)
	}

	// Y vuelve a escribir: la siguiente lectura es hit.
	req.ForceRefresh = false
	resp, err = svc.Predict(context.Background(), req)
	if err != nil {
		t.Fatalf("after refresh: %v", err)
	}
	if !resp.Results[0].FromCache {
		t.Fatalf("expected cache hit after write-through")
	}
}

// Cache caído es fallback de performance: se computa directo, sin error.
func TestPredict_CacheUnavailableDegradesGracefully(t *testing.T) {
	schools := defaultSchools()
	svc, _ := newTestService(t, schools, failingCache{})
	req := PredictRequest{ProfileID: "profile-1", SchoolIDs: []string{"school-1"}}

	resp, err := svc.Predict(context.Background(), req)
	if err != nil {
		t.Fatalf("predict with broken cache: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].FromCache {
		t.Fatalf("expected fresh computation with broken cache: %+v", resp.Results)
	}
}

func TestProfileFingerprint_ChangesOnEdit(t *testing.T) {
	profile := testProfile()
	before := profileFingerprint(profile)

	profile.UpdatedAt = profile.UpdatedAt.Add(time.Second)
	after := profileFingerprint(profile)
	if before == after {
		t.Fatalf("fingerprint must change when the profile is edited")
	}

	other := testProfile()
	other.ProfileID = "profile-2"
	if profileFingerprint(other) == before {
		t.Fatalf("fingerprint must differ across profiles")
	}
}

func TestInvalidateProfile_DropsCachedEntries(t *testing.T) {
	schools := defaultSchools()
	mem := cache.NewMemoryPredictionCache()
	svc, _ := newTestService(t, schools, mem)
	req := PredictRequest{ProfileID: "profile-1", SchoolIDs: []string{"school-1"}}

	if _, err := svc.Predict(context.Background(), req); err != nil {
		t.Fatalf("warmup: %v", err)
	}
	if err := svc.InvalidateProfile(context.Background(), "profile-1"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	resp, err := svc.Predict(context.Background(), req)
	if err != nil {
		t.Fatalf("after invalidation: %v", err)
	}
	if resp.Results[0].FromCache {
		t.Fatalf("expected recomputation after invalidation")
	}
	if got := schools.calls.Load(); got != 2 {
		t.Fatalf("expected 2 computations, got %d", got)
	}
}
