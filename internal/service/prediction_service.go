package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"admitpath/internal/cache"
	"admitpath/internal/domain"
	"admitpath/internal/engine"
	"admitpath/internal/metrics"
	"admitpath/internal/repository"
)

// Límites y tiempos del orquestador.
const (
	// Tope de escuelas por request; pasarse invalida el lote completo.
	MaxSchoolsPerRequest = 10

	// Cota para los reads de perfil/escuela de una corrida individual.
	perSchoolTimeout = 5 * time.Second

	defaultCacheTTL = time.Hour
)

// Errores de validación y de sujeto ausente. Todo lo demás degrada a
// confianza baja en lugar de fallar.
var (
	ErrNoSchools       = errors.New("school_ids vacío")
	ErrTooManySchools  = fmt.Errorf("school_ids supera el máximo de %d", MaxSchoolsPerRequest)
	ErrProfileNotFound = errors.New("perfil no encontrado")
	ErrSchoolNotFound  = errors.New("escuela no encontrada")
)

// PredictRequest ya llega validado de tipos desde el borde HTTP;
// acá solo se validan las reglas del lote.
type PredictRequest struct {
	ProfileID    string
	SchoolIDs    []string
	ForceRefresh bool
}

// PredictResponse conserva el orden de las escuelas pedidas.
type PredictResponse struct {
	Results          []domain.PredictionResult `json:"results"`
	ProcessingTimeMs int64                     `json:"processing_time_ms"`
}

// PredictionService orquesta el lote: valida, abre en corridas por escuela,
// aplica la puerta de cache con coalescing y arma la respuesta ordenada.
type PredictionService struct {
	logger   *zap.Logger
	profiles repository.ProfileRepository
	schools  repository.SchoolRepository
	cache    cache.PredictionCache
	engine   *engine.Engine
	recorder *metrics.Recorder
	ttl      time.Duration
	group    singleflight.Group
}

func NewPredictionService(
	logger *zap.Logger,
	profiles repository.ProfileRepository,
	schools repository.SchoolRepository,
	predictionCache cache.PredictionCache,
	eng *engine.Engine,
	recorder *metrics.Recorder,
	ttl time.Duration,
) *PredictionService {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &PredictionService{
		logger:   logger,
		profiles: profiles,
		schools:  schools,
		cache:    predictionCache,
		engine:   eng,
		recorder: recorder,
		ttl:      ttl,
	}
}

// Predict corre el lote completo. Perfil o escuela inexistente invalida el
// lote; una falla transitoria de una escuela solo descarta esa corrida.
func (s *PredictionService) Predict(ctx context.Context, req PredictRequest) (PredictResponse, error) {
	start := time.Now()

	if len(req.SchoolIDs) == 0 {
		return PredictResponse{}, ErrNoSchools
	}
	if len(req.SchoolIDs) > MaxSchoolsPerRequest {
		return PredictResponse{}, ErrTooManySchools
	}

	profile, err := s.profiles.GetMetrics(ctx, req.ProfileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PredictResponse{}, ErrProfileNotFound
		}
		return PredictResponse{}, fmt.Errorf("leer perfil %s: %w", req.ProfileID, err)
	}
	fingerprint := profileFingerprint(profile)

	type schoolOutcome struct {
		index  int
		result domain.PredictionResult
		err    error
	}

	outcomes := make([]schoolOutcome, len(req.SchoolIDs))
	var wg sync.WaitGroup
	for i, schoolID := range req.SchoolIDs {
		wg.Add(1)
		go func(i int, schoolID string) {
			defer wg.Done()
			result, err := s.predictSchool(ctx, profile, fingerprint, schoolID, req.ForceRefresh)
			outcomes[i] = schoolOutcome{index: i, result: result, err: err}
		}(i, schoolID)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		// El caller canceló: las corridas ya poblaron el cache, pero el
		// resultado no se le devuelve.
		return PredictResponse{}, err
	}

	results := make([]domain.PredictionResult, 0, len(req.SchoolIDs))
	for _, out := range outcomes {
		if out.err != nil {
			if errors.Is(out.err, ErrSchoolNotFound) {
				return PredictResponse{}, fmt.Errorf("escuela %s: %w", req.SchoolIDs[out.index], ErrSchoolNotFound)
			}
			s.recorder.Prediction(metrics.OutcomeFailed)
			s.logger.Warn("corrida por escuela descartada",
				zap.String("school_id", req.SchoolIDs[out.index]),
				zap.Error(out.err),
			)
			continue
		}
		results = append(results, out.result)
	}

	elapsed := time.Since(start)
	s.recorder.ObserveBatch(elapsed)
	return PredictResponse{
		Results:          results,
		ProcessingTimeMs: elapsed.Milliseconds(),
	}, nil
}

// predictSchool aplica la puerta de cache. forceRefresh saltea la lectura
// pero igual escribe el resultado nuevo.
func (s *PredictionService) predictSchool(ctx context.Context, profile domain.ProfileMetrics, fingerprint, schoolID string, forceRefresh bool) (domain.PredictionResult, error) {
	key := cache.Key(profile.ProfileID, fingerprint, schoolID)

	if !forceRefresh && s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			// Cache caído es fallback de performance, no error del lote.
			s.logger.Warn("cache get falló, se computa directo", zap.Error(err))
		} else if ok {
			s.recorder.Prediction(metrics.OutcomeCacheHit)
			cached.FromCache = true
			return cached, nil
		}
	}

	// Coalescing: N requests concurrentes de la misma clave producen una
	// sola computación. Todos los que esperaron la corrida reciben
	// FromCache=false; solo una lectura posterior del cache marca true.
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		// La corrida sigue aunque el caller original cancele: poblar el
		// cache es idempotente y les sirve a los próximos.
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), perSchoolTimeout)
		defer cancel()
		return s.compute(runCtx, profile, key, schoolID)
	})
	if err != nil {
		return domain.PredictionResult{}, err
	}
	return v.(domain.PredictionResult), nil
}

func (s *PredictionService) compute(ctx context.Context, profile domain.ProfileMetrics, key, schoolID string) (domain.PredictionResult, error) {
	school, err := s.schools.GetByID(ctx, schoolID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PredictionResult{}, ErrSchoolNotFound
		}
		return domain.PredictionResult{}, fmt.Errorf("leer escuela %s: %w", schoolID, err)
	}

	dist, err := s.schools.GetHistoricalDistribution(ctx, schoolID)
	if err != nil {
		// Sin histórico se puede predecir igual, con confianza degradada.
		s.logger.Warn("histórico no disponible", zap.String("school_id", schoolID), zap.Error(err))
		dist = nil
	}

	result := s.engine.Predict(profile, school, dist)
	s.recorder.Prediction(metrics.OutcomeComputed)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
			s.logger.Warn("cache set falló", zap.Error(err))
		}
	}
	return result, nil
}

// InvalidateProfile es el hook que llama el servicio de perfiles al editar.
// El fingerprint en la clave ya evita servir resultados viejos; esto solo
// libera las entradas antes del TTL.
func (s *PredictionService) InvalidateProfile(ctx context.Context, profileID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateProfile(ctx, profileID)
}

// profileFingerprint resume identidad + versión del perfil. Una edición
// cambia UpdatedAt y con él la clave entera.
func profileFingerprint(profile domain.ProfileMetrics) string {
	h := sha256.New()
	h.Write([]byte(profile.ProfileID))
	h.Write([]byte(strconv.FormatInt(profile.UpdatedAt.UnixNano(), 10)))
	return hex.EncodeToString(h.Sum(nil))[:12]
}
