package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"admitpath/internal/domain"
	"admitpath/internal/engine"
)

// SchoolRepository lee escuelas y su histórico de admitidos.
type SchoolRepository interface {
	GetByID(ctx context.Context, schoolID string) (domain.SchoolMetrics, error)
	// GetHistoricalDistribution devuelve nil (sin error) cuando la escuela
	// no tiene histórico cargado: eso es degradación, no falla.
	GetHistoricalDistribution(ctx context.Context, schoolID string) (*domain.HistoricalDistribution, error)
}

type PgSchoolRepository struct {
	pool *pgxpool.Pool
}

func NewPgSchoolRepository(pool *pgxpool.Pool) *PgSchoolRepository {
	return &PgSchoolRepository{pool: pool}
}

func (r *PgSchoolRepository) GetByID(ctx context.Context, schoolID string) (domain.SchoolMetrics, error) {
	const query = `
		SELECT id, name, acceptance_rate, us_news_rank
		FROM schools
		WHERE id = $1
	`
	var school domain.SchoolMetrics
	err := r.pool.QueryRow(ctx, query, schoolID).Scan(
		&school.SchoolID,
		&school.Name,
		&school.AcceptanceRate,
		&school.Rank,
	)
	return school, err
}

// GetHistoricalDistribution prefiere los casos crudos de admitidos; si no
// hay, cae a la fila de resumen que mantiene el pipeline de importación.
func (r *PgSchoolRepository) GetHistoricalDistribution(ctx context.Context, schoolID string) (*domain.HistoricalDistribution, error) {
	dist, err := r.getRawCases(ctx, schoolID)
	if err != nil {
		return nil, err
	}
	if dist != nil {
		return dist, nil
	}
	return r.getSummary(ctx, schoolID)
}

func (r *PgSchoolRepository) getRawCases(ctx context.Context, schoolID string) (*domain.HistoricalDistribution, error) {
	const query = `
		SELECT gpa, test_score
		FROM admitted_cases
		WHERE school_id = $1
	`
	rows, err := r.pool.Query(ctx, query, schoolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dist domain.HistoricalDistribution
	for rows.Next() {
		var gpa, test *float64
		if err := rows.Scan(&gpa, &test); err != nil {
			return nil, err
		}
		dist.SampleSize++
		if gpa != nil {
			dist.GPAValues = append(dist.GPAValues, *gpa)
		}
		if test != nil {
			dist.TestValues = append(dist.TestValues, *test)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if dist.SampleSize == 0 {
		return nil, nil
	}
	fillSummaryFromRaw(&dist)
	return &dist, nil
}

func (r *PgSchoolRepository) getSummary(ctx context.Context, schoolID string) (*domain.HistoricalDistribution, error) {
	const query = `
		SELECT sample_size, gpa_mean, gpa_std_dev, test_mean, test_std_dev, score_mean, score_std_dev
		FROM school_admit_stats
		WHERE school_id = $1
	`
	var dist domain.HistoricalDistribution
	err := r.pool.QueryRow(ctx, query, schoolID).Scan(
		&dist.SampleSize,
		&dist.GPAMean,
		&dist.GPAStdDev,
		&dist.TestMean,
		&dist.TestStdDev,
		&dist.ScoreMean,
		&dist.ScoreStdDev,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dist, nil
}

func fillSummaryFromRaw(dist *domain.HistoricalDistribution) {
	dist.GPAMean, dist.GPAStdDev = engine.MeanStdDev(dist.GPAValues)
	dist.TestMean, dist.TestStdDev = engine.MeanStdDev(dist.TestValues)
}
