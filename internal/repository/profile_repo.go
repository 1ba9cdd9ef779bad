package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"admitpath/internal/domain"
)

// ProfileRepository lee la foto académica del aplicante. El motor nunca
// escribe perfiles; la mutación es del servicio de perfiles.
type ProfileRepository interface {
	GetMetrics(ctx context.Context, profileID string) (domain.ProfileMetrics, error)
}

type PgProfileRepository struct {
	pool *pgxpool.Pool
}

func NewPgProfileRepository(pool *pgxpool.Pool) *PgProfileRepository {
	return &PgProfileRepository{pool: pool}
}

// GetMetrics arma el perfil completo: fila base más exámenes, actividades
// y premios. Propaga pgx.ErrNoRows cuando el perfil no existe; las
// colecciones vacías son estados válidos, no errores.
func (r *PgProfileRepository) GetMetrics(ctx context.Context, profileID string) (domain.ProfileMetrics, error) {
	const profileQuery = `
		SELECT id, gpa_value, gpa_scale, updated_at
		FROM applicant_profiles
		WHERE id = $1
	`
	var (
		profile  domain.ProfileMetrics
		gpaValue *float64
		gpaScale *float64
	)
	err := r.pool.QueryRow(ctx, profileQuery, profileID).Scan(
		&profile.ProfileID,
		&gpaValue,
		&gpaScale,
		&profile.UpdatedAt,
	)
	if err != nil {
		return domain.ProfileMetrics{}, err
	}
	if gpaValue != nil && gpaScale != nil {
		profile.GPA = &domain.GPAValue{Value: *gpaValue, Scale: *gpaScale}
	}

	if profile.Tests, err = r.getTests(ctx, profileID); err != nil {
		return domain.ProfileMetrics{}, err
	}
	if profile.Activities, err = r.getActivities(ctx, profileID); err != nil {
		return domain.ProfileMetrics{}, err
	}
	if profile.Awards, err = r.getAwards(ctx, profileID); err != nil {
		return domain.ProfileMetrics{}, err
	}
	return profile, nil
}

func (r *PgProfileRepository) getTests(ctx context.Context, profileID string) ([]domain.TestScore, error) {
	const query = `
		SELECT test_type, raw_score
		FROM profile_test_scores
		WHERE profile_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tests []domain.TestScore
	for rows.Next() {
		var t domain.TestScore
		if err := rows.Scan(&t.Type, &t.Raw); err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

func (r *PgProfileRepository) getActivities(ctx context.Context, profileID string) ([]domain.Activity, error) {
	const query = `
		SELECT category, role, leadership, duration_months, hours_per_week
		FROM profile_activities
		WHERE profile_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []domain.Activity
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.Category, &a.Role, &a.Leadership, &a.DurationMonths, &a.HoursPerWeek); err != nil {
			return nil, err
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (r *PgProfileRepository) getAwards(ctx context.Context, profileID string) ([]domain.Award, error) {
	const query = `
		SELECT name, level, tier
		FROM profile_awards
		WHERE profile_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, profileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var awards []domain.Award
	for rows.Next() {
		var a domain.Award
		if err := rows.Scan(&a.Name, &a.Level, &a.Tier); err != nil {
			return nil, err
		}
		awards = append(awards, a)
	}
	return awards, rows.Err()
}
