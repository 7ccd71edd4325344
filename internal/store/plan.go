package store

import (
	"database/sql"
	"errors"
	"time"
)

// Plan represents a stored workout plan for an exercise.
type Plan struct {
	ID               string
	ExerciseID       string
	TargetSets       int
	TargetRepsPerSet int
	RestSeconds      int
	TargetWeight     float64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PlanRepository provides CRUD operations for workout plans.
type PlanRepository struct {
	db *sql.DB
}

// Plans returns the plan repository for this store.
func (s *Store) Plans() *PlanRepository {
	return &PlanRepository{db: s.db}
}

// Create inserts a new plan into the database.
func (r *PlanRepository) Create(p *Plan) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO plans (id, exercise_id, target_sets, target_reps, rest_seconds, target_weight, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.ExerciseID, p.TargetSets, p.TargetRepsPerSet, p.RestSeconds, p.TargetWeight, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetByID retrieves a plan by its ID.
func (r *PlanRepository) GetByID(id string) (*Plan, error) {
	p := &Plan{}

	err := r.db.QueryRow(
		`SELECT id, exercise_id, target_sets, target_reps, rest_seconds, target_weight, created_at, updated_at
		 FROM plans WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.ExerciseID, &p.TargetSets, &p.TargetRepsPerSet, &p.RestSeconds, &p.TargetWeight, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

// GetByExerciseID retrieves the most recent plan for an exercise.
// Returns nil, nil if the exercise has no plan.
func (r *PlanRepository) GetByExerciseID(exerciseID string) (*Plan, error) {
	p := &Plan{}

	err := r.db.QueryRow(
		`SELECT id, exercise_id, target_sets, target_reps, rest_seconds, target_weight, created_at, updated_at
		 FROM plans WHERE exercise_id = ?
		 ORDER BY updated_at DESC LIMIT 1`,
		exerciseID,
	).Scan(&p.ID, &p.ExerciseID, &p.TargetSets, &p.TargetRepsPerSet, &p.RestSeconds, &p.TargetWeight, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // no plan configured for this exercise
		}
		return nil, err
	}

	return p, nil
}

// List retrieves all plans from the database.
func (r *PlanRepository) List() ([]*Plan, error) {
	rows, err := r.db.Query(
		`SELECT id, exercise_id, target_sets, target_reps, rest_seconds, target_weight, created_at, updated_at
		 FROM plans ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []*Plan
	for rows.Next() {
		p := &Plan{}
		err := rows.Scan(&p.ID, &p.ExerciseID, &p.TargetSets, &p.TargetRepsPerSet, &p.RestSeconds, &p.TargetWeight, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return plans, nil
}

// Update updates an existing plan in the database.
func (r *PlanRepository) Update(p *Plan) error {
	p.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE plans SET exercise_id = ?, target_sets = ?, target_reps = ?, rest_seconds = ?, target_weight = ?, updated_at = ?
		 WHERE id = ?`,
		p.ExerciseID, p.TargetSets, p.TargetRepsPerSet, p.RestSeconds, p.TargetWeight, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a plan from the database by its ID.
func (r *PlanRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
