package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ayusman/repcoach/internal/exercise"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Exercise represents an exercise definition stored in the database.
type Exercise struct {
	ID         string
	Name       string
	Category   string
	Definition *exercise.Definition
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ExerciseRepository provides CRUD operations for exercises.
type ExerciseRepository struct {
	db *sql.DB
}

// Exercises returns the exercise repository for this store.
func (s *Store) Exercises() *ExerciseRepository {
	return &ExerciseRepository{db: s.db}
}

// Create inserts a new exercise into the database. The definition is
// validated and serialized as a JSON document.
func (r *ExerciseRepository) Create(e *Exercise) error {
	if e.Definition == nil {
		return errors.New("exercise definition is required")
	}
	if err := e.Definition.Validate(); err != nil {
		return fmt.Errorf("invalid definition: %w", err)
	}

	data, err := json.Marshal(e.Definition)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	_, err = r.db.Exec(
		`INSERT INTO exercises (id, name, category, definition, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Category, string(data), e.CreatedAt, e.UpdatedAt,
	)
	return err
}

// GetByID retrieves an exercise by its ID.
func (r *ExerciseRepository) GetByID(id string) (*Exercise, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, category, definition, created_at, updated_at
		 FROM exercises WHERE id = ?`,
		id,
	))
}

// GetByName retrieves an exercise by its name.
func (r *ExerciseRepository) GetByName(name string) (*Exercise, error) {
	return r.scanOne(r.db.QueryRow(
		`SELECT id, name, category, definition, created_at, updated_at
		 FROM exercises WHERE name = ?`,
		name,
	))
}

func (r *ExerciseRepository) scanOne(row *sql.Row) (*Exercise, error) {
	e := &Exercise{}
	var definition string

	err := row.Scan(&e.ID, &e.Name, &e.Category, &definition, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var def exercise.Definition
	if err := json.Unmarshal([]byte(definition), &def); err != nil {
		return nil, fmt.Errorf("corrupt definition for exercise %s: %w", e.ID, err)
	}
	e.Definition = &def

	return e, nil
}

// List retrieves all exercises from the database.
func (r *ExerciseRepository) List() ([]*Exercise, error) {
	rows, err := r.db.Query(
		`SELECT id, name, category, definition, created_at, updated_at
		 FROM exercises ORDER BY name`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []*Exercise
	for rows.Next() {
		e := &Exercise{}
		var definition string

		err := rows.Scan(&e.ID, &e.Name, &e.Category, &definition, &e.CreatedAt, &e.UpdatedAt)
		if err != nil {
			return nil, err
		}

		var def exercise.Definition
		if err := json.Unmarshal([]byte(definition), &def); err != nil {
			return nil, fmt.Errorf("corrupt definition for exercise %s: %w", e.ID, err)
		}
		e.Definition = &def

		exercises = append(exercises, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return exercises, nil
}

// Update updates an existing exercise in the database.
func (r *ExerciseRepository) Update(e *Exercise) error {
	if e.Definition == nil {
		return errors.New("exercise definition is required")
	}
	if err := e.Definition.Validate(); err != nil {
		return fmt.Errorf("invalid definition: %w", err)
	}

	data, err := json.Marshal(e.Definition)
	if err != nil {
		return fmt.Errorf("failed to marshal definition: %w", err)
	}

	e.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE exercises SET name = ?, category = ?, definition = ?, updated_at = ?
		 WHERE id = ?`,
		e.Name, e.Category, string(data), e.UpdatedAt, e.ID,
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

// Delete removes an exercise from the database by its ID.
func (r *ExerciseRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM exercises WHERE id = ?`, id)
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
