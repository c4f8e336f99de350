package visit

import (
	"database/sql"
	"fmt"
)

// Repository stores check-ins in SQLite.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a visit repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Add records a visit. The user and landmark must already exist.
func (r *Repository) Add(v Visit) error {
	if v.ID == "" || v.LandmarkName == "" || v.VisitedAt.IsZero() {
		return fmt.Errorf("%w: build visits with New", ErrInvalid)
	}

	_, err := r.db.Exec(
		"INSERT INTO visits (id, username, landmark_name, visited_at) VALUES (?, ?, ?, ?)",
		v.ID, v.Username, v.LandmarkName, v.VisitedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting visit: %w", err)
	}
	return nil
}

// ListByUsername returns a user's visits in the order they were recorded.
// The result is never nil.
func (r *Repository) ListByUsername(username string) (visits []Visit, err error) {
	rows, err := r.db.Query(
		"SELECT id, username, landmark_name, visited_at FROM visits WHERE username = ? ORDER BY seq",
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("listing visits: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	visits = []Visit{}
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.Username, &v.LandmarkName, &v.VisitedAt); err != nil {
			return nil, fmt.Errorf("scanning visit: %w", err)
		}
		v.VisitedAt = v.VisitedAt.UTC()
		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating visits: %w", err)
	}

	return visits, nil
}

// Delete removes one of a user's visits.
func (r *Repository) Delete(username, id string) error {
	result, err := r.db.Exec("DELETE FROM visits WHERE username = ? AND id = ?", username, id)
	if err != nil {
		return fmt.Errorf("deleting visit: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("visit %s: %w", id, ErrNotFound)
	}

	return nil
}
