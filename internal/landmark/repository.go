package landmark

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/evcraddock/campus-explorer/internal/validation"
)

// Repository provides CRUD operations for landmarks.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a landmark repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, name, description, latitude, longitude, created_at`

// Add validates in and inserts a new landmark.
func (r *Repository) Add(in Input) (*Landmark, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(&in); err != nil {
		return nil, err
	}

	_, err := r.db.Exec(
		"INSERT INTO landmarks (name, description, latitude, longitude) VALUES (?, ?, ?, ?)",
		in.Name, in.Description, in.Latitude, in.Longitude,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return nil, fmt.Errorf("%w: %s", ErrExists, in.Name)
		}
		return nil, fmt.Errorf("inserting landmark: %w", err)
	}

	return r.GetByName(in.Name)
}

// GetByName returns the landmark with the given name.
func (r *Repository) GetByName(name string) (*Landmark, error) {
	query := fmt.Sprintf("SELECT %s FROM landmarks WHERE name = ?", selectColumns)

	var l Landmark
	err := r.db.QueryRow(query, name).Scan(
		&l.ID, &l.Name, &l.Description, &l.Latitude, &l.Longitude, &l.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("querying landmark %s: %w", name, err)
	}
	return &l, nil
}

// Exists reports whether a landmark with the given name is in the catalog.
func (r *Repository) Exists(name string) (bool, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM landmarks WHERE name = ?", name).Scan(&count); err != nil {
		return false, fmt.Errorf("checking landmark %s: %w", name, err)
	}
	return count > 0, nil
}

// List returns every landmark ordered by name.
func (r *Repository) List() (landmarks []*Landmark, err error) {
	query := fmt.Sprintf("SELECT %s FROM landmarks ORDER BY name", selectColumns)
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing landmarks: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	landmarks = []*Landmark{}
	for rows.Next() {
		var l Landmark
		if err := rows.Scan(&l.ID, &l.Name, &l.Description, &l.Latitude, &l.Longitude, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning landmark: %w", err)
		}
		landmarks = append(landmarks, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating landmarks: %w", err)
	}

	return landmarks, nil
}

// Count returns the catalog size.
func (r *Repository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM landmarks").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting landmarks: %w", err)
	}
	return n, nil
}

// Delete removes a landmark by name. Visits to it cascade.
func (r *Repository) Delete(name string) error {
	result, err := r.db.Exec("DELETE FROM landmarks WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("deleting landmark: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return nil
}
