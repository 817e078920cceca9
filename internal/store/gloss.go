package store

import (
	"database/sql"
	"errors"
	"time"
)

// Gloss maps a gesture label to the display string handed to the
// presentation layer when that label confirms.
type Gloss struct {
	ID        string
	Label     string
	Display   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GlossRepository provides CRUD operations for glosses.
type GlossRepository struct {
	db *sql.DB
}

// Glosses returns the gloss repository for this store.
func (s *Store) Glosses() *GlossRepository {
	return &GlossRepository{db: s.db}
}

// Create inserts a new gloss into the database.
func (r *GlossRepository) Create(g *Gloss) error {
	now := time.Now()
	g.CreatedAt = now
	g.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO glosses (id, label, display, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.Label, g.Display, g.CreatedAt, g.UpdatedAt,
	)
	return err
}

// GetByID retrieves a gloss by its ID.
func (r *GlossRepository) GetByID(id string) (*Gloss, error) {
	g := &Gloss{}

	err := r.db.QueryRow(
		`SELECT id, label, display, created_at, updated_at
		 FROM glosses WHERE id = ?`,
		id,
	).Scan(&g.ID, &g.Label, &g.Display, &g.CreatedAt, &g.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return g, nil
}

// GetByLabel retrieves a gloss by its gesture label.
func (r *GlossRepository) GetByLabel(label string) (*Gloss, error) {
	g := &Gloss{}

	err := r.db.QueryRow(
		`SELECT id, label, display, created_at, updated_at
		 FROM glosses WHERE label = ?`,
		label,
	).Scan(&g.ID, &g.Label, &g.Display, &g.CreatedAt, &g.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return g, nil
}

// List retrieves all glosses ordered by label.
func (r *GlossRepository) List() ([]*Gloss, error) {
	rows, err := r.db.Query(
		`SELECT id, label, display, created_at, updated_at
		 FROM glosses ORDER BY label`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var glosses []*Gloss
	for rows.Next() {
		g := &Gloss{}
		if err := rows.Scan(&g.ID, &g.Label, &g.Display, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		glosses = append(glosses, g)
	}

	return glosses, rows.Err()
}

// Update modifies an existing gloss.
func (r *GlossRepository) Update(g *Gloss) error {
	g.UpdatedAt = time.Now()

	result, err := r.db.Exec(
		`UPDATE glosses SET label = ?, display = ?, updated_at = ? WHERE id = ?`,
		g.Label, g.Display, g.UpdatedAt, g.ID,
	)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a gloss by its ID.
func (r *GlossRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM glosses WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Display resolves a gesture label to its display string, falling back
// to the label itself when no gloss is defined.
func (r *GlossRepository) Display(label string) string {
	g, err := r.GetByLabel(label)
	if err != nil {
		return label
	}
	return g.Display
}
