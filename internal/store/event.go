package store

import (
	"database/sql"
	"time"
)

// EventKind distinguishes entries in the event log.
type EventKind string

const (
	// EventConfirmed records a confirmed gesture from the local path.
	EventConfirmed EventKind = "confirmed"
	// EventCapture records a capture handed to the remote recognizer.
	EventCapture EventKind = "capture"
	// EventRecognition records a remote recognition result.
	EventRecognition EventKind = "recognition"
)

// Event is one entry in the append-only gesture event log.
type Event struct {
	ID        string
	Kind      EventKind
	Label     string
	Text      string
	CreatedAt time.Time
}

// EventRepository provides append and query operations for events.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Append inserts an event into the log.
func (r *EventRepository) Append(e *Event) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO events (id, kind, label, text, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		e.ID, string(e.Kind), e.Label, e.Text, e.CreatedAt,
	)
	return err
}

// Recent retrieves the most recent events, newest first.
func (r *EventRepository) Recent(limit int) ([]*Event, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, kind, label, text, created_at
		 FROM events ORDER BY created_at DESC, id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e := &Event{}
		var kind string
		if err := rows.Scan(&e.ID, &kind, &e.Label, &e.Text, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Kind = EventKind(kind)
		events = append(events, e)
	}

	return events, rows.Err()
}
