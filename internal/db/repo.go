package db

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"medassist/pkg"
)

// Repository wraps the consultation audit store.  Recording is best
// effort and out of the request path: the pipeline itself keeps no state
// between requests.
type Repository struct {
	DB *sql.DB
}

// NewRepository constructs a new Repository from an existing sql.DB.
// The caller is responsible for managing the DB connection lifecycle.
func NewRepository(db *sql.DB) *Repository { return &Repository{DB: db} }

// RecordConsultation stores one completed exchange and fills in the
// generated ID and server-side timestamp.
func (r *Repository) RecordConsultation(ctx context.Context, c *pkg.Consultation) error {
	c.ID = uuid.New().String()
	return r.DB.QueryRowContext(ctx,
		`INSERT INTO consultations
             (id, question, task_type, language, safety_level, safety_message, answer, severity, latency_ms)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING created_at`,
		c.ID, c.Question, c.TaskType, c.Language, c.SafetyLevel, c.SafetyMessage,
		c.Answer, c.Severity, c.LatencyMs,
	).Scan(&c.CreatedAt)
}

// ListRecent returns the most recent consultations, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]pkg.Consultation, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, question, task_type, language, safety_level, safety_message,
                answer, severity, latency_ms, created_at
         FROM consultations
         ORDER BY created_at DESC
         LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []pkg.Consultation
	for rows.Next() {
		var c pkg.Consultation
		if err := rows.Scan(&c.ID, &c.Question, &c.TaskType, &c.Language, &c.SafetyLevel,
			&c.SafetyMessage, &c.Answer, &c.Severity, &c.LatencyMs, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountByLevel returns how many recorded consultations carry the given
// safety level.
func (r *Repository) CountByLevel(ctx context.Context, level pkg.SafetyLevel) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM consultations WHERE safety_level = $1`, level,
	).Scan(&count)
	return count, err
}
