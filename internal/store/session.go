package store

import (
	"context"
	"fmt"
	"time"
)

// SessionRecord is the one-row summary written when a session finishes.
type SessionRecord struct {
	ID            int64
	SessionID     string
	PatientName   string
	StartedAt     time.Time
	EndedAt       time.Time
	CorrectCount  int
	TotalAnswered int
	SkippedCount  int
	FinalTier     string
	Completed     bool
}

// SessionRepo persists finished-session summaries.
type SessionRepo interface {
	AppendSession(ctx context.Context, rec SessionRecord) error
	SessionsByPatient(ctx context.Context, patientName string) ([]SessionRecord, error)
}

type sessionRepo struct {
	db dbtx
}

func (r *sessionRepo) AppendSession(ctx context.Context, rec SessionRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions
			(session_id, patient_name, started_at, ended_at,
			 correct_count, total_answered, skipped_count, final_tier, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.PatientName, rec.StartedAt, rec.EndedAt,
		rec.CorrectCount, rec.TotalAnswered, rec.SkippedCount, rec.FinalTier,
		boolToInt(rec.Completed))
	if err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return nil
}

func (r *sessionRepo) SessionsByPatient(ctx context.Context, patientName string) ([]SessionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, session_id, patient_name, started_at, ended_at,
		       correct_count, total_answered, skipped_count, final_tier, completed
		FROM sessions WHERE patient_name = ? ORDER BY id`, patientName)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var completed int
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.PatientName, &rec.StartedAt,
			&rec.EndedAt, &rec.CorrectCount, &rec.TotalAnswered,
			&rec.SkippedCount, &rec.FinalTier, &completed,
		); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.Completed = completed != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}
