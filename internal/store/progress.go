package store

import (
	"context"
	"fmt"
	"time"
)

// ProgressRecord is one graded answer, the unit of the session report.
type ProgressRecord struct {
	ID           int64
	SessionID    string
	PatientName  string
	QuestionID   string
	QuestionText string
	Tier         string
	ServedTier   string
	Answer       string
	Verdict      string
	Attempt      int
	Skipped      bool
	RecordedAt   time.Time
}

// ProgressRepo persists graded answers and reads them back for reports.
type ProgressRepo interface {
	Append(ctx context.Context, rec ProgressRecord) error
	BySession(ctx context.Context, sessionID string) ([]ProgressRecord, error)
	ByPatient(ctx context.Context, patientName string) ([]ProgressRecord, error)
}

type progressRepo struct {
	db dbtx
}

func (r *progressRepo) Append(ctx context.Context, rec ProgressRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO progress
			(session_id, patient_name, question_id, question_text,
			 tier, served_tier, answer, verdict, attempt, skipped)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.PatientName, rec.QuestionID, rec.QuestionText,
		rec.Tier, rec.ServedTier, rec.Answer, rec.Verdict, rec.Attempt,
		boolToInt(rec.Skipped))
	if err != nil {
		return fmt.Errorf("append progress: %w", err)
	}
	return nil
}

func (r *progressRepo) BySession(ctx context.Context, sessionID string) ([]ProgressRecord, error) {
	return r.query(ctx, "session_id", sessionID)
}

func (r *progressRepo) ByPatient(ctx context.Context, patientName string) ([]ProgressRecord, error) {
	return r.query(ctx, "patient_name", patientName)
}

func (r *progressRepo) query(ctx context.Context, column, value string) ([]ProgressRecord, error) {
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, session_id, patient_name, question_id, question_text,
		       tier, served_tier, answer, verdict, attempt, skipped, recorded_at
		FROM progress WHERE %s = ? ORDER BY id`, column), value)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var out []ProgressRecord
	for rows.Next() {
		var rec ProgressRecord
		var skipped int
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.PatientName, &rec.QuestionID,
			&rec.QuestionText, &rec.Tier, &rec.ServedTier, &rec.Answer,
			&rec.Verdict, &rec.Attempt, &skipped, &rec.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		rec.Skipped = skipped != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
