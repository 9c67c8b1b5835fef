package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/remivoice/remi/internal/emotion"
	"github.com/remivoice/remi/internal/respond"
	"github.com/remivoice/remi/internal/session"
	"github.com/remivoice/remi/internal/store"
)

type createSessionRequest struct {
	PatientName string `json:"patient_name"`
	Interests   string `json:"interests,omitempty"`
	Tone        string `json:"tone,omitempty"`
	Formality   string `json:"formality,omitempty"`
}

type questionPayload struct {
	ID         string `json:"id"`
	Text       string `json:"text"`
	Tier       string `json:"tier"`
	ServedTier string `json:"served_tier"`
}

type createSessionResponse struct {
	SessionID string           `json:"session_id"`
	Greeting  string           `json:"greeting"`
	Question  *questionPayload `json:"question"`
}

type submitAnswerRequest struct {
	Answer string `json:"answer"`
}

type outcomePayload struct {
	Verdict      string           `json:"verdict,omitempty"`
	Mood         string           `json:"mood,omitempty"`
	Line         string           `json:"line"`
	Attempt      int              `json:"attempt,omitempty"`
	Skipped      bool             `json:"skipped,omitempty"`
	CorrectCount int              `json:"correct_count"`
	Question     *questionPayload `json:"question,omitempty"`
	Finished     bool             `json:"finished"`
	Summary      *summaryPayload  `json:"summary,omitempty"`
}

type summaryPayload struct {
	SessionID     string    `json:"session_id"`
	PatientName   string    `json:"patient_name"`
	StartedAt     time.Time `json:"started_at"`
	EndedAt       time.Time `json:"ended_at"`
	CorrectCount  int       `json:"correct_count"`
	TotalAnswered int       `json:"total_answered"`
	SkippedCount  int       `json:"skipped_count"`
	FinalTier     string    `json:"final_tier"`
	Completed     bool      `json:"completed"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.PatientName == "" {
		writeError(w, http.StatusBadRequest, "patient_name is required")
		return
	}

	engine := s.newEngine(respond.Profile{
		Name:      req.PatientName,
		Interests: req.Interests,
		Tone:      req.Tone,
		Formality: req.Formality,
	})
	m := s.registry.Add(engine)

	m.mu.Lock()
	greeting, q, err := engine.Start(r.Context())
	m.mu.Unlock()
	if err != nil {
		s.registry.Remove(engine.ID())
		if errors.Is(err, session.ErrNoQuestions) {
			writeError(w, http.StatusServiceUnavailable, "no questions available")
			return
		}
		s.log.Error("start session", "error", err)
		writeError(w, http.StatusInternalServerError, "could not start session")
		return
	}

	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: engine.ID(),
		Greeting:  greeting,
		Question:  toQuestionPayload(q),
	})
}

func (s *Server) handleGetQuestion(w http.ResponseWriter, r *http.Request) {
	m, ok := s.registry.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	m.mu.Lock()
	q := m.engine.Current()
	phase := m.engine.Phase()
	m.mu.Unlock()

	if q == nil {
		if phase == session.PhaseFinished {
			writeError(w, http.StatusGone, "session finished")
			return
		}
		writeError(w, http.StatusConflict, "no question awaiting an answer")
		return
	}
	writeJSON(w, http.StatusOK, toQuestionPayload(q))
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	m, ok := s.registry.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	var req submitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	m.mu.Lock()
	out, err := m.engine.Submit(r.Context(), req.Answer)
	m.mu.Unlock()
	if err != nil {
		switch {
		case errors.Is(err, session.ErrSessionFinished):
			writeError(w, http.StatusGone, "session finished")
		case errors.Is(err, session.ErrNotStarted):
			writeError(w, http.StatusConflict, "session not started")
		default:
			s.log.Error("submit answer", "error", err)
			writeError(w, http.StatusInternalServerError, "could not grade answer")
		}
		return
	}

	writeJSON(w, http.StatusOK, toOutcomePayload(out))
}

func (s *Server) handleSessionProgress(w http.ResponseWriter, r *http.Request) {
	if s.progress == nil {
		writeError(w, http.StatusNotFound, "progress store not configured")
		return
	}
	recs, err := s.progress.BySession(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.log.Error("read session progress", "error", err)
		writeError(w, http.StatusInternalServerError, "could not read progress")
		return
	}
	writeJSON(w, http.StatusOK, toProgressPayload(recs))
}

func (s *Server) handlePatientProgress(w http.ResponseWriter, r *http.Request) {
	if s.progress == nil {
		writeError(w, http.StatusNotFound, "progress store not configured")
		return
	}
	recs, err := s.progress.ByPatient(r.Context(), chi.URLParam(r, "patientName"))
	if err != nil {
		s.log.Error("read patient progress", "error", err)
		writeError(w, http.StatusInternalServerError, "could not read progress")
		return
	}
	writeJSON(w, http.StatusOK, toProgressPayload(recs))
}

type progressEntry struct {
	SessionID    string    `json:"session_id"`
	QuestionID   string    `json:"question_id"`
	QuestionText string    `json:"question_text"`
	Tier         string    `json:"tier"`
	ServedTier   string    `json:"served_tier"`
	Answer       string    `json:"answer"`
	Verdict      string    `json:"verdict"`
	Attempt      int       `json:"attempt"`
	Skipped      bool      `json:"skipped"`
	RecordedAt   time.Time `json:"recorded_at"`
}

func toProgressPayload(recs []store.ProgressRecord) []progressEntry {
	out := make([]progressEntry, 0, len(recs))
	for _, rec := range recs {
		out = append(out, progressEntry{
			SessionID:    rec.SessionID,
			QuestionID:   rec.QuestionID,
			QuestionText: rec.QuestionText,
			Tier:         rec.Tier,
			ServedTier:   rec.ServedTier,
			Answer:       rec.Answer,
			Verdict:      rec.Verdict,
			Attempt:      rec.Attempt,
			Skipped:      rec.Skipped,
			RecordedAt:   rec.RecordedAt,
		})
	}
	return out
}

func toQuestionPayload(q *session.PosedQuestion) *questionPayload {
	if q == nil {
		return nil
	}
	return &questionPayload{
		ID:         q.ID,
		Text:       q.Text,
		Tier:       q.Tier.String(),
		ServedTier: q.ServedTier.String(),
	}
}

func toOutcomePayload(out *session.Outcome) outcomePayload {
	p := outcomePayload{
		Line:         out.Line,
		Attempt:      out.Attempt,
		Skipped:      out.Skipped,
		CorrectCount: out.CorrectCount,
		Question:     toQuestionPayload(out.Question),
		Finished:     out.Finished,
	}
	if out.Mood == emotion.MoodUpset {
		p.Mood = out.Mood.String()
	} else {
		p.Verdict = out.Verdict.String()
	}
	if out.Summary != nil {
		p.Summary = &summaryPayload{
			SessionID:     out.Summary.SessionID,
			PatientName:   out.Summary.PatientName,
			StartedAt:     out.Summary.StartedAt,
			EndedAt:       out.Summary.EndedAt,
			CorrectCount:  out.Summary.CorrectCount,
			TotalAnswered: out.Summary.TotalAnswered,
			SkippedCount:  out.Summary.SkippedCount,
			FinalTier:     out.Summary.FinalTier.String(),
			Completed:     out.Summary.Completed,
		}
	}
	return p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
