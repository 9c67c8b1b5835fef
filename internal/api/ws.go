package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"

	"github.com/remivoice/remi/internal/session"
	"github.com/remivoice/remi/internal/speech"
)

// wsInbound is what the client sends: one spoken answer per message.
type wsInbound struct {
	Answer string `json:"answer"`
}

// wsOutbound is what the server sends. Type is "question" right after the
// upgrade and "outcome" after each graded answer.
type wsOutbound struct {
	Type     string           `json:"type"`
	Question *questionPayload `json:"question,omitempty"`
	Outcome  *outcomePayload  `json:"outcome,omitempty"`
}

// handleWebsocket runs a whole session exchange over one connection: the
// server pushes the posed question, the client replies with answers, and the
// connection closes normally when the session finishes. The socket is the
// session's microphone; inbound messages flow through the speech capture
// boundary like any other utterance source.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	m, ok := s.registry.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Warn("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	m.mu.Lock()
	q := m.engine.Current()
	phase := m.engine.Phase()
	m.mu.Unlock()

	if phase == session.PhaseFinished {
		conn.Close(websocket.StatusNormalClosure, "session finished")
		return
	}

	if err := wsjson.Write(ctx, conn, wsOutbound{
		Type:     "question",
		Question: toQuestionPayload(q),
	}); err != nil {
		return
	}

	answers := make(chan string)
	go func() {
		defer close(answers)
		for {
			var in wsInbound
			if err := wsjson.Read(ctx, conn, &in); err != nil {
				if websocket.CloseStatus(err) != websocket.StatusNormalClosure &&
					ctx.Err() == nil {
					s.log.Debug("websocket read", "error", err)
				}
				return
			}
			select {
			case answers <- in.Answer:
			case <-ctx.Done():
				return
			}
		}
	}()

	mic := &speech.ChannelTranscriber{In: answers}
	for {
		answer, err := mic.Listen(ctx)
		if err != nil {
			var captureErr *speech.ErrCaptureFailed
			if !errors.As(err, &captureErr) && !errors.Is(err, context.Canceled) {
				s.log.Debug("websocket capture", "error", err)
			}
			return
		}

		m.mu.Lock()
		out, err := m.engine.Submit(ctx, answer)
		m.mu.Unlock()
		if err != nil {
			conn.Close(websocket.StatusPolicyViolation, err.Error())
			return
		}

		payload := toOutcomePayload(out)
		if err := wsjson.Write(ctx, conn, wsOutbound{
			Type:    "outcome",
			Outcome: &payload,
		}); err != nil {
			return
		}

		if out.Finished {
			conn.Close(websocket.StatusNormalClosure, "session finished")
			return
		}
	}
}
