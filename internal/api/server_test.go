package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remivoice/remi/internal/difficulty"
	"github.com/remivoice/remi/internal/quiz"
	"github.com/remivoice/remi/internal/respond"
	"github.com/remivoice/remi/internal/session"
	"github.com/remivoice/remi/internal/store"
)

func testBank() *quiz.Bank {
	var qs []quiz.Question
	for _, tier := range difficulty.Tiers {
		for i := 0; i < 10; i++ {
			qs = append(qs, quiz.NewQuestion(
				fmt.Sprintf("q-%s-%d", tier, i),
				fmt.Sprintf("Question %s %d?", tier, i),
				tier,
				[]string{fmt.Sprintf("answer %s %d", tier, i)},
			))
		}
	}
	return quiz.NewBank(qs)
}

func answerFor(text string) string {
	var tier string
	var n int
	fmt.Sscanf(text, "Question %s %d?", &tier, &n)
	return fmt.Sprintf("answer %s %d", tier, n)
}

func newTestServer(t *testing.T) (*httptest.Server, store.ProgressRepo) {
	t.Helper()
	log := slog.New(slog.DiscardHandler)

	st, err := store.Open(filepath.Join(t.TempDir(), "remi.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	bank := testBank()
	factory := func(profile respond.Profile) *session.Engine {
		return session.New(session.Deps{
			Bank:      bank,
			Responder: respond.New(nil, respond.DefaultConfig(), log),
			Progress:  st.ProgressRepo(),
			Profile:   profile,
			Log:       log,
		})
	}

	srv := NewServer(factory, st.ProgressRepo(), log)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, st.ProgressRepo()
}

func createSession(t *testing.T, ts *httptest.Server) createSessionResponse {
	t.Helper()
	body := bytes.NewBufferString(`{"patient_name": "Margaret", "interests": "gardening"}`)
	resp, err := http.Post(ts.URL+"/sessions", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out createSessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func submitAnswer(t *testing.T, ts *httptest.Server, sessionID, answer string) outcomePayload {
	t.Helper()
	body, _ := json.Marshal(submitAnswerRequest{Answer: answer})
	resp, err := http.Post(ts.URL+"/sessions/"+sessionID+"/answer", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out outcomePayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestCreateSession(t *testing.T) {
	ts, _ := newTestServer(t)

	created := createSession(t, ts)
	assert.NotEmpty(t, created.SessionID)
	assert.NotEmpty(t, created.Greeting)
	require.NotNil(t, created.Question)
	assert.Equal(t, "easy", created.Question.Tier)
}

func TestCreateSession_MissingName(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Post(ts.URL+"/sessions", "application/json", bytes.NewBufferString(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetQuestion(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createSession(t, ts)

	resp, err := http.Get(ts.URL + "/sessions/" + created.SessionID + "/question")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var q questionPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&q))
	assert.Equal(t, created.Question.ID, q.ID)
}

func TestGetQuestion_UnknownSession(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/sessions/nope/question")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSubmitAnswer_CorrectAndIncorrect(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createSession(t, ts)

	wrong := submitAnswer(t, ts, created.SessionID, "definitely not it")
	assert.Equal(t, "incorrect", wrong.Verdict)
	assert.Equal(t, 1, wrong.Attempt)
	require.NotNil(t, wrong.Question)
	assert.Equal(t, created.Question.ID, wrong.Question.ID)

	right := submitAnswer(t, ts, created.SessionID, answerFor(created.Question.Text))
	assert.Equal(t, "correct", right.Verdict)
	assert.Equal(t, 1, right.CorrectCount)
	require.NotNil(t, right.Question)
	assert.NotEqual(t, created.Question.ID, right.Question.ID)
}

func TestSubmitAnswer_Distress(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createSession(t, ts)

	out := submitAnswer(t, ts, created.SessionID, "I feel sad")
	assert.Equal(t, "upset", out.Mood)
	assert.Empty(t, out.Verdict)
	assert.NotEmpty(t, out.Line)
}

func TestSessionProgressEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createSession(t, ts)

	submitAnswer(t, ts, created.SessionID, "wrong answer here")
	submitAnswer(t, ts, created.SessionID, answerFor(created.Question.Text))

	resp, err := http.Get(ts.URL + "/sessions/" + created.SessionID + "/progress")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []progressEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "incorrect", entries[0].Verdict)
	assert.Equal(t, "correct", entries[1].Verdict)
}

func TestPatientProgressEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createSession(t, ts)
	submitAnswer(t, ts, created.SessionID, answerFor(created.Question.Text))

	resp, err := http.Get(ts.URL + "/patients/Margaret/progress")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entries []progressEntry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	require.Len(t, entries, 1)
	assert.Equal(t, created.SessionID, entries[0].SessionID)
}

func TestWebsocketExchange(t *testing.T) {
	ts, _ := newTestServer(t)
	created := createSession(t, ts)

	ctx := context.Background()
	wsURL := "ws" + ts.URL[len("http"):] + "/sessions/" + created.SessionID + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	var first wsOutbound
	require.NoError(t, wsjson.Read(ctx, conn, &first))
	assert.Equal(t, "question", first.Type)
	require.NotNil(t, first.Question)

	require.NoError(t, wsjson.Write(ctx, conn, wsInbound{Answer: answerFor(first.Question.Text)}))

	var second wsOutbound
	require.NoError(t, wsjson.Read(ctx, conn, &second))
	assert.Equal(t, "outcome", second.Type)
	require.NotNil(t, second.Outcome)
	assert.Equal(t, "correct", second.Outcome.Verdict)
}

func TestHealthz(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
