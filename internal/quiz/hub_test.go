package quiz_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saulo-duarte/btcportal/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialHub(t *testing.T, hub *quiz.Hub) *websocket.Conn {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.Serve(w, r)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.Clients() == 1 }, time.Second, 5*time.Millisecond)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) quiz.Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg quiz.Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubBroadcastsSignals(t *testing.T) {
	hub := quiz.NewHub(nil)
	e, sched := newTestEngine(hub)
	hub.Attach(e)
	conn := dialHub(t, hub)

	e.Start()
	msg := readMessage(t, conn)
	require.Equal(t, quiz.MsgQuestionChanged, msg.Type)
	var q quiz.QuestionPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &q))
	assert.Equal(t, "What is Bitcoin?", q.Prompt)
	assert.Equal(t, 5, q.Total)

	_, err := e.SubmitAnswer(3)
	require.NoError(t, err)
	msg = readMessage(t, conn)
	require.Equal(t, quiz.MsgAnswerEvaluated, msg.Type)
	var eval quiz.Evaluation
	require.NoError(t, json.Unmarshal(msg.Payload, &eval))
	assert.Equal(t, quiz.Evaluation{QuestionIndex: 0, Selected: 3, Correct: 0}, eval)

	sched.Fire()
	assert.Equal(t, quiz.MsgQuestionChanged, readMessage(t, conn).Type)
}

func TestHubRoutesClientAnswers(t *testing.T) {
	hub := quiz.NewHub(nil)
	e, _ := newTestEngine(hub)
	hub.Attach(e)
	conn := dialHub(t, hub)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": quiz.MsgStartQuiz}))
	assert.Equal(t, quiz.MsgQuestionChanged, readMessage(t, conn).Type)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":    quiz.MsgSubmitAnswer,
		"payload": map[string]int{"option": 0},
	}))
	assert.Equal(t, quiz.MsgAnswerEvaluated, readMessage(t, conn).Type)
	assert.Equal(t, 1, e.Session().Score)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"type":    quiz.MsgSubmitAnswer,
		"payload": map[string]int{"option": 1},
	}))
	msg := readMessage(t, conn)
	require.Equal(t, quiz.MsgError, msg.Type)
	var p quiz.ErrorPayload
	require.NoError(t, json.Unmarshal(msg.Payload, &p))
	assert.Equal(t, quiz.ErrTransitionPending.Error(), p.Message)
}

func TestHubHeartbeatAndUnknownType(t *testing.T) {
	hub := quiz.NewHub(nil)
	conn := dialHub(t, hub)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": quiz.MsgHeartbeat}))
	assert.Equal(t, quiz.MsgHeartbeat, readMessage(t, conn).Type)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "dance"}))
	assert.Equal(t, quiz.MsgError, readMessage(t, conn).Type)
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := quiz.NewHub(nil)
	conn := dialHub(t, hub)

	hub.Close()

	assert.Equal(t, 0, hub.Clients())
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
}
