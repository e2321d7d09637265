package quiz

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/saulo-duarte/btcportal/internal/config"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1024
	sendBuffer     = 32
)

const (
	MsgQuestionChanged = "question_changed"
	MsgAnswerEvaluated = "answer_evaluated"
	MsgFinished        = "finished"
	MsgError           = "error"
	MsgHeartbeat       = "heartbeat"

	MsgSubmitAnswer = "submit_answer"
	MsgStartQuiz    = "start_quiz"
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type QuestionPayload struct {
	QuestionIndex int      `json:"question_index"`
	Total         int      `json:"total"`
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
}

type FinishedPayload struct {
	Score int    `json:"score"`
	Total int    `json:"total"`
	Text  string `json:"text"`
}

type AnswerPayload struct {
	Option int `json:"option"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// Controller is the part of the engine the hub forwards client messages to.
type Controller interface {
	Start()
	SubmitAnswer(selected int) (Evaluation, error)
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub pushes engine signals to every connected websocket client.
type Hub struct {
	mu         sync.Mutex
	clients    map[*client]struct{}
	controller Controller
	upgrader   websocket.Upgrader
}

func NewHub(checkOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

func (h *Hub) Attach(c Controller) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.controller = c
}

func (h *Hub) QuestionChanged(index int, total int, q Question) {
	h.broadcast(MsgQuestionChanged, QuestionPayload{
		QuestionIndex: index,
		Total:         total,
		Prompt:        q.Prompt,
		Options:       q.Options,
	})
}

func (h *Hub) AnswerEvaluated(e Evaluation) {
	h.broadcast(MsgAnswerEvaluated, e)
}

func (h *Hub) Finished(score, total int) {
	h.broadcast(MsgFinished, FinishedPayload{Score: score, Total: total, Text: ScoreText(score, total)})
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Serve upgrades the request and blocks until the client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	conn.SetReadLimit(maxMessageSize)

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)

	go c.writePump()
	h.readPump(r, c)
	return nil
}

func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) broadcast(msgType string, payload interface{}) {
	data, err := encode(msgType, payload)
	if err != nil {
		config.Logger.WithError(err).Errorf("Failed to encode %s message", msgType)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			// slow client, drop it rather than stall the engine
			delete(h.clients, c)
			close(c.send)
		}
	}
}

func (h *Hub) readPump(r *http.Request, c *client) {
	log := config.WithContext(r.Context())
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Warn("Websocket read error")
			}
			return
		}

		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			h.reply(c, MsgError, ErrorPayload{Message: "malformed message"})
			continue
		}
		h.handleInbound(c, msg)
	}
}

func (h *Hub) handleInbound(c *client, msg Message) {
	h.mu.Lock()
	ctrl := h.controller
	h.mu.Unlock()

	switch msg.Type {
	case MsgHeartbeat:
		h.reply(c, MsgHeartbeat, struct{}{})
	case MsgStartQuiz:
		if ctrl != nil {
			ctrl.Start()
		}
	case MsgSubmitAnswer:
		var p AnswerPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			h.reply(c, MsgError, ErrorPayload{Message: "malformed answer"})
			return
		}
		if ctrl == nil {
			return
		}
		if _, err := ctrl.SubmitAnswer(p.Option); err != nil {
			h.reply(c, MsgError, ErrorPayload{Message: err.Error()})
		}
	default:
		h.reply(c, MsgError, ErrorPayload{Message: "unknown message type: " + msg.Type})
	}
}

func (h *Hub) reply(c *client, msgType string, payload interface{}) {
	data, err := encode(msgType, payload)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *client) writePump() {
	defer c.conn.Close()

	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func encode(msgType string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: msgType, Payload: raw})
}
