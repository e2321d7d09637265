package quiz

import (
	"net/http"

	"github.com/google/uuid"
)

// Player wires one engine to the views that watch it.
type Player struct {
	Engine   *Engine
	Board    *Board
	Hub      *Hub
	Recorder *Recorder
}

func NewPlayer(pageID uuid.UUID, bank *Bank, results ResultService, checkOrigin func(*http.Request) bool, opts ...Option) *Player {
	board := NewBoard()
	hub := NewHub(checkOrigin)
	views := Views{board, hub}

	var recorder *Recorder
	if results != nil {
		recorder = NewRecorder(pageID, results)
		views = append(views, recorder)
	}

	engine := NewEngine(bank, views, opts...)
	hub.Attach(engine)

	return &Player{
		Engine:   engine,
		Board:    board,
		Hub:      hub,
		Recorder: recorder,
	}
}

type Status struct {
	State   string  `json:"state"`
	Session Session `json:"session"`
	Pending bool    `json:"pending"`
	Screen  Screen  `json:"screen"`
}

func (p *Player) Status() Status {
	var screen Screen
	snap := p.Engine.inspect(func() { screen = p.Board.Snapshot() })
	return Status{
		State:   snap.State.String(),
		Session: snap.Session,
		Pending: snap.Pending,
		Screen:  screen,
	}
}

func (p *Player) Close() {
	p.Engine.Stop()
	p.Hub.Close()
}
