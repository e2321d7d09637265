package quiz

import (
	"errors"
	"sync"
	"time"
)

const DefaultAdvanceDelay = 1500 * time.Millisecond

var (
	ErrInvalidSelection  = errors.New("selected option out of range")
	ErrTransitionPending = errors.New("answer already submitted, waiting for next question")
	ErrFinished          = errors.New("quiz already finished")
	ErrNotFinished       = errors.New("quiz not finished")
)

type State int

const (
	AwaitingAnswer State = iota
	Finished
)

func (s State) String() string {
	if s == Finished {
		return "finished"
	}
	return "awaiting_answer"
}

type Option func(*Engine)

func WithAdvanceDelay(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.delay = d
		}
	}
}

func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.scheduler = s
		}
	}
}

// Engine drives one quiz run over a Bank. It is the single writer of its Session.
type Engine struct {
	mu        sync.Mutex
	bank      *Bank
	view      View
	delay     time.Duration
	scheduler Scheduler

	session  Session
	shown    int
	finished bool

	pending    Timer
	generation uint64
}

func NewEngine(bank *Bank, view View, opts ...Option) *Engine {
	if view == nil {
		view = nopView{}
	}
	e := &Engine{
		bank:      bank,
		view:      view,
		delay:     DefaultAdvanceDelay,
		scheduler: clock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.finished = bank.Len() == 0
	return e
}

// Start resets the run to the first question, cancelling any scheduled advance.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelPending()
	e.session = Session{}
	e.shown = 0
	e.finished = false

	if e.bank.Len() == 0 {
		e.finished = true
		e.view.Finished(0, 0)
		return
	}
	e.view.QuestionChanged(0, e.bank.Len(), e.question(0))
}

func (e *Engine) SubmitAnswer(selected int) (Evaluation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished {
		return Evaluation{}, ErrFinished
	}
	if e.pending != nil {
		return Evaluation{}, ErrTransitionPending
	}

	q := e.question(e.shown)
	if selected < 0 || selected >= len(q.Options) {
		return Evaluation{}, ErrInvalidSelection
	}

	eval := Evaluation{
		QuestionIndex: e.shown,
		Selected:      selected,
		Correct:       q.CorrectIndex,
		IsCorrect:     selected == q.CorrectIndex,
	}
	if eval.IsCorrect {
		e.session.Score++
	}
	e.session.CurrentIndex++

	e.view.AnswerEvaluated(eval)

	gen := e.generation
	e.pending = e.scheduler.AfterFunc(e.delay, func() { e.advance(gen) })
	return eval, nil
}

func (e *Engine) advance(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// a Start() between scheduling and firing invalidates this advance
	if gen != e.generation || e.pending == nil {
		return
	}
	e.pending = nil
	e.shown++

	if e.shown >= e.bank.Len() {
		e.finished = true
		e.view.Finished(e.session.Score, e.bank.Len())
		return
	}
	e.view.QuestionChanged(e.shown, e.bank.Len(), e.question(e.shown))
}

func (e *Engine) cancelPending() {
	e.generation++
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
}

// question panics on a bad index: the engine's invariants make it unreachable.
func (e *Engine) question(index int) Question {
	q, err := e.bank.Get(index)
	if err != nil {
		panic(err)
	}
	return q
}

// CurrentQuestion returns the question on screen; ok is false once finished.
func (e *Engine) CurrentQuestion() (Question, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished {
		return Question{}, false
	}
	return e.question(e.shown), true
}

func (e *Engine) State() (State, int) {
	s := e.Snapshot()
	return s.State, s.Index
}

// Snapshot is a consistent view of the engine taken under one lock.
type Snapshot struct {
	State   State
	Index   int
	Session Session
	Pending bool
}

func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// inspect runs read while no signal can be emitted, so views written by the
// engine agree with the returned snapshot.
func (e *Engine) inspect(read func()) Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	read()
	return e.snapshot()
}

func (e *Engine) snapshot() Snapshot {
	s := Snapshot{Session: e.session, Pending: e.pending != nil}
	if e.finished {
		s.State, s.Index = Finished, e.bank.Len()
	} else {
		s.State, s.Index = AwaitingAnswer, e.shown
	}
	return s
}

func (e *Engine) IsFinished() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.finished
}

func (e *Engine) FinalScore() (score, total int, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.finished {
		return 0, 0, ErrNotFinished
	}
	return e.session.Score, e.bank.Len(), nil
}

func (e *Engine) Session() Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session
}

func (e *Engine) Pending() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending != nil
}

func (e *Engine) Total() int {
	return e.bank.Len()
}

// Stop cancels a scheduled advance without touching the session.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelPending()
}
