package quiz

import (
	"fmt"
	"sync"
)

type Mark string

const (
	MarkNone      Mark = ""
	MarkCorrect   Mark = "correct"
	MarkIncorrect Mark = "incorrect"
)

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseQuestion Phase = "question"
	PhaseReview   Phase = "review"
	PhaseFinished Phase = "finished"
)

type OptionView struct {
	Text     string `json:"text"`
	Disabled bool   `json:"disabled"`
	Mark     Mark   `json:"mark,omitempty"`
}

type ScoreView struct {
	Score int    `json:"score"`
	Total int    `json:"total"`
	Text  string `json:"text"`
}

// Screen is what the quiz section currently shows.
type Screen struct {
	Version       int          `json:"version"`
	Phase         Phase        `json:"phase"`
	QuestionIndex int          `json:"question_index"`
	Total         int          `json:"total"`
	Prompt        string       `json:"prompt,omitempty"`
	Options       []OptionView `json:"options,omitempty"`
	Result        *ScoreView   `json:"result,omitempty"`
}

// Board renders engine signals into a Screen that handlers can read at any time.
type Board struct {
	mu     sync.RWMutex
	screen Screen
}

func NewBoard() *Board {
	return &Board{screen: Screen{Phase: PhaseIdle}}
}

func (b *Board) QuestionChanged(index int, total int, q Question) {
	b.mu.Lock()
	defer b.mu.Unlock()

	options := make([]OptionView, len(q.Options))
	for i, text := range q.Options {
		options[i] = OptionView{Text: text}
	}
	b.screen = Screen{
		Version:       b.screen.Version + 1,
		Phase:         PhaseQuestion,
		QuestionIndex: index,
		Total:         total,
		Prompt:        q.Prompt,
		Options:       options,
	}
}

func (b *Board) AnswerEvaluated(e Evaluation) {
	b.mu.Lock()
	defer b.mu.Unlock()

	options := make([]OptionView, len(b.screen.Options))
	copy(options, b.screen.Options)
	for i := range options {
		options[i].Disabled = true
	}
	if e.Selected >= 0 && e.Selected < len(options) {
		if e.IsCorrect {
			options[e.Selected].Mark = MarkCorrect
		} else {
			options[e.Selected].Mark = MarkIncorrect
		}
	}
	if e.Correct >= 0 && e.Correct < len(options) {
		options[e.Correct].Mark = MarkCorrect
	}

	b.screen.Options = options
	b.screen.Phase = PhaseReview
	b.screen.Version++
}

func (b *Board) Finished(score, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.screen = Screen{
		Version:       b.screen.Version + 1,
		Phase:         PhaseFinished,
		QuestionIndex: total,
		Total:         total,
		Result: &ScoreView{
			Score: score,
			Total: total,
			Text:  ScoreText(score, total),
		},
	}
}

func (b *Board) Snapshot() Screen {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s := b.screen
	s.Options = append([]OptionView(nil), b.screen.Options...)
	if b.screen.Result != nil {
		r := *b.screen.Result
		s.Result = &r
	}
	return s
}

func ScoreText(score, total int) string {
	return fmt.Sprintf("Your score: %d / %d", score, total)
}
