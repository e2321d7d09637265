package quiz

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOutOfRange      = errors.New("question index out of range")
	ErrInvalidQuestion = errors.New("invalid question")
)

// Bank is an ordered, read-only set of questions. It is safe for concurrent readers.
type Bank struct {
	questions []Question
}

func NewBank(questions []Question) (*Bank, error) {
	copied := make([]Question, len(questions))
	for i, q := range questions {
		if err := validateQuestion(q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		copied[i] = Question{
			Prompt:       q.Prompt,
			Options:      append([]string(nil), q.Options...),
			CorrectIndex: q.CorrectIndex,
		}
	}
	return &Bank{questions: copied}, nil
}

func MustNewBank(questions []Question) *Bank {
	b, err := NewBank(questions)
	if err != nil {
		panic(err)
	}
	return b
}

func DefaultBank() *Bank {
	return MustNewBank(DefaultQuestions())
}

// Get returns a copy of the question so callers cannot mutate the bank.
func (b *Bank) Get(index int) (Question, error) {
	if index < 0 || index >= len(b.questions) {
		return Question{}, fmt.Errorf("%w: %d (len %d)", ErrOutOfRange, index, len(b.questions))
	}
	q := b.questions[index]
	q.Options = append([]string(nil), q.Options...)
	return q, nil
}

func (b *Bank) Len() int {
	return len(b.questions)
}

func validateQuestion(q Question) error {
	if strings.TrimSpace(q.Prompt) == "" {
		return fmt.Errorf("%w: empty prompt", ErrInvalidQuestion)
	}
	if len(q.Options) != OptionsPerQuestion {
		return fmt.Errorf("%w: want %d options, got %d", ErrInvalidQuestion, OptionsPerQuestion, len(q.Options))
	}
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return fmt.Errorf("%w: correct index %d", ErrInvalidQuestion, q.CorrectIndex)
	}
	return nil
}
