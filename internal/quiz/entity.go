package quiz

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OptionsPerQuestion is the number of choices every question carries.
const OptionsPerQuestion = 4

type Question struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"-"`
}

// Session is the mutable part of a quiz run. CurrentIndex counts the answers
// evaluated so far, so 0 <= Score <= CurrentIndex <= bank length always holds.
type Session struct {
	CurrentIndex int `json:"current_index"`
	Score        int `json:"score"`
}

type Evaluation struct {
	QuestionIndex int  `json:"question_index"`
	Selected      int  `json:"selected"`
	Correct       int  `json:"correct"`
	IsCorrect     bool `json:"is_correct"`
}

type Result struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PageID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"page_id"`
	Score       int            `gorm:"not null;default:0" json:"score"`
	Total       int            `gorm:"not null;default:0" json:"total"`
	Percentage  int            `gorm:"not null;default:0" json:"percentage"`
	Answers     datatypes.JSON `gorm:"type:jsonb" json:"answers"`
	CompletedAt time.Time      `gorm:"not null;index" json:"completed_at"`
}

func (Result) TableName() string {
	return "quiz_results"
}

func DefaultQuestions() []Question {
	return []Question{
		{
			Prompt:       "What is Bitcoin?",
			Options:      []string{"A type of digital currency", "A type of stock", "A type of bond", "A physical coin"},
			CorrectIndex: 0,
		},
		{
			Prompt:       "Who created Bitcoin?",
			Options:      []string{"Vitalik Buterin", "Satoshi Nakamoto", "Charlie Lee", "Roger Ver"},
			CorrectIndex: 1,
		},
		{
			Prompt:       "What technology does Bitcoin use?",
			Options:      []string{"Blockchain", "Cloud computing", "Artificial intelligence", "Quantum computing"},
			CorrectIndex: 0,
		},
		{
			Prompt:       "What is the maximum supply of Bitcoin?",
			Options:      []string{"21 million", "50 million", "1 billion", "No limit"},
			CorrectIndex: 0,
		},
		{
			Prompt:       "What is the unit of Bitcoin?",
			Options:      []string{"Bit", "Satoshi", "Byte", "Ether"},
			CorrectIndex: 1,
		},
	}
}
