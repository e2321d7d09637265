package portal

import (
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/btcportal/internal/chart"
	"github.com/saulo-duarte/btcportal/internal/news"
	"github.com/saulo-duarte/btcportal/internal/price"
	"github.com/saulo-duarte/btcportal/internal/quiz"
)

type Section string

const (
	SectionNews  Section = "news-section"
	SectionPrice Section = "price-section"
	SectionChart Section = "chart-section"
	SectionQuiz  Section = "quiz-section"
)

var Sections = []Section{SectionNews, SectionPrice, SectionChart, SectionQuiz}

var ErrUnknownSection = errors.New("unknown section")

func ParseSection(s string) (Section, error) {
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, nil
		}
	}
	return "", ErrUnknownSection
}

type NewsPanel struct {
	Items []news.Item `json:"items"`
	Error string      `json:"error,omitempty"`
}

// PricePanel.Display holds either the formatted price or the error text.
type PricePanel struct {
	Display string       `json:"display"`
	Quote   *price.Quote `json:"quote,omitempty"`
}

type PageView struct {
	ID      uuid.UUID    `json:"id"`
	Visible Section      `json:"visible"`
	News    NewsPanel    `json:"news"`
	Price   PricePanel   `json:"price"`
	Chart   chart.Widget `json:"chart"`
	Quiz    quiz.Status  `json:"quiz"`
}
