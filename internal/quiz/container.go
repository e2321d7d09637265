package quiz

import "gorm.io/gorm"

type QuizContainer struct {
	Bank    *Bank
	Service ResultService
}

// NewQuizContainer stores results in Postgres when db is set and in memory otherwise.
func NewQuizContainer(db *gorm.DB) *QuizContainer {
	var repo ResultRepository
	if db != nil {
		repo = NewRepository(db)
	} else {
		repo = NewMemoryRepository()
	}

	return &QuizContainer{
		Bank:    DefaultBank(),
		Service: NewService(repo),
	}
}

func (c *QuizContainer) Handler(players PlayerLocator) *Handler {
	return NewHandler(c.Service, players)
}
