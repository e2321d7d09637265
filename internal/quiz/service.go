package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/btcportal/internal/config"
	"gorm.io/datatypes"
)

const (
	DefaultResultsLimit = 10
	MaxResultsLimit     = 100
)

var ErrInvalidResult = errors.New("invalid quiz result")

type ResultService interface {
	RecordResult(ctx context.Context, pageID uuid.UUID, score, total int, answers []Evaluation) (*Result, error)
	TopResults(ctx context.Context, limit int) ([]*Result, error)
}

type resultService struct {
	repo ResultRepository
	now  func() time.Time
}

func NewService(repo ResultRepository) ResultService {
	return &resultService{repo: repo, now: time.Now}
}

func (s *resultService) RecordResult(ctx context.Context, pageID uuid.UUID, score, total int, answers []Evaluation) (*Result, error) {
	log := config.WithContext(ctx)

	if total < 0 || score < 0 || score > total {
		return nil, ErrInvalidResult
	}

	encoded, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}

	percentage := 0
	if total > 0 {
		percentage = score * 100 / total
	}

	res := &Result{
		ID:          uuid.New(),
		PageID:      pageID,
		Score:       score,
		Total:       total,
		Percentage:  percentage,
		Answers:     datatypes.JSON(encoded),
		CompletedAt: s.now(),
	}

	if err := s.repo.Create(ctx, res); err != nil {
		log.WithError(err).Error("Failed to save quiz result")
		return nil, err
	}

	log.WithField("result_id", res.ID).Infof("Quiz finished with %d/%d", score, total)
	return res, nil
}

func (s *resultService) TopResults(ctx context.Context, limit int) ([]*Result, error) {
	if limit <= 0 {
		limit = DefaultResultsLimit
	}
	if limit > MaxResultsLimit {
		limit = MaxResultsLimit
	}

	results, err := s.repo.ListTop(ctx, limit)
	if err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to list quiz results")
		return nil, err
	}
	return results, nil
}
