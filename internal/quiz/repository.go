package quiz

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"
)

type ResultRepository interface {
	Create(ctx context.Context, r *Result) error
	ListTop(ctx context.Context, limit int) ([]*Result, error)
}

type resultRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ResultRepository {
	return &resultRepository{db: db}
}

func (r *resultRepository) Create(ctx context.Context, res *Result) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *resultRepository) ListTop(ctx context.Context, limit int) ([]*Result, error) {
	var results []*Result
	if err := r.db.WithContext(ctx).
		Order("percentage DESC").
		Order("score DESC").
		Order("completed_at DESC").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// memoryRepository keeps results for the lifetime of the process. It backs
// the service when no database is configured.
type memoryRepository struct {
	mu      sync.RWMutex
	results []*Result
}

func NewMemoryRepository() ResultRepository {
	return &memoryRepository{}
}

func (m *memoryRepository) Create(_ context.Context, res *Result) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *res
	m.results = append(m.results, &copied)
	return nil
}

func (m *memoryRepository) ListTop(_ context.Context, limit int) ([]*Result, error) {
	m.mu.RLock()
	sorted := make([]*Result, len(m.results))
	for i, r := range m.results {
		copied := *r
		sorted[i] = &copied
	}
	m.mu.RUnlock()

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Percentage != sorted[j].Percentage {
			return sorted[i].Percentage > sorted[j].Percentage
		}
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].CompletedAt.After(sorted[j].CompletedAt)
	})

	if limit > len(sorted) {
		limit = len(sorted)
	}
	return sorted[:limit], nil
}
