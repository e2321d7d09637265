package portal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/btcportal/internal/portal"
	"github.com/saulo-duarte/btcportal/internal/quiz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExpiringStore(t *testing.T, ttl time.Duration) *portal.Store {
	t.Helper()
	store := portal.NewStore(portal.StoreConfig{
		News:        fakeNews{},
		Price:       &fakePrice{rates: []float64{1}},
		QuizOptions: []quiz.Option{quiz.WithAdvanceDelay(time.Hour)},
		PageTTL:     ttl,
	})
	t.Cleanup(store.Close)
	return store
}

func TestStoreEvictsExpiredPages(t *testing.T) {
	store := newExpiringStore(t, time.Millisecond)

	var ids []uuid.UUID
	for i := 0; i < 100; i++ {
		ids = append(ids, store.Create(context.Background()).ID)
	}

	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, 0, store.Len())
	for _, id := range ids {
		_, err := store.Get(id)
		assert.ErrorIs(t, err, portal.ErrPageNotFound)
	}
}

func TestStoreClosesEvictedPages(t *testing.T) {
	store := newExpiringStore(t, 200*time.Millisecond)

	page := store.Create(context.Background())
	_, err := page.Player().Engine.SubmitAnswer(0)
	require.NoError(t, err)
	require.True(t, page.Player().Engine.Pending())

	time.Sleep(300 * time.Millisecond)

	_, err = store.Get(page.ID)
	assert.ErrorIs(t, err, portal.ErrPageNotFound)
	assert.False(t, page.Player().Engine.Pending())
}

func TestStoreKeepsLivePages(t *testing.T) {
	store := newExpiringStore(t, time.Hour)

	page := store.Create(context.Background())
	got, err := store.Get(page.ID)
	require.NoError(t, err)
	assert.Same(t, page, got)
	assert.Equal(t, 1, store.Len())
}

type slowResults struct {
	quiz.ResultService
	delay time.Duration
}

func (s slowResults) RecordResult(ctx context.Context, pageID uuid.UUID, score, total int, answers []quiz.Evaluation) (*quiz.Result, error) {
	time.Sleep(s.delay)
	return s.ResultService.RecordResult(ctx, pageID, score, total, answers)
}

func TestStoreCloseWaitsForResults(t *testing.T) {
	results := quiz.NewService(quiz.NewMemoryRepository())
	store := portal.NewStore(portal.StoreConfig{
		News:        fakeNews{},
		Price:       &fakePrice{rates: []float64{1}},
		Results:     slowResults{ResultService: results, delay: 50 * time.Millisecond},
		QuizOptions: []quiz.Option{quiz.WithAdvanceDelay(time.Millisecond)},
	})

	engine := store.Create(context.Background()).Player().Engine
	deadline := time.Now().Add(5 * time.Second)
	for !engine.IsFinished() && time.Now().Before(deadline) {
		if _, err := engine.SubmitAnswer(0); err != nil && !errors.Is(err, quiz.ErrTransitionPending) {
			require.ErrorIs(t, err, quiz.ErrFinished)
		}
		time.Sleep(time.Millisecond)
	}
	require.True(t, engine.IsFinished())

	store.Close()

	saved, err := results.TopResults(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, 5, saved[0].Total)
}
