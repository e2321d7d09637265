package quiz

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/btcportal/internal/config"
)

const recordTimeout = 5 * time.Second

// Recorder collects the answers of a run and hands the finished run to the
// ResultService. Saving happens off the engine's goroutine.
type Recorder struct {
	mu      sync.Mutex
	pageID  uuid.UUID
	service ResultService
	answers []Evaluation
	wg      sync.WaitGroup
}

func NewRecorder(pageID uuid.UUID, service ResultService) *Recorder {
	return &Recorder{pageID: pageID, service: service}
}

func (r *Recorder) QuestionChanged(index int, _ int, _ Question) {
	if index != 0 {
		return
	}
	r.mu.Lock()
	r.answers = nil
	r.mu.Unlock()
}

func (r *Recorder) AnswerEvaluated(e Evaluation) {
	r.mu.Lock()
	r.answers = append(r.answers, e)
	r.mu.Unlock()
}

func (r *Recorder) Finished(score, total int) {
	r.mu.Lock()
	answers := r.answers
	r.answers = nil
	r.mu.Unlock()

	if total == 0 {
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(config.WithPageID(context.Background(), r.pageID.String()), recordTimeout)
		defer cancel()

		if _, err := r.service.RecordResult(ctx, r.pageID, score, total, answers); err != nil {
			config.WithContext(ctx).WithError(err).Warn("Dropping quiz result")
		}
	}()
}

// Wait blocks until every pending save has completed.
func (r *Recorder) Wait() {
	r.wg.Wait()
}
