package quiz_test

import (
	"fmt"
	"sync"
	"time"

	"github.com/saulo-duarte/btcportal/internal/quiz"
)

type fakeTimer struct {
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	active := !t.stopped && !t.fired
	t.stopped = true
	return active
}

// fakeScheduler keeps scheduled callbacks until the test fires them.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
	delays []time.Duration
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) quiz.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{f: f}
	s.timers = append(s.timers, t)
	s.delays = append(s.delays, d)
	return t
}

func (s *fakeScheduler) Fire() int {
	s.mu.Lock()
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()

	for _, t := range due {
		t.f()
	}
	return len(due)
}

func (s *fakeScheduler) Last() *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

type recordingView struct {
	mu     sync.Mutex
	events []string
}

func (v *recordingView) QuestionChanged(index int, total int, q quiz.Question) {
	v.add(fmt.Sprintf("question %d/%d", index, total))
}

func (v *recordingView) AnswerEvaluated(e quiz.Evaluation) {
	v.add(fmt.Sprintf("evaluated q%d selected=%d correct=%d ok=%t", e.QuestionIndex, e.Selected, e.Correct, e.IsCorrect))
}

func (v *recordingView) Finished(score, total int) {
	v.add(fmt.Sprintf("finished %d/%d", score, total))
}

func (v *recordingView) add(event string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, event)
}

func (v *recordingView) Events() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]string(nil), v.events...)
}

func newTestEngine(view quiz.View) (*quiz.Engine, *fakeScheduler) {
	sched := &fakeScheduler{}
	e := quiz.NewEngine(quiz.DefaultBank(), view, quiz.WithScheduler(sched))
	return e, sched
}
