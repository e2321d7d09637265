package quiz

// View receives the engine's signals. Signals are delivered while the engine
// holds its lock, so implementations must not call back into the engine
// synchronously and should not block.
type View interface {
	QuestionChanged(index int, total int, q Question)
	AnswerEvaluated(e Evaluation)
	Finished(score, total int)
}

// Views fans each signal out to every view, in order.
type Views []View

func (vs Views) QuestionChanged(index int, total int, q Question) {
	for _, v := range vs {
		v.QuestionChanged(index, total, q)
	}
}

func (vs Views) AnswerEvaluated(e Evaluation) {
	for _, v := range vs {
		v.AnswerEvaluated(e)
	}
}

func (vs Views) Finished(score, total int) {
	for _, v := range vs {
		v.Finished(score, total)
	}
}

type nopView struct{}

func (nopView) QuestionChanged(int, int, Question) {}
func (nopView) AnswerEvaluated(Evaluation)         {}
func (nopView) Finished(int, int)                  {}
