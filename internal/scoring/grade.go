package scoring

import "fmt"

// Engine dispatches a submission to the grader matching its test type. Each
// call loads the answer key fresh and produces an independent score object;
// the engine holds no cross-call state, so concurrent grading needs no
// coordination.
type Engine struct {
	loader *Loader
}

// NewEngine creates a grading engine backed by the given answer-key loader.
func NewEngine(loader *Loader) *Engine {
	return &Engine{loader: loader}
}

// Scored reports whether a test type has a grader. gatb-part-7 and firo-b
// (and personality-aspect) are catalog test types without one: their
// submissions are stored unscored.
func Scored(t TestType) bool {
	switch t {
	case TestGATBPart1, TestGATBPart2, TestGATBPart3, TestGATBPart4,
		TestGATBPart5, TestGATBPart6,
		TestWorkValues, TestInterestInventory, TestBehaviorResponse:
		return true
	}
	return false
}

// Grade scores a submission. It returns ErrUnsupportedTestType for test types
// without a grader and propagates loader failures unrecovered; grading is
// deterministic, so callers must not retry on error.
func (e *Engine) Grade(t TestType, responses Responses) (any, error) {
	if !Scored(t) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTestType, t)
	}

	questions, err := e.loader.Load(t)
	if err != nil {
		return nil, err
	}

	switch t {
	case TestWorkValues:
		return ScoreWorkValues(questions, responses), nil
	case TestInterestInventory:
		return ScoreInterestInventory(questions, responses), nil
	case TestBehaviorResponse:
		return ScoreBehaviourResponse(questions, responses), nil
	default:
		return GradeGATB(t, questions, responses)
	}
}
