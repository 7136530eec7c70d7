package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// GradeGATB scores a GATB submission (parts 1-6) against the answer key.
// Parts 1/3/5/6 compare the submitted string to the single correct option's
// label, part 2 to its full text, and part 4 requires an order-independent
// exact match of two labels. Unanswered questions are recorded as incorrect;
// grading never fails on a missing response.
func GradeGATB(t TestType, questions []Question, responses Responses) (*GATBResult, error) {
	if _, ok := gatbParts[t]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTestType, t)
	}

	result := &GATBResult{Details: make([]Detail, 0, len(questions))}

	for _, q := range questions {
		var d Detail
		if t == TestGATBPart4 {
			d = gradeDualAnswer(q, responses)
		} else {
			d = gradeSingleAnswer(t, q, responses)
		}
		if d.IsCorrect {
			result.CorrectAnswers++
		}
		result.Details = append(result.Details, d)
	}

	result.TotalQuestions = len(result.Details)
	result.IncorrectAnswers = result.TotalQuestions - result.CorrectAnswers
	result.Score = result.CorrectAnswers
	if result.TotalQuestions > 0 {
		result.Percentage = int(math.Round(float64(result.CorrectAnswers) / float64(result.TotalQuestions) * 100))
	}

	return result, nil
}

// gradeSingleAnswer handles the one-correct-option parts. Part 2 compares by
// option text, everything else by label. A key with no option marked correct
// yields an empty correct answer that nothing can match.
func gradeSingleAnswer(t TestType, q Question, responses Responses) Detail {
	correct := ""
	for _, opt := range q.Options {
		if opt.Correct {
			if t == TestGATBPart2 {
				correct = opt.Text
			} else {
				correct = opt.Label
			}
			break
		}
	}

	// GATB responses are keyed by id only; the synthesized-id fallback is
	// already applied by the loader.
	user := responses[q.ID].Value

	return Detail{
		QuestionID:     q.ID,
		QuestionNumber: q.Number,
		UserAnswer:     user,
		CorrectAnswer:  correct,
		IsCorrect:      user != "" && user == correct,
	}
}

// gradeDualAnswer handles part 4: the label set of all options marked correct
// (contract: exactly two) must equal the user's two submitted labels,
// order-independent. No partial credit. A malformed key with more or fewer
// than two correct options simply never matches.
func gradeDualAnswer(q Question, responses Responses) Detail {
	correct := make([]string, 0, 2)
	for _, opt := range q.Options {
		if opt.Correct {
			correct = append(correct, opt.Label)
		}
	}

	user := responses[q.ID].Values
	if user == nil {
		user = []string{}
	}

	isCorrect := len(user) == 2 && sortedJoin(user) == sortedJoin(correct)

	return Detail{
		QuestionID:     q.ID,
		QuestionNumber: q.Number,
		UserAnswer:     user,
		CorrectAnswer:  correct,
		IsCorrect:      isCorrect,
	}
}

func sortedJoin(values []string) string {
	sorted := make([]string, len(values))
	copy(sorted, values)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}
