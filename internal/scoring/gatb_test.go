package scoring

import (
	"encoding/json"
	"testing"
)

func singleAnswerKey(id, number string, labels []string, correctLabel string) Question {
	q := Question{ID: id, Number: number}
	for _, l := range labels {
		q.Options = append(q.Options, Option{Label: l, Correct: l == correctLabel})
	}
	return q
}

func TestGradeGATB_Part1Scenario(t *testing.T) {
	questions := []Question{
		singleAnswerKey("Q1", "1", []string{"Same", "Different"}, "Same"),
		singleAnswerKey("Q2", "2", []string{"Same", "Different"}, "Different"),
	}
	responses := Responses{
		"Q1": {Value: "Same"},
		"Q2": {Value: "Same"},
	}

	got, err := GradeGATB(TestGATBPart1, questions, responses)
	if err != nil {
		t.Fatalf("GradeGATB: %v", err)
	}

	if got.TotalQuestions != 2 || got.CorrectAnswers != 1 || got.IncorrectAnswers != 1 {
		t.Errorf("totals = %d/%d/%d, want 2/1/1",
			got.TotalQuestions, got.CorrectAnswers, got.IncorrectAnswers)
	}
	if got.Score != 1 || got.Percentage != 50 {
		t.Errorf("score=%d percentage=%d, want 1 and 50", got.Score, got.Percentage)
	}
	if !got.Details[0].IsCorrect || got.Details[1].IsCorrect {
		t.Errorf("details correctness = %v/%v, want true/false",
			got.Details[0].IsCorrect, got.Details[1].IsCorrect)
	}
}

func TestGradeGATB_TotalsInvariant(t *testing.T) {
	questions := []Question{
		singleAnswerKey("q1", "1", []string{"A", "B", "C", "D"}, "B"),
		singleAnswerKey("q2", "2", []string{"A", "B", "C", "D"}, "C"),
		singleAnswerKey("q3", "3", []string{"A", "B", "C", "D"}, "A"),
	}
	responses := Responses{"q1": {Value: "B"}, "q3": {Value: "D"}}

	got, err := GradeGATB(TestGATBPart5, questions, responses)
	if err != nil {
		t.Fatalf("GradeGATB: %v", err)
	}

	if got.CorrectAnswers+got.IncorrectAnswers != got.TotalQuestions {
		t.Errorf("correct %d + incorrect %d != total %d",
			got.CorrectAnswers, got.IncorrectAnswers, got.TotalQuestions)
	}
	if len(got.Details) != got.TotalQuestions {
		t.Errorf("len(details) = %d, want %d", len(got.Details), got.TotalQuestions)
	}
	if got.Percentage < 0 || got.Percentage > 100 {
		t.Errorf("percentage %d out of bounds", got.Percentage)
	}
}

func TestGradeGATB_Part2TextComparison(t *testing.T) {
	q1 := Question{ID: "q1", Number: "1", Options: []Option{
		{Label: "A", Text: "14 men"},
		{Label: "B", Text: "15 men", Correct: true},
		{Label: "C", Text: "16 men"},
		{Label: "D", Text: "17 men"},
		{Label: "E", Text: "none of these"},
	}}
	q2 := Question{ID: "q2", Number: "2", Options: []Option{
		{Label: "A", Text: "3 km"},
		{Label: "B", Text: "4 km"},
		{Label: "C", Text: "5 km"},
		{Label: "D", Text: "6 km"},
		{Label: "E", Text: "none of these", Correct: true},
	}}

	responses := Responses{
		"q1": {Value: "15 men"},
		"q2": {Value: "none of these"},
	}

	got, err := GradeGATB(TestGATBPart2, []Question{q1, q2}, responses)
	if err != nil {
		t.Fatalf("GradeGATB: %v", err)
	}
	if got.CorrectAnswers != 2 {
		t.Errorf("correctAnswers = %d, want 2", got.CorrectAnswers)
	}
	if got.Details[0].CorrectAnswer != "15 men" {
		t.Errorf("correctAnswer = %q, want full option text", got.Details[0].CorrectAnswer)
	}

	// Submitting the label instead of the text must not match.
	got, _ = GradeGATB(TestGATBPart2, []Question{q1}, Responses{"q1": {Value: "B"}})
	if got.CorrectAnswers != 0 {
		t.Errorf("label match counted correct for a text-compared part")
	}
}

func dualAnswerKey(id string, correct ...string) Question {
	q := Question{ID: id, Number: "1"}
	for _, l := range []string{"a", "b", "c", "d"} {
		opt := Option{Label: l}
		for _, c := range correct {
			if c == l {
				opt.Correct = true
			}
		}
		q.Options = append(q.Options, opt)
	}
	return q
}

func TestGradeGATB_Part4Exactness(t *testing.T) {
	key := []Question{dualAnswerKey("q1", "a", "c")}

	tests := []struct {
		name    string
		answer  Answer
		correct bool
	}{
		{"reversed order matches", Answer{Values: []string{"c", "a"}, Multi: true}, true},
		{"exact order matches", Answer{Values: []string{"a", "c"}, Multi: true}, true},
		{"single answer no partial credit", Answer{Values: []string{"a"}, Multi: true}, false},
		{"one wrong label", Answer{Values: []string{"a", "b"}, Multi: true}, false},
		{"three elements", Answer{Values: []string{"a", "c", "d"}, Multi: true}, false},
		{"plain string answer", Answer{Value: "a"}, false},
		{"unanswered", Answer{}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := GradeGATB(TestGATBPart4, key, Responses{"q1": tc.answer})
			if err != nil {
				t.Fatalf("GradeGATB: %v", err)
			}
			if got.Details[0].IsCorrect != tc.correct {
				t.Errorf("isCorrect = %v, want %v", got.Details[0].IsCorrect, tc.correct)
			}
		})
	}
}

func TestGradeGATB_Part4MalformedKeyNeverMatches(t *testing.T) {
	// A key with three options marked correct cannot equal a 2-element answer.
	key := []Question{dualAnswerKey("q1", "a", "b", "c")}
	got, err := GradeGATB(TestGATBPart4, key, Responses{"q1": {Values: []string{"a", "b"}, Multi: true}})
	if err != nil {
		t.Fatalf("GradeGATB: %v", err)
	}
	if got.Details[0].IsCorrect {
		t.Error("3-correct key matched a 2-element answer")
	}
}

func TestGradeGATB_UnansweredRecordedIncorrect(t *testing.T) {
	questions := []Question{singleAnswerKey("q1", "1", []string{"A", "B", "C", "D"}, "A")}

	got, err := GradeGATB(TestGATBPart3, questions, Responses{})
	if err != nil {
		t.Fatalf("GradeGATB: %v", err)
	}
	if got.CorrectAnswers != 0 || got.IncorrectAnswers != 1 {
		t.Errorf("totals = %d/%d, want 0 correct 1 incorrect", got.CorrectAnswers, got.IncorrectAnswers)
	}
	if got.Details[0].UserAnswer != "" {
		t.Errorf("userAnswer = %v, want empty string", got.Details[0].UserAnswer)
	}
}

func TestGradeGATB_NoCorrectOptionNeverMatches(t *testing.T) {
	// Malformed key with nothing marked correct: even an empty submitted
	// string must not count as a match.
	questions := []Question{singleAnswerKey("q1", "1", []string{"A", "B"}, "")}

	got, err := GradeGATB(TestGATBPart5, questions, Responses{"q1": {Value: ""}})
	if err != nil {
		t.Fatalf("GradeGATB: %v", err)
	}
	if got.CorrectAnswers != 0 {
		t.Error("empty answer matched an empty correct answer")
	}
}

func TestGradeGATB_EmptyKey(t *testing.T) {
	got, err := GradeGATB(TestGATBPart1, nil, Responses{"q1": {Value: "Same"}})
	if err != nil {
		t.Fatalf("GradeGATB: %v", err)
	}
	if got.TotalQuestions != 0 || got.Percentage != 0 {
		t.Errorf("total=%d percentage=%d, want 0 and 0", got.TotalQuestions, got.Percentage)
	}
}

func TestGradeGATB_UnsupportedPart(t *testing.T) {
	if _, err := GradeGATB(TestGATBPart7, nil, nil); err == nil {
		t.Fatal("expected error for gatb-part-7")
	}
	if _, err := GradeGATB(TestWorkValues, nil, nil); err == nil {
		t.Fatal("expected error for non-GATB test type")
	}
}

func TestGradeGATB_Idempotent(t *testing.T) {
	questions := []Question{
		singleAnswerKey("q1", "1", []string{"A", "B", "C", "D"}, "B"),
		singleAnswerKey("q2", "2", []string{"A", "B", "C", "D"}, "D"),
	}
	responses := Responses{"q1": {Value: "B"}, "q2": {Value: "A"}}

	first, err := GradeGATB(TestGATBPart5, questions, responses)
	if err != nil {
		t.Fatalf("GradeGATB: %v", err)
	}
	second, err := GradeGATB(TestGATBPart5, questions, responses)
	if err != nil {
		t.Fatalf("GradeGATB: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Errorf("repeated grading differs:\n%s\n%s", a, b)
	}
}
