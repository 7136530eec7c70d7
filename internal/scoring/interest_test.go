package scoring

import "testing"

func TestScoreInterestInventory_CategoryIsolation(t *testing.T) {
	questions := []Question{
		{ID: "q1", Number: "1", Category: "medical"},
		{ID: "q2", Number: "2", Category: "technology"},
	}

	got := ScoreInterestInventory(questions, Responses{"q1": {Value: "Like"}})

	if got.Categories["medical"] != 1 {
		t.Errorf("medical = %d, want 1", got.Categories["medical"])
	}
	for _, c := range []string{"technology", "commerce", "arts", "fine-arts"} {
		if got.Categories[c] != 0 {
			t.Errorf("category %q = %d, want 0", c, got.Categories[c])
		}
	}
	if got.TotalQuestions != 2 || got.AnsweredQuestions != 1 {
		t.Errorf("totals = %d/%d, want 2/1", got.TotalQuestions, got.AnsweredQuestions)
	}
}

func TestScoreInterestInventory_LikeSpellings(t *testing.T) {
	questions := []Question{{ID: "q1", Number: "1", Category: "arts"}}

	tests := []struct {
		answer string
		likes  int
	}{
		{"Like", 1},
		{"like", 1},
		{"👍Like", 1},
		{"👍 Like", 1},
		{"Dislike", 0},
		{"LIKE", 0},
	}

	for _, tc := range tests {
		got := ScoreInterestInventory(questions, Responses{"q1": {Value: tc.answer}})
		if got.Categories["arts"] != tc.likes {
			t.Errorf("answer %q: arts = %d, want %d", tc.answer, got.Categories["arts"], tc.likes)
		}
		// Dislike still counts as answered.
		if got.AnsweredQuestions != 1 {
			t.Errorf("answer %q: answeredQuestions = %d, want 1", tc.answer, got.AnsweredQuestions)
		}
	}
}

func TestScoreInterestInventory_NumberFallbackLookup(t *testing.T) {
	questions := []Question{{ID: "q7", Number: "7", Category: "commerce"}}

	// Responses keyed by the bare question number resolve via the fallback
	// chain; the id wins when both are present.
	got := ScoreInterestInventory(questions, Responses{"7": {Value: "Like"}})
	if got.Categories["commerce"] != 1 {
		t.Errorf("number-keyed response not resolved: %v", got.Categories)
	}

	got = ScoreInterestInventory(questions, Responses{
		"q7": {Value: "Dislike"},
		"7":  {Value: "Like"},
	})
	if got.Categories["commerce"] != 0 {
		t.Error("id lookup did not take precedence over number lookup")
	}
}

func TestScoreInterestInventory_AllCategoriesPresent(t *testing.T) {
	got := ScoreInterestInventory(nil, nil)
	for _, c := range InterestCategories {
		if _, ok := got.Categories[c]; !ok {
			t.Errorf("category %q missing from empty result", c)
		}
	}
}
