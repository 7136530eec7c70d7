package scoring

import "testing"

func workValuesKey() []Question {
	return []Question{
		{
			ID:     "wv-q1",
			Number: "1",
			Options: []Option{
				{Label: "a", Text: "a stable job", Attributes: []string{"Security"}},
				{Label: "b", Text: "a changing job", Attributes: []string{"Variety", "Creativity"}},
			},
		},
	}
}

func TestScoreWorkValues_AttributeTally(t *testing.T) {
	got := ScoreWorkValues(workValuesKey(), Responses{"wv-q1": {Value: "b"}})

	if got.TotalQuestions != 1 || got.AnsweredQuestions != 1 {
		t.Errorf("totals = %d/%d, want 1/1", got.TotalQuestions, got.AnsweredQuestions)
	}
	if got.Attributes["Variety"] != 1 || got.Attributes["Creativity"] != 1 {
		t.Errorf("selected option attributes not incremented: %v", got.Attributes)
	}
	if got.Attributes["Security"] != 0 {
		t.Errorf("unselected option attribute incremented: %v", got.Attributes)
	}

	// Every one of the 15 attributes must be present, floored at 0.
	if len(got.Attributes) != len(WorkValueAttributes) {
		t.Errorf("attributes has %d keys, want %d", len(got.Attributes), len(WorkValueAttributes))
	}
}

func TestScoreWorkValues_NoResponsesFloor(t *testing.T) {
	got := ScoreWorkValues(workValuesKey(), Responses{})

	if got.AnsweredQuestions != 0 {
		t.Errorf("answeredQuestions = %d, want 0", got.AnsweredQuestions)
	}
	for _, attr := range WorkValueAttributes {
		v, ok := got.Attributes[attr]
		if !ok {
			t.Errorf("attribute %q missing from result", attr)
		}
		if v != 0 {
			t.Errorf("attribute %q = %d, want 0", attr, v)
		}
	}
}

func TestScoreWorkValues_UnknownLabelStillAnswered(t *testing.T) {
	// An answer that matches no option label counts as answered but
	// contributes to no attribute.
	got := ScoreWorkValues(workValuesKey(), Responses{"wv-q1": {Value: "c"}})

	if got.AnsweredQuestions != 1 {
		t.Errorf("answeredQuestions = %d, want 1", got.AnsweredQuestions)
	}
	for attr, v := range got.Attributes {
		if v != 0 {
			t.Errorf("attribute %q = %d, want 0", attr, v)
		}
	}
}

func TestScoreWorkValues_UnknownAttributeIgnored(t *testing.T) {
	key := []Question{{
		ID: "wv-q1", Number: "1",
		Options: []Option{{Label: "a", Attributes: []string{"Security", "Not A Real Attribute"}}},
	}}

	got := ScoreWorkValues(key, Responses{"wv-q1": {Value: "a"}})
	if got.Attributes["Security"] != 1 {
		t.Errorf("Security = %d, want 1", got.Attributes["Security"])
	}
	if _, ok := got.Attributes["Not A Real Attribute"]; ok {
		t.Error("unknown attribute leaked into the result")
	}
}
