package scoring

import "testing"

func behaviourKey() []Question {
	return []Question{
		{
			ID: "br-q1", Number: "1",
			Options: []Option{
				{Text: "I start conversations", Status: "Sc"},
				{Text: "I prefer to listen", Status: "None"},
			},
		},
		{
			ID: "br-q2", Number: "2",
			Options: []Option{
				{Text: "I ask questions", Status: "Inq"},
				{Text: "I wait for instructions", Status: "Aa"},
			},
		},
	}
}

func TestScoreBehaviourResponse_TraitTally(t *testing.T) {
	responses := Responses{
		"br-q1": {Value: "I start conversations"},
		"br-q2": {Value: "I ask questions"},
	}

	got := ScoreBehaviourResponse(behaviourKey(), responses)

	if got.Scores["Sc"] != 1 || got.Scores["Inq"] != 1 {
		t.Errorf("scores = %v, want Sc=1 Inq=1", got.Scores)
	}
	if got.AnsweredQuestions != 2 || got.TotalQuestions != 2 {
		t.Errorf("totals = %d/%d, want 2/2", got.AnsweredQuestions, got.TotalQuestions)
	}
}

func TestScoreBehaviourResponse_NoneStatus(t *testing.T) {
	got := ScoreBehaviourResponse(behaviourKey(), Responses{
		"br-q1": {Value: "I prefer to listen"},
	})

	if got.AnsweredQuestions != 1 {
		t.Errorf("answeredQuestions = %d, want 1", got.AnsweredQuestions)
	}
	for trait, v := range got.Scores {
		if v != 0 {
			t.Errorf("trait %q = %d, want 0 for a None-status option", trait, v)
		}
	}
}

func TestScoreBehaviourResponse_UnmatchedTextStillAnswered(t *testing.T) {
	got := ScoreBehaviourResponse(behaviourKey(), Responses{
		"br-q1": {Value: "text that matches no option"},
	})

	if got.AnsweredQuestions != 1 {
		t.Errorf("answeredQuestions = %d, want 1", got.AnsweredQuestions)
	}
	for trait, v := range got.Scores {
		if v != 0 {
			t.Errorf("trait %q = %d, want 0", trait, v)
		}
	}
}

func TestScoreBehaviourResponse_NumberFallback(t *testing.T) {
	got := ScoreBehaviourResponse(behaviourKey(), Responses{
		"2": {Value: "I wait for instructions"},
	})
	if got.Scores["Aa"] != 1 {
		t.Errorf("number-keyed response not resolved: %v", got.Scores)
	}
}

func TestScoreBehaviourResponse_AllTraitsPresent(t *testing.T) {
	got := ScoreBehaviourResponse(nil, nil)
	if len(got.Scores) != len(BehaviourTraits) {
		t.Errorf("scores has %d keys, want %d", len(got.Scores), len(BehaviourTraits))
	}
	for _, trait := range BehaviourTraits {
		if got.Scores[trait] != 0 {
			t.Errorf("trait %q = %d, want 0", trait, got.Scores[trait])
		}
	}
}
