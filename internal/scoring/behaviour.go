package scoring

// ScoreBehaviourResponse tallies trait-status codes for a behaviour-response
// submission. The selected option is found by exact text match against the
// submitted string; an option with status "None" (or an unknown code)
// contributes to answeredQuestions but to no trait tally.
func ScoreBehaviourResponse(questions []Question, responses Responses) *BehaviourResponseResult {
	scores := make(map[string]int, len(BehaviourTraits))
	for _, trait := range BehaviourTraits {
		scores[trait] = 0
	}

	answered := 0
	for _, q := range questions {
		answer, ok := resolveAnswer(q, responses)
		if !ok || answer.Value == "" {
			continue
		}
		answered++

		for _, opt := range q.Options {
			if opt.Text != answer.Value {
				continue
			}
			if _, known := scores[opt.Status]; known {
				scores[opt.Status]++
			}
			break
		}
	}

	return &BehaviourResponseResult{
		TotalQuestions:    len(questions),
		AnsweredQuestions: answered,
		Scores:            scores,
	}
}
