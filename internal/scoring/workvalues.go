package scoring

// ScoreWorkValues tallies the 15 work-value attributes from a forced-choice
// submission. Each answered question resolves its selected option by label
// ('a' or 'b') and increments every attribute that option contributes to.
// There is no notion of correctness; every answer is valid.
func ScoreWorkValues(questions []Question, responses Responses) *WorkValuesResult {
	attributes := make(map[string]int, len(WorkValueAttributes))
	for _, attr := range WorkValueAttributes {
		attributes[attr] = 0
	}

	answered := 0
	for _, q := range questions {
		answer, ok := responses[q.ID]
		if !ok || answer.Value == "" {
			continue
		}
		// Answered counts regardless of whether the option lookup succeeds.
		answered++

		for _, opt := range q.Options {
			if opt.Label != answer.Value {
				continue
			}
			for _, attr := range opt.Attributes {
				if _, known := attributes[attr]; known {
					attributes[attr]++
				}
			}
			break
		}
	}

	return &WorkValuesResult{
		Attributes:        attributes,
		TotalQuestions:    len(questions),
		AnsweredQuestions: answered,
	}
}
