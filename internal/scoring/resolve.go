package scoring

// resolveAnswer finds the submitted answer for a question. Response maps from
// older UI builds were keyed by bare question number rather than canonical id,
// so the lookup is an ordered chain: id first, question number second. A miss
// means "unanswered", never an error.
func resolveAnswer(q Question, responses Responses) (Answer, bool) {
	if a, ok := responses[q.ID]; ok {
		return a, true
	}
	if q.Number != "" {
		if a, ok := responses[q.Number]; ok {
			return a, true
		}
	}
	return Answer{}, false
}
