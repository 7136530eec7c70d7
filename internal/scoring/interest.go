package scoring

// likeSpellings are the accepted "Like" variants. The thumbs-up prefixed
// forms come from an earlier UI build that submitted the rendered button
// label verbatim.
var likeSpellings = map[string]bool{
	"Like":    true,
	"like":    true,
	"👍Like":  true,
	"👍 Like": true,
}

// ScoreInterestInventory tallies "Like" answers per category. Any non-empty
// response counts the question as answered; only a recognized "Like" spelling
// increments its category.
func ScoreInterestInventory(questions []Question, responses Responses) *InterestInventoryResult {
	categories := make(map[string]int, len(InterestCategories))
	for _, c := range InterestCategories {
		categories[c] = 0
	}

	answered := 0
	for _, q := range questions {
		answer, ok := resolveAnswer(q, responses)
		if !ok || answer.Value == "" {
			continue
		}
		answered++

		if !likeSpellings[answer.Value] {
			continue
		}
		if _, known := categories[q.Category]; known {
			categories[q.Category]++
		}
	}

	return &InterestInventoryResult{
		Categories:        categories,
		TotalQuestions:    len(questions),
		AnsweredQuestions: answered,
	}
}
