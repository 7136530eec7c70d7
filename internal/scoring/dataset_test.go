package scoring

import (
	"errors"
	"testing"
)

// These tests run against the shipped data/ directory so a bad fixture fails
// here rather than in production.

const shippedDataDir = "../../data"

func TestShippedDatasets_AllLoad(t *testing.T) {
	loader := NewLoader(shippedDataDir)
	for _, tt := range AllTestTypes {
		questions, err := loader.Load(tt)
		if err != nil {
			// The personality battery has no dataset file.
			if errors.Is(err, ErrDataNotFound) || errors.Is(err, ErrUnsupportedTestType) {
				continue
			}
			t.Errorf("%s: Load: %v", tt, err)
			continue
		}
		if len(questions) == 0 {
			t.Errorf("%s: dataset is empty", tt)
		}
	}
}

func TestShippedDataset_WorkValuesPairs(t *testing.T) {
	questions, err := NewLoader(shippedDataDir).Load(TestWorkValues)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	known := make(map[string]bool, len(WorkValueAttributes))
	for _, attr := range WorkValueAttributes {
		known[attr] = true
	}

	for _, q := range questions {
		if len(q.Options) != 2 {
			t.Errorf("%s: %d options, want a forced-choice pair", q.ID, len(q.Options))
			continue
		}
		if q.Options[0].Label != "a" || q.Options[1].Label != "b" {
			t.Errorf("%s: labels %q/%q, want a/b", q.ID, q.Options[0].Label, q.Options[1].Label)
		}
		for _, opt := range q.Options {
			if len(opt.Attributes) == 0 {
				t.Errorf("%s option %s: no attributes", q.ID, opt.Label)
			}
			for _, attr := range opt.Attributes {
				if !known[attr] {
					t.Errorf("%s option %s: unknown attribute %q", q.ID, opt.Label, attr)
				}
			}
		}
	}
}

func TestShippedDataset_WorkValuesScoring(t *testing.T) {
	questions, err := NewLoader(shippedDataDir).Load(TestWorkValues)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Every answer must land in at least one attribute tally.
	for _, q := range questions {
		for _, label := range []string{"a", "b"} {
			result := ScoreWorkValues(questions, Responses{q.ID: {Value: label}})
			if result.AnsweredQuestions != 1 {
				t.Errorf("%s=%s: answered = %d, want 1", q.ID, label, result.AnsweredQuestions)
			}
			total := 0
			for _, n := range result.Attributes {
				total += n
			}
			if total == 0 {
				t.Errorf("%s=%s: incremented no attribute", q.ID, label)
			}
		}
	}
}
