package scoring

import (
	"encoding/json"
	"errors"
	"testing"
)

func unmarshalJSON(data string, v any) error {
	return json.Unmarshal([]byte(data), v)
}

func TestEngine_Dispatch(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "gatb-part-1-questions.json", `[
		{"Item ID": "q1", "Question No": "1", "Same": "correct", "Different": ""}
	]`)
	writeDataset(t, dir, "work-values-questions.json", `[
		{"questionNumber": "1", "itemId": "wv-q1", "options": [
			{"label": "a", "text": "x", "attributes": ["Security"]},
			{"label": "b", "text": "y", "attributes": ["Variety"]}
		]}
	]`)

	engine := NewEngine(NewLoader(dir))

	score, err := engine.Grade(TestGATBPart1, Responses{"q1": {Value: "Same"}})
	if err != nil {
		t.Fatalf("Grade gatb-part-1: %v", err)
	}
	gatb, ok := score.(*GATBResult)
	if !ok {
		t.Fatalf("score type = %T, want *GATBResult", score)
	}
	if gatb.Percentage != 100 {
		t.Errorf("percentage = %d, want 100", gatb.Percentage)
	}

	score, err = engine.Grade(TestWorkValues, Responses{"wv-q1": {Value: "a"}})
	if err != nil {
		t.Fatalf("Grade work-values: %v", err)
	}
	wv, ok := score.(*WorkValuesResult)
	if !ok {
		t.Fatalf("score type = %T, want *WorkValuesResult", score)
	}
	if wv.Attributes["Security"] != 1 {
		t.Errorf("Security = %d, want 1", wv.Attributes["Security"])
	}
}

func TestEngine_UnscoredTypes(t *testing.T) {
	engine := NewEngine(NewLoader(t.TempDir()))

	for _, tt := range []TestType{TestFiroB, TestGATBPart7, TestPersonalityAspect} {
		if _, err := engine.Grade(tt, nil); !errors.Is(err, ErrUnsupportedTestType) {
			t.Errorf("Grade(%s) err = %v, want ErrUnsupportedTestType", tt, err)
		}
	}
}

func TestEngine_LoaderFailurePropagates(t *testing.T) {
	engine := NewEngine(NewLoader(t.TempDir()))

	if _, err := engine.Grade(TestBehaviorResponse, nil); !errors.Is(err, ErrDataNotFound) {
		t.Errorf("err = %v, want ErrDataNotFound", err)
	}
}

func TestScored(t *testing.T) {
	scored := []TestType{
		TestGATBPart1, TestGATBPart2, TestGATBPart3, TestGATBPart4,
		TestGATBPart5, TestGATBPart6,
		TestWorkValues, TestInterestInventory, TestBehaviorResponse,
	}
	for _, tt := range scored {
		if !Scored(tt) {
			t.Errorf("Scored(%s) = false, want true", tt)
		}
	}
	for _, tt := range []TestType{TestGATBPart7, TestFiroB, TestPersonalityAspect} {
		if Scored(tt) {
			t.Errorf("Scored(%s) = true, want false", tt)
		}
	}
}

func TestAnswerUnmarshal(t *testing.T) {
	var responses Responses
	err := unmarshalJSON(`{"q1": "Same", "q2": ["a", "c"]}`, &responses)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if responses["q1"].Value != "Same" || responses["q1"].Multi {
		t.Errorf("q1 = %+v, want plain string answer", responses["q1"])
	}
	if !responses["q2"].Multi || len(responses["q2"].Values) != 2 {
		t.Errorf("q2 = %+v, want 2-element multi answer", responses["q2"])
	}

	if err := unmarshalJSON(`{"q1": 42}`, &responses); err == nil {
		t.Error("numeric answer accepted")
	}
}
