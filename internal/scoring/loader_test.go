package scoring

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeDataset(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
}

func TestLoader_GATBPart1(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "gatb-part-1-questions.json", `[
		{"Item ID": "g1-q1", "Question No": "1 ", "Same": "correct", "Different": ""},
		{"Question No": "2", "Same": "", "Different": "correct"}
	]`)

	questions, err := NewLoader(dir).Load(TestGATBPart1)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("len = %d, want 2", len(questions))
	}

	if questions[0].ID != "g1-q1" || questions[0].Number != "1" {
		t.Errorf("q1 = %q/%q, want g1-q1/1", questions[0].ID, questions[0].Number)
	}
	if !questions[0].Options[0].Correct || questions[0].Options[0].Label != "Same" {
		t.Errorf("q1 correct option = %+v, want Same", questions[0].Options[0])
	}

	// Missing Item ID synthesizes q<number>.
	if questions[1].ID != "q2" {
		t.Errorf("q2 id = %q, want synthesized q2", questions[1].ID)
	}
	if !questions[1].Options[1].Correct {
		t.Error("q2 Different option not marked correct")
	}
}

func TestLoader_GATBPart2Sentinel(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "gatb-part-2-questions.json", `[
		{"Item ID": "g2-q1", "Question No.": "1",
		 "Option A": "14 men", "Option A Status": "",
		 "Option B": "15 men", "Option B Status": "correct",
		 "Option C": "16 men", "Option C Status": "",
		 "Option D": "17 men", "Option D Status": "",
		 "Option E": "", "Option E Status": ""},
		{"Item ID": "g2-q2", "Question No.": "2",
		 "Option A": "3 km", "Option A Status": "",
		 "Option B": "4 km", "Option B Status": "",
		 "Option C": "5 km", "Option C Status": "",
		 "Option D": "6 km", "Option D Status": "",
		 "Option E": "", "Option E Status": "correct"}
	]`)

	questions, err := NewLoader(dir).Load(TestGATBPart2)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	result, err := GradeGATB(TestGATBPart2, questions, Responses{
		"g2-q1": {Value: "15 men"},
		"g2-q2": {Value: "none of these"},
	})
	if err != nil {
		t.Fatalf("GradeGATB: %v", err)
	}
	if result.CorrectAnswers != 2 {
		t.Errorf("correctAnswers = %d, want 2 (E option must grade as the sentinel)", result.CorrectAnswers)
	}
}

func TestLoader_GATBPart4LowercaseLabels(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "gatb-part-4-questions.json", `[
		{"Item ID": "g4-q1", "Question No.": "1",
		 "Option A Status": "correct", "Option B Status": "",
		 "Option C Status": "correct", "Option D Status": ""}
	]`)

	questions, err := NewLoader(dir).Load(TestGATBPart4)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	var correct []string
	for _, opt := range questions[0].Options {
		if opt.Correct {
			correct = append(correct, opt.Label)
		}
	}
	if len(correct) != 2 || correct[0] != "a" || correct[1] != "c" {
		t.Errorf("correct labels = %v, want [a c]", correct)
	}
}

func TestLoader_GATBPart6CapitalizedMarker(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "gatb-part-6-questions.json", `[
		{"Item ID": "g6-q1", "Question No.": "1",
		 "Option A Status": "correct", "Option E Status": "Correct"}
	]`)

	questions, err := NewLoader(dir).Load(TestGATBPart6)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Part 6 exports capitalize the marker; the lowercase value on option A
	// must not count.
	if questions[0].Options[0].Correct {
		t.Error("lowercase marker accepted for part 6")
	}
	if !questions[0].Options[4].Correct {
		t.Error("capitalized marker rejected for part 6")
	}
}

func TestLoader_WorkValues(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "work-values-questions.json", `[
		{"questionNumber": "1", "itemId": "wv-q1", "options": [
			{"label": "a", "text": "a stable job", "attributes": ["Security"]},
			{"label": "b", "text": "a changing job", "attributes": ["Variety", "Creativity"]}
		]}
	]`)

	questions, err := NewLoader(dir).Load(TestWorkValues)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if questions[0].ID != "wv-q1" {
		t.Errorf("id = %q, want wv-q1", questions[0].ID)
	}
	if got := questions[0].Options[1].Attributes; len(got) != 2 || got[0] != "Variety" {
		t.Errorf("attributes = %v, want [Variety Creativity]", got)
	}
}

func TestLoader_InterestInventoryNumericNumbers(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "interest-inventory-questions.json", `[
		{"id": "ii-q1", "questionNumber": 1, "category": "medical"},
		{"questionNumber": "2", "category": "arts"}
	]`)

	questions, err := NewLoader(dir).Load(TestInterestInventory)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if questions[0].Number != "1" {
		t.Errorf("numeric questionNumber = %q, want 1", questions[0].Number)
	}
	if questions[1].ID != "q2" {
		t.Errorf("id = %q, want synthesized q2", questions[1].ID)
	}
}

func TestLoader_BehaviourResponse(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "behaviour-response-questions.json", `[
		{"questionNumber": 3, "questionText": "Pick one", "options": [
			{"text": "I ask questions", "status": "Inq"},
			{"text": "I wait", "status": "None"}
		]}
	]`)

	questions, err := NewLoader(dir).Load(TestBehaviorResponse)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if questions[0].ID != "br-q3" {
		t.Errorf("id = %q, want synthesized br-q3", questions[0].ID)
	}
	if questions[0].Options[0].Status != "Inq" {
		t.Errorf("status = %q, want Inq", questions[0].Options[0].Status)
	}
}

func TestLoader_MissingDataset(t *testing.T) {
	_, err := NewLoader(t.TempDir()).Load(TestGATBPart1)
	if !errors.Is(err, ErrDataNotFound) {
		t.Errorf("err = %v, want ErrDataNotFound", err)
	}
}

func TestLoader_MalformedDataset(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "gatb-part-3-questions.json", `{"not": "an array"`)

	_, err := NewLoader(dir).Load(TestGATBPart3)
	if !errors.Is(err, ErrMalformedData) {
		t.Errorf("err = %v, want ErrMalformedData", err)
	}
}
