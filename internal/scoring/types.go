package scoring

import (
	"encoding/json"
	"fmt"
)

// TestType identifies one test in the assessment battery. The string values
// are stored verbatim in test_responses.test_type and must not change.
type TestType string

const (
	TestGATBPart1         TestType = "gatb-part-1"
	TestGATBPart2         TestType = "gatb-part-2"
	TestGATBPart3         TestType = "gatb-part-3"
	TestGATBPart4         TestType = "gatb-part-4"
	TestGATBPart5         TestType = "gatb-part-5"
	TestGATBPart6         TestType = "gatb-part-6"
	TestGATBPart7         TestType = "gatb-part-7"
	TestWorkValues        TestType = "work-values"
	TestInterestInventory TestType = "interest-inventory"
	TestBehaviorResponse  TestType = "behavior-response"
	TestFiroB             TestType = "firo-b"
	TestPersonalityAspect TestType = "personality-aspect"
)

// AllTestTypes lists every test type in the catalog, scored or not.
var AllTestTypes = []TestType{
	TestGATBPart1, TestGATBPart2, TestGATBPart3, TestGATBPart4,
	TestGATBPart5, TestGATBPart6, TestGATBPart7,
	TestWorkValues, TestInterestInventory, TestBehaviorResponse,
	TestFiroB, TestPersonalityAspect,
}

// Valid reports whether t is a known catalog test type.
func (t TestType) Valid() bool {
	for _, known := range AllTestTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Question is a normalized answer-key entry. The loader maps the raw
// CSV-export rows into this shape so the graders never see per-part
// column names.
type Question struct {
	ID       string
	Number   string
	Text     string
	Category string // Interest Inventory only
	Options  []Option
}

// Option is one selectable choice with its correctness/attribute metadata.
type Option struct {
	Label      string
	Text       string
	Status     string   // Behaviour Response trait code, or "None"
	Correct    bool     // GATB parts only
	Attributes []string // Work Values only
}

// Answer is a single submitted answer: a plain string for most tests, or a
// pair of strings for GATB part 4.
type Answer struct {
	Value  string
	Values []string
	Multi  bool
}

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (a *Answer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Value = s
		a.Values = nil
		a.Multi = false
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		a.Values = list
		a.Value = ""
		a.Multi = true
		return nil
	}

	return fmt.Errorf("answer must be a string or an array of strings: %s", data)
}

// MarshalJSON renders the answer back in its submitted shape.
func (a Answer) MarshalJSON() ([]byte, error) {
	if a.Multi {
		if a.Values == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(a.Values)
	}
	return json.Marshal(a.Value)
}

// Empty reports whether the answer carries no usable content.
func (a Answer) Empty() bool {
	if a.Multi {
		return len(a.Values) == 0
	}
	return a.Value == ""
}

// Responses maps question identifiers to submitted answers.
type Responses map[string]Answer

// Detail records the per-question outcome of a GATB grading pass.
// UserAnswer and CorrectAnswer are strings for the single-answer parts and
// string slices for part 4.
type Detail struct {
	QuestionID     string `json:"questionId"`
	QuestionNumber string `json:"questionNumber"`
	UserAnswer     any    `json:"userAnswer"`
	CorrectAnswer  any    `json:"correctAnswer"`
	IsCorrect      bool   `json:"isCorrect"`
}

// GATBResult is the aggregate score for GATB parts 1-6.
type GATBResult struct {
	TotalQuestions   int      `json:"totalQuestions"`
	CorrectAnswers   int      `json:"correctAnswers"`
	IncorrectAnswers int      `json:"incorrectAnswers"`
	Score            int      `json:"score"`
	Percentage       int      `json:"percentage"`
	Details          []Detail `json:"details"`
}

// WorkValuesResult tallies the 15 work-value attributes. Every attribute is
// always present in the map, floored at 0.
type WorkValuesResult struct {
	Attributes        map[string]int `json:"attributes"`
	TotalQuestions    int            `json:"totalQuestions"`
	AnsweredQuestions int            `json:"answeredQuestions"`
}

// InterestInventoryResult tallies "Like" answers per category. All 5
// categories are always present, floored at 0.
type InterestInventoryResult struct {
	Categories        map[string]int `json:"categories"`
	TotalQuestions    int            `json:"totalQuestions"`
	AnsweredQuestions int            `json:"answeredQuestions"`
}

// BehaviourResponseResult tallies trait-status codes. All 5 traits are
// always present, floored at 0.
type BehaviourResponseResult struct {
	TotalQuestions    int            `json:"totalQuestions"`
	AnsweredQuestions int            `json:"answeredQuestions"`
	Scores            map[string]int `json:"scores"`
}

// Part7Record is what gets stored for a GATB part 7 submission. The part has
// no grader: the client's match count is recorded without validation against
// any ground truth.
type Part7Record struct {
	TotalQuestions int `json:"totalQuestions"`
	Matched        int `json:"matched"`
	Part           int `json:"part"`
}

// WorkValueAttributes are the 15 named work-value dimensions, in the order
// they appear in the source CSV export.
var WorkValueAttributes = []string{
	"Intellectual Stimulation",
	"Altruism",
	"Economic Returns",
	"Variety",
	"Independence",
	"Prestige",
	"Aesthetic",
	"Associates",
	"Security",
	"Way of Life",
	"Supervisory Relations",
	"Surrounding",
	"Achievement",
	"Management",
	"Creativity",
}

// InterestCategories are the 5 interest-inventory domains.
var InterestCategories = []string{"medical", "technology", "commerce", "arts", "fine-arts"}

// BehaviourTraits are the 5 behaviour-response trait codes.
var BehaviourTraits = []string{"Aa", "Ao", "Sc", "Inq", "DI"}
