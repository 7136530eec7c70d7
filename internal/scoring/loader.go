package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors surfaced to the submission layer. Loader failures abort the
// grading call; they are never silently defaulted.
var (
	ErrDataNotFound        = errors.New("answer-key dataset not found")
	ErrMalformedData       = errors.New("answer-key dataset is malformed")
	ErrUnsupportedTestType = errors.New("no grader for test type")
)

// datasetFiles maps each test type to its answer-key JSON file. The file
// names come from the upstream CSV exports; note the British spelling in the
// behaviour-response file against the American spelling of the test type.
var datasetFiles = map[TestType]string{
	TestGATBPart1:         "gatb-part-1-questions.json",
	TestGATBPart2:         "gatb-part-2-questions.json",
	TestGATBPart3:         "gatb-part-3-questions.json",
	TestGATBPart4:         "gatb-part-4-questions.json",
	TestGATBPart5:         "gatb-part-5-questions.json",
	TestGATBPart6:         "gatb-part-6-questions.json",
	TestGATBPart7:         "gatb-part-7-questions.json",
	TestWorkValues:        "work-values-questions.json",
	TestInterestInventory: "interest-inventory-questions.json",
	TestBehaviorResponse:  "behaviour-response-questions.json",
	TestFiroB:             "firo-b-questions.json",
}

// Loader reads per-test-type answer-key datasets from a data directory.
// Datasets are read fresh on every call; the loader holds no cache and no
// mutable state.
type Loader struct {
	dir string
}

// NewLoader creates a Loader rooted at dir.
func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

// RawFile returns the verbatim dataset bytes for a test type. Used for test
// types whose question sets are served to clients without normalization.
func (l *Loader) RawFile(t TestType) ([]byte, error) {
	name, ok := datasetFiles[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDataNotFound, t)
	}
	raw, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDataNotFound, name)
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return raw, nil
}

// Load returns the ordered question list for a test type with embedded
// correctness/attribute metadata.
func (l *Loader) Load(t TestType) ([]Question, error) {
	raw, err := l.RawFile(t)
	if err != nil {
		return nil, err
	}

	switch t {
	case TestGATBPart1, TestGATBPart2, TestGATBPart3, TestGATBPart4, TestGATBPart5, TestGATBPart6:
		return parseGATB(t, raw)
	case TestWorkValues:
		return parseWorkValues(raw)
	case TestInterestInventory:
		return parseInterestInventory(raw)
	case TestBehaviorResponse:
		return parseOptionStatus(raw, "br-q")
	case TestFiroB:
		return parseOptionStatus(raw, "firob-q")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedTestType, t)
	}
}

// ─── GATB parts 1-6 ─────────────────────────────────────────────────

// gatbPart captures the per-part quirks of the CSV exports: the question
// number column, the correct-marker casing, and the option label set.
type gatbPart struct {
	numberField string
	correctMark string
	labels      []string
}

var gatbParts = map[TestType]gatbPart{
	// Part 1 is the only export without a dot in the number column, and its
	// options live in dedicated "Same"/"Different" columns.
	TestGATBPart1: {numberField: "Question No", correctMark: "correct", labels: []string{"Same", "Different"}},
	TestGATBPart2: {numberField: "Question No.", correctMark: "correct", labels: []string{"A", "B", "C", "D", "E"}},
	TestGATBPart3: {numberField: "Question No.", correctMark: "correct", labels: []string{"A", "B", "C", "D"}},
	// Part 4 labels are lowercase in the stored response data.
	TestGATBPart4: {numberField: "Question No.", correctMark: "correct", labels: []string{"a", "b", "c", "d"}},
	TestGATBPart5: {numberField: "Question No.", correctMark: "correct", labels: []string{"A", "B", "C", "D"}},
	// Part 6 is the only export with a capitalized marker.
	TestGATBPart6: {numberField: "Question No.", correctMark: "Correct", labels: []string{"A", "B", "C", "D", "E"}},
}

func parseGATB(t TestType, raw []byte) ([]Question, error) {
	var rows []map[string]string
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedData, t, err)
	}

	part := gatbParts[t]
	questions := make([]Question, 0, len(rows))

	for _, row := range rows {
		number := strings.TrimSpace(row[part.numberField])
		id := row["Item ID"]
		if id == "" {
			// Legacy stored responses were keyed either way.
			id = "q" + number
		}

		q := Question{ID: id, Number: number}
		for _, label := range part.labels {
			opt := Option{Label: label}
			if t == TestGATBPart1 {
				// "Same"/"Different" columns hold the marker directly.
				opt.Correct = row[label] == part.correctMark
			} else {
				col := "Option " + strings.ToUpper(label)
				opt.Text = row[col]
				opt.Correct = row[col+" Status"] == part.correctMark
			}
			// Part 2 is graded by full option text and its fifth option is
			// always the literal sentinel.
			if t == TestGATBPart2 && label == "E" {
				opt.Text = "none of these"
			}
			q.Options = append(q.Options, opt)
		}
		questions = append(questions, q)
	}

	return questions, nil
}

// ─── Work Values ────────────────────────────────────────────────────

type rawWorkValuesQuestion struct {
	QuestionNumber flexString           `json:"questionNumber"`
	ItemID         string               `json:"itemId"`
	QuestionText   string               `json:"questionText"`
	Options        []rawWorkValuesOption `json:"options"`
}

type rawWorkValuesOption struct {
	Label      string   `json:"label"`
	Text       string   `json:"text"`
	Status     string   `json:"status"`
	Attributes []string `json:"attributes"`
}

func parseWorkValues(raw []byte) ([]Question, error) {
	var rows []rawWorkValuesQuestion
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%w: work-values: %v", ErrMalformedData, err)
	}

	questions := make([]Question, 0, len(rows))
	for _, row := range rows {
		q := Question{ID: row.ItemID, Number: string(row.QuestionNumber), Text: row.QuestionText}
		if q.ID == "" {
			q.ID = "wv-q" + q.Number
		}
		for _, opt := range row.Options {
			q.Options = append(q.Options, Option{
				Label:      opt.Label,
				Text:       opt.Text,
				Status:     opt.Status,
				Attributes: opt.Attributes,
			})
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// ─── Interest Inventory ─────────────────────────────────────────────

type rawInterestQuestion struct {
	ID             string     `json:"id"`
	QuestionNumber flexString `json:"questionNumber"`
	QuestionText   string     `json:"questionText"`
	Category       string     `json:"category"`
}

func parseInterestInventory(raw []byte) ([]Question, error) {
	var rows []rawInterestQuestion
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%w: interest-inventory: %v", ErrMalformedData, err)
	}

	questions := make([]Question, 0, len(rows))
	for _, row := range rows {
		q := Question{
			ID:       row.ID,
			Number:   string(row.QuestionNumber),
			Text:     row.QuestionText,
			Category: row.Category,
		}
		if q.ID == "" {
			q.ID = "q" + q.Number
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// ─── Behaviour Response / FIRO-B ────────────────────────────────────

type rawStatusQuestion struct {
	ID             string            `json:"id"`
	QuestionNumber flexString        `json:"questionNumber"`
	QuestionText   string            `json:"questionText"`
	Options        []rawStatusOption `json:"options"`
}

type rawStatusOption struct {
	Text   string `json:"text"`
	Status string `json:"status"`
}

func parseOptionStatus(raw []byte, idPrefix string) ([]Question, error) {
	var rows []rawStatusQuestion
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedData, err)
	}

	questions := make([]Question, 0, len(rows))
	for _, row := range rows {
		q := Question{ID: row.ID, Number: string(row.QuestionNumber), Text: row.QuestionText}
		if q.ID == "" {
			q.ID = idPrefix + q.Number
		}
		for _, opt := range row.Options {
			q.Options = append(q.Options, Option{Text: opt.Text, Status: opt.Status})
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// flexString tolerates datasets that store question numbers either as JSON
// strings or as numbers.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
