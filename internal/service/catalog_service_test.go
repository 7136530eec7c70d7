package service

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lakshaya-counselling/assessment-backend/internal/scoring"
	"github.com/rs/zerolog"
)

func writeDataset(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
}

func newTestCatalog(dir string) *CatalogService {
	return NewCatalogService(scoring.NewLoader(dir), nil, zerolog.Nop())
}

func TestCatalog_StripsAnswerKeys(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "gatb-part-3-questions.json", `[
		{"Item ID": "g3-q1", "Question No.": "1",
		 "Option A": "Shape 1", "Option A Status": "",
		 "Option B": "Shape 2", "Option B Status": "correct",
		 "Option C": "Shape 3", "Option C Status": "",
		 "Option D": "Shape 4", "Option D Status": ""}
	]`)

	payload, err := newTestCatalog(dir).buildPayload(scoring.TestGATBPart3)
	if err != nil {
		t.Fatalf("buildPayload: %v", err)
	}

	out := string(payload)
	if !strings.Contains(out, `"id":"g3-q1"`) {
		t.Error("payload missing question id")
	}
	if !strings.Contains(out, "Shape 2") {
		t.Error("payload missing option text")
	}
	for _, leak := range []string{"correct", "Status", "attributes", "category"} {
		if strings.Contains(out, leak) {
			t.Errorf("payload leaks %q: %s", leak, out)
		}
	}
}

func TestCatalog_StripsWorkValueAttributes(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, dir, "work-values-questions.json", `[
		{"itemId": "wv-q1", "questionNumber": 1, "questionText": "Pick one.",
		 "options": [
			{"label": "a", "text": "Helping people", "attributes": ["Altruism"]},
			{"label": "b", "text": "High pay", "attributes": ["Economic Returns"]}
		 ]}
	]`)

	payload, err := newTestCatalog(dir).buildPayload(scoring.TestWorkValues)
	if err != nil {
		t.Fatalf("buildPayload: %v", err)
	}

	out := string(payload)
	if strings.Contains(out, "Altruism") || strings.Contains(out, "attributes") {
		t.Errorf("payload leaks work-value attributes: %s", out)
	}
	if !strings.Contains(out, `"questionNumber":"1"`) {
		t.Errorf("payload missing question number: %s", out)
	}
	if !strings.Contains(out, "Pick one.") {
		t.Errorf("payload missing question text: %s", out)
	}
}

func TestCatalog_Part7Verbatim(t *testing.T) {
	dir := t.TempDir()
	raw := `[{"shape": "triangle", "targets": ["a", "b"]}]`
	writeDataset(t, dir, "gatb-part-7-questions.json", raw)

	payload, err := newTestCatalog(dir).buildPayload(scoring.TestGATBPart7)
	if err != nil {
		t.Fatalf("buildPayload: %v", err)
	}
	if string(payload) != raw {
		t.Errorf("part 7 payload = %s, want file contents verbatim", payload)
	}
}

func TestCatalog_MissingDataset(t *testing.T) {
	_, err := newTestCatalog(t.TempDir()).buildPayload(scoring.TestFiroB)
	if !errors.Is(err, scoring.ErrDataNotFound) {
		t.Fatalf("err = %v, want ErrDataNotFound", err)
	}
}
