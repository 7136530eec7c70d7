package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lakshaya-counselling/assessment-backend/internal/scoring"
)

// TestResponse is a stored submission: the raw responses verbatim plus the
// score object the grading engine produced (null for unscored test types).
type TestResponse struct {
	ID          uuid.UUID        `json:"id"`
	UserID      int              `json:"user_id"`
	UserName    string           `json:"user_name,omitempty"`
	UserEmail   string           `json:"user_email,omitempty"`
	TestType    scoring.TestType `json:"test_type"`
	Responses   json.RawMessage  `json:"responses"`
	Score       json.RawMessage  `json:"score"`
	CompletedAt time.Time        `json:"completed_at"`
}

// SubmitTestRequest is the submission payload. Responses carries the answer
// map for every test type except GATB part 7, which submits its shape-match
// list as Matches instead.
type SubmitTestRequest struct {
	TestType  string            `json:"testType" binding:"required,testtype"`
	Responses scoring.Responses `json:"responses" binding:"omitempty"`
	Matches   []string          `json:"matches" binding:"omitempty"`
	Part      int               `json:"part" binding:"omitempty"`
}
