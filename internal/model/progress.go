package model

import (
	"encoding/json"
	"time"

	"github.com/lakshaya-counselling/assessment-backend/internal/scoring"
)

// TestProgress is an autosave snapshot of a candidate's in-flight answers
// for one test type. One row per (user, test type), last write wins.
type TestProgress struct {
	UserID    int              `json:"user_id"`
	TestType  scoring.TestType `json:"test_type"`
	Responses json.RawMessage  `json:"responses"`
	UpdatedAt time.Time        `json:"updated_at"`
}
