package model

import (
	"time"

	"github.com/lakshaya-counselling/assessment-backend/internal/scoring"
)

// TestStatus enumerates the per-test completion states stored on a user.
const (
	TestStatusPending   = "Pending"
	TestStatusCompleted = "Completed"
)

// User is a candidate account.
type User struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	FirstName     string    `json:"first_name,omitempty"`
	LastName      string    `json:"last_name,omitempty"`
	PhoneNo       string    `json:"phone_no,omitempty"`
	Education     string    `json:"education,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	TestCompleted bool      `json:"test_completed"`
	Access        TestAccess   `json:"access"`
	Statuses      TestStatuses `json:"statuses"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TestAccess carries the per-battery enable flags an admin assigns to a
// candidate. The JSON keys match the assignment identifiers used by the
// admin UI; general-aptitude covers all seven GATB parts.
type TestAccess struct {
	FiroB             bool `json:"firo-b"`
	WorkValues        bool `json:"work-values"`
	GeneralAptitude   bool `json:"general-aptitude"`
	InterestInventory bool `json:"interest-inventory"`
	PersonalityAspect bool `json:"personality-aspect"`
	BehaviorResponse  bool `json:"behavior-response"`
}

// Allows reports whether the access flags cover the given test type.
func (a TestAccess) Allows(t scoring.TestType) bool {
	switch t {
	case scoring.TestFiroB:
		return a.FiroB
	case scoring.TestWorkValues:
		return a.WorkValues
	case scoring.TestInterestInventory:
		return a.InterestInventory
	case scoring.TestPersonalityAspect:
		return a.PersonalityAspect
	case scoring.TestBehaviorResponse:
		return a.BehaviorResponse
	case scoring.TestGATBPart1, scoring.TestGATBPart2, scoring.TestGATBPart3,
		scoring.TestGATBPart4, scoring.TestGATBPart5, scoring.TestGATBPart6,
		scoring.TestGATBPart7:
		return a.GeneralAptitude
	}
	return false
}

// TestStatuses maps test types to their Pending/Completed status.
type TestStatuses map[scoring.TestType]string

// statusColumns maps each test type to the users table column tracking its
// completion. Only values from this map may be interpolated into SQL.
var statusColumns = map[scoring.TestType]string{
	scoring.TestGATBPart1:         "general_aptitude_status",
	scoring.TestGATBPart2:         "gatb_part_2_status",
	scoring.TestGATBPart3:         "gatb_part_3_status",
	scoring.TestGATBPart4:         "gatb_part_4_status",
	scoring.TestGATBPart5:         "gatb_part_5_status",
	scoring.TestGATBPart6:         "gatb_part_6_status",
	scoring.TestGATBPart7:         "gatb_part_7_status",
	scoring.TestWorkValues:        "work_values_status",
	scoring.TestFiroB:             "firo_b_status",
	scoring.TestInterestInventory: "interest_inventory_status",
	scoring.TestPersonalityAspect: "personality_aspect_status",
	scoring.TestBehaviorResponse:  "behavior_response_status",
}

// StatusColumn returns the users table column for a test type's status.
func StatusColumn(t scoring.TestType) (string, bool) {
	col, ok := statusColumns[t]
	return col, ok
}

// RegisterRequest is the payload for candidate self-registration.
type RegisterRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=256"`
	Email     string `json:"email" binding:"required,email,max=256"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	FirstName string `json:"first_name" binding:"omitempty,max=256"`
	LastName  string `json:"last_name" binding:"omitempty,max=256"`
	PhoneNo   string `json:"phone_no" binding:"omitempty,max=20"`
	Education string `json:"education" binding:"omitempty,max=50"`
}

// LoginRequest is the payload for candidate login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is the payload for profile updates.
type UpdateProfileRequest struct {
	Name      string `json:"name" binding:"omitempty,min=2,max=256"`
	FirstName string `json:"first_name" binding:"omitempty,max=256"`
	LastName  string `json:"last_name" binding:"omitempty,max=256"`
	PhoneNo   string `json:"phone_no" binding:"omitempty,max=20"`
	Education string `json:"education" binding:"omitempty,max=50"`
}

// AssignTestsRequest toggles battery access for a candidate. Keys are the
// assignment identifiers from TestAccess; unknown keys are ignored.
type AssignTestsRequest struct {
	Tests map[string]bool `json:"tests" binding:"required"`
}
