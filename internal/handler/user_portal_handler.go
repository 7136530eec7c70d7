package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lakshaya-counselling/assessment-backend/internal/middleware"
	"github.com/lakshaya-counselling/assessment-backend/internal/model"
	"github.com/lakshaya-counselling/assessment-backend/internal/repository"
	"github.com/lakshaya-counselling/assessment-backend/internal/response"
	"github.com/lakshaya-counselling/assessment-backend/internal/scoring"
	"github.com/lakshaya-counselling/assessment-backend/internal/service"
	"github.com/lakshaya-counselling/assessment-backend/internal/validator"
)

// UserPortalHandler serves the candidate-facing test endpoints.
type UserPortalHandler struct {
	userService       *service.UserService
	catalogService    *service.CatalogService
	submissionService *service.SubmissionService
}

// NewUserPortalHandler creates a new UserPortalHandler.
func NewUserPortalHandler(
	userService *service.UserService,
	catalogService *service.CatalogService,
	submissionService *service.SubmissionService,
) *UserPortalHandler {
	return &UserPortalHandler{
		userService:       userService,
		catalogService:    catalogService,
		submissionService: submissionService,
	}
}

// testListEntry is one row in the candidate's test list.
type testListEntry struct {
	TestType scoring.TestType `json:"testType"`
	Status   string           `json:"status"`
}

// ListTests godoc
// GET /api/v1/user/tests
// Returns the test types assigned to the candidate with their statuses.
func (h *UserPortalHandler) ListTests(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	tests := []testListEntry{}
	for _, t := range scoring.AllTestTypes {
		if !user.Access.Allows(t) {
			continue
		}
		status := user.Statuses[t]
		if status == "" {
			status = model.TestStatusPending
		}
		tests = append(tests, testListEntry{TestType: t, Status: status})
	}

	response.Success(c, http.StatusOK, gin.H{"tests": tests})
}

// GetQuestions godoc
// GET /api/v1/user/tests/:testType/questions
// Returns the sanitized question payload for an assigned test.
func (h *UserPortalHandler) GetQuestions(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	t := scoring.TestType(c.Param("testType"))
	if !t.Valid() {
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownTestType)
		return
	}
	if !user.Access.Allows(t) {
		response.Fail(c, http.StatusForbidden, response.ErrTestNotAssigned)
		return
	}

	payload, err := h.catalogService.GetQuestions(c.Request.Context(), t)
	if err != nil {
		if errors.Is(err, scoring.ErrDataNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrAnswerKeyMissing)
			return
		}
		if errors.Is(err, scoring.ErrMalformedData) {
			response.Fail(c, http.StatusInternalServerError, response.ErrAnswerKeyMalformed)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Data(http.StatusOK, "application/json", payload)
}

// Submit godoc
// POST /api/v1/user/tests/submit
// Grades a submission and returns the score. Persistence happens
// asynchronously.
func (h *UserPortalHandler) Submit(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req model.SubmitTestRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.submissionService.Submit(c.Request.Context(), user, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownTestType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnknownTestType)
		case errors.Is(err, service.ErrTestNotAssigned):
			response.Fail(c, http.StatusForbidden, response.ErrTestNotAssigned)
		case errors.Is(err, service.ErrTestAlreadyDone):
			response.Fail(c, http.StatusConflict, response.ErrTestAlreadyComplete)
		case errors.Is(err, service.ErrResponsesRequired):
			response.Fail(c, http.StatusBadRequest, response.ErrResponsesRequired)
		case errors.Is(err, scoring.ErrDataNotFound):
			response.Fail(c, http.StatusNotFound, response.ErrAnswerKeyMissing)
		case errors.Is(err, scoring.ErrMalformedData):
			response.Fail(c, http.StatusInternalServerError, response.ErrAnswerKeyMalformed)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.Success(c, http.StatusOK, result)
}

// SaveProgress godoc
// PUT /api/v1/user/tests/:testType/progress
// Buffers an autosave snapshot. The WebSocket stream is the primary autosave
// path; this is the HTTP fallback.
func (h *UserPortalHandler) SaveProgress(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	t := scoring.TestType(c.Param("testType"))
	if !t.Valid() {
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownTestType)
		return
	}

	var req struct {
		Responses scoring.Responses `json:"responses" binding:"required"`
	}
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.submissionService.SaveProgress(c.Request.Context(), claims.UserID, t, req.Responses); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// GetProgress godoc
// GET /api/v1/user/tests/:testType/progress
// Returns the last autosaved snapshot for a test, if any.
func (h *UserPortalHandler) GetProgress(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	t := scoring.TestType(c.Param("testType"))
	if !t.Valid() {
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownTestType)
		return
	}

	snapshot, err := h.submissionService.GetProgress(c.Request.Context(), user, t)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Success(c, http.StatusOK, gin.H{"responses": nil})
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Data(http.StatusOK, "application/json", snapshot)
}

// ListResults godoc
// GET /api/v1/user/results
// Returns the candidate's stored submissions with scores.
func (h *UserPortalHandler) ListResults(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	results, err := h.submissionService.ListResults(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"results": results})
}

// GetResult godoc
// GET /api/v1/user/results/:id
// Returns one of the candidate's own submissions.
func (h *UserPortalHandler) GetResult(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.submissionService.GetResult(c.Request.Context(), id)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}
	if result.UserID != claims.UserID {
		response.Fail(c, http.StatusForbidden, response.ErrForbidden)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// currentUser loads the authenticated candidate, failing the request when the
// account no longer exists.
func (h *UserPortalHandler) currentUser(c *gin.Context) (*model.User, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return nil, false
	}

	user, err := h.userService.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return nil, false
	}
	return user, true
}
