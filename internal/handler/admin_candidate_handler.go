package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lakshaya-counselling/assessment-backend/internal/model"
	"github.com/lakshaya-counselling/assessment-backend/internal/repository"
	"github.com/lakshaya-counselling/assessment-backend/internal/response"
	"github.com/lakshaya-counselling/assessment-backend/internal/scoring"
	"github.com/lakshaya-counselling/assessment-backend/internal/service"
	"github.com/lakshaya-counselling/assessment-backend/internal/validator"
)

// AdminCandidateHandler serves candidate management endpoints for admins.
type AdminCandidateHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

// NewAdminCandidateHandler creates a new AdminCandidateHandler.
func NewAdminCandidateHandler(userService *service.UserService, authService *service.AuthService) *AdminCandidateHandler {
	return &AdminCandidateHandler{userService: userService, authService: authService}
}

// List godoc
// GET /api/v1/admin/candidates
// Lists candidates with pagination and optional ?search= over name/email.
func (h *AdminCandidateHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	search := c.Query("search")

	users, pagination, err := h.userService.ListCandidates(c.Request.Context(), search, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"candidates": users}, pagination)
}

// Get godoc
// GET /api/v1/admin/candidates/:id
func (h *AdminCandidateHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"candidate": user})
}

// AssignTests godoc
// PUT /api/v1/admin/candidates/:id/tests
// Toggles battery access flags for a candidate.
func (h *AdminCandidateHandler) AssignTests(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req model.AssignTestsRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, err := h.userService.AssignTests(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"candidate": user})
}

// ResetTestStatus godoc
// PUT /api/v1/admin/candidates/:id/tests/:testType/reset
// Sets one test back to Pending so the candidate can retake it.
func (h *AdminCandidateHandler) ResetTestStatus(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	t := scoring.TestType(c.Param("testType"))
	if !t.Valid() {
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownTestType)
		return
	}

	if err := h.userService.ResetTestStatus(c.Request.Context(), id, t); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// ResetSession godoc
// POST /api/v1/admin/candidates/:id/reset-session
// Clears a candidate's active login session so they can log in again.
func (h *AdminCandidateHandler) ResetSession(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.authService.ResetUserSession(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Delete godoc
// DELETE /api/v1/admin/candidates/:id
func (h *AdminCandidateHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// paramID parses the :id path segment, failing the request when it is not a
// positive integer.
func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
