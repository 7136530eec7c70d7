package handler

import (
	"errors"
	"net/http"
	"strconv"

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

// AdminHandler serves admin dashboard, results, invitation, and contact
// message endpoints.
type AdminHandler struct {
	dashboardService  *service.DashboardService
	submissionService *service.SubmissionService
	inviteService     *service.InviteService
	contactService    *service.ContactService
	catalogService    *service.CatalogService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(
	dashboardService *service.DashboardService,
	submissionService *service.SubmissionService,
	inviteService *service.InviteService,
	contactService *service.ContactService,
	catalogService *service.CatalogService,
) *AdminHandler {
	return &AdminHandler{
		dashboardService:  dashboardService,
		submissionService: submissionService,
		inviteService:     inviteService,
		contactService:    contactService,
		catalogService:    catalogService,
	}
}

// Dashboard godoc
// GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

// ListResults godoc
// GET /api/v1/admin/results
// Lists recent submissions across candidates, optionally filtered by
// ?test_type=.
func (h *AdminHandler) ListResults(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	testType := c.Query("test_type")

	results, total, err := h.submissionService.ListAllResults(c.Request.Context(), testType, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	pagination := response.NewPagination(page, perPage, total)
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"results": results}, pagination)
}

// GetResult godoc
// GET /api/v1/admin/results/:id
func (h *AdminHandler) GetResult(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.submissionService.GetResult(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrNotFound)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": result})
}

// SendInvitation godoc
// POST /api/v1/admin/invitations
func (h *AdminHandler) SendInvitation(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.InviteRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	inv, err := h.inviteService.Send(c.Request.Context(), claims.UserID, &req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"invitation": inv})
}

// ListInvitations godoc
// GET /api/v1/admin/invitations
func (h *AdminHandler) ListInvitations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	invitations, total, err := h.inviteService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	pagination := response.NewPagination(page, perPage, total)
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"invitations": invitations}, pagination)
}

// ListContactMessages godoc
// GET /api/v1/admin/contact-messages
func (h *AdminHandler) ListContactMessages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	messages, total, err := h.contactService.List(c.Request.Context(), page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	pagination := response.NewPagination(page, perPage, total)
	response.SuccessWithPagination(c, http.StatusOK, gin.H{"messages": messages}, pagination)
}

// DeleteContactMessage godoc
// DELETE /api/v1/admin/contact-messages/:id
func (h *AdminHandler) DeleteContactMessage(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// RefreshQuestions godoc
// POST /api/v1/admin/tests/:testType/refresh-questions
// Drops the cached question payload and rebuilds it from disk. Used after a
// dataset file is replaced.
func (h *AdminHandler) RefreshQuestions(c *gin.Context) {
	t := scoring.TestType(c.Param("testType"))
	if !t.Valid() {
		response.Fail(c, http.StatusBadRequest, response.ErrUnknownTestType)
		return
	}

	if err := h.catalogService.Invalidate(c.Request.Context(), t); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}
	payload, err := h.catalogService.GetQuestions(c.Request.Context(), t)
	if err != nil {
		if errors.Is(err, scoring.ErrDataNotFound) {
			response.Fail(c, http.StatusNotFound, response.ErrAnswerKeyMissing)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"bytes": len(payload)})
}
