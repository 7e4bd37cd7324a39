package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-intake-service/internal/api/dto"
	"github.com/spec-kit/lead-intake-service/internal/auth"
	"github.com/spec-kit/lead-intake-service/internal/domain"
	"github.com/spec-kit/lead-intake-service/internal/service"
	apperrors "github.com/spec-kit/lead-intake-service/pkg/util"
)

// LeadsHandler manages authenticated internal lead endpoints.
type LeadsHandler struct {
	leads *service.LeadService
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(leadService *service.LeadService) *LeadsHandler {
	return &LeadsHandler{leads: leadService}
}

// List GET /internal/leads.
func (h *LeadsHandler) List(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("staff required")
	}

	filter := service.LeadListFilter{}
	if statusStr := strings.TrimSpace(c.Query("status")); statusStr != "" {
		status := domain.LeadStatus(statusStr)
		if !status.Valid() {
			return apperrors.NewValidationError("invalid status filter", map[string]any{"status": statusStr})
		}
		filter.Status = &status
	}
	if assignedToMe, _ := strconv.ParseBool(c.Query("assigned_to_me")); assignedToMe {
		filter.AssignedToID = &principal.User.ID
	}

	leads, err := h.leads.List(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.LeadSummary, 0, len(leads))
	for i := range leads {
		items = append(items, leadSummary(&leads[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetDetail GET /internal/leads/:id.
func (h *LeadsHandler) GetDetail(c *fiber.Ctx) error {
	detail, err := h.leads.GetDetail(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LeadDetailResponse{
		LeadSummary: leadSummary(&detail.Lead),
		ResumeB64:   detail.ResumeB64,
	}})
}

// UpdateStatus PATCH /internal/leads/:id.
func (h *LeadsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateLeadStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	lead, err := h.leads.UpdateStatus(c.Context(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leadSummary(lead)})
}

func leadSummary(lead *domain.Lead) dto.LeadSummary {
	return dto.LeadSummary{
		ID:           lead.ID,
		FirstName:    lead.FirstName,
		LastName:     lead.LastName,
		Email:        lead.Email,
		Status:       lead.Status,
		ResumeID:     lead.ResumeID,
		AssignedToID: lead.AssignedToID,
		CreatedAt:    lead.CreatedAt,
		UpdatedAt:    lead.UpdatedAt,
	}
}
