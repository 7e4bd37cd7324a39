package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-intake-service/internal/api/dto"
	"github.com/spec-kit/lead-intake-service/internal/service"
	apperrors "github.com/spec-kit/lead-intake-service/pkg/util"
)

// PublicLeadsHandler manages the unauthenticated intake endpoint.
type PublicLeadsHandler struct {
	intake *service.IntakeService
}

// NewPublicLeadsHandler constructs handler.
func NewPublicLeadsHandler(intakeService *service.IntakeService) *PublicLeadsHandler {
	return &PublicLeadsHandler{intake: intakeService}
}

// CreateLead POST /public/leads (multipart form).
func (h *PublicLeadsHandler) CreateLead(c *fiber.Ctx) error {
	req := dto.CreateLeadRequest{
		FirstName: c.FormValue("first_name"),
		LastName:  c.FormValue("last_name"),
		Email:     c.FormValue("email"),
	}
	if err := req.Validate(); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	fileHeader, err := c.FormFile("resume_file")
	if err != nil {
		return apperrors.NewValidationError("resume_file required", nil)
	}
	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.NewValidationError("unable to read resume_file", nil)
	}
	defer file.Close()

	input := service.LeadCreateInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	lead, err := h.intake.CreateLead(c.Context(), input, file, fileHeader.Filename)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": leadSummary(lead)})
}
