package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/spec-kit/lead-intake-service/internal/domain"
)

// CreateLeadRequest carries the multipart form fields of the public intake
// endpoint. The resume file travels separately as the file part.
type CreateLeadRequest struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
	Email     string `form:"email"`
}

// Validate checks the intake fields.
func (r CreateLeadRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// UpdateLeadStatusRequest payload.
type UpdateLeadStatusRequest struct {
	Status domain.LeadStatus `json:"status"`
}

// Validate checks status membership in the closed enumeration.
func (r UpdateLeadStatusRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status, validation.Required,
			validation.In(domain.LeadStatusPending, domain.LeadStatusReachedOut)),
	)
}

// LeadSummary response.
type LeadSummary struct {
	ID           string            `json:"id"`
	FirstName    string            `json:"first_name"`
	LastName     string            `json:"last_name"`
	Email        string            `json:"email"`
	Status       domain.LeadStatus `json:"status"`
	ResumeID     string            `json:"resume_id"`
	AssignedToID *string           `json:"assigned_to_id"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// LeadDetailResponse provides the summary plus resume content.
type LeadDetailResponse struct {
	LeadSummary
	ResumeB64 string `json:"resume_b64"`
}
