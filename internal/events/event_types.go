package events

import (
	"time"

	"github.com/spec-kit/lead-intake-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeadCreated       EventType = "lead_created"
	EventLeadAssigned      EventType = "lead_assigned"
	EventLeadStatusChanged EventType = "lead_status_changed"
)

// Actor encapsulates actor metadata for an event. A nil StaffID means the
// event originated from the public intake surface.
type Actor struct {
	StaffID *string `json:"staff_id,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	LeadID    string      `json:"lead_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LeadCreatedPayload payload.
type LeadCreatedPayload struct {
	Email        string  `json:"email"`
	ResumeID     string  `json:"resume_id"`
	AssignedToID *string `json:"assigned_to_id,omitempty"`
}

// LeadAssignedPayload payload.
type LeadAssignedPayload struct {
	AssignedToID string `json:"assigned_to_id"`
}

// LeadStatusChangedPayload payload.
type LeadStatusChangedPayload struct {
	OldStatus domain.LeadStatus `json:"old_status"`
	NewStatus domain.LeadStatus `json:"new_status"`
}
