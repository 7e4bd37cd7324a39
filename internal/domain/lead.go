package domain

import "time"

// LeadStatus enumerates lifecycle states for leads.
type LeadStatus string

const (
	LeadStatusPending    LeadStatus = "PENDING"
	LeadStatusReachedOut LeadStatus = "REACHED_OUT"
)

// Valid reports whether the status is a member of the closed enumeration.
func (s LeadStatus) Valid() bool {
	return s == LeadStatusPending || s == LeadStatusReachedOut
}

// Lead is the aggregate for a prospective client intake.
type Lead struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Status       LeadStatus
	ResumeID     string
	AssignedToID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
