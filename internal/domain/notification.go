package domain

import "time"

// EmailNotification is an append-only record of an attempted send. Rows are
// created as a byproduct of intake and never mutated.
type EmailNotification struct {
	ID             string
	Subject        string
	Body           string
	RecipientEmail string
	LeadID         *string
	CreatedAt      time.Time
}
