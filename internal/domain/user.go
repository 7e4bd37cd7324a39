package domain

import "time"

// User is the domain model for internal staff who receive and work leads.
// CanIntake marks the user as eligible to be assigned newly created leads.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CanIntake    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
