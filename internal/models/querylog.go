package models

import (
	"time"

	"github.com/google/uuid"
)

// QueryLog is an append-only record of one completed user interaction.
// Rows are never mutated or deleted by the application.
type QueryLog struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty" db:"user_id"`
	Question  string     `json:"question" db:"question"`
	Answer    string     `json:"answer" db:"answer"`
	Language  string     `json:"language" db:"language"`
	QueryType string     `json:"query_type" db:"query_type"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}

const (
	QueryTypeMedical   = "medical"
	QueryTypeEmergency = "emergency"
	QueryTypeSkin      = "skin"
)
