package models

import (
	"time"

	"github.com/google/uuid"
)

// Interaction type constants
const (
	InteractionResolve = "resolve"
	InteractionSearch  = "search"
	InteractionChat    = "chat"
)

// Interaction outcome labels exported as metrics
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Interaction is one logged lookup against the knowledge base.
type Interaction struct {
	ID             uuid.UUID `json:"id"`
	Timestamp      time.Time `json:"timestamp"`
	Type           string    `json:"interaction_type"`
	UserType       string    `json:"user_type"`
	Query          string    `json:"query"`
	Success        bool      `json:"success"`
	ResponseTimeMS *float64  `json:"response_time_ms"`
	MatchedCaseID  *string   `json:"matched_case_id"`
	ErrorMessage   *string   `json:"error_message"`
}

// InteractionCount is a per-type, per-outcome count for metrics export.
type InteractionCount struct {
	Type    string
	Outcome string
	Count   int64
}
