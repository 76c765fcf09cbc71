package models

import "time"

// DefaultResponseText is shown when a case carries no response text.
const DefaultResponseText = "لا توجد حلول متاحة"

// Priority labels used by the admin form. Informational only.
const (
	PriorityHigh   = "عالي"
	PriorityMedium = "متوسط"
	PriorityLow    = "منخفض"
)

// Case is a pre-authored resolution record in the knowledge base.
// Keyword lists are stored normalized.
type Case struct {
	CaseID           string    `json:"case_id"`
	UserType         string    `json:"user_type"`
	AccountStatus    string    `json:"account_status"`
	Category         string    `json:"category"`
	SubCategory      string    `json:"subcategory"`
	MainKeywords     []string  `json:"main_keywords"`
	ExtraKeywords    []string  `json:"extra_keywords"`
	Synonyms         []string  `json:"synonyms"`
	NegativeKeywords []string  `json:"negative_keywords"`
	Priority         string    `json:"priority"`
	ResponseText     string    `json:"response_text"`
	Why              string    `json:"why"`
	FallbackText     string    `json:"fallback"`
	Notes            string    `json:"notes"`
	LastUpdated      time.Time `json:"last_updated"`
}

// ResponseOrDefault returns the response text, or DefaultResponseText when empty.
func (c *Case) ResponseOrDefault() string {
	if c.ResponseText == "" {
		return DefaultResponseText
	}
	return c.ResponseText
}
