package models

import "time"

// MatchView is the JSON shape of a matched case returned to callers.
type MatchView struct {
	CaseID       string     `json:"case_id"`
	Category     string     `json:"category"`
	SubCategory  string     `json:"subcategory"`
	Priority     string     `json:"priority"`
	Score        int        `json:"score"`
	ResponseText string     `json:"response_text"`
	Fallback     string     `json:"fallback"`
	Why          string     `json:"why"`
	LastUpdated  *time.Time `json:"last_updated"`
}

// NewMatchView builds a MatchView from a case and its score.
func NewMatchView(c *Case, score int) MatchView {
	v := MatchView{
		CaseID:       c.CaseID,
		Category:     c.Category,
		SubCategory:  c.SubCategory,
		Priority:     c.Priority,
		Score:        score,
		ResponseText: c.ResponseText,
		Fallback:     c.FallbackText,
		Why:          c.Why,
	}
	if !c.LastUpdated.IsZero() {
		t := c.LastUpdated
		v.LastUpdated = &t
	}
	return v
}

// ResolveResponse is the body of POST /api/resolve.
type ResolveResponse struct {
	Success      bool        `json:"success"`
	Message      string      `json:"message"`
	Customer     string      `json:"customer,omitempty"`
	UserType     string      `json:"user_type,omitempty"`
	Match        *MatchView  `json:"match,omitempty"`
	Alternatives []MatchView `json:"alternatives,omitzero"`
}

// ChatResponse is the body of POST /api/chat.
type ChatResponse struct {
	Success      bool     `json:"success"`
	Response     string   `json:"response"`
	QuickReplies []string `json:"quick_replies"`
	SessionID    string   `json:"session_id,omitempty"`
}
