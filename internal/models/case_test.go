package models

import (
	"testing"
	"time"
)

func TestCase_ResponseOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{"response present", "أعد تشغيل النظام", "أعد تشغيل النظام"},
		{"response missing", "", DefaultResponseText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Case{ResponseText: tt.response}
			if got := c.ResponseOrDefault(); got != tt.expected {
				t.Errorf("ResponseOrDefault() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNewMatchView(t *testing.T) {
	updated := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	c := &Case{
		CaseID:       "TEST-001",
		Category:     "تفعيل الحساب",
		Priority:     PriorityHigh,
		ResponseText: "الحل",
		FallbackText: "بديل",
		LastUpdated:  updated,
	}

	v := NewMatchView(c, 4)
	if v.CaseID != "TEST-001" || v.Score != 4 || v.Fallback != "بديل" || v.Priority != PriorityHigh {
		t.Errorf("NewMatchView() = %+v", v)
	}
	if v.LastUpdated == nil || !v.LastUpdated.Equal(updated) {
		t.Errorf("LastUpdated = %v, want %v", v.LastUpdated, updated)
	}

	if got := NewMatchView(&Case{}, 1).LastUpdated; got != nil {
		t.Errorf("LastUpdated for zero time = %v, want nil", got)
	}
}

func TestAdminUser_DisplayName(t *testing.T) {
	tests := []struct {
		name string
		user AdminUser
		want string
	}{
		{"name wins", AdminUser{Sub: "s", Email: "e@x.com", Name: "Sara"}, "Sara"},
		{"email fallback", AdminUser{Sub: "s", Email: "e@x.com"}, "e@x.com"},
		{"sub fallback", AdminUser{Sub: "s"}, "s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
