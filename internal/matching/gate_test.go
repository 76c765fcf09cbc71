package matching

import (
	"context"
	"testing"
)

type namedPolicy struct{ name string }

func (p namedPolicy) Name() string { return p.name }

func (p namedPolicy) FindAllMatches(context.Context, string, int) []ScoredCase { return nil }

func (p namedPolicy) FindBestRow(context.Context, string) (*ScoredCase, string) { return nil, "" }

func TestGate_SelectPolicy(t *testing.T) {
	umrah := namedPolicy{"umrah"}
	hotels := namedPolicy{"hotels"}
	gate := NewGate(nil, append(DefaultRoutes(umrah), Route{Label: " Hotel  Partner ", Policy: hotels})...)

	tests := []struct {
		name     string
		userType string
		want     string
	}{
		{"umrah company", "شركة عمره", "umrah"},
		{"external agent", "وكيل خارجي", "umrah"},
		{"label inside longer text", "مشرف شركة عمره الرئيسية", "umrah"},
		{"surrounding whitespace", "   وكيل   خارجي  ", "umrah"},
		{"configured route is normalized", "hotel partner", "hotels"},
		{"configured route case-insensitive", "HOTEL PARTNER desk", "hotels"},
		{"taa marbuta spelling unsupported", "شركة عمرة", ""},
		{"unknown", "جهة حكومية", ""},
		{"empty", "", ""},
		{"whitespace", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := gate.SelectPolicy(tt.userType)
			if tt.want == "" {
				if ok || p != nil {
					t.Errorf("SelectPolicy(%q) = %v, want none", tt.userType, p)
				}
				if gate.IsSupportedUserType(tt.userType) {
					t.Errorf("IsSupportedUserType(%q) = true, want false", tt.userType)
				}
				return
			}
			if !ok {
				t.Fatalf("SelectPolicy(%q) found no policy", tt.userType)
			}
			if p.Name() != tt.want {
				t.Errorf("SelectPolicy(%q) = %s, want %s", tt.userType, p.Name(), tt.want)
			}
			if !gate.IsSupportedUserType(tt.userType) {
				t.Errorf("IsSupportedUserType(%q) = false, want true", tt.userType)
			}
		})
	}
}

func TestGate_FirstRouteWins(t *testing.T) {
	gate := NewGate(nil,
		Route{Label: "وكيل", Policy: namedPolicy{"first"}},
		Route{Label: "وكيل خارجي", Policy: namedPolicy{"second"}},
	)
	p, ok := gate.SelectPolicy("وكيل خارجي")
	if !ok || p.Name() != "first" {
		t.Errorf("expected first route to win, got %v", p)
	}
}

func TestGate_IgnoresIncompleteRoutes(t *testing.T) {
	gate := NewGate(nil,
		Route{Label: "  ", Policy: namedPolicy{"blank"}},
		Route{Label: "وكيل خارجي", Policy: nil},
	)
	if gate.IsSupportedUserType("وكيل خارجي") {
		t.Error("route without policy should be ignored")
	}
	// A blank label would otherwise match every classification.
	if gate.IsSupportedUserType("أي شيء") {
		t.Error("route with blank label should be ignored")
	}
	if labels := gate.Labels(); len(labels) != 0 {
		t.Errorf("Labels() = %q, want none", labels)
	}
}

func TestGate_Labels(t *testing.T) {
	gate := NewGate(nil, DefaultRoutes(namedPolicy{"umrah"})...)
	labels := gate.Labels()
	if len(labels) != 2 || labels[0] != LabelUmrahCompany || labels[1] != LabelExternalAgent {
		t.Errorf("Labels() = %q", labels)
	}
}

func TestGate_Message(t *testing.T) {
	gate := NewGate(DefaultMessages().With(map[string]string{"no_match": "لا شيء"}))
	if got := gate.Message(MessageNoMatch); got != "لا شيء" {
		t.Errorf("Message(no_match) = %q", got)
	}
	if got := gate.Message(MessageUnsupported); got != "نوع الجهة غير مدعوم" {
		t.Errorf("Message(unsupported_user_type) = %q", got)
	}
}
