package bootstrap

import (
	"context"
	"testing"
	"time"

	"callhelper/internal/chat"
	"callhelper/internal/config"
	"callhelper/internal/matching"
	"callhelper/internal/models"
	"callhelper/internal/testutil"
)

var fixture = []models.Case{{
	CaseID:       "TEST-001",
	Category:     "تفعيل الحساب",
	MainKeywords: []string{"تفعيل", "حساب"},
	ResponseText: "الحل",
}}

func TestBuildGate(t *testing.T) {
	source := testutil.StubSource{Cases: fixture}

	tests := []struct {
		name      string
		yc        *config.YAMLConfig
		supported []string
		rejected  []string
		wantErr   bool
	}{
		{
			name:      "no config uses built-in labels",
			yc:        nil,
			supported: []string{matching.LabelUmrahCompany, matching.LabelExternalAgent},
			rejected:  []string{"فندق"},
		},
		{
			name: "configured routes replace built-ins",
			yc: &config.YAMLConfig{UserTypes: []config.UserTypeConfig{
				{Label: "فندق", Policy: matching.PolicyUmrah},
			}},
			supported: []string{"فندق شريك"},
			rejected:  []string{matching.LabelExternalAgent},
		},
		{
			name: "unknown policy",
			yc: &config.YAMLConfig{UserTypes: []config.UserTypeConfig{
				{Label: "فندق", Policy: "hotels"},
			}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate, err := BuildGate(source, tt.yc)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildGate() error = %v", err)
			}
			for _, ut := range tt.supported {
				if !gate.IsSupportedUserType(ut) {
					t.Errorf("%q should be supported", ut)
				}
			}
			for _, ut := range tt.rejected {
				if gate.IsSupportedUserType(ut) {
					t.Errorf("%q should not be supported", ut)
				}
			}
		})
	}
}

func TestBuildGate_MessageOverrides(t *testing.T) {
	yc := &config.YAMLConfig{Messages: map[string]string{"no_match": "لا يوجد"}}
	gate, err := BuildGate(testutil.StubSource{Cases: fixture}, yc)
	if err != nil {
		t.Fatal(err)
	}

	policy, _ := gate.SelectPolicy(matching.LabelUmrahCompany)
	if _, msg := policy.FindBestRow(context.Background(), "طباعة"); msg != "لا يوجد" {
		t.Errorf("no-match message = %q, want override", msg)
	}
	if got := gate.Message(matching.MessageUnsupported); got != matching.DefaultMessages().Get(matching.MessageUnsupported) {
		t.Errorf("unsupported message = %q, want default", got)
	}
}

func TestGuardSource(t *testing.T) {
	cfg := &config.Config{RepoRetryAttempts: 2, RepoBreakerEnabled: true}
	source := GuardSource(cfg, testutil.StubSource{Cases: fixture})

	cases, err := source.FetchAllCases(context.Background())
	if err != nil || len(cases) != 1 {
		t.Fatalf("FetchAllCases() = %d cases, %v", len(cases), err)
	}
}

func TestStorage_InProcess(t *testing.T) {
	chatStorage, sessionStorage := Storage(&config.Config{})
	if chatStorage == nil {
		t.Fatal("expected in-process chat storage")
	}
	if sessionStorage != nil {
		t.Error("session storage should default to Fiber's memory store")
	}
}

func TestNewChatService(t *testing.T) {
	cfg := &config.Config{ChatSessionTTL: time.Minute, ChatDefaultUserType: matching.LabelUmrahCompany}
	gate, _ := BuildGate(testutil.StubSource{Cases: fixture}, nil)
	storage, _ := Storage(cfg)

	svc := NewChatService(cfg, nil, gate, storage, nil)
	resp, err := svc.Respond(context.Background(), chat.Request{Message: "تفعيل حساب"})
	if err != nil {
		t.Fatalf("Respond() error = %v", err)
	}
	if resp.SessionID == "" {
		t.Error("expected a session ID")
	}
}
