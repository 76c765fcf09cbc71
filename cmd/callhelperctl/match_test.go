package main

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"callhelper/internal/matching"
	"callhelper/internal/models"
)

var sampleMatches = []matching.ScoredCase{
	{Case: models.Case{CaseID: "TEST-003", Category: "تفعيل الخدمات"}, MatchScore: 2, MatchRatio: 1},
	{Case: models.Case{CaseID: "TEST-001", Category: "تفعيل الحساب"}, MatchScore: 2, MatchRatio: 0.5},
}

func TestMatchRows(t *testing.T) {
	want := [][]string{
		{"1", "TEST-003", "تفعيل الخدمات", "2", "1.00"},
		{"2", "TEST-001", "تفعيل الحساب", "2", "0.50"},
	}
	if got := matchRows(sampleMatches); !reflect.DeepEqual(got, want) {
		t.Errorf("matchRows() = %q, want %q", got, want)
	}
}

func TestRenderMatches(t *testing.T) {
	out := renderMatches(sampleMatches)
	for _, s := range []string{"Case ID", "TEST-003", "TEST-001", "0.50"} {
		if !strings.Contains(out, s) {
			t.Errorf("table missing %q:\n%s", s, out)
		}
	}
}

func TestWriteMatchesJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := writeMatchesJSON(&buf, sampleMatches); err != nil {
		t.Fatal(err)
	}
	var views []models.MatchView
	if err := json.Unmarshal(buf.Bytes(), &views); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(views) != 2 || views[0].CaseID != "TEST-003" || views[1].Score != 2 {
		t.Errorf("views = %+v", views)
	}
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"seed", "match"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("command %q not registered", name)
		}
	}
	if f := matchCmd.Flags().Lookup("user-type"); f == nil || f.DefValue != matching.LabelUmrahCompany {
		t.Error("match --user-type should default to the umrah company label")
	}
	if f := seedCmd.Flags().Lookup("reset"); f == nil {
		t.Error("seed --reset flag missing")
	}
}
