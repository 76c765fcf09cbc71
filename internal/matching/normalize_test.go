package matching

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"arabic unchanged", "تفعيل حساب", "تفعيل حساب"},
		{"trims", "  تفعيل  ", "تفعيل"},
		{"collapses runs", "تفعيل \t\n  حساب", "تفعيل حساب"},
		{"lowercases ascii", "Account LOCKED", "account locked"},
		{"lowercases beyond ascii", "ÉTAT Ünïcode", "état ünïcode"},
		{"mixed scripts", " حساب  ID ", "حساب id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, in := range []string{"  Foo   BAR ", "تفعيل\tالحساب", "", "ÀB  c"} {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestNormalizeAll(t *testing.T) {
	got := NormalizeAll([]string{" Foo ", "", "   ", "تفعيل  حساب"})
	want := []string{"foo", "تفعيل حساب"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeAll = %q, want %q", got, want)
	}
}
