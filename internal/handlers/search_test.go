package handlers

import (
	"encoding/json"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"callhelper/internal/matching"
	"callhelper/internal/models"
)

func TestFormatResult(t *testing.T) {
	c := &models.Case{CaseID: "TEST-001", Category: "تفعيل الحساب", ResponseText: "الحل"}

	got := FormatResult(&SearchForm{CallerName: "أحمد"}, c)
	want := "اسم العميل: أحمد\nرقم الحالة: TEST-001\nالفئة: تفعيل الحساب\n\nالحل:\nالحل"
	if got != want {
		t.Errorf("FormatResult() = %q, want %q", got, want)
	}

	got = FormatResult(&SearchForm{Activation: "مفعل", RequestStatus: "معلق"}, &models.Case{})
	for _, part := range []string{
		"رقم الحالة: " + notAvailable,
		"الفئة: " + notAvailable,
		models.DefaultResponseText,
		"الفلاتر المتقدمة:",
		"- حالة التفعيل: مفعل",
		"- حالة الطلب: معلق",
	} {
		if !strings.Contains(got, part) {
			t.Errorf("FormatResult() missing %q in %q", part, got)
		}
	}
	if strings.Contains(got, "حالة التسجيل") {
		t.Error("empty registration filter should be omitted")
	}
}

func TestSearchHandler_Search(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantKey    string
		wantPrefix string
	}{
		{
			name:       "missing issue",
			form:       url.Values{"caller_type": {matching.LabelUmrahCompany}},
			wantStatus: fiber.StatusBadRequest,
			wantKey:    "error",
			wantPrefix: "الرجاء ملء جميع الحقول المطلوبة",
		},
		{
			name:       "unsupported caller type",
			form:       url.Values{"caller_type": {"جهة حكومية"}, "issue_description": {"تفعيل"}},
			wantStatus: fiber.StatusBadRequest,
			wantKey:    "error",
			wantPrefix: "نوع الجهة غير مدعوم",
		},
		{
			name:       "no match",
			form:       url.Values{"caller_type": {matching.LabelUmrahCompany}, "issue_description": {"طباعة"}},
			wantStatus: fiber.StatusOK,
			wantKey:    "result",
			wantPrefix: "لم يتم العثور على حل مناسب\n\n",
		},
		{
			name: "match",
			form: url.Values{
				"caller_name":       {"أحمد"},
				"caller_type":       {"  وكيل خارجي "},
				"issue_description": {"تفعيل الحساب"},
			},
			wantStatus: fiber.StatusOK,
			wantKey:    "result",
			wantPrefix: "اسم العميل: أحمد\nرقم الحالة: TEST-001",
		},
	}

	h := NewSearchHandler(testGate(), testConfig())
	app := fiber.New()
	app.Post("/search", h.Search)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := postForm(t, app, "/search", tt.form)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d (%s)", resp.StatusCode, tt.wantStatus, body)
			}
			var out map[string]string
			if err := json.Unmarshal([]byte(body), &out); err != nil {
				t.Fatalf("invalid JSON %q: %v", body, err)
			}
			if !strings.HasPrefix(out[tt.wantKey], tt.wantPrefix) {
				t.Errorf("%s = %q, want prefix %q", tt.wantKey, out[tt.wantKey], tt.wantPrefix)
			}
		})
	}
}

func TestSearchHandler_Index(t *testing.T) {
	h := NewSearchHandler(testGate(), testConfig())
	app := newTestApp()
	app.Get("/", h.Index)

	resp, body := getPage(t, app, "/")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	for _, label := range []string{matching.LabelUmrahCompany, matching.LabelExternalAgent} {
		if !strings.Contains(body, label) {
			t.Errorf("index page missing user type %q", label)
		}
	}
}
