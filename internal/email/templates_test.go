package email

import (
	"strings"
	"testing"
	"time"

	"callhelper/internal/config"
	"callhelper/internal/models"
)

func TestEscalationRequested(t *testing.T) {
	tmpl := NewTemplates(&config.Config{SiteTitle: "CallHelper", BaseURL: "https://help.example.com"})

	e := models.Escalation{
		SessionID: "sess-1",
		UserType:  "شركة عمره",
		History: []models.ChatMessage{
			{Role: models.RoleUser, Content: "تفعيل <script>"},
			{Role: models.RoleBot, Content: "سطر أول\nسطر ثاني"},
		},
		RequestedAt: time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
	}

	subject, htmlBody, textBody := tmpl.EscalationRequested(e)

	if !strings.Contains(subject, "[CallHelper]") {
		t.Errorf("subject = %q", subject)
	}
	for _, want := range []string{"sess-1", "شركة عمره", "2026-05-01 09:30 UTC", "تفعيل &lt;script&gt;", "سطر أول<br>سطر ثاني", `dir="rtl"`} {
		if !strings.Contains(htmlBody, want) {
			t.Errorf("HTML body missing %q", want)
		}
	}
	if strings.Contains(htmlBody, "<script>") {
		t.Error("HTML body contains unescaped user content")
	}
	for _, want := range []string{"رقم الجلسة: sess-1", "- المستخدم: تفعيل <script>", "- المساعد: سطر أول"} {
		if !strings.Contains(textBody, want) {
			t.Errorf("text body missing %q", want)
		}
	}
}

func TestEscalationRequested_NoHistory(t *testing.T) {
	tmpl := NewTemplates(&config.Config{SiteTitle: "CallHelper"})
	_, htmlBody, textBody := tmpl.EscalationRequested(models.Escalation{SessionID: "s"})
	if strings.Contains(htmlBody, "سجل المحادثة") || strings.Contains(textBody, "سجل المحادثة") {
		t.Error("empty history should not render a transcript section")
	}
}
