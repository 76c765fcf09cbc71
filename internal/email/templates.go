package email

import (
	"fmt"
	"html"
	"strings"

	"callhelper/internal/config"
	"callhelper/internal/models"
)

// Templates provides email template generation.
type Templates struct {
	cfg *config.Config
}

// NewTemplates creates a new templates instance.
func NewTemplates(cfg *config.Config) *Templates {
	return &Templates{cfg: cfg}
}

// baseHTML wraps content in a right-to-left HTML email layout.
func (t *Templates) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html dir="rtl" lang="ar">
<head>
    <meta charset="utf-8">
    <title>%s</title>
    <style>
        body { font-family: Tahoma, Arial, sans-serif; line-height: 1.7; color: #1f2937; max-width: 640px; margin: 0 auto; padding: 20px; }
        .header { background: #0f766e; color: white; padding: 16px 20px; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 20px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { padding: 12px; text-align: center; font-size: 12px; color: #6b7280; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 12px 16px; margin: 12px 0; }
        .turn { margin: 6px 0; }
        .role { font-weight: 600; color: #374151; }
    </style>
</head>
<body>
    <div class="header"><h1>%s</h1></div>
    <div class="content">
        %s
    </div>
    <div class="footer">%s · <a href="%s">%s</a></div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(title), content,
		html.EscapeString(t.cfg.SiteTitle), html.EscapeString(t.cfg.BaseURL), html.EscapeString(t.cfg.BaseURL))
}

func roleLabel(role string) string {
	if role == models.RoleBot {
		return "المساعد"
	}
	return "المستخدم"
}

// EscalationRequested renders the message sent when a chat user asks for a human agent.
func (t *Templates) EscalationRequested(e models.Escalation) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("[%s] طلب تحويل إلى موظف", t.cfg.SiteTitle)

	var h, txt strings.Builder

	fmt.Fprintf(&h, `<div class="info-box"><p><span class="role">رقم الجلسة:</span> %s</p>`, html.EscapeString(e.SessionID))
	fmt.Fprintf(&h, `<p><span class="role">نوع الجهة:</span> %s</p>`, html.EscapeString(e.UserType))
	fmt.Fprintf(&h, `<p><span class="role">وقت الطلب:</span> %s</p></div>`, e.RequestedAt.Format("2006-01-02 15:04 MST"))

	fmt.Fprintf(&txt, "طلب تحويل إلى موظف\n\nرقم الجلسة: %s\nنوع الجهة: %s\nوقت الطلب: %s\n",
		e.SessionID, e.UserType, e.RequestedAt.Format("2006-01-02 15:04 MST"))

	if len(e.History) > 0 {
		h.WriteString(`<div class="info-box"><p class="role">سجل المحادثة</p>`)
		txt.WriteString("\nسجل المحادثة:\n")
		for _, m := range e.History {
			fmt.Fprintf(&h, `<p class="turn"><span class="role">%s:</span> %s</p>`,
				roleLabel(m.Role), strings.ReplaceAll(html.EscapeString(m.Content), "\n", "<br>"))
			fmt.Fprintf(&txt, "- %s: %s\n", roleLabel(m.Role), m.Content)
		}
		h.WriteString(`</div>`)
	}

	return subject, t.baseHTML("طلب تحويل إلى موظف", h.String()), txt.String()
}
