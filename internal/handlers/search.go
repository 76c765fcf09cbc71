package handlers

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"callhelper/internal/config"
	"callhelper/internal/matching"
	"callhelper/internal/metrics"
	"callhelper/internal/models"
)

const notAvailable = "غير متوفر"

// SearchHandler serves the agent-facing search form.
type SearchHandler struct {
	gate *matching.Gate
	cfg  *config.Config
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(gate *matching.Gate, cfg *config.Config) *SearchHandler {
	return &SearchHandler{gate: gate, cfg: cfg}
}

// SearchForm holds the fields posted by the search form.
type SearchForm struct {
	CallerName    string `form:"caller_name"`
	CallerType    string `form:"caller_type"`
	Issue         string `form:"issue_description"`
	Activation    string `form:"activation"`
	Registration  string `form:"registration"`
	RequestStatus string `form:"request_status"`
}

func (f *SearchForm) trim() {
	f.CallerName = strings.TrimSpace(f.CallerName)
	f.CallerType = strings.TrimSpace(f.CallerType)
	f.Issue = strings.TrimSpace(f.Issue)
	f.Activation = strings.TrimSpace(f.Activation)
	f.Registration = strings.TrimSpace(f.Registration)
	f.RequestStatus = strings.TrimSpace(f.RequestStatus)
}

// Index renders the search page.
func (h *SearchHandler) Index(c fiber.Ctx) error {
	return c.Render("index", MergeBranding(fiber.Map{
		"Title":     "البحث عن حل",
		"UserTypes": h.gate.Labels(),
	}, h.cfg))
}

// Search handles POST /search and returns the formatted result block as JSON.
func (h *SearchHandler) Search(c fiber.Ctx) error {
	var form SearchForm
	if err := c.Bind().Form(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": h.gate.Message(matching.MessageMissingFields)})
	}
	form.trim()

	if form.CallerType == "" || form.Issue == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": h.gate.Message(matching.MessageMissingFields)})
	}

	policy, ok := h.gate.SelectPolicy(form.CallerType)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": h.gate.Message(matching.MessageUnsupported)})
	}

	start := time.Now()
	best, status := policy.FindBestRow(c.Context(), form.Issue)
	elapsed := elapsedMS(start)

	in := models.Interaction{
		Type:           models.InteractionSearch,
		UserType:       form.CallerType,
		Query:          form.Issue,
		Success:        best != nil,
		ResponseTimeMS: &elapsed,
	}

	if best == nil {
		metrics.RecordInteraction(in)
		return c.JSON(fiber.Map{"result": "لم يتم العثور على حل مناسب\n\n" + status})
	}

	caseID := best.Case.CaseID
	in.MatchedCaseID = &caseID
	metrics.RecordInteraction(in)

	slog.Debug("search matched", "case_id", caseID, "score", best.MatchScore)
	return c.JSON(fiber.Map{"result": FormatResult(&form, &best.Case)})
}

// FormatResult renders the Arabic result block shown to the agent.
func FormatResult(form *SearchForm, c *models.Case) string {
	var b strings.Builder
	fmt.Fprintf(&b, "اسم العميل: %s\n", form.CallerName)
	fmt.Fprintf(&b, "رقم الحالة: %s\n", orNotAvailable(c.CaseID))
	fmt.Fprintf(&b, "الفئة: %s\n\n", orNotAvailable(c.Category))
	fmt.Fprintf(&b, "الحل:\n%s", c.ResponseOrDefault())

	if form.Activation != "" || form.Registration != "" || form.RequestStatus != "" {
		b.WriteString("\n\nالفلاتر المتقدمة:")
		if form.Activation != "" {
			fmt.Fprintf(&b, "\n- حالة التفعيل: %s", form.Activation)
		}
		if form.Registration != "" {
			fmt.Fprintf(&b, "\n- حالة التسجيل: %s", form.Registration)
		}
		if form.RequestStatus != "" {
			fmt.Fprintf(&b, "\n- حالة الطلب: %s", form.RequestStatus)
		}
	}
	return b.String()
}

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// elapsedMS returns the time since start in fractional milliseconds.
func elapsedMS(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000.0
}
