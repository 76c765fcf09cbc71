package api

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"callhelper/internal/matching"
	"callhelper/internal/metrics"
	"callhelper/internal/models"
)

// Resolve API status messages. Clients match on these strings.
const (
	MsgMissingFields   = "Missing required fields: user_type and issue"
	MsgUnsupportedType = "Unsupported user type for now."
	MsgNoMatches       = "No matches found"
	MsgMultipleMatches = "Found multiple matches"
	MsgInternalError   = "Internal server error"
)

// ResolveRequest is the body of POST /api/resolve.
type ResolveRequest struct {
	Name            string `json:"name"`
	UserType        string `json:"user_type"`
	Issue           string `json:"issue"`
	GetAlternatives bool   `json:"get_alternatives"`
}

// ResolveHandler matches a caller's issue against the knowledge base.
type ResolveHandler struct {
	gate     *matching.Gate
	recordFn func(models.Interaction)
}

// NewResolveHandler creates a new API resolve handler.
func NewResolveHandler(gate *matching.Gate) *ResolveHandler {
	return &ResolveHandler{gate: gate, recordFn: metrics.RecordInteraction}
}

// Resolve handles POST /api/resolve. Every outcome is recorded in the
// interaction log. A panic while matching becomes a 500 in the resolve
// response shape.
func (h *ResolveHandler) Resolve(c fiber.Ctx) (err error) {
	start := time.Now()
	in := models.Interaction{Type: models.InteractionResolve}

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		slog.Error("resolve failed", "panic", r, "user_type", in.UserType)
		errMsg := fmt.Sprint(r)
		in.Success = false
		in.MatchedCaseID = nil
		in.ErrorMessage = &errMsg
		h.record(in, start)
		err = c.Status(fiber.StatusInternalServerError).JSON(models.ResolveResponse{Message: MsgInternalError})
	}()

	var req ResolveRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ResolveResponse{Message: MsgMissingFields})
	}
	req.Name = strings.TrimSpace(req.Name)
	req.UserType = strings.TrimSpace(req.UserType)
	req.Issue = strings.TrimSpace(req.Issue)

	if req.UserType == "" || req.Issue == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ResolveResponse{Message: MsgMissingFields})
	}

	in.UserType = req.UserType
	in.Query = req.Issue

	policy, ok := h.gate.SelectPolicy(req.UserType)
	if !ok {
		errMsg := matching.ErrUnsupportedUserType.Error()
		in.ErrorMessage = &errMsg
		h.record(in, start)
		return c.Status(fiber.StatusBadRequest).JSON(models.ResolveResponse{Message: MsgUnsupportedType})
	}

	if req.GetAlternatives {
		return h.resolveAll(c, policy, req, in, start)
	}

	best, status := policy.FindBestRow(c.Context(), req.Issue)
	if best == nil {
		h.record(in, start)
		return c.JSON(models.ResolveResponse{Message: status})
	}

	in.Success = true
	in.MatchedCaseID = &best.Case.CaseID
	h.record(in, start)

	match := models.NewMatchView(&best.Case, best.MatchScore)
	return c.JSON(models.ResolveResponse{
		Success:  true,
		Message:  status,
		Customer: req.Name,
		UserType: req.UserType,
		Match:    &match,
	})
}

func (h *ResolveHandler) resolveAll(c fiber.Ctx, policy matching.Policy, req ResolveRequest, in models.Interaction, start time.Time) error {
	matches := policy.FindAllMatches(c.Context(), req.Issue, matching.DefaultLimit)
	if len(matches) == 0 {
		h.record(in, start)
		return c.JSON(models.ResolveResponse{Message: MsgNoMatches, Alternatives: []models.MatchView{}})
	}

	in.Success = true
	in.MatchedCaseID = &matches[0].Case.CaseID
	h.record(in, start)

	views := make([]models.MatchView, 0, len(matches))
	for i := range matches {
		views = append(views, models.NewMatchView(&matches[i].Case, matches[i].MatchScore))
	}
	slog.Debug("resolve returned alternatives", "count", len(views), "policy", policy.Name())

	return c.JSON(models.ResolveResponse{
		Success:      true,
		Message:      MsgMultipleMatches,
		Customer:     req.Name,
		UserType:     req.UserType,
		Match:        &views[0],
		Alternatives: views,
	})
}

// record stamps the elapsed time and queues the interaction for logging.
func (h *ResolveHandler) record(in models.Interaction, start time.Time) {
	ms := float64(time.Since(start).Microseconds()) / 1000.0
	in.ResponseTimeMS = &ms
	h.recordFn(in)
}
