package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"

	"callhelper/internal/config"
	"callhelper/internal/db"
	"callhelper/internal/models"
	"callhelper/internal/validation"
)

// CaseStore is the case repository used by the admin pages.
type CaseStore interface {
	GetAllCases(ctx context.Context) ([]models.Case, error)
	GetCaseByID(ctx context.Context, caseID string) (*models.Case, error)
	CreateCase(ctx context.Context, c *models.Case) error
	UpdateCase(ctx context.Context, c *models.Case) error
	DeleteCase(ctx context.Context, caseID string) error
}

// AdminHandler handles case administration.
type AdminHandler struct {
	store CaseStore
	cfg   *config.Config
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(store CaseStore, cfg *config.Config) *AdminHandler {
	return &AdminHandler{store: store, cfg: cfg}
}

// CaseForm holds the fields posted by the add/edit form. Keyword lists are
// newline or comma separated.
type CaseForm struct {
	CaseID           string `form:"case_id"`
	UserType         string `form:"user_type"`
	AccountStatus    string `form:"account_status"`
	Category         string `form:"category"`
	SubCategory      string `form:"subcategory"`
	MainKeywords     string `form:"main_keywords"`
	ExtraKeywords    string `form:"extra_keywords"`
	Synonyms         string `form:"synonyms"`
	NegativeKeywords string `form:"negative_keywords"`
	Priority         string `form:"priority"`
	ResponseText     string `form:"response_text"`
	Why              string `form:"why"`
	FallbackText     string `form:"fallback"`
	Notes            string `form:"notes"`
}

// ToCase converts the form into a case with parsed keyword lists.
func (f *CaseForm) ToCase() *models.Case {
	return &models.Case{
		CaseID:           strings.TrimSpace(f.CaseID),
		UserType:         strings.TrimSpace(f.UserType),
		AccountStatus:    strings.TrimSpace(f.AccountStatus),
		Category:         strings.TrimSpace(f.Category),
		SubCategory:      strings.TrimSpace(f.SubCategory),
		MainKeywords:     validation.ParseKeywords(f.MainKeywords),
		ExtraKeywords:    validation.ParseKeywords(f.ExtraKeywords),
		Synonyms:         validation.ParseKeywords(f.Synonyms),
		NegativeKeywords: validation.ParseKeywords(f.NegativeKeywords),
		Priority:         strings.TrimSpace(f.Priority),
		ResponseText:     strings.TrimSpace(f.ResponseText),
		Why:              strings.TrimSpace(f.Why),
		FallbackText:     strings.TrimSpace(f.FallbackText),
		Notes:            strings.TrimSpace(f.Notes),
	}
}

// FormFromCase renders a case back into form fields, one keyword per line.
func FormFromCase(c *models.Case) CaseForm {
	return CaseForm{
		CaseID:           c.CaseID,
		UserType:         c.UserType,
		AccountStatus:    c.AccountStatus,
		Category:         c.Category,
		SubCategory:      c.SubCategory,
		MainKeywords:     strings.Join(c.MainKeywords, "\n"),
		ExtraKeywords:    strings.Join(c.ExtraKeywords, "\n"),
		Synonyms:         strings.Join(c.Synonyms, "\n"),
		NegativeKeywords: strings.Join(c.NegativeKeywords, "\n"),
		Priority:         c.Priority,
		ResponseText:     c.ResponseText,
		Why:              c.Why,
		FallbackText:     c.FallbackText,
		Notes:            c.Notes,
	}
}

// List renders all cases sorted by case ID.
func (h *AdminHandler) List(c fiber.Ctx) error {
	cases, err := h.store.GetAllCases(c.Context())
	data := fiber.Map{"Title": "إدارة الحالات"}
	if err != nil {
		slog.Error("failed to load cases", "error", err)
		data["FlashKind"] = FlashError
		data["FlashMessage"] = "تعذر تحميل الحالات"
		cases = nil
	} else {
		data = popFlash(c, data)
	}
	data["Cases"] = cases
	return c.Render("admin_list", mergePage(c, data, h.cfg))
}

// New renders an empty add form.
func (h *AdminHandler) New(c fiber.Ctx) error {
	return h.renderForm(c, "add", CaseForm{UserType: h.cfg.ChatDefaultUserType}, "")
}

// Create handles POST /admin/add.
func (h *AdminHandler) Create(c fiber.Ctx) error {
	var form CaseForm
	if err := c.Bind().Form(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}

	kase := form.ToCase()
	if ok, msg := validation.ValidateCase(kase, true); !ok {
		return h.renderForm(c.Status(fiber.StatusBadRequest), "add", form, msg)
	}

	if err := h.store.CreateCase(c.Context(), kase); err != nil {
		if errors.Is(err, db.ErrDuplicateCaseID) {
			return h.renderForm(c.Status(fiber.StatusConflict), "add", form, fmt.Sprintf("رقم الحالة %s موجود مسبقاً", kase.CaseID))
		}
		slog.Error("failed to create case", "case_id", kase.CaseID, "error", err)
		return h.renderForm(c.Status(fiber.StatusInternalServerError), "add", form, "تعذر إنشاء الحالة")
	}

	slog.Info("case created", "case_id", kase.CaseID)
	setFlash(c, FlashSuccess, fmt.Sprintf("تم إنشاء الحالة %s بنجاح", kase.CaseID))
	return c.Redirect().To("/admin")
}

// Edit renders the form for an existing case.
func (h *AdminHandler) Edit(c fiber.Ctx) error {
	existing, err := h.store.GetCaseByID(c.Context(), c.Params("id"))
	if err != nil {
		return h.redirectMissing(c, err)
	}
	return h.renderForm(c, "edit", FormFromCase(existing), "")
}

// Update handles POST /admin/edit/:id. The case ID in the path wins over
// any posted value.
func (h *AdminHandler) Update(c fiber.Ctx) error {
	caseID := c.Params("id")

	var form CaseForm
	if err := c.Bind().Form(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid form")
	}
	form.CaseID = caseID

	kase := form.ToCase()
	if ok, msg := validation.ValidateCase(kase, false); !ok {
		return h.renderForm(c.Status(fiber.StatusBadRequest), "edit", form, msg)
	}

	if err := h.store.UpdateCase(c.Context(), kase); err != nil {
		if errors.Is(err, db.ErrCaseNotFound) {
			return h.redirectMissing(c, err)
		}
		slog.Error("failed to update case", "case_id", caseID, "error", err)
		return h.renderForm(c.Status(fiber.StatusInternalServerError), "edit", form, "تعذر تحديث الحالة")
	}

	slog.Info("case updated", "case_id", caseID)
	setFlash(c, FlashSuccess, fmt.Sprintf("تم تحديث الحالة %s بنجاح", caseID))
	return c.Redirect().To("/admin")
}

// Delete handles POST /admin/delete/:id.
func (h *AdminHandler) Delete(c fiber.Ctx) error {
	caseID := c.Params("id")

	switch err := h.store.DeleteCase(c.Context(), caseID); {
	case err == nil:
		slog.Info("case deleted", "case_id", caseID)
		setFlash(c, FlashSuccess, fmt.Sprintf("تم حذف الحالة %s بنجاح", caseID))
	case errors.Is(err, db.ErrCaseNotFound):
		setFlash(c, FlashError, "الحالة غير موجودة")
	default:
		slog.Error("failed to delete case", "case_id", caseID, "error", err)
		setFlash(c, FlashError, "تعذر حذف الحالة")
	}
	return c.Redirect().To("/admin")
}

func (h *AdminHandler) redirectMissing(c fiber.Ctx, err error) error {
	if !errors.Is(err, db.ErrCaseNotFound) {
		slog.Error("failed to load case", "case_id", c.Params("id"), "error", err)
	}
	setFlash(c, FlashError, "الحالة غير موجودة")
	return c.Redirect().To("/admin")
}

func (h *AdminHandler) renderForm(c fiber.Ctx, mode string, form CaseForm, errMsg string) error {
	data := fiber.Map{
		"Title":      "إضافة حالة",
		"Mode":       mode,
		"Form":       form,
		"Priorities": []string{models.PriorityHigh, models.PriorityMedium, models.PriorityLow},
	}
	if mode == "edit" {
		data["Title"] = "تعديل الحالة " + form.CaseID
	}
	if errMsg != "" {
		data["FlashKind"] = FlashError
		data["FlashMessage"] = errMsg
	}
	return c.Render("admin_form", mergePage(c, data, h.cfg))
}
