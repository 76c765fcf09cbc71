package handlers

import (
	"context"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"

	"callhelper/internal/db"
	"callhelper/internal/models"
)

type memoryCaseStore struct {
	mu    sync.Mutex
	cases map[string]models.Case
}

func newMemoryCaseStore(cases ...models.Case) *memoryCaseStore {
	s := &memoryCaseStore{cases: make(map[string]models.Case)}
	for _, c := range cases {
		s.cases[c.CaseID] = c
	}
	return s
}

func (s *memoryCaseStore) GetAllCases(context.Context) ([]models.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Case, 0, len(s.cases))
	for _, c := range s.cases {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b models.Case) int { return strings.Compare(a.CaseID, b.CaseID) })
	return out, nil
}

func (s *memoryCaseStore) GetCaseByID(_ context.Context, id string) (*models.Case, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.cases[id]
	if !ok {
		return nil, db.ErrCaseNotFound
	}
	return &c, nil
}

func (s *memoryCaseStore) CreateCase(_ context.Context, c *models.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[c.CaseID]; ok {
		return db.ErrDuplicateCaseID
	}
	c.LastUpdated = time.Now()
	s.cases[c.CaseID] = *c
	return nil
}

func (s *memoryCaseStore) UpdateCase(_ context.Context, c *models.Case) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[c.CaseID]; !ok {
		return db.ErrCaseNotFound
	}
	c.LastUpdated = time.Now()
	s.cases[c.CaseID] = *c
	return nil
}

func (s *memoryCaseStore) DeleteCase(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[id]; !ok {
		return db.ErrCaseNotFound
	}
	delete(s.cases, id)
	return nil
}

func newAdminApp(store CaseStore) *fiber.App {
	h := NewAdminHandler(store, testConfig())
	app := newTestApp()
	app.Get("/admin", h.List)
	app.Get("/admin/add", h.New)
	app.Post("/admin/add", h.Create)
	app.Get("/admin/edit/:id", h.Edit)
	app.Post("/admin/edit/:id", h.Update)
	app.Post("/admin/delete/:id", h.Delete)
	return app
}

func validCaseForm(id string) url.Values {
	return url.Values{
		"case_id":        {id},
		"user_type":      {"شركة عمره"},
		"category":       {"تفعيل الحساب"},
		"main_keywords":  {"تفعيل, حساب\nتفعيل"},
		"extra_keywords": {"مشكلة"},
		"response_text":  {"تواصل مع الدعم"},
	}
}

func isRedirectTo(t *testing.T, status int, location, want string) {
	t.Helper()
	if status < 300 || status > 399 {
		t.Fatalf("expected redirect, got %d", status)
	}
	if location != want {
		t.Errorf("Location = %q, want %q", location, want)
	}
}

func TestCaseForm_ToCase(t *testing.T) {
	form := CaseForm{
		CaseID:           " TEST-010 ",
		UserType:         " شركة عمره ",
		MainKeywords:     "تفعيل\r\nحساب, تفعيل",
		NegativeKeywords: "",
		ResponseText:     " الحل ",
	}
	c := form.ToCase()
	if c.CaseID != "TEST-010" || c.ResponseText != "الحل" {
		t.Errorf("fields not trimmed: %+v", c)
	}
	if !reflect.DeepEqual(c.MainKeywords, []string{"تفعيل", "حساب"}) {
		t.Errorf("MainKeywords = %q", c.MainKeywords)
	}
	if c.NegativeKeywords != nil {
		t.Errorf("NegativeKeywords = %q, want nil", c.NegativeKeywords)
	}

	back := FormFromCase(c)
	if back.MainKeywords != "تفعيل\nحساب" {
		t.Errorf("FormFromCase().MainKeywords = %q", back.MainKeywords)
	}
}

func TestAdminHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		form       url.Values
		wantStatus int
		wantStored bool
	}{
		{"valid case", validCaseForm("TEST-010"), fiber.StatusSeeOther, true},
		{"missing main keywords", func() url.Values {
			f := validCaseForm("TEST-011")
			f.Set("main_keywords", " , ")
			return f
		}(), fiber.StatusBadRequest, false},
		{"invalid case id", validCaseForm("TEST 012"), fiber.StatusBadRequest, false},
		{"duplicate case id", validCaseForm("TEST-001"), fiber.StatusConflict, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryCaseStore(models.Case{CaseID: "TEST-001", Category: "قديم"})
			app := newAdminApp(store)

			resp, body := postForm(t, app, "/admin/add", tt.form)
			if tt.wantStatus == fiber.StatusSeeOther {
				isRedirectTo(t, resp.StatusCode, resp.Header.Get("Location"), "/admin")
			} else if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", resp.StatusCode, tt.wantStatus, body)
			}

			id := tt.form.Get("case_id")
			stored, err := store.GetCaseByID(context.Background(), id)
			if tt.wantStored {
				if err != nil {
					t.Fatalf("case %s not stored", id)
				}
				if !reflect.DeepEqual(stored.MainKeywords, []string{"تفعيل", "حساب"}) {
					t.Errorf("MainKeywords = %q", stored.MainKeywords)
				}
			} else if id == "TEST-001" && stored.Category != "قديم" {
				t.Error("duplicate create overwrote the existing case")
			}
		})
	}
}

func TestAdminHandler_Update(t *testing.T) {
	store := newMemoryCaseStore(models.Case{CaseID: "TEST-001", Category: "قديم", MainKeywords: []string{"قديم"}})
	app := newAdminApp(store)

	form := validCaseForm("IGNORED")
	form.Set("category", "جديد")
	resp, _ := postForm(t, app, "/admin/edit/TEST-001", form)
	isRedirectTo(t, resp.StatusCode, resp.Header.Get("Location"), "/admin")

	got, _ := store.GetCaseByID(context.Background(), "TEST-001")
	if got.Category != "جديد" {
		t.Errorf("Category = %q, want جديد", got.Category)
	}
	if _, err := store.GetCaseByID(context.Background(), "IGNORED"); err == nil {
		t.Error("posted case_id should not create a new case")
	}

	resp, _ = postForm(t, app, "/admin/edit/TEST-404", validCaseForm("TEST-404"))
	isRedirectTo(t, resp.StatusCode, resp.Header.Get("Location"), "/admin")

	bad := validCaseForm("TEST-001")
	bad.Set("response_text", "")
	resp, _ = postForm(t, app, "/admin/edit/TEST-001", bad)
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Errorf("invalid update status = %d, want 400", resp.StatusCode)
	}
}

func TestAdminHandler_EditAndDelete(t *testing.T) {
	store := newMemoryCaseStore(models.Case{
		CaseID:       "TEST-001",
		Category:     "تفعيل الحساب",
		MainKeywords: []string{"تفعيل", "حساب"},
		LastUpdated:  time.Now(),
	})
	app := newAdminApp(store)

	resp, body := getPage(t, app, "/admin/edit/TEST-001")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("edit status = %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "تفعيل\nحساب") {
		t.Error("edit form should list one keyword per line")
	}

	resp, _ = getPage(t, app, "/admin/edit/TEST-404")
	isRedirectTo(t, resp.StatusCode, resp.Header.Get("Location"), "/admin")

	resp, body = getPage(t, app, "/admin")
	if resp.StatusCode != fiber.StatusOK || !strings.Contains(body, "TEST-001") {
		t.Fatalf("list status = %d, body missing case", resp.StatusCode)
	}

	resp, _ = postForm(t, app, "/admin/delete/TEST-001", nil)
	isRedirectTo(t, resp.StatusCode, resp.Header.Get("Location"), "/admin")
	if _, err := store.GetCaseByID(context.Background(), "TEST-001"); err == nil {
		t.Error("case still present after delete")
	}

	resp, _ = postForm(t, app, "/admin/delete/TEST-001", nil)
	isRedirectTo(t, resp.StatusCode, resp.Header.Get("Location"), "/admin")
}

func TestAdminHandler_New(t *testing.T) {
	app := newAdminApp(newMemoryCaseStore())

	resp, body := getPage(t, app, "/admin/add")
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, body)
	}
	if !strings.Contains(body, "شركة عمره") {
		t.Error("add form should prefill the default user type")
	}
}
