package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"callhelper/internal/config"
	"callhelper/internal/models"
)

// Session keys written by the OIDC callback.
const (
	SessionUserSub       = "user_sub"
	SessionUserEmail     = "user_email"
	SessionUserName      = "user_name"
	SessionRedirectAfter = "redirect_after_login"
)

// LocalsUser is the fiber.Ctx locals key holding the *models.AdminUser.
const LocalsUser = "user"

// AuthMiddleware guards the admin pages using the web session.
type AuthMiddleware struct {
	cfg *config.Config
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// RequireAdmin ensures an allowed operator is signed in, redirecting to
// /auth/login if not. Admin pages are open when OIDC is not configured.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	if !m.cfg.IsAuthEnabled() {
		return c.Next()
	}

	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session not available")
	}

	user := userFromSession(sess)
	if user == nil {
		sess.Set(SessionRedirectAfter, c.OriginalURL())
		return c.Redirect().To("/auth/login")
	}

	if !m.cfg.IsAdminEmail(user.Email) {
		return fiber.NewError(fiber.StatusForbidden, "غير مصرح لك بالدخول إلى لوحة الإدارة")
	}

	c.Locals(LocalsUser, user)
	return c.Next()
}

// LoadAdmin loads the signed-in operator if there is one, but doesn't
// require authentication.
func (m *AuthMiddleware) LoadAdmin(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return c.Next()
	}
	if user := userFromSession(sess); user != nil {
		c.Locals(LocalsUser, user)
	}
	return c.Next()
}

// CurrentUser returns the operator stored by RequireAdmin or LoadAdmin.
func CurrentUser(c fiber.Ctx) *models.AdminUser {
	user, _ := c.Locals(LocalsUser).(*models.AdminUser)
	return user
}

func userFromSession(sess *session.Middleware) *models.AdminUser {
	sub, _ := sess.Get(SessionUserSub).(string)
	if sub == "" {
		return nil
	}
	email, _ := sess.Get(SessionUserEmail).(string)
	name, _ := sess.Get(SessionUserName).(string)
	return &models.AdminUser{Sub: sub, Email: email, Name: name}
}
