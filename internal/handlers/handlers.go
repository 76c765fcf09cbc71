package handlers

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
)

// Flash kinds rendered by the admin templates.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

const (
	flashKindKey    = "flash_kind"
	flashMessageKey = "flash_message"
)

// setFlash stores a one-shot message in the web session.
func setFlash(c fiber.Ctx, kind, message string) {
	sess := session.FromContext(c)
	if sess == nil {
		return
	}
	sess.Set(flashKindKey, kind)
	sess.Set(flashMessageKey, message)
}

// popFlash adds and clears the pending flash message, if any.
func popFlash(c fiber.Ctx, data fiber.Map) fiber.Map {
	sess := session.FromContext(c)
	if sess == nil {
		return data
	}
	message, _ := sess.Get(flashMessageKey).(string)
	if message == "" {
		return data
	}
	kind, _ := sess.Get(flashKindKey).(string)
	sess.Delete(flashKindKey)
	sess.Delete(flashMessageKey)
	data["FlashKind"] = kind
	data["FlashMessage"] = message
	return data
}
