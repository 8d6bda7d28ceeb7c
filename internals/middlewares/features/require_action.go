package features

import (
	"github.com/gofiber/fiber/v2"

	helper "escuelasegura_backend/internals/helpers"
	helperAuth "escuelasegura_backend/internals/helpers/auth"
	"escuelasegura_backend/internals/policy"
)

// RequireAction menjalankan policy engine di level route (tanpa resource).
// Cek tenant/ownership per baris tetap dilakukan di controller, dengan
// resource yang sudah diambil dari DB.
func RequireAction(action policy.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor := helperAuth.ActorFromFiber(c)
		return ApplyDecision(c, policy.Authorize(actor, action, nil))
	}
}

// ApplyDecision menerjemahkan Decision ke response HTTP. Client browser
// (Accept: text/html) dapat redirect 303 sesuai target Deny; client API
// dapat JSON 401/403. Keduanya diturunkan dari Decision yang sama.
func ApplyDecision(c *fiber.Ctx, d policy.Decision) error {
	if d.Allowed {
		return c.Next()
	}
	return WriteDeny(c, d)
}

// WriteDeny dipakai controller saat Deny terjadi setelah resource di-load.
func WriteDeny(c *fiber.Ctx, d policy.Decision) error {
	if d.Allowed {
		return nil
	}
	if acceptsHTML(c) {
		return c.Redirect(d.RedirectTo, fiber.StatusSeeOther)
	}
	status := fiber.StatusForbidden
	if d.RedirectTo == policy.RedirectLogin {
		status = fiber.StatusUnauthorized
	}
	return helper.JsonError(c, status, d.Reason)
}

func acceptsHTML(c *fiber.Ctx) bool {
	return c.Accepts("application/json", "text/html") == "text/html"
}
