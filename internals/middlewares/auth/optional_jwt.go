package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	helperAuth "escuelasegura_backend/internals/helpers/auth"
)

// OptionalAuthJWT: hydrate locals kalau ada token valid, tapi TIDAK pernah
// menolak request. Dipakai di halaman publik login/register supaya actor
// yang sudah login bisa di-redirect ke dashboard (rule 1 policy).
func OptionalAuthJWT(secret string) fiber.Handler {
	secret = strings.TrimSpace(secret)

	return func(c *fiber.Ctx) error {
		raw := ""
		if authz := strings.TrimSpace(c.Get(fiber.HeaderAuthorization)); strings.HasPrefix(strings.ToLower(authz), "bearer ") {
			raw = strings.TrimSpace(authz[7:])
		} else {
			raw = strings.TrimSpace(c.Cookies("access_token"))
		}
		if raw == "" || secret == "" {
			return c.Next()
		}

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return []byte(secret), nil
		})
		if err != nil || !tok.Valid {
			return c.Next()
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			return c.Next()
		}

		if v := strClaim(claims, "sub"); v != "" {
			c.Locals(helperAuth.LocUserID, v)
		}
		if v := strClaim(claims, "role"); v != "" {
			c.Locals(helperAuth.LocRole, v)
		}
		if v := strClaim(claims, "school_id"); v != "" {
			c.Locals(helperAuth.LocSchoolID, v)
		}
		if v := strClaim(claims, "grade"); v != "" {
			c.Locals(helperAuth.LocGrade, v)
		}
		return c.Next()
	}
}
