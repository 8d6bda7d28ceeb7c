// file: internals/helpers/auth/locals.go
package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"escuelasegura_backend/internals/policy"
)

// Kunci c.Locals yang di-hydrate oleh middleware AuthJWT.
const (
	LocUserID   = "user_id"
	LocRole     = "role"
	LocSchoolID = "school_id"
	LocGrade    = "grade"
)

// ActorFromFiber membangun ActorContext dari locals. Kalau token tidak ada /
// rusak, hasilnya actor tidak ter-autentikasi — biar policy yang menolak.
func ActorFromFiber(c *fiber.Ctx) policy.ActorContext {
	userID, okUser := localUUID(c, LocUserID)
	schoolID, _ := localUUID(c, LocSchoolID)
	role := localString(c, LocRole)

	return policy.ActorContext{
		Authenticated: okUser && role != "",
		UserID:        userID,
		Role:          role,
		SchoolID:      schoolID,
		Grade:         localString(c, LocGrade),
	}
}

func localString(c *fiber.Ctx, key string) string {
	if v, ok := c.Locals(key).(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func localUUID(c *fiber.Ctx, key string) (uuid.UUID, bool) {
	s := localString(c, key)
	if s == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
