package serverutils

import (
	"rockspec-notes/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userIdLocal = "user_id"

// AuthGuard derives the current identity from the session cookie. It only
// reads the incoming request; issuing and clearing cookies stays with the
// auth handlers.
type AuthGuard struct {
	sessions *session.Manager
}

func NewAuthGuard(sessions *session.Manager) *AuthGuard {
	return &AuthGuard{sessions: sessions}
}

// OptionalUser resolves the user id into locals when a valid session is
// present. Absent or invalid sessions are not an error here.
func (g *AuthGuard) OptionalUser(ctx *fiber.Ctx) error {
	if userId, ok := g.sessions.FromRequest(ctx); ok {
		ctx.Locals(userIdLocal, userId)
	}
	return ctx.Next()
}

// RequireUser redirects to the login page when no valid session identity
// resolves, carrying the original path so login can send the user back.
func (g *AuthGuard) RequireUser(ctx *fiber.Ctx) error {
	userId, ok := g.sessions.FromRequest(ctx)
	if !ok {
		return ctx.Redirect("/login?redirectTo="+ctx.Path(), fiber.StatusFound)
	}
	ctx.Locals(userIdLocal, userId)
	return ctx.Next()
}

// UserId returns the identity a guard middleware stored for this request.
func UserId(ctx *fiber.Ctx) (uuid.UUID, bool) {
	userId, ok := ctx.Locals(userIdLocal).(uuid.UUID)
	return userId, ok
}
