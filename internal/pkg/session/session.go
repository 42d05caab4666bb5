// Package session issues and reads the signed cookie token that carries a
// user's identity between requests. The token is stateless: everything the
// server needs is inside the signed payload, there is no session table.
// The flip side is that individual tokens cannot be revoked before expiry.
package session

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const CookieName = "__session"

const (
	defaultTTL  = 24 * time.Hour
	rememberTTL = 30 * 24 * time.Hour
)

type Manager struct {
	secret []byte
}

// NewManager takes the signing secret explicitly so tests can inject a fixed
// key; nothing below this constructor reads the environment.
func NewManager(secret string) *Manager {
	return &Manager{secret: []byte(secret)}
}

func ttl(remember bool) time.Duration {
	if remember {
		return rememberTTL
	}
	return defaultTTL
}

// Issue signs a token embedding the user id and an expiry.
func (m *Manager) Issue(userId uuid.UUID, remember bool) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(ttl(remember)).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Read resolves a token back to a user id. Missing, malformed, tampered and
// expired tokens all resolve to (zero, false); none of them are errors.
func (m *Manager) Read(tokenStr string) (uuid.UUID, bool) {
	if tokenStr == "" {
		return uuid.Nil, false
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}
	idStr, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, false
	}
	userId, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return userId, true
}

// Cookie wraps a token in the session cookie directive.
func (m *Manager) Cookie(token string, remember bool) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(ttl(remember)),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// ClearCookie produces the directive that removes the session client-side.
func (m *Manager) ClearCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// FromRequest reads the user id straight from a request's session cookie.
func (m *Manager) FromRequest(ctx *fiber.Ctx) (uuid.UUID, bool) {
	return m.Read(ctx.Cookies(CookieName))
}
