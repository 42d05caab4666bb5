package controller

import (
	"strings"

	"rockspec-notes/internal/dto"
	"rockspec-notes/internal/pkg/serverutils"
	"rockspec-notes/internal/pkg/session"
	"rockspec-notes/internal/pkg/throttle"
	"rockspec-notes/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, guard *serverutils.AuthGuard)
	Home(ctx *fiber.Ctx) error
	JoinPage(ctx *fiber.Ctx) error
	Join(ctx *fiber.Ctx) error
	LoginPage(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
}

type authController struct {
	service  service.IAuthService
	sessions *session.Manager
	throttle *throttle.LoginThrottle
}

func NewAuthController(service service.IAuthService, sessions *session.Manager, throttle *throttle.LoginThrottle) IAuthController {
	return &authController{
		service:  service,
		sessions: sessions,
		throttle: throttle,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router, guard *serverutils.AuthGuard) {
	r.Get("/", guard.OptionalUser, c.Home)
	r.Get("/join", guard.OptionalUser, c.JoinPage)
	r.Post("/join", c.Join)
	r.Get("/login", guard.OptionalUser, c.LoginPage)
	r.Post("/login", c.Login)
	r.Post("/logout", c.Logout)
	r.Get("/logout", func(ctx *fiber.Ctx) error {
		return ctx.Redirect("/", fiber.StatusFound)
	})
}

// safeRedirect keeps post-auth redirects on-site. Anything that is not a
// local path falls back.
func safeRedirect(to, fallback string) string {
	if to == "" || !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") {
		return fallback
	}
	return to
}

func (c *authController) Home(ctx *fiber.Ctx) error {
	if userId, ok := serverutils.UserId(ctx); ok {
		return ctx.JSON(fiber.Map{
			"authenticated": true,
			"userId":        userId,
		})
	}
	return ctx.JSON(fiber.Map{"authenticated": false})
}

func (c *authController) JoinPage(ctx *fiber.Ctx) error {
	if _, ok := serverutils.UserId(ctx); ok {
		return ctx.Redirect("/notes", fiber.StatusFound)
	}
	return ctx.JSON(fiber.Map{})
}

func (c *authController) Join(ctx *fiber.Ctx) error {
	var req dto.JoinRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if !c.throttle.Allow(ctx.Context(), req.Email, ctx.IP()) {
		return ctx.Status(fiber.StatusTooManyRequests).
			JSON(serverutils.FieldErrors("email", "Too many attempts, try again later"))
	}

	user, err := c.service.Join(ctx.Context(), &req)
	if err != nil {
		return err
	}

	c.throttle.Reset(ctx.Context(), req.Email, ctx.IP())

	token, err := c.sessions.Issue(user.Id, req.Remember)
	if err != nil {
		return err
	}
	ctx.Cookie(c.sessions.Cookie(token, req.Remember))

	return ctx.Redirect(safeRedirect(req.RedirectTo, "/notes"), fiber.StatusFound)
}

func (c *authController) LoginPage(ctx *fiber.Ctx) error {
	if _, ok := serverutils.UserId(ctx); ok {
		return ctx.Redirect("/notes", fiber.StatusFound)
	}
	return ctx.JSON(fiber.Map{})
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if !c.throttle.Allow(ctx.Context(), req.Email, ctx.IP()) {
		return ctx.Status(fiber.StatusTooManyRequests).
			JSON(serverutils.FieldErrors("email", "Too many attempts, try again later"))
	}

	user, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}

	c.throttle.Reset(ctx.Context(), req.Email, ctx.IP())

	token, err := c.sessions.Issue(user.Id, req.Remember)
	if err != nil {
		return err
	}
	ctx.Cookie(c.sessions.Cookie(token, req.Remember))

	return ctx.Redirect(safeRedirect(req.RedirectTo, "/notes"), fiber.StatusFound)
}

func (c *authController) Logout(ctx *fiber.Ctx) error {
	ctx.Cookie(c.sessions.ClearCookie())
	return ctx.Redirect("/", fiber.StatusFound)
}
