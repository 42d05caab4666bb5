package controller

import (
	"rockspec-notes/internal/dto"
	"rockspec-notes/internal/entity"
	"rockspec-notes/internal/pkg/apperr"
	"rockspec-notes/internal/pkg/serverutils"
	"rockspec-notes/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router, guard *serverutils.AuthGuard)
	List(ctx *fiber.Ctx) error
	NewPage(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Action(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router, guard *serverutils.AuthGuard) {
	notes := r.Group("/notes")
	notes.Use(guard.RequireUser)
	notes.Get("", c.List)
	notes.Get("/new", c.NewPage)
	notes.Post("/new", c.Create)
	notes.Get("/:noteId", c.Show)
	notes.Post("/:noteId", c.Action)

	r.Get("/preview/:preview", guard.OptionalUser, c.Preview)
}

// noteIdParam parses the route id. A malformed id cannot name any note, so
// it collapses into the same NotFound as an unknown one.
func noteIdParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperr.ErrNotFound
	}
	return id, nil
}

func toNoteResponse(n *entity.Note) dto.NoteResponse {
	return dto.NoteResponse{
		Id:        n.Id,
		Title:     n.Title,
		Body:      n.Body,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	userId, _ := serverutils.UserId(ctx)

	summaries, err := c.noteService.ListByOwner(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{"notes": summaries})
}

func (c *noteController) NewPage(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{})
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	userId, _ := serverutils.UserId(ctx)

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	note, err := c.noteService.Create(ctx.Context(), userId, req.Title, req.Body)
	if err != nil {
		return err
	}

	return ctx.Redirect("/notes/"+note.Id.String(), fiber.StatusFound)
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	userId, _ := serverutils.UserId(ctx)

	id, err := noteIdParam(ctx, "noteId")
	if err != nil {
		return err
	}

	note, err := c.noteService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(toNoteResponse(note))
}

func (c *noteController) Action(ctx *fiber.Ctx) error {
	userId, _ := serverutils.UserId(ctx)

	id, err := noteIdParam(ctx, "noteId")
	if err != nil {
		return err
	}

	var req dto.NoteActionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	switch req.Mode {
	case dto.ModeUpdateNote:
		if _, err := c.noteService.Update(ctx.Context(), userId, id, req.Title, req.Body); err != nil {
			return err
		}
		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
			"messages": "Note updated successfully",
		})

	case dto.ModeDeleteNote:
		if err := c.noteService.Delete(ctx.Context(), userId, id); err != nil {
			return err
		}
		return ctx.Redirect("/notes", fiber.StatusFound)

	default:
		return apperr.NewValidation("mode", "Mode is invalid")
	}
}

func (c *noteController) Preview(ctx *fiber.Ctx) error {
	id, err := noteIdParam(ctx, "preview")
	if err != nil {
		return err
	}

	note, err := c.noteService.ShowPublic(ctx.Context(), id)
	if err != nil {
		return err
	}

	_, authenticated := serverutils.UserId(ctx)
	return ctx.JSON(dto.PreviewResponse{
		Authenticated: authenticated,
		Note:          toNoteResponse(note),
	})
}
