package controller

import (
	"strconv"

	"edu-assistant-be/internal/pkg/serverutils"
	"edu-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService service.INoteService
}

func NewNoteController(noteService service.INoteService) INoteController {
	return &noteController{
		noteService: noteService,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/note/v1")
	h.Get("", c.List)
	h.Delete(":id", c.Delete)
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	sessionIdParam := ctx.Query("session_id", "")
	sessionId, err := uuid.Parse(sessionIdParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid or missing session_id")
	}

	var page *int
	if pageParam := ctx.Query("page", ""); pageParam != "" {
		n, err := strconv.Atoi(pageParam)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid page")
		}
		page = &n
	}

	res, err := c.noteService.ListBySession(ctx.Context(), sessionId, page)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notes", res))
}

func (c *noteController) Delete(ctx *fiber.Ctx) error {
	idParam := ctx.Params("id")
	id, err := uuid.Parse(idParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid note id")
	}

	if err := c.noteService.Delete(ctx.Context(), id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete note", nil))
}
