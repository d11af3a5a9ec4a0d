package controller

import (
	"edu-assistant-be/internal/dto"
	"edu-assistant-be/internal/pkg/serverutils"
	"edu-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
}

func NewAssistantController(assistantService service.IAssistantService) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	s := r.Group("/session/v1")
	s.Post("", c.CreateSession)

	h := r.Group("/assistant/v1")
	h.Use(serverutils.OptionalJwtMiddleware) // Guests allowed, learners recognized
	h.Post("message", c.SendMessage)
	h.Get(":session_id/history", c.GetHistory)
}

func (c *assistantController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.assistantService.CreateSession(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *assistantController) SendMessage(ctx *fiber.Ctx) error {
	learnerId := learnerIdFromCtx(ctx)

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.assistantService.SendMessage(ctx.Context(), learnerId, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Session not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *assistantController) GetHistory(ctx *fiber.Ctx) error {
	sessionIdParam := ctx.Params("session_id")
	sessionId, err := uuid.Parse(sessionIdParam)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}

	res, err := c.assistantService.GetHistory(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get history", res))
}

// learnerIdFromCtx reads the optional learner id set by the JWT
// middleware. Guests get uuid.Nil.
func learnerIdFromCtx(ctx *fiber.Ctx) uuid.UUID {
	raw := ctx.Locals("learner_id")
	if raw == nil {
		return uuid.Nil
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.Nil
	}
	learnerId, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil
	}
	return learnerId
}
