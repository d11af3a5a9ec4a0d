package controller

import (
	"edu-assistant-be/internal/dto"
	"edu-assistant-be/internal/pkg/serverutils"
	"edu-assistant-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITutoringController interface {
	RegisterRoutes(r fiber.Router)
	GetSessions(ctx *fiber.Ctx) error
	EndActiveSession(ctx *fiber.Ctx) error
	RateDifficulty(ctx *fiber.Ctx) error
}

type tutoringController struct {
	tutoringService service.ITutoringService
}

func NewTutoringController(tutoringService service.ITutoringService) ITutoringController {
	return &tutoringController{
		tutoringService: tutoringService,
	}
}

func (c *tutoringController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/tutoring/v1")
	h.Post("rate-difficulty", serverutils.OptionalJwtMiddleware, c.RateDifficulty)
	h.Use(serverutils.JwtMiddleware) // Session history is learner-only
	h.Get("sessions", c.GetSessions)
	h.Post("sessions/end", c.EndActiveSession)
}

func (c *tutoringController) GetSessions(ctx *fiber.Ctx) error {
	learnerId := learnerIdFromCtx(ctx)
	if learnerId == uuid.Nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Missing learner identity"))
	}

	res, err := c.tutoringService.GetSessions(ctx.Context(), learnerId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get tutoring sessions", res))
}

func (c *tutoringController) EndActiveSession(ctx *fiber.Ctx) error {
	learnerId := learnerIdFromCtx(ctx)
	if learnerId == uuid.Nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Missing learner identity"))
	}

	if err := c.tutoringService.EndActiveSession(ctx.Context(), learnerId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success end tutoring session", nil))
}

func (c *tutoringController) RateDifficulty(ctx *fiber.Ctx) error {
	var req dto.RateDifficultyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.tutoringService.RateDifficulty(ctx.Context(), &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success rate difficulty", nil))
}
