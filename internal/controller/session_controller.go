package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/namhkse/recomending-system/internal/dto"
	"github.com/namhkse/recomending-system/internal/pkg/serverutils"
	"github.com/namhkse/recomending-system/internal/service"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Recommend(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.IRecommendationService
}

func NewSessionController(service service.IRecommendationService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Post("", c.Create)

	protected := h.Group("")
	protected.Use(serverutils.JwtMiddleware)
	protected.Get("/me", c.Show)
	protected.Delete("/me", c.Delete)
	protected.Post("/me/recommend", c.Recommend)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSession(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	sessionId, _ := ctx.Locals("session_id").(string)

	res, err := c.service.GetSession(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) Delete(ctx *fiber.Ctx) error {
	sessionId, _ := ctx.Locals("session_id").(string)

	if err := c.service.DeleteSession(ctx.Context(), sessionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *sessionController) Recommend(ctx *fiber.Ctx) error {
	sessionId, _ := ctx.Locals("session_id").(string)

	var req dto.RecommendRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Recommend(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success recommend", res))
}
