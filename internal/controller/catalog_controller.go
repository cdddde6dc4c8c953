package controller

import (
	"github.com/gofiber/fiber/v2"

	"github.com/namhkse/recomending-system/internal/dto"
	"github.com/namhkse/recomending-system/internal/pkg/serverutils"
	"github.com/namhkse/recomending-system/internal/service"
	"github.com/namhkse/recomending-system/pkg/catalog"
)

type ICatalogController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Upsert(ctx *fiber.Ctx) error
	Seed(ctx *fiber.Ctx) error
}

type catalogController struct {
	service service.ICatalogService
}

func NewCatalogController(service service.ICatalogService) ICatalogController {
	return &catalogController{service: service}
}

func (c *catalogController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Get("/products", c.GetAll)
	h.Put("/products", c.Upsert)
	h.Post("/seed", c.Seed)
}

func (c *catalogController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get catalog", res))
}

func (c *catalogController) Upsert(ctx *fiber.Ctx) error {
	var req dto.UpsertProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.service.Upsert(ctx.Context(), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success upsert product", nil))
}

// Seed loads the built-in sample catalog. Intended for demos and local
// development.
func (c *catalogController) Seed(ctx *fiber.Ctx) error {
	if err := c.service.Seed(ctx.Context(), catalog.Sample()); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success seed catalog", nil))
}
