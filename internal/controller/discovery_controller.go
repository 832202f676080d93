package controller

import (
	"huddleup-faq-be/internal/dto"
	"huddleup-faq-be/internal/pkg/serverutils"
	"huddleup-faq-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDiscoveryController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Profile(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type discoveryController struct {
	faqService service.IFaqService
}

func NewDiscoveryController(faqService service.IFaqService) IDiscoveryController {
	return &discoveryController{
		faqService: faqService,
	}
}

func (c *discoveryController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/faq")
	h.Post("discovery", c.Chat)
	h.Get("discovery/profile/:session_id", c.Profile)
	h.Get("history/:session_id", c.History)
}

func (c *discoveryController) Chat(ctx *fiber.Ctx) error {
	var req dto.DiscoveryRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.faqService.Discover(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success discovery reply", res))
}

func (c *discoveryController) Profile(ctx *fiber.Ctx) error {
	res, err := c.faqService.Profile(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze profile", res))
}

func (c *discoveryController) History(ctx *fiber.Ctx) error {
	res, err := c.faqService.History(ctx.UserContext(), ctx.Params("session_id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}
