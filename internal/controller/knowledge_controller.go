package controller

import (
	"huddleup-faq-be/internal/pkg/serverutils"
	"huddleup-faq-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
	Search(ctx *fiber.Ctx) error
	ListDocuments(ctx *fiber.Ctx) error
}

type knowledgeController struct {
	faqService service.IFaqService
}

func NewKnowledgeController(faqService service.IFaqService) IKnowledgeController {
	return &knowledgeController{
		faqService: faqService,
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	r.Get("/knowledge-base/search", c.Search)
	r.Get("/documents", c.ListDocuments)
}

func (c *knowledgeController) Search(ctx *fiber.Ctx) error {
	q, err := requireQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.faqService.SearchKnowledgeBase(ctx.UserContext(), q)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search knowledge base", res))
}

func (c *knowledgeController) ListDocuments(ctx *fiber.Ctx) error {
	res, err := c.faqService.ListDocuments(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list documents", res))
}
