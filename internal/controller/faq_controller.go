package controller

import (
	"strings"

	"huddleup-faq-be/internal/dto"
	"huddleup-faq-be/internal/pkg/serverutils"
	"huddleup-faq-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFaqController interface {
	RegisterRoutes(r fiber.Router)
	Ask(ctx *fiber.Ctx) error
	SemanticSearch(ctx *fiber.Ctx) error
	ListEntries(ctx *fiber.Ctx) error
	CreateEntry(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type faqController struct {
	faqService service.IFaqService
}

func NewFaqController(faqService service.IFaqService) IFaqController {
	return &faqController{
		faqService: faqService,
	}
}

func (c *faqController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/faq")
	h.Post("ask", c.Ask)
	h.Post("semantic-search", c.SemanticSearch)
	h.Get("entries", c.ListEntries)
	h.Post("entries", c.CreateEntry)
	h.Post("add-with-embedding", c.CreateEntry)
	h.Get("search", c.Search)
}

func parseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return serverutils.ValidateRequest(out)
}

func requireQuery(ctx *fiber.Ctx) (string, error) {
	q := strings.TrimSpace(ctx.Query("q"))
	if q == "" {
		return "", fiber.NewError(fiber.StatusBadRequest, "Search query is required")
	}
	return q, nil
}

func (c *faqController) Ask(ctx *fiber.Ctx) error {
	var req dto.AskRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.faqService.Ask(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success answer question", res))
}

func (c *faqController) SemanticSearch(ctx *fiber.Ctx) error {
	var req dto.SemanticSearchRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.faqService.SemanticSearch(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success semantic search", res))
}

func (c *faqController) ListEntries(ctx *fiber.Ctx) error {
	res, err := c.faqService.ListFaqs(ctx.UserContext(), ctx.Query("category"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list faq entries", res))
}

func (c *faqController) CreateEntry(ctx *fiber.Ctx) error {
	var req dto.CreateFaqRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.faqService.CreateFaq(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("FAQ entry created", res))
}

func (c *faqController) Search(ctx *fiber.Ctx) error {
	q, err := requireQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.faqService.SearchFaqs(ctx.UserContext(), q)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search faq entries", res))
}
