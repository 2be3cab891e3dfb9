package controller

import (
	"legal-intake-be/internal/pkg/serverutils"
	"legal-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	AnalyzeStrength(ctx *fiber.Ctx) error
	Strength(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type documentController struct {
	documentService service.IDocumentService
	intakeService   service.IIntakeService
}

func NewDocumentController(documentService service.IDocumentService, intakeService service.IIntakeService) IDocumentController {
	return &documentController{
		documentService: documentService,
		intakeService:   intakeService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post(":caseId/generate", c.Generate)
	h.Post(":caseId/analyze-strength", c.AnalyzeStrength)
	h.Get(":caseId/strength", c.Strength)
	h.Get(":caseId/download/:format", c.Download)
}

// Generate goes through the intake service: a live session re-checks the
// validation gate before calling the drafting backend.
func (c *documentController) Generate(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.intakeService.Generate(ctx.Context(), userId, ctx.Params("caseId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate document", res))
}

func (c *documentController) AnalyzeStrength(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	caseId, _ := uuid.Parse(ctx.Params("caseId"))

	res, err := c.documentService.AnalyzeStrength(ctx.Context(), userId, caseId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze case strength", res))
}

func (c *documentController) Strength(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	caseId, _ := uuid.Parse(ctx.Params("caseId"))

	res, err := c.documentService.LatestStrength(ctx.Context(), userId, caseId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get latest strength report", res))
}

func (c *documentController) Download(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	caseId, _ := uuid.Parse(ctx.Params("caseId"))

	content, filename, err := c.documentService.Download(ctx.Context(), userId, caseId, ctx.Params("format"))
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	ctx.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return ctx.Send(content)
}
