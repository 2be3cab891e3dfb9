package controller

import (
	"legal-intake-be/internal/dto"
	"legal-intake-be/internal/pkg/serverutils"
	"legal-intake-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICaseController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	UpdateFields(ctx *fiber.Ctx) error
	CriticalFields(ctx *fiber.Ctx) error
	Conversation(ctx *fiber.Ctx) error
}

type caseController struct {
	caseService   service.ICaseService
	intakeService service.IIntakeService
}

func NewCaseController(caseService service.ICaseService, intakeService service.IIntakeService) ICaseController {
	return &caseController{
		caseService:   caseService,
		intakeService: intakeService,
	}
}

func (c *caseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/case/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Delete(":id", c.Delete)
	h.Patch(":id/fields", c.UpdateFields)
	h.Get(":id/critical-fields", c.CriticalFields)
	h.Get(":id/conversation", c.Conversation)
}

func (c *caseController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.caseService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list cases", res))
}

func (c *caseController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.caseService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get case", res))
}

func (c *caseController) Delete(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.caseService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete case", fiber.Map{}))
}

// UpdateFields routes through the intake service so that edits made during a
// live session pick up the debounced autosave instead of writing directly.
func (c *caseController) UpdateFields(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.UpdateCaseFieldsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.intakeService.EditFields(ctx.Context(), userId, ctx.Params("id"), req.Fields)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update case fields", res))
}

func (c *caseController) CriticalFields(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.caseService.Validate(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success validate case", res))
}

func (c *caseController) Conversation(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.caseService.GetConversation(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get conversation", res))
}
