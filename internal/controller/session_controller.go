package controller

import (
	"os"

	"legal-intake-be/internal/dto"
	"legal-intake-be/internal/pkg/logger"
	"legal-intake-be/internal/pkg/serverutils"
	"legal-intake-be/internal/service"
	internalWS "legal-intake-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Status(ctx *fiber.Ctx) error
	SetMute(ctx *fiber.Ctx) error
	Shortcut(ctx *fiber.Ctx) error
	MediaEvent(ctx *fiber.Ctx) error
	TranscriptEvent(ctx *fiber.Ctx) error
	Transcript(ctx *fiber.Ctx) error
	Finalize(ctx *fiber.Ctx) error
	Abandon(ctx *fiber.Ctx) error
	Reset(ctx *fiber.Ctx) error
}

type sessionController struct {
	intakeService service.IIntakeService
	hub           *internalWS.Hub
	logger        logger.ILogger
}

func NewSessionController(intakeService service.IIntakeService, hub *internalWS.Hub, log logger.ILogger) ISessionController {
	return &sessionController{
		intakeService: intakeService,
		hub:           hub,
		logger:        log,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	// The websocket handshake carries the token itself (query param or header),
	// so it is registered outside the JWT middleware.
	h.Get(":caseId/transcript/ws", c.serveTranscriptWs)

	h.Use(serverutils.JwtMiddleware)
	h.Post("start", c.Start)
	h.Get(":caseId/status", c.Status)
	h.Post(":caseId/mute", c.SetMute)
	h.Post(":caseId/shortcut", c.Shortcut)
	h.Post(":caseId/media-events", c.MediaEvent)
	h.Post(":caseId/transcript-events", c.TranscriptEvent)
	h.Get(":caseId/transcript", c.Transcript)
	h.Post(":caseId/finalize", c.Finalize)
	h.Post(":caseId/abandon", c.Abandon)
	h.Post(":caseId/reset", c.Reset)
}

func (c *sessionController) Start(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.intakeService.Start(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start session", res))
}

func (c *sessionController) Status(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.intakeService.Status(ctx.Context(), userId, ctx.Params("caseId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session status", res))
}

func (c *sessionController) SetMute(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.SetMuteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.intakeService.SetMute(ctx.Context(), userId, ctx.Params("caseId"), req.Muted)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set mute", res))
}

func (c *sessionController) Shortcut(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.ShortcutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.intakeService.Shortcut(ctx.Context(), userId, ctx.Params("caseId"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success apply shortcut", res))
}

func (c *sessionController) MediaEvent(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.MediaEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.intakeService.MediaEvent(ctx.Context(), userId, ctx.Params("caseId"), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record media event", fiber.Map{}))
}

func (c *sessionController) TranscriptEvent(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.TranscriptEventRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.intakeService.TranscriptEvent(ctx.Context(), userId, ctx.Params("caseId"), &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success record transcript event", fiber.Map{}))
}

func (c *sessionController) Transcript(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.intakeService.Transcript(ctx.Context(), userId, ctx.Params("caseId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get transcript", res))
}

func (c *sessionController) Finalize(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.intakeService.Finalize(ctx.Context(), userId, ctx.Params("caseId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success finalize session", res))
}

func (c *sessionController) Abandon(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.intakeService.Abandon(ctx.Context(), userId, ctx.Params("caseId")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success abandon session", fiber.Map{}))
}

func (c *sessionController) Reset(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	if err := c.intakeService.Reset(ctx.Context(), userId, ctx.Params("caseId")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reset session", fiber.Map{}))
}

// serveTranscriptWs upgrades a live-transcript viewer connection. Browsers
// cannot set headers on websocket handshakes, so the token may arrive as a
// query param instead of the Authorization header.
func (c *sessionController) serveTranscriptWs(ctx *fiber.Ctx) error {
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.logger.Warn("SessionController", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}

	userIdStr, ok := claims["user_id"].(string)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}

	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID format in token"})
	}

	caseId := ctx.Params("caseId")
	if !c.intakeService.HasViewableSession(userId, caseId) {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No active session for this case"})
	}

	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(func(conn *websocket.Conn) {
			c.logger.Info("SessionController", "Starting transcript WS session", map[string]interface{}{"case_id": caseId, "user_id": userId})
			internalWS.ServeWs(c.hub, conn, caseId)
			c.logger.Info("SessionController", "Transcript WS session ended", map[string]interface{}{"case_id": caseId})
		})(ctx)
	}
	return fiber.ErrUpgradeRequired
}
