package controller

import (
	"voicenote-be/internal/pkg/serverutils"
	"voicenote-be/internal/service"
	ws "voicenote-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IAssistantController interface {
	RegisterRoutes(r fiber.Router)
	Connect() fiber.Handler
	History(ctx *fiber.Ctx) error
	Models(ctx *fiber.Ctx) error
}

type assistantController struct {
	assistantService service.IAssistantService
	hub              *ws.Hub
	jwtMiddleware    fiber.Handler
}

func NewAssistantController(assistantService service.IAssistantService, hub *ws.Hub, jwtMiddleware fiber.Handler) IAssistantController {
	return &assistantController{
		assistantService: assistantService,
		hub:              hub,
		jwtMiddleware:    jwtMiddleware,
	}
}

func (c *assistantController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/assistant/v1")
	h.Use(c.jwtMiddleware)
	h.Get("history", c.History)
	h.Get("models", c.Models)

	h.Use("ws", func(ctx *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(ctx) {
			return ctx.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	h.Get("ws", c.Connect())
}

// Connect upgrades the request and parks the connection on the hub.
func (c *assistantController) Connect() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIdStr, _ := conn.Locals("user_id").(string)
		userId, err := uuid.Parse(userIdStr)
		if err != nil {
			conn.Close()
			return
		}
		ws.ServeWs(c.hub, conn, userId)
	})
}

func (c *assistantController) History(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.assistantService.SessionDump(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session data", res))
}

func (c *assistantController) Models(ctx *fiber.Ctx) error {
	userId, err := userIdFromCtx(ctx)
	if err != nil {
		return err
	}

	res, err := c.assistantService.Models(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get models", res))
}

// userIdFromCtx parses the authenticated identity. A token whose user_id
// claim is not a UUID must not fall through to some shared zero-value
// session, so a bad claim is a 401 rather than a parse shrug.
func userIdFromCtx(ctx *fiber.Ctx) (uuid.UUID, error) {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "invalid user identity")
	}
	return userId, nil
}
