package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"career-dash/internal/logging"
	"career-dash/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type TokenValidator interface {
	ValidateAccessToken(tokenString string) (jwt.Claims, error)
}

type Handler struct {
	ctx       context.Context
	hub       *Hub
	tokens    TokenValidator
	factories map[string]BoardFactory
	logger    logrus.FieldLogger
}

// NewHandler builds the dashboard websocket endpoint. ctx bounds the lifetime
// of every session it opens.
func NewHandler(ctx context.Context, hub *Hub, tokens TokenValidator, factories map[string]BoardFactory, logger logrus.FieldLogger) *Handler {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Handler{ctx: ctx, hub: hub, tokens: tokens, factories: factories, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func (h *Handler) HandleDashboardWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil || h.tokens == nil {
		return fiber.ErrServiceUnavailable
	}

	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		return fiber.ErrUnauthorized
	}
	claims, err := h.tokens.ValidateAccessToken(token)
	if err != nil {
		return fiber.ErrUnauthorized
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Errorf("[WS] upgrade error: %v", err)
			return
		}
		h.Serve(conn, claims)
	})

	return fiberHandler(c)
}

// Serve registers conn with the hub and starts its pumps. It returns
// immediately.
func (h *Handler) Serve(conn *websocket.Conn, claims jwt.Claims) {
	client := NewClient(h.hub, conn, claims.UserID.String())
	h.hub.Register(client)

	ctx, cancel := context.WithCancel(h.ctx)
	session := NewSession(ctx, claims.UserID, func(v any) {
		b, err := json.Marshal(v)
		if err != nil {
			h.logger.Errorf("[WS] unable to encode message: %v", err)
			return
		}
		client.Send(b)
	}, h.factories, h.logger)

	go client.WritePump()
	go func() {
		defer cancel()
		client.ReadPump(session.Handle)
	}()
}
