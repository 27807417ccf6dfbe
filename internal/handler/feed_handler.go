package handler

import (
	"go-store-inventory/internal/middleware"
	"go-store-inventory/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

const localStoreID = "store_id"

// FeedHandler streams item events for the caller's store over a websocket.
type FeedHandler struct {
	hub      *ws.Hub
	resolver middleware.StoreResolver
}

func NewFeedHandler(hub *ws.Hub, resolver middleware.StoreResolver) *FeedHandler {
	return &FeedHandler{hub: hub, resolver: resolver}
}

// Upgrade rejects non-websocket requests and unauthenticated callers before the
// connection is upgraded.
func (h *FeedHandler) Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return c.SendStatus(fiber.StatusUpgradeRequired)
	}
	storeID, ok := h.resolver.ResolveStore(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": errMissingStore})
	}
	c.Locals(localStoreID, storeID)
	return c.Next()
}

// Stream registers the connection under its store and keeps it open until the
// client goes away.
// GET /ws/items
func (h *FeedHandler) Stream() fiber.Handler {
	return websocket.New(func(c *websocket.Conn) {
		storeID, _ := c.Locals(localStoreID).(string)
		sub := ws.Subscription{StoreID: storeID, Conn: c}

		if err := h.hub.Subscribe(sub); err != nil {
			return
		}
		defer h.hub.Unsubscribe(sub)

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	})
}
