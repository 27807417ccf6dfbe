package handler

import (
	"errors"

	"go-store-inventory/internal/middleware"
	"go-store-inventory/internal/model"
	"go-store-inventory/internal/service"
	"go-store-inventory/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

// Client-facing error messages. Internal error text is never returned.
const (
	errMissingStore = "Unauthorized - Missing store context"
	errLoadItems    = "Failed to load items"
	errCreateItem   = "Failed to create item"
	errSKUExists    = "SKU already exists in this store"
	errInvalidJSON  = "Invalid JSON"
)

type InventoryHandler struct {
	service  service.ItemService
	resolver middleware.StoreResolver
}

func NewInventoryHandler(s service.ItemService, resolver middleware.StoreResolver) *InventoryHandler {
	return &InventoryHandler{service: s, resolver: resolver}
}

// GetItems lists the caller's items, most recently updated first.
// GET /api/items
func (h *InventoryHandler) GetItems(c *fiber.Ctx) error {
	storeID, ok := h.resolver.ResolveStore(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": errMissingStore})
	}

	items, err := h.service.ListItems(c.UserContext(), storeID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": errLoadItems})
	}
	return c.JSON(items)
}

// CreateItem adds an item to the caller's store.
// POST /api/items
func (h *InventoryHandler) CreateItem(c *fiber.Ctx) error {
	storeID, ok := h.resolver.ResolveStore(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"error": errMissingStore})
	}

	// The body is JSON whatever the Content-Type says.
	req, err := model.DecodeCreateItemRequest(c.Body(), c.App().Config().JSONDecoder)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": errInvalidJSON})
	}

	item, err := h.service.CreateItem(c.UserContext(), storeID, req)
	if err != nil {
		var verr *validator.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.Status(400).JSON(fiber.Map{"error": verr.Message})
		case errors.Is(err, service.ErrSKUExists):
			return c.Status(409).JSON(fiber.Map{"error": errSKUExists})
		default:
			return c.Status(500).JSON(fiber.Map{"error": errCreateItem})
		}
	}

	return c.Status(201).JSON(item)
}
