package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/campusmart/internal/middleware"
	"github.com/example/campusmart/internal/models"
)

// WishlistHandler manages a user's saved items.
type WishlistHandler struct {
	db *gorm.DB
}

// NewWishlistHandler constructs WishlistHandler.
func NewWishlistHandler(db *gorm.DB) *WishlistHandler {
	return &WishlistHandler{db: db}
}

// Toggle flips membership of an item in the caller's wishlist: present is
// removed, absent is added. Each call changes state exactly once.
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	itemID, err := uuid.Parse(c.Params("itemId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid item id")
	}

	var item models.Item
	if err := h.db.First(&item, "id = ?", itemID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "item not found")
		}
		return err
	}

	user := models.User{BaseModel: models.BaseModel{ID: userID}}
	assoc := h.db.Model(&user).Association("Wishlist")

	var existing []models.Item
	if err := assoc.Find(&existing, "items.id = ?", itemID); err != nil {
		return err
	}

	saved := len(existing) == 0
	if saved {
		if err := assoc.Append(&item); err != nil {
			return err
		}
	} else {
		if err := assoc.Delete(&item); err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"success": true, "saved": saved})
}

// List returns the caller's wishlist with seller summaries.
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.db.Preload("Wishlist.Seller", publicUserFields).
		First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": user.Wishlist})
}
