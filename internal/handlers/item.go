package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/example/campusmart/internal/catalog"
	"github.com/example/campusmart/internal/middleware"
	"github.com/example/campusmart/internal/models"
)

// ItemHandler manages marketplace listings.
type ItemHandler struct {
	db *gorm.DB
}

// NewItemHandler constructs ItemHandler.
func NewItemHandler(db *gorm.DB) *ItemHandler {
	return &ItemHandler{db: db}
}

type itemRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	Price         float64  `json:"price"`
	Category      string   `json:"category"`
	Images        []string `json:"images"`
	ContactNumber string   `json:"contact_number"`
	SellerEmail   string   `json:"seller_email"`
}

func (r itemRequest) validate() error {
	if r.Title == "" || r.Description == "" || r.Category == "" || r.ContactNumber == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}
	if r.Price < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "price must not be negative")
	}
	if len(r.Images) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "at least one image is required")
	}
	return nil
}

// CreateItem lists a new item for the authenticated seller.
func (h *ItemHandler) CreateItem(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := req.validate(); err != nil {
		return err
	}

	item := models.Item{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		Price:         req.Price,
		Category:      req.Category,
		Images:        pq.StringArray(req.Images),
		ContactNumber: req.ContactNumber,
		SellerEmail:   req.SellerEmail,
		SellerID:      userID,
	}

	if err := h.db.Create(&item).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": item})
}

// ListItems is the catalog query: filters and sort from query params
// compose with AND and return the full matching list, newest first unless
// a price sort is requested.
func (h *ItemHandler) ListItems(c *fiber.Ctx) error {
	filter := catalog.ParseFilter(
		c.Query("search"),
		c.Query("category"),
		c.Query("minPrice"),
		c.Query("maxPrice"),
		c.Query("sortBy"),
	)

	var items []models.Item
	query := filter.Scope(h.db.Model(&models.Item{}))
	if err := query.Preload("Seller", publicUserFields).Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": items})
}

// GetItem loads one listing with its seller summary.
func (h *ItemHandler) GetItem(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var item models.Item
	if err := h.db.Preload("Seller", publicUserFields).First(&item, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "item not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": item})
}

// MyItems returns the caller's own items, newest first.
func (h *ItemHandler) MyItems(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var items []models.Item
	if err := h.db.Where("seller_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": items})
}

// MyListings is the dashboard variant of MyItems: same rows, plus the count.
func (h *ItemHandler) MyListings(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var items []models.Item
	if err := h.db.Where("seller_id = ?", userID).
		Order("created_at desc").
		Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "count": len(items), "data": items})
}

// UpdateItem replaces a listing's fields. Owner only; the final image list
// must stay non-empty.
func (h *ItemHandler) UpdateItem(c *fiber.Ctx) error {
	item, err := h.loadOwnedItem(c)
	if err != nil {
		return err
	}

	var req itemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := req.validate(); err != nil {
		return err
	}

	item.Title = req.Title
	item.Description = req.Description
	item.Location = req.Location
	item.Price = req.Price
	item.Category = req.Category
	item.Images = pq.StringArray(req.Images)
	item.ContactNumber = req.ContactNumber
	item.SellerEmail = req.SellerEmail

	if err := h.db.Save(item).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": item})
}

// DeleteItem removes a listing. Owner only.
func (h *ItemHandler) DeleteItem(c *fiber.Ctx) error {
	item, err := h.loadOwnedItem(c)
	if err != nil {
		return err
	}

	if err := h.db.Delete(item).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "item removed from marketplace"})
}

// ToggleSoldStatus flips the sold flag. Owner only.
func (h *ItemHandler) ToggleSoldStatus(c *fiber.Ctx) error {
	item, err := h.loadOwnedItem(c)
	if err != nil {
		return err
	}

	item.IsSold = !item.IsSold
	if err := h.db.Save(item).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": item})
}

// loadOwnedItem is the shared mutation guard: it resolves the listing and
// verifies the caller owns it before any write happens. Missing items and
// foreign items fail distinctly (404 vs 403).
func (h *ItemHandler) loadOwnedItem(c *fiber.Ctx) (*models.Item, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var item models.Item
	if err := h.db.First(&item, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "item not found")
		}
		return nil, err
	}

	if err := ensureOwner(&item, userID); err != nil {
		return nil, err
	}

	return &item, nil
}

// ensureOwner is the ownership predicate shared by every item mutation.
func ensureOwner(item *models.Item, userID uuid.UUID) error {
	if item.SellerID != userID {
		return fiber.NewError(fiber.StatusForbidden, "not authorized to modify this item")
	}
	return nil
}
