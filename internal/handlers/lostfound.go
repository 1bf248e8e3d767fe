package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/example/campusmart/internal/middleware"
	"github.com/example/campusmart/internal/models"
)

// LostFoundHandler manages the lost & found board.
type LostFoundHandler struct {
	db *gorm.DB
}

// NewLostFoundHandler constructs LostFoundHandler.
func NewLostFoundHandler(db *gorm.DB) *LostFoundHandler {
	return &LostFoundHandler{db: db}
}

type lostFoundRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Location      string   `json:"location"`
	Type          string   `json:"type"`
	Images        []string `json:"images"`
	ContactNumber string   `json:"contact_number"`
}

func (r lostFoundRequest) validate() error {
	if r.Title == "" || r.Description == "" || r.Location == "" || r.ContactNumber == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}
	if r.Type != models.ReportTypeLost && r.Type != models.ReportTypeFound {
		return fiber.NewError(fiber.StatusBadRequest, "type must be lost or found")
	}
	return nil
}

// CreateReport posts a new lost or found notice.
func (h *LostFoundHandler) CreateReport(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req lostFoundRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := req.validate(); err != nil {
		return err
	}

	report := models.LostFoundReport{
		Title:         req.Title,
		Description:   req.Description,
		Location:      req.Location,
		Type:          req.Type,
		Images:        pq.StringArray(req.Images),
		ContactNumber: req.ContactNumber,
		ReporterID:    userID,
	}

	if err := h.db.Create(&report).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": report})
}

// ListReports returns the board, newest first. Optional query params narrow
// it to one type and to open or resolved notices.
func (h *LostFoundHandler) ListReports(c *fiber.Ctx) error {
	query := h.db.Model(&models.LostFoundReport{})

	switch c.Query("type") {
	case "":
	case models.ReportTypeLost, models.ReportTypeFound:
		query = query.Where("type = ?", c.Query("type"))
	default:
		return fiber.NewError(fiber.StatusBadRequest, "type must be lost or found")
	}

	switch c.Query("resolved") {
	case "":
	case "true":
		query = query.Where("is_resolved = ?", true)
	case "false":
		query = query.Where("is_resolved = ?", false)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "resolved must be true or false")
	}

	var reports []models.LostFoundReport
	if err := query.Preload("Reporter", publicUserFields).
		Order("created_at desc").
		Find(&reports).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": reports})
}

// GetReport loads one notice with its reporter summary.
func (h *LostFoundHandler) GetReport(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var report models.LostFoundReport
	if err := h.db.Preload("Reporter", publicUserFields).First(&report, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "report not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": report})
}

// ToggleResolved flips the resolved flag. Reporter only.
func (h *LostFoundHandler) ToggleResolved(c *fiber.Ctx) error {
	report, err := h.loadOwnedReport(c)
	if err != nil {
		return err
	}

	report.IsResolved = !report.IsResolved
	if err := h.db.Save(report).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": report})
}

// DeleteReport removes a notice. Reporter only.
func (h *LostFoundHandler) DeleteReport(c *fiber.Ctx) error {
	report, err := h.loadOwnedReport(c)
	if err != nil {
		return err
	}

	if err := h.db.Delete(report).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "report removed"})
}

// loadOwnedReport resolves the notice and verifies the caller reported it
// before any write happens.
func (h *LostFoundHandler) loadOwnedReport(c *fiber.Ctx) (*models.LostFoundReport, error) {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var report models.LostFoundReport
	if err := h.db.First(&report, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "report not found")
		}
		return nil, err
	}

	if err := ensureReporter(&report, userID); err != nil {
		return nil, err
	}

	return &report, nil
}

// ensureReporter is the ownership predicate for report mutations.
func ensureReporter(report *models.LostFoundReport, userID uuid.UUID) error {
	if report.ReporterID != userID {
		return fiber.NewError(fiber.StatusForbidden, "not authorized to modify this report")
	}
	return nil
}
