package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/campusmart/internal/config"
	"github.com/example/campusmart/internal/models"
	"github.com/example/campusmart/internal/services"
	"github.com/example/campusmart/internal/utils"
)

const resetTokenTTL = 10 * time.Minute

// PasswordResetHandler manages forgot-password endpoints.
type PasswordResetHandler struct {
	db    *gorm.DB
	cfg   *config.Config
	email *services.EmailService
}

// NewPasswordResetHandler constructs a PasswordResetHandler.
func NewPasswordResetHandler(db *gorm.DB, cfg *config.Config, email *services.EmailService) *PasswordResetHandler {
	return &PasswordResetHandler{db: db, cfg: cfg, email: email}
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword stores a hashed single-use token and emails the reset
// link. If the email cannot be sent the token is rolled back so no
// stranded, unusable token remains.
func (h *PasswordResetHandler) ForgotPassword(c *fiber.Ctx) error {
	var req forgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	token, digest, err := utils.GenerateResetToken()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	// Expire any previous unused tokens for this account.
	if err := h.db.Model(&models.PasswordResetToken{}).
		Where("email = ? AND used_at IS NULL", req.Email).
		Update("expires_at", time.Now()).Error; err != nil {
		return err
	}

	record := models.PasswordResetToken{
		Email:     req.Email,
		TokenHash: digest,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := h.db.Create(&record).Error; err != nil {
		return err
	}

	resetURL := fmt.Sprintf("%s/passwordreset/%s", h.cfg.FrontendURL, token)
	if err := h.email.SendPasswordReset(user.Email, user.Name, resetURL); err != nil {
		// Roll back so the user is not locked behind an unsendable token.
		h.db.Delete(&record)
		return fiber.NewError(fiber.StatusBadGateway, "email could not be sent")
	}

	return c.JSON(fiber.Map{"success": true, "message": "email sent"})
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

// ResetPassword verifies the token from the reset link and sets the new
// password. Tokens are single-use and time-boxed.
func (h *PasswordResetHandler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.Password) < 6 {
		return fiber.NewError(fiber.StatusBadRequest, "password must be at least 6 characters")
	}

	digest := utils.HashResetToken(c.Params("token"))

	var record models.PasswordResetToken
	err := h.db.Where("token_hash = ? AND expires_at > ?", digest, time.Now()).
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusBadRequest, "invalid or expired token")
		}
		return err
	}

	if record.UsedAt != nil {
		return fiber.NewError(fiber.StatusBadRequest, "token already used")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	// The new hash and the used_at mark land together or not at all, so a
	// token can never stay live after it changed a password.
	now := time.Now()
	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("email = ?", record.Email).
			Update("password_hash", hash).Error; err != nil {
			return err
		}
		return tx.Model(&record).Update("used_at", now).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "password updated successfully"})
}
