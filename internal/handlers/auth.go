package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/campusmart/internal/config"
	"github.com/example/campusmart/internal/models"
	"github.com/example/campusmart/internal/services"
	"github.com/example/campusmart/internal/utils"
)

const otpTTL = 20 * time.Minute

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db    *gorm.DB
	cfg   *config.Config
	email *services.EmailService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, email *services.EmailService) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, email: email}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates (or refreshes) an unverified account and emails an OTP.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing required fields")
	}

	if !strings.HasSuffix(req.Email, h.cfg.CollegeDomain) {
		return fiber.NewError(fiber.StatusForbidden, "access restricted to college students only")
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	var user models.User
	err = h.db.Where("email = ?", req.Email).First(&user).Error
	switch {
	case err == nil:
		if user.IsVerified {
			return fiber.NewError(fiber.StatusConflict, "user already exists, please login")
		}
		// Unverified leftover from an earlier attempt: refresh it in place.
		user.Name = req.Name
		user.PasswordHash = passwordHash
		if err := h.db.Save(&user).Error; err != nil {
			return err
		}
	case err == gorm.ErrRecordNotFound:
		user = models.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: passwordHash,
			IsVerified:   false,
		}
		if err := h.db.Create(&user).Error; err != nil {
			return err
		}
	default:
		return err
	}

	if err := h.issueVerificationCode(&user); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "verification code sent to email",
	})
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// Verify confirms the emailed OTP and marks the account verified.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req verifyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	if user.IsVerified {
		return c.JSON(fiber.Map{"success": true, "message": "user already verified"})
	}

	var verification models.EmailVerification
	err := h.db.Where("email = ? AND used_at IS NULL", req.Email).
		Order("created_at desc").
		First(&verification).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "verification code not found")
		}
		return err
	}

	if verification.Code != strings.TrimSpace(req.Code) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid verification code")
	}

	if verification.ExpiresAt.Before(time.Now()) {
		return fiber.NewError(fiber.StatusBadRequest, "verification code expired")
	}

	now := time.Now()
	verification.Verified = true
	verification.UsedAt = &now
	if err := h.db.Save(&verification).Error; err != nil {
		return err
	}

	if err := h.db.Model(&models.User{}).Where("email = ?", req.Email).
		Update("is_verified", true).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "verified": true})
}

type resendRequest struct {
	Email string `json:"email"`
}

// ResendOTP issues a fresh verification code for an unverified account.
func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req resendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	if user.IsVerified {
		return fiber.NewError(fiber.StatusBadRequest, "account is already verified, please login")
	}

	if err := h.issueVerificationCode(&user); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "new verification code sent"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a verified user and returns a JWT.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var user models.User
	if err := h.db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	if !user.IsVerified {
		return fiber.NewError(fiber.StatusUnauthorized, "please verify your email first")
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user": fiber.Map{
			"id":          user.ID,
			"name":        user.Name,
			"email":       user.Email,
			"phone":       user.Phone,
			"year":        user.Year,
			"profile_pic": user.ProfilePic,
			"cover_image": user.CoverImage,
		},
	})
}

// issueVerificationCode stores a fresh OTP and emails it. A failed send is
// surfaced to the caller; the account row stays so registration can be
// retried.
func (h *AuthHandler) issueVerificationCode(user *models.User) error {
	code, err := utils.GenerateVerificationCode()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate verification code")
	}

	verification := models.EmailVerification{
		Email:     user.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(otpTTL),
	}
	if err := h.db.Create(&verification).Error; err != nil {
		return err
	}

	if err := h.email.SendVerificationCode(user.Email, user.Name, code); err != nil {
		return fiber.NewError(fiber.StatusBadGateway, "email could not be sent")
	}
	return nil
}
