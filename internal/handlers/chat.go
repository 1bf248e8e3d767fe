package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/campusmart/internal/middleware"
	"github.com/example/campusmart/internal/models"
)

// ChatHandler manages 1:1 conversations.
type ChatHandler struct {
	db *gorm.DB
}

// NewChatHandler constructs ChatHandler.
func NewChatHandler(db *gorm.DB) *ChatHandler {
	return &ChatHandler{db: db}
}

type accessChatRequest struct {
	UserID string `json:"user_id"`
}

// AccessChat returns the 1:1 conversation between the caller and the target
// user, creating it when none exists. At most one conversation exists per
// pair: the create re-runs the pair lookup inside its transaction.
func (h *ChatHandler) AccessChat(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req accessChatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	targetID, err := uuid.Parse(req.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "user_id is required")
	}

	if targetID == userID {
		return fiber.NewError(fiber.StatusBadRequest, "cannot start a chat with yourself")
	}

	var target models.User
	if err := h.db.First(&target, "id = ?", targetID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	var conv models.Conversation
	err = h.db.Transaction(func(tx *gorm.DB) error {
		err := pairLookup(tx, userID, targetID).First(&conv).Error
		if err == nil {
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		var requester models.User
		if err := tx.First(&requester, "id = ?", userID).Error; err != nil {
			return err
		}

		conv = models.Conversation{
			IsGroupChat: false,
			Users:       []models.User{requester, target},
		}
		// Omit keeps the member rows untouched and only writes the join table.
		return tx.Omit("Users.*").Create(&conv).Error
	})
	if err != nil {
		return err
	}

	hydrated, err := loadConversation(h.db, conv.ID)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": hydrated})
}

// ListChats returns the caller's conversations ordered by recency, each
// hydrated with member profiles and the latest message.
func (h *ChatHandler) ListChats(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var convs []models.Conversation
	err := h.db.
		Joins("JOIN conversation_users cu ON cu.conversation_id = conversations.id AND cu.user_id = ?", userID).
		Preload("Users", publicUserFields).
		Preload("LatestMessage.Sender", publicUserFields).
		Order("conversations.updated_at desc").
		Find(&convs).Error
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": convs})
}

// pairLookup selects the non-group conversation whose member set is exactly
// the given pair.
func pairLookup(db *gorm.DB, a, b uuid.UUID) *gorm.DB {
	return db.Model(&models.Conversation{}).
		Joins("JOIN conversation_users cu1 ON cu1.conversation_id = conversations.id AND cu1.user_id = ?", a).
		Joins("JOIN conversation_users cu2 ON cu2.conversation_id = conversations.id AND cu2.user_id = ?", b).
		Where("conversations.is_group_chat = ?", false)
}

// publicUserFields narrows preloaded users to their shareable columns.
func publicUserFields(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email", "profile_pic")
}

// loadConversation hydrates one conversation: members and latest message
// with its sender, all narrowed to public fields.
func loadConversation(db *gorm.DB, id uuid.UUID) (*models.Conversation, error) {
	var conv models.Conversation
	err := db.Preload("Users", publicUserFields).
		Preload("LatestMessage.Sender", publicUserFields).
		First(&conv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// isChatMember reports whether the user belongs to the conversation.
func isChatMember(db *gorm.DB, convID, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Table("conversation_users").
		Where("conversation_id = ? AND user_id = ?", convID, userID).
		Count(&count).Error
	return count > 0, err
}
