package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/campusmart/internal/middleware"
	"github.com/example/campusmart/internal/models"
)

// MessageHandler persists chat messages. Real-time delivery happens over
// the websocket layer; this is the durable record recipients catch up from.
type MessageHandler struct {
	db *gorm.DB
}

// NewMessageHandler constructs MessageHandler.
func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{db: db}
}

type sendMessageRequest struct {
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`
}

// SendMessage appends a message to a conversation the caller belongs to and
// advances the conversation's latest-message pointer and recency stamp.
func (h *MessageHandler) SendMessage(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Content == "" {
		return fiber.NewError(fiber.StatusBadRequest, "content is required")
	}

	convID, err := uuid.Parse(req.ChatID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "chat_id is required")
	}

	var conv models.Conversation
	if err := h.db.First(&conv, "id = ?", convID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "conversation not found")
		}
		return err
	}

	member, err := isChatMember(h.db, convID, userID)
	if err != nil {
		return err
	}
	if !member {
		return fiber.NewError(fiber.StatusForbidden, "not a member of this conversation")
	}

	message := models.Message{
		ConversationID: convID,
		SenderID:       userID,
		Content:        req.Content,
	}

	if err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", convID).
			Updates(map[string]interface{}{
				"latest_message_id": message.ID,
				"updated_at":        time.Now(),
			}).Error
	}); err != nil {
		return err
	}

	var full models.Message
	if err := h.db.Preload("Sender", publicUserFields).
		First(&full, "id = ?", message.ID).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": full})
}

// ListMessages returns a conversation's history, oldest first. Members only.
func (h *MessageHandler) ListMessages(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	convID, err := uuid.Parse(c.Params("chatId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid chat id")
	}

	member, err := isChatMember(h.db, convID, userID)
	if err != nil {
		return err
	}
	if !member {
		return fiber.NewError(fiber.StatusForbidden, "not a member of this conversation")
	}

	var messages []models.Message
	if err := h.db.Where("conversation_id = ?", convID).
		Preload("Sender", publicUserFields).
		Order("created_at asc").
		Find(&messages).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": messages})
}
