package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Item is a marketplace listing. An item always carries at least one image
// and exactly one owning seller; only the seller may mutate it.
type Item struct {
	BaseModel
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Location      string         `json:"location"`
	Price         float64        `json:"price"`
	Category      string         `json:"category"`
	Images        pq.StringArray `gorm:"type:text[]" json:"images"`
	ContactNumber string         `json:"contact_number"`
	SellerEmail   string         `json:"seller_email"`
	SellerID      uuid.UUID      `gorm:"type:uuid;index" json:"seller_id"`
	Seller        *User          `json:"seller,omitempty"`
	IsSold        bool           `json:"is_sold"`
}
