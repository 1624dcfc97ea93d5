package models

import "time"

// CartItem is one (user, product) row with quantity >= 1. The
// composite unique index is what the add/increment upsert conflicts
// on, so concurrent adds never lose an update.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"-"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"-"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}
