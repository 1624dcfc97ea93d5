package models

import "time"

// Favorite is a membership row: at most one per (user, product).
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"uniqueIndex:idx_fav_user_product;not null" json:"-"`
	ProductID uint      `gorm:"uniqueIndex:idx_fav_user_product;not null" json:"-"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	CreatedAt time.Time `json:"-"`
}
