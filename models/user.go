package models

import "time"

type User struct {
	ID        string     `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null;index" json:"name"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Image     string     `json:"img"`
	Cart      []CartItem `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"cart,omitempty"`
	Favorites []Favorite `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"favourites,omitempty"`
	Orders    []Order    `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}
