package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Price holds the selling price (org), the list price (mrp) and the
// discount percent (off). Money fields are exact decimals.
type Price struct {
	Org decimal.Decimal `gorm:"type:numeric(10,2);index" json:"org"`
	Mrp decimal.Decimal `gorm:"type:numeric(10,2)" json:"mrp"`
	Off int             `json:"off"`
}

type Product struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string     `gorm:"not null;index" json:"title"`
	Name        string     `gorm:"not null;index" json:"name"`
	Description string     `gorm:"not null" json:"desc"`
	Image       string     `gorm:"not null" json:"img"`
	Price       Price      `gorm:"embedded;embeddedPrefix:price_" json:"price"`
	Sizes       []Size     `gorm:"many2many:product_sizes;" json:"sizes"`
	Categories  []Category `gorm:"many2many:product_categories;" json:"category"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Category is a label row. It marshals as its bare name so products
// serialize as "category": ["Men", "Shirts"].
type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Name)
}

// Size is a label row like Category ("S", "M", "XL", ...).
type Size struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"-"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Name)
}
