package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money fields serialize as plain JSON numbers, not quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// OrderStatusPaymentDone is the status every new order is created
// with. There is no transition API: status is write-once at creation.
const OrderStatusPaymentDone = "Payment Done"

type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderRef    string          `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID      string          `gorm:"index;not null" json:"user_id"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"products"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	Address     string          `json:"address"`
	Status      string          `gorm:"default:'Payment Done';index" json:"status"`
	CreatedAt   time.Time       `gorm:"index" json:"created_at"`
}

// OrderItem is the placement-time snapshot: product reference plus
// quantity. The product is resolved live on reads; the order total
// never is.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	OrderID   uint    `gorm:"index" json:"-"`
	ProductID uint    `gorm:"not null" json:"-"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
}
