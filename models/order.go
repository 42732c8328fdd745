package models

import "time"

// Order statuses. Only pending orders may be deleted.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderDelivered = "delivered"
	OrderCancelled = "cancelled"
)

var AllowedOrderStatuses = []string{
	OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled,
}

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          uint        `gorm:"not null" json:"user_id"`
	User            *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Status          string      `gorm:"default:pending" json:"status"`
	TotalAmount     float64     `json:"total_amount"`
	ShippingAddress string      `gorm:"not null" json:"shipping_address"`
	BillingAddress  string      `json:"billing_address,omitempty"`
	Phone           string      `gorm:"not null" json:"phone"`
	Notes           string      `json:"notes,omitempty"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"autoUpdateTime" json:"updated_at"`
	OrderItems      []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}

type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `json:"order_id"`
	ProductID uint      `gorm:"not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	// Price is a snapshot of the product price at order time, so historical
	// orders are immune to later price changes.
	Price     float64   `gorm:"not null" json:"price"`
	Product   *Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
