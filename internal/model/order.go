package model

import "time"

// Order statuses, in the order they normally occur. Points are
// credited to the user only on the shipping -> completed
// transition, when the customer confirms receipt.
const (
	OrderStatusPending   = "pending"
	OrderStatusShipping  = "shipping"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order records a checkout as stored in the `orders` table.
// All amounts are whole currency units.
//
// Fields:
//  ID              – primary key identifier (string SUID).
//  UserID          – user who placed the order.
//  TotalAmount     – subtotal before the loyalty discount.
//  DiscountAmount  – loyalty discount applied at checkout.
//  FinalAmount     – amount actually charged.
//  PointsEarned    – loyalty points this order grants on receipt.
//  Status          – one of the OrderStatus* constants.
//  ShippingName    – recipient name.
//  ShippingPhone   – recipient phone.
//  ShippingAddress – delivery address.
//  Note            – free-form note for the courier.
//  CreatedAt       – creation timestamp.
type Order struct {
	ID              string    `json:"id"`             // orders.id
	UserID          uint64    `json:"-"`              // orders.user_id
	TotalAmount     int64     `json:"total_amount"`   // orders.total_amount
	DiscountAmount  int64     `json:"discount_amount"` // orders.discount_amount
	FinalAmount     int64     `json:"final_amount"`   // orders.final_amount
	PointsEarned    int64     `json:"points_earned"`  // orders.points_earned
	Status          string    `json:"status"`         // orders.status
	ShippingName    string    `json:"shipping_name"`  // orders.shipping_name
	ShippingPhone   string    `json:"-"`              // orders.shipping_phone
	ShippingAddress string    `json:"-"`              // orders.shipping_address
	Note            string    `json:"-"`              // orders.note
	CreatedAt       time.Time `json:"created_at"`     // orders.created_at
}

// OrderItem is one purchased line within an order, with the price
// frozen at checkout time.
type OrderItem struct {
	ID        string `json:"id"`         // order_items.id
	OrderID   string `json:"-"`          // order_items.order_id
	ProductID string `json:"product_id"` // order_items.product_id
	Quantity  int    `json:"quantity"`   // order_items.quantity
	Price     int64  `json:"price"`      // order_items.price
}
