// Package queue defines message payloads exchanged over the message broker.
package queue

// OrderCompletedEvent is published when a customer confirms receipt of an
// order. It carries enough information for downstream consumers to log,
// notify, or feed analytics without querying the primary database.
type OrderCompletedEvent struct {
	OrderID        string `json:"order_id"`
	UserID         uint64 `json:"user_id"`
	TotalAmount    int64  `json:"total_amount"`
	DiscountAmount int64  `json:"discount_amount"`
	FinalAmount    int64  `json:"final_amount"`
	PointsEarned   int64  `json:"points_earned"`
	NewLevel       string `json:"new_level"`
	CompletedAt    string `json:"completed_at"`
}
