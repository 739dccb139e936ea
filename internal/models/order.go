package models

// Order est immuable une fois créée au checkout.
type Order struct {
	ID         string    `json:"id" bson:"_id"`
	UserID     string    `json:"user_id" bson:"user_id"`
	Products   []Product `json:"products" bson:"products"`
	TotalPrice float64   `json:"total_price" bson:"total_price"`
}
