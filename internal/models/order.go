package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem represents a single configured product entry within an order.
type OrderItem struct {
	ProductID int     `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Weight    string  `bson:"weight" json:"weight"`
	Price     float64 `bson:"price" json:"price"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Flavor    string  `bson:"flavor,omitempty" json:"flavor,omitempty"`
	Shell     string  `bson:"shell,omitempty" json:"shell,omitempty"`
}

// Order defines the persisted order document. Total is kept as the exact
// two-decimal string computed at checkout time, never recomputed from items.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Total         string             `bson:"total" json:"total"`
	Method        string             `bson:"method,omitempty" json:"method,omitempty"`
	Address       string             `bson:"address,omitempty" json:"address,omitempty"`
	Region        string             `bson:"region,omitempty" json:"region,omitempty"`
	Date          string             `bson:"date,omitempty" json:"date,omitempty"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
