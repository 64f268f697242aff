package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

func (os OrderStatus) String() string {
	return string(os)
}

func (os OrderStatus) Valid() bool {
	switch os {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports the statuses the storefront treats as final. Nothing enforces it.
func (os OrderStatus) IsTerminal() bool {
	return os == StatusDelivered || os == StatusCancelled
}

// OrderItem snapshots price and images at order time.
type OrderItem struct {
	ProductID  primitive.ObjectID `bson:"productId" json:"productId"`
	Color      string             `bson:"color" json:"color"`
	Size       Size               `bson:"size" json:"size"`
	Quantity   int                `bson:"quantity" json:"quantity"`
	Price      float64            `bson:"price" json:"price"`
	FrontImage string             `bson:"frontImage" json:"frontImage"`
	BackImage  string             `bson:"backImage" json:"backImage"`
}

type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNo       int64              `bson:"orderNo" json:"orderNo"`
	CustomerName  string             `bson:"customerName" json:"customerName"`
	ContactNumber string             `bson:"contactNumber" json:"contactNumber"`
	Email         string             `bson:"email,omitempty" json:"email,omitempty"`
	Address       string             `bson:"address" json:"address"`
	City          string             `bson:"city" json:"city"`
	Province      string             `bson:"province" json:"province"`
	Pincode       string             `bson:"pincode" json:"pincode"`
	Items         []OrderItem        `bson:"items" json:"items"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	Status        OrderStatus        `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// OrderStatusSummary is the lightweight projection served to status checks.
type OrderStatusSummary struct {
	OrderNo      int64       `bson:"orderNo" json:"orderNo"`
	CustomerName string      `bson:"customerName" json:"customerName"`
	TotalAmount  float64     `bson:"totalAmount" json:"totalAmount"`
	Status       OrderStatus `bson:"status" json:"status"`
	CreatedAt    time.Time   `bson:"createdAt" json:"createdAt"`
}
