package dto

import (
	"time"

	"github.com/alimikegami/apparel-store/internal/domain"
)

// OrderItemDetail is a line item with the live product attached; Product is nil when
// the product was deleted after the order was placed.
type OrderItemDetail struct {
	domain.OrderItem
	Product *ProductResponse `json:"product"`
}

type OrderDetailResponse struct {
	ID            string             `json:"id"`
	OrderNo       int64              `json:"orderNo"`
	CustomerName  string             `json:"customerName"`
	ContactNumber string             `json:"contactNumber"`
	Email         string             `json:"email,omitempty"`
	Address       string             `json:"address"`
	City          string             `json:"city"`
	Province      string             `json:"province"`
	Pincode       string             `json:"pincode"`
	Items         []OrderItemDetail  `json:"items"`
	TotalAmount   float64            `json:"totalAmount"`
	Status        domain.OrderStatus `json:"status"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}
