package dto

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alimikegami/apparel-store/internal/domain"
)

type OrderItemRequest struct {
	ProductID  string      `json:"productId" validate:"required"`
	Color      string      `json:"color" validate:"required"`
	Size       domain.Size `json:"size" validate:"required,oneof=XS S M L XL"`
	Quantity   int         `json:"quantity" validate:"required,min=1"`
	Price      float64     `json:"price" validate:"min=0"`
	FrontImage string      `json:"frontImage" validate:"required"`
	BackImage  string      `json:"backImage" validate:"required"`
}

type OrderRequest struct {
	CustomerName  string             `json:"customerName" validate:"required"`
	ContactNumber string             `json:"contactNumber" validate:"required"`
	Email         string             `json:"email"`
	Address       string             `json:"address" validate:"required"`
	City          string             `json:"city" validate:"required"`
	Province      string             `json:"province" validate:"required"`
	Pincode       string             `json:"pincode" validate:"required"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	TotalAmount   float64            `json:"totalAmount" validate:"min=0"`
}

// OrderUpdateRequest copies every non-nil field onto the order. A non-nil Items
// replaces the line items and re-runs the stock checks.
type OrderUpdateRequest struct {
	CustomerName  *string             `json:"customerName"`
	ContactNumber *string             `json:"contactNumber"`
	Email         *string             `json:"email"`
	Address       *string             `json:"address"`
	City          *string             `json:"city"`
	Province      *string             `json:"province"`
	Pincode       *string             `json:"pincode"`
	Items         []OrderItemRequest  `json:"items" validate:"omitempty,dive"`
	TotalAmount   *float64            `json:"totalAmount" validate:"omitempty,min=0"`
	Status        *domain.OrderStatus `json:"status"`
}

// OrderNumber accepts both 12 and "12" on the wire. Fractions, exponents that do not
// land on a whole number and values outside int64 are rejected.
type OrderNumber int64

func (n *OrderNumber) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*n = 0
		return nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err == nil {
		*n = OrderNumber(v)
		return nil
	}

	f, ferr := strconv.ParseFloat(raw, 64)
	if ferr != nil || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return fmt.Errorf("orderNo must be a whole number, got %s", raw)
	}
	*n = OrderNumber(f)
	return nil
}

type TrackOrderRequest struct {
	ContactNumber string `json:"contactNumber"`
}

type OrderDetailRequest struct {
	OrderNo       OrderNumber `json:"orderNo"`
	ContactNumber string      `json:"contactNumber"`
	Email         string      `json:"email"`
}

type StatusCheckRequest struct {
	OrderNo       OrderNumber `json:"orderNo"`
	ContactNumber string      `json:"contactNumber"`
}
