package dto

import "github.com/alimikegami/apparel-store/internal/domain"

// ProductForm carries the multipart product fields. Nil means the field was not sent.
type ProductForm struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	Feature     *bool
	Variants    *string
	Files       []FileUpload
}

type VariantRequest struct {
	Color      string           `json:"color"`
	FrontImage string           `json:"frontImage"`
	BackImage  string           `json:"backImage"`
	Inventory  domain.Inventory `json:"inventory"`
}
