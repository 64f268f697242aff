package service

import (
	"context"
	"errors"

	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/alimikegami/apparel-store/internal/repository"
	"github.com/alimikegami/apparel-store/pkg/errs"
	"github.com/rs/zerolog/log"
)

type Direction int

const (
	Decrease Direction = iota
	Increase
)

func (d Direction) String() string {
	if d == Increase {
		return "increase"
	}
	return "decrease"
}

// InventoryManager applies order line items to variant stock. It does not open a
// transaction; callers run it inside one.
type InventoryManager struct {
	productRepo repository.ProductRepository
}

func CreateInventoryManager(productRepo repository.ProductRepository) *InventoryManager {
	return &InventoryManager{productRepo: productRepo}
}

// ValidateStock checks every item against current stock and reports the first one
// that cannot be served.
func (m *InventoryManager) ValidateStock(ctx context.Context, items []domain.OrderItem) error {
	for _, item := range items {
		product, err := m.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, errs.ErrProductNotFound) {
				return errs.WithMessage(errs.ErrItemProductMissing, "Product not found: %s", item.ProductID.Hex())
			}
			return err
		}

		variant, ok := product.Variants.Find(item.Color)
		if !ok {
			return errs.WithMessage(errs.ErrItemColorMissing, "Color %s not found for product", item.Color)
		}

		if variant.Inventory.Get(item.Size) < item.Quantity {
			return insufficient(product.Name, item)
		}
	}

	return nil
}

// AdjustInventory moves stock by each item's quantity. Items whose product or color no
// longer exists are skipped. A decrease never drives stock below zero: if the guarded
// update fails on an existing variant, ErrInsufficientInventory is returned.
func (m *InventoryManager) AdjustInventory(ctx context.Context, items []domain.OrderItem, direction Direction) error {
	for _, item := range items {
		delta := item.Quantity
		if direction == Decrease {
			delta = -delta
		}

		matched, err := m.productRepo.AdjustVariantStock(ctx, item.ProductID, item.Color, item.Size, delta)
		if err != nil {
			return err
		}
		if matched || direction == Increase {
			continue
		}

		product, err := m.productRepo.GetProductByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, errs.ErrProductNotFound) {
				log.Ctx(ctx).Warn().Str("component", "AdjustInventory").Str("product_id", item.ProductID.Hex()).Msg("Skipping item of missing product")
				continue
			}
			return err
		}

		if _, ok := product.Variants.Find(item.Color); !ok {
			log.Ctx(ctx).Warn().Str("component", "AdjustInventory").Str("product_id", item.ProductID.Hex()).Str("color", item.Color).Msg("Skipping item of missing variant")
			continue
		}

		return insufficient(product.Name, item)
	}

	return nil
}

func insufficient(productName string, item domain.OrderItem) error {
	return errs.WithMessage(errs.ErrInsufficientInventory, "Insufficient inventory for %s in %s, size %s", productName, item.Color, item.Size)
}
