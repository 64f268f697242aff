package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/alimikegami/apparel-store/internal/dto"
	"github.com/alimikegami/apparel-store/internal/repository"
	"github.com/alimikegami/apparel-store/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderServiceImpl struct {
	trx          repository.Transactor
	orderRepo    repository.OrderRepository
	counterRepo  repository.CounterRepository
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	inventory    *InventoryManager
	events       EventPublisher
	notifier     OrderNotifier
	followUps    *followUpQueue
}

func CreateOrderService(
	trx repository.Transactor,
	orderRepo repository.OrderRepository,
	counterRepo repository.CounterRepository,
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	events EventPublisher,
	notifier OrderNotifier,
) OrderService {
	return &OrderServiceImpl{
		trx:          trx,
		orderRepo:    orderRepo,
		counterRepo:  counterRepo,
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		inventory:    CreateInventoryManager(productRepo),
		events:       events,
		notifier:     notifier,
		followUps:    newFollowUpQueue(followUpQueueSize),
	}
}

// CreateOrder validates stock, numbers, stores and decrements inventory as one
// transaction. Nothing is written when any step fails.
func (s *OrderServiceImpl) CreateOrder(ctx context.Context, data dto.OrderRequest) (order domain.Order, err error) {
	items, err := toOrderItems(data.Items)
	if err != nil {
		return
	}

	now := time.Now().UTC()
	draft := domain.Order{
		CustomerName:  strings.TrimSpace(data.CustomerName),
		ContactNumber: strings.TrimSpace(data.ContactNumber),
		Email:         normalizeEmail(data.Email),
		Address:       strings.TrimSpace(data.Address),
		City:          strings.TrimSpace(data.City),
		Province:      strings.TrimSpace(data.Province),
		Pincode:       strings.TrimSpace(data.Pincode),
		Items:         items,
		TotalAmount:   data.TotalAmount,
		Status:        domain.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = s.trx.HandleTrx(ctx, func(ctx context.Context) error {
		order = draft

		if err := s.inventory.ValidateStock(ctx, order.Items); err != nil {
			return err
		}

		orderNo, err := s.counterRepo.NextSequence(ctx, repository.OrderNoSequence)
		if err != nil {
			return err
		}
		order.OrderNo = orderNo

		order.ID, err = s.orderRepo.AddOrder(ctx, order)
		if err != nil {
			return err
		}

		return s.inventory.AdjustInventory(ctx, order.Items, Decrease)
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.publish(ctx, EventOrderCreated, order.OrderNo, order)

	if order.Email != "" {
		s.followUps.enqueue(ctx, func(ctx context.Context) {
			if err := s.notifier.NotifyOrderPlaced(ctx, order); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("component", "CreateOrder").Int64("order_no", order.OrderNo).Msg("Failed to send order confirmation")
			}
		})
	}

	return order, nil
}

func (s *OrderServiceImpl) GetOrders(ctx context.Context) (orders []domain.Order, err error) {
	return s.orderRepo.GetOrders(ctx)
}

func (s *OrderServiceImpl) GetOrderByID(ctx context.Context, id string) (order domain.Order, err error) {
	oid, err := parseID(id)
	if err != nil {
		return
	}

	return s.orderRepo.GetOrderByID(ctx, oid)
}

// UpdateOrder copies the present fields onto the order. New items are checked against
// stock after the old items were put back, all inside one transaction.
func (s *OrderServiceImpl) UpdateOrder(ctx context.Context, id string, data dto.OrderUpdateRequest) (order domain.Order, err error) {
	oid, err := parseID(id)
	if err != nil {
		return
	}

	if data.Status != nil && !data.Status.Valid() {
		return order, errs.WithMessage(errs.ErrInvalidStatus, "Invalid order status: %s", *data.Status)
	}

	var newItems []domain.OrderItem
	if data.Items != nil {
		if len(data.Items) == 0 {
			return order, errs.ValidationErrors{{Field: "items", Tag: "required"}}
		}

		newItems, err = toOrderItems(data.Items)
		if err != nil {
			return
		}
	}

	err = s.trx.HandleTrx(ctx, func(ctx context.Context) error {
		current, err := s.orderRepo.GetOrderByID(ctx, oid)
		if err != nil {
			return err
		}

		if newItems != nil {
			if err := s.inventory.AdjustInventory(ctx, current.Items, Increase); err != nil {
				return err
			}
			if err := s.inventory.ValidateStock(ctx, newItems); err != nil {
				return err
			}
			if err := s.inventory.AdjustInventory(ctx, newItems, Decrease); err != nil {
				return err
			}
			current.Items = newItems
		}

		applyOrderUpdate(&current, data)
		current.UpdatedAt = time.Now().UTC()

		if err := s.orderRepo.UpdateOrder(ctx, current); err != nil {
			return err
		}

		order = current
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.publish(ctx, EventOrderUpdated, order.OrderNo, order)

	return order, nil
}

// DeleteOrder puts the order's stock back whatever its status.
func (s *OrderServiceImpl) DeleteOrder(ctx context.Context, id string) (err error) {
	oid, err := parseID(id)
	if err != nil {
		return
	}

	var deleted domain.Order
	err = s.trx.HandleTrx(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetOrderByID(ctx, oid)
		if err != nil {
			return err
		}

		if order.Status.IsTerminal() {
			log.Ctx(ctx).Warn().Str("component", "DeleteOrder").Int64("order_no", order.OrderNo).Str("status", order.Status.String()).Msg("Restoring stock of a terminal order")
		}

		if err := s.inventory.AdjustInventory(ctx, order.Items, Increase); err != nil {
			return err
		}

		if err := s.orderRepo.DeleteOrder(ctx, oid); err != nil {
			return err
		}

		deleted = order
		return nil
	})
	if err != nil {
		return
	}

	s.publish(ctx, EventOrderDeleted, deleted.OrderNo, deleted)

	return nil
}

func (s *OrderServiceImpl) TrackOrders(ctx context.Context, data dto.TrackOrderRequest) (orders []domain.Order, err error) {
	contactNumber := strings.TrimSpace(data.ContactNumber)
	if contactNumber == "" {
		return nil, errs.WithMessage(errs.ErrTrackingFieldsRequired, "Contact number is required")
	}

	orders, err = s.orderRepo.GetOrdersByContactNumber(ctx, contactNumber)
	if err != nil {
		return
	}

	if len(orders) == 0 {
		return nil, errs.ErrNoOrdersFound
	}

	return orders, nil
}

// GetOrderDetail attaches the live product, with its category, to every line item.
func (s *OrderServiceImpl) GetOrderDetail(ctx context.Context, data dto.OrderDetailRequest) (detail dto.OrderDetailResponse, err error) {
	contactNumber := strings.TrimSpace(data.ContactNumber)
	email := normalizeEmail(data.Email)
	if data.OrderNo == 0 || contactNumber == "" || email == "" {
		return detail, errs.WithMessage(errs.ErrTrackingFieldsRequired, "Order number, contact number and email are required")
	}

	order, err := s.orderRepo.GetOrderByTracking(ctx, int64(data.OrderNo), contactNumber, email)
	if err != nil {
		return
	}

	productIDs := make([]primitive.ObjectID, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}

	products, err := s.productRepo.GetProductsByIDs(ctx, uniqueIDs(productIDs))
	if err != nil {
		return
	}

	categories, err := loadCategories(ctx, s.categoryRepo, products)
	if err != nil {
		return
	}

	byID := make(map[primitive.ObjectID]dto.ProductResponse, len(products))
	for _, p := range products {
		byID[p.ID] = toProductResponse(p, categories, nil)
	}

	detail = dto.OrderDetailResponse{
		ID:            order.ID.Hex(),
		OrderNo:       order.OrderNo,
		CustomerName:  order.CustomerName,
		ContactNumber: order.ContactNumber,
		Email:         order.Email,
		Address:       order.Address,
		City:          order.City,
		Province:      order.Province,
		Pincode:       order.Pincode,
		Items:         make([]dto.OrderItemDetail, 0, len(order.Items)),
		TotalAmount:   order.TotalAmount,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
	for _, item := range order.Items {
		line := dto.OrderItemDetail{OrderItem: item}
		if p, ok := byID[item.ProductID]; ok {
			line.Product = &p
		}
		detail.Items = append(detail.Items, line)
	}

	return detail, nil
}

func (s *OrderServiceImpl) CheckOrderStatus(ctx context.Context, data dto.StatusCheckRequest) (summary domain.OrderStatusSummary, err error) {
	contactNumber := strings.TrimSpace(data.ContactNumber)
	if data.OrderNo == 0 || contactNumber == "" {
		return summary, errs.WithMessage(errs.ErrTrackingFieldsRequired, "Order number and contact number are required")
	}

	return s.orderRepo.GetOrderStatusSummary(ctx, int64(data.OrderNo), contactNumber)
}

// SyncOrderNumberSequence lifts the counter to the highest stored orderNo so numbering
// continues after orders that were created before the counter existed.
func (s *OrderServiceImpl) SyncOrderNumberSequence(ctx context.Context) (err error) {
	maxOrderNo, err := s.orderRepo.GetMaxOrderNo(ctx)
	if err != nil {
		return
	}

	return s.counterRepo.EnsureSequenceAtLeast(ctx, repository.OrderNoSequence, maxOrderNo)
}

// publish is queued behind the commit; the response does not wait for the broker.
func (s *OrderServiceImpl) publish(ctx context.Context, eventType string, orderNo int64, order domain.Order) {
	s.followUps.enqueue(ctx, func(ctx context.Context) {
		if err := s.events.Publish(ctx, eventType, strconv.FormatInt(orderNo, 10), order); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "publish").Str("event_type", eventType).Msg("")
		}
	})
}

// Close waits for queued events and emails.
func (s *OrderServiceImpl) Close() {
	s.followUps.close()
}

func toOrderItems(items []dto.OrderItemRequest) ([]domain.OrderItem, error) {
	out := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, errs.WithMessage(errs.ErrItemProductMissing, "Product not found: %s", item.ProductID)
		}

		out = append(out, domain.OrderItem{
			ProductID:  productID,
			Color:      item.Color,
			Size:       item.Size,
			Quantity:   item.Quantity,
			Price:      item.Price,
			FrontImage: item.FrontImage,
			BackImage:  item.BackImage,
		})
	}
	return out, nil
}

func applyOrderUpdate(order *domain.Order, data dto.OrderUpdateRequest) {
	if data.CustomerName != nil {
		order.CustomerName = strings.TrimSpace(*data.CustomerName)
	}
	if data.ContactNumber != nil {
		order.ContactNumber = strings.TrimSpace(*data.ContactNumber)
	}
	if data.Email != nil {
		order.Email = normalizeEmail(*data.Email)
	}
	if data.Address != nil {
		order.Address = strings.TrimSpace(*data.Address)
	}
	if data.City != nil {
		order.City = strings.TrimSpace(*data.City)
	}
	if data.Province != nil {
		order.Province = strings.TrimSpace(*data.Province)
	}
	if data.Pincode != nil {
		order.Pincode = strings.TrimSpace(*data.Pincode)
	}
	if data.TotalAmount != nil {
		order.TotalAmount = *data.TotalAmount
	}
	if data.Status != nil {
		order.Status = *data.Status
	}
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]struct{}, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
