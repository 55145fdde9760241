// Package checkout composes pricing, validation, sequencing and the status
// machine into the order operations the HTTP layer exposes.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"go-restaurant-ordering/models"
	"go-restaurant-ordering/orderstatus"
	"go-restaurant-ordering/pricing"
	"go-restaurant-ordering/repository"
	"go-restaurant-ordering/sequence"
	"go-restaurant-ordering/validation"
)

// ContentReader is the read-only view of reference data checkout needs.
// Implementations return repository.ErrNotFound for missing documents.
type ContentReader interface {
	FindBranchByID(ctx context.Context, id primitive.ObjectID) (*models.Branch, error)
	FindActiveDeliveryAreasByBranch(ctx context.Context, branchID primitive.ObjectID) ([]models.DeliveryArea, error)
	FindPromoCodeByCode(ctx context.Context, code string) (*models.PromoCode, error)
	FindDiscountSetting(ctx context.Context) (*models.DiscountSetting, error)
}

type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	UpdateStatus(ctx context.Context, order *models.Order, from models.OrderStatus) error
	UpdateItems(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	List(ctx context.Context, filter repository.OrderFilter, page repository.Page) (*repository.OrderPage, error)
	FindAll(ctx context.Context, filter repository.OrderFilter) ([]models.Order, error)
}

// Notifier receives order events after they are persisted.
type Notifier interface {
	Notify(n models.Notification)
}

type Config struct {
	Rules        validation.Rules
	LockTerminal bool
}

type Service struct {
	content  ContentReader
	orders   OrderStore
	seq      sequence.Sequencer
	notifier Notifier
	machine  orderstatus.Machine
	rules    validation.Rules
	log      *zap.Logger
	now      func() time.Time
}

func NewService(content ContentReader, orders OrderStore, seq sequence.Sequencer, notifier Notifier, cfg Config, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		content:  content,
		orders:   orders,
		seq:      seq,
		notifier: notifier,
		machine:  orderstatus.Machine{LockTerminal: cfg.LockTerminal},
		rules:    cfg.Rules,
		log:      log,
		now:      repository.Timestamp,
	}
}

// Quote prices a checkout submission without assigning a number or storing
// anything.
func (s *Service) Quote(ctx context.Context, req models.CheckoutRequest) (*models.Order, error) {
	order, err := validation.ValidateOrderSubmission(req)
	if err != nil {
		return nil, err
	}

	deliveryFee, err := s.resolveDelivery(ctx, order)
	if err != nil {
		return nil, err
	}
	setting, err := s.discountSetting(ctx)
	if err != nil {
		return nil, err
	}
	promoPct, err := s.promoPercentage(ctx, order.PromoCode)
	if err != nil {
		return nil, err
	}

	totals, err := pricing.ComputeOrderTotals(order.Items, deliveryFee, setting.Percentage, setting.IsActive, promoPct)
	if err != nil {
		return nil, fmt.Errorf("price order: %w", err)
	}
	if err := validation.ValidateTotals(totals, s.rules); err != nil {
		return nil, err
	}
	totals.Apply(order)
	return order, nil
}

// PlaceOrder prices, numbers and stores a checkout submission. A number taken
// for an order whose insert then fails is not reused.
func (s *Service) PlaceOrder(ctx context.Context, req models.CheckoutRequest) (*models.Order, error) {
	order, err := s.Quote(ctx, req)
	if err != nil {
		s.log.Warn("checkout rejected", zap.Error(err))
		return nil, err
	}

	orderNo, err := s.seq.Next(ctx)
	if err != nil {
		s.log.Error("order number unavailable", zap.Error(err))
		return nil, err
	}
	order.OrderNo = orderNo
	order.Status = models.StatusPending
	order.CreatedAt = s.now()
	order.UpdatedAt = order.CreatedAt

	if err := s.orders.Insert(ctx, order); err != nil {
		s.log.Error("order insert failed", zap.Int64("orderNo", orderNo), zap.Error(err))
		return nil, fmt.Errorf("insert order %d: %w", orderNo, err)
	}

	s.log.Info("order placed",
		zap.Int64("orderNo", order.OrderNo),
		zap.String("orderId", order.ID.Hex()),
		zap.String("orderType", string(order.OrderType)),
		zap.Int64("total", order.Total),
	)
	s.notify(models.EventNewOrder, order)
	return order, nil
}

// ApplyPromoCode checks a customer-entered code ahead of checkout.
func (s *Service) ApplyPromoCode(ctx context.Context, code string) (*models.PromoCode, error) {
	code = validation.NormalizePromoCode(code)
	if code == "" {
		return nil, &InvalidPromoCodeError{}
	}
	promo, err := s.content.FindPromoCodeByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &InvalidPromoCodeError{Code: code}
		}
		return nil, fmt.Errorf("find promo code: %w", err)
	}
	return promo, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, &NotFoundError{Entity: "order", ID: id}
	}
	order, err := s.orders.FindByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, &NotFoundError{Entity: "order", ID: id}
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

func (s *Service) ListOrders(ctx context.Context, filter repository.OrderFilter, page repository.Page) (*repository.OrderPage, error) {
	return s.orders.List(ctx, filter, page)
}

func (s *Service) ExportOrders(ctx context.Context, filter repository.OrderFilter) ([]models.Order, error) {
	return s.orders.FindAll(ctx, filter)
}

// UpdateOrderStatus runs u through the status machine and stores the result.
// The write only lands if the stored status is still the one the transition
// was checked against; otherwise repository.ErrConflict is returned.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, u orderstatus.Update) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	from := order.Status
	if err := s.machine.Transition(order, u, s.now()); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, order, from); err != nil {
		return nil, fmt.Errorf("save order status: %w", err)
	}

	s.log.Info("order status changed",
		zap.Int64("orderNo", order.OrderNo),
		zap.String("from", string(from)),
		zap.String("to", string(order.Status)),
	)
	s.notify(models.EventOrderStatus, order)
	return order, nil
}

// UpdateOrderItems replaces an order's lines and re-prices it with the fee
// and discount percentages captured at checkout. Allowed in any status. Only
// lines and totals are written, so a status change made meanwhile survives.
func (s *Service) UpdateOrderItems(ctx context.Context, id string, cart []models.CartItem) (*models.Order, error) {
	items, err := validation.ValidateCartItems(cart)
	if err != nil {
		return nil, err
	}
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	totals, err := pricing.ComputeOrderTotals(items, order.DeliveryFee,
		order.GlobalDiscountPercentage, order.GlobalDiscountPercentage > 0,
		order.PromoDiscountPercentage)
	if err != nil {
		return nil, fmt.Errorf("price order: %w", err)
	}
	if err := validation.ValidateTotals(totals, s.rules); err != nil {
		return nil, err
	}

	order.Items = items
	totals.Apply(order)
	order.UpdatedAt = s.now()
	if err := s.orders.UpdateItems(ctx, order); err != nil {
		return nil, fmt.Errorf("save order items: %w", err)
	}
	if order, err = s.orders.FindByID(ctx, order.ID); err != nil {
		return nil, fmt.Errorf("reload order: %w", err)
	}

	s.log.Info("order items updated", zap.Int64("orderNo", order.OrderNo), zap.Int64("total", order.Total))
	s.notify(models.EventOrderUpdate, order)
	return order, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return &NotFoundError{Entity: "order", ID: id}
	}
	if err := s.orders.Delete(ctx, oid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &NotFoundError{Entity: "order", ID: id}
		}
		return fmt.Errorf("delete order: %w", err)
	}
	s.log.Info("order deleted", zap.String("orderId", id))
	return nil
}

// resolveDelivery checks the branch and, for delivery orders, that the
// selected area is active and belongs to it. It returns the delivery fee.
func (s *Service) resolveDelivery(ctx context.Context, order *models.Order) (int64, error) {
	if _, err := s.content.FindBranchByID(ctx, order.Branch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, &NotFoundError{Entity: "branch", ID: order.Branch.Hex()}
		}
		return 0, fmt.Errorf("find branch: %w", err)
	}
	if order.OrderType != models.OrderTypeDelivery || order.DeliveryArea == nil {
		return 0, nil
	}

	areas, err := s.content.FindActiveDeliveryAreasByBranch(ctx, order.Branch)
	if err != nil {
		return 0, fmt.Errorf("find delivery areas: %w", err)
	}
	for _, area := range areas {
		if area.ID == *order.DeliveryArea {
			order.DeliveryAreaName = area.Name
			return area.Fee, nil
		}
	}
	return 0, &NotFoundError{Entity: "deliveryArea", ID: order.DeliveryArea.Hex()}
}

// discountSetting treats a missing setting as an inactive 0% discount.
func (s *Service) discountSetting(ctx context.Context) (models.DiscountSetting, error) {
	setting, err := s.content.FindDiscountSetting(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.DiscountSetting{}, nil
		}
		return models.DiscountSetting{}, fmt.Errorf("find discount setting: %w", err)
	}
	return *setting, nil
}

func (s *Service) promoPercentage(ctx context.Context, code string) (float64, error) {
	if code == "" {
		return 0, nil
	}
	promo, err := s.ApplyPromoCode(ctx, code)
	if err != nil {
		return 0, err
	}
	return promo.Discount, nil
}

func (s *Service) notify(event string, order *models.Order) {
	if s.notifier == nil {
		return
	}
	snapshot := *order
	s.notifier.Notify(models.Notification{Event: event, Payload: &snapshot})
}
