// Package checkouttest provides in-memory stores for exercising the checkout
// service and the HTTP handlers without MongoDB.
package checkouttest

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-restaurant-ordering/models"
	"go-restaurant-ordering/repository"
)

// ContentStore serves reference data from maps. Err, when set, is returned
// by every lookup.
type ContentStore struct {
	mu       sync.Mutex
	Branches map[primitive.ObjectID]models.Branch
	Areas    map[primitive.ObjectID]models.DeliveryArea
	Promos   map[string]models.PromoCode
	Discount *models.DiscountSetting
	Err      error
}

func NewContentStore() *ContentStore {
	return &ContentStore{
		Branches: map[primitive.ObjectID]models.Branch{},
		Areas:    map[primitive.ObjectID]models.DeliveryArea{},
		Promos:   map[string]models.PromoCode{},
	}
}

func (s *ContentStore) AddBranch(name string) models.Branch {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := models.Branch{ID: primitive.NewObjectID(), Name: name}
	s.Branches[b.ID] = b
	return b
}

func (s *ContentStore) AddArea(branch primitive.ObjectID, name string, fee int64, active bool) models.DeliveryArea {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := models.DeliveryArea{ID: primitive.NewObjectID(), Name: name, Fee: fee, Branch: branch, IsActive: active}
	s.Areas[a.ID] = a
	return a
}

func (s *ContentStore) AddPromo(code string, discount float64) models.PromoCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := models.PromoCode{ID: primitive.NewObjectID(), Code: strings.ToUpper(code), Discount: discount}
	s.Promos[p.Code] = p
	return p
}

func (s *ContentStore) SetDiscount(pct float64, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Discount = &models.DiscountSetting{ID: models.DiscountSettingID, Percentage: pct, IsActive: active}
}

func (s *ContentStore) FindBranchByID(_ context.Context, id primitive.ObjectID) (*models.Branch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	b, ok := s.Branches[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (s *ContentStore) ListBranches(_ context.Context) ([]models.Branch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.Branch{}
	for _, b := range s.Branches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *ContentStore) FindActiveDeliveryAreasByBranch(_ context.Context, branchID primitive.ObjectID) ([]models.DeliveryArea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []models.DeliveryArea{}
	for _, a := range s.Areas {
		if a.Branch == branchID && a.IsActive {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *ContentStore) FindPromoCodeByCode(_ context.Context, code string) (*models.PromoCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.Promos[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (s *ContentStore) FindDiscountSetting(_ context.Context) (*models.DiscountSetting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Discount == nil {
		return nil, repository.ErrNotFound
	}
	d := *s.Discount
	return &d, nil
}

// OrderStore keeps orders in memory. InsertErr and SaveErr force failures;
// SaveErr applies to both update methods.
type OrderStore struct {
	mu        sync.Mutex
	orders    map[primitive.ObjectID]models.Order
	InsertErr error
	SaveErr   error
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: map[primitive.ObjectID]models.Order{}}
}

func (s *OrderStore) Insert(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.InsertErr != nil {
		return s.InsertErr
	}
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	for _, o := range s.orders {
		if o.OrderNo == order.OrderNo {
			return repository.ErrDuplicate
		}
	}
	s.orders[order.ID] = *order
	return nil
}

func (s *OrderStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &o, nil
}

// UpdateStatus mirrors the repository's conditional write: the stored status
// must still be from.
func (s *OrderStore) UpdateStatus(_ context.Context, order *models.Order, from models.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	stored, ok := s.orders[order.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if stored.Status != from {
		return repository.ErrConflict
	}
	stored.Status = order.Status
	stored.CancelReason = order.CancelReason
	stored.RiderName = order.RiderName
	stored.UpdatedAt = order.UpdatedAt
	s.orders[order.ID] = stored
	return nil
}

func (s *OrderStore) UpdateItems(_ context.Context, order *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	stored, ok := s.orders[order.ID]
	if !ok {
		return repository.ErrNotFound
	}
	stored.Items = order.Items
	stored.Subtotal = order.Subtotal
	stored.Tax = order.Tax
	stored.DeliveryFee = order.DeliveryFee
	stored.GlobalDiscountPercentage = order.GlobalDiscountPercentage
	stored.GlobalDiscount = order.GlobalDiscount
	stored.PromoDiscountPercentage = order.PromoDiscountPercentage
	stored.PromoDiscount = order.PromoDiscount
	stored.Discount = order.Discount
	stored.Total = order.Total
	stored.UpdatedAt = order.UpdatedAt
	s.orders[order.ID] = stored
	return nil
}

func (s *OrderStore) Delete(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

// List applies the status, branch and order type filters; search and date
// bounds are left to the MongoDB implementation.
func (s *OrderStore) List(ctx context.Context, filter repository.OrderFilter, page repository.Page) (*repository.OrderPage, error) {
	all, _ := s.FindAll(ctx, filter)
	sort.Slice(all, func(i, j int) bool { return all[i].OrderNo > all[j].OrderNo })

	if page.Page < 1 {
		page.Page = 1
	}
	if page.RecordPerPage < 1 {
		page.RecordPerPage = repository.DefaultRecordPerPage
	}
	start := (page.Page - 1) * page.RecordPerPage
	end := start + page.RecordPerPage
	if start > len(all) {
		start = len(all)
	}
	if end > len(all) {
		end = len(all)
	}
	return &repository.OrderPage{
		TotalCount:    int64(len(all)),
		Page:          page.Page,
		RecordPerPage: page.RecordPerPage,
		Orders:        all[start:end],
	}, nil
}

func (s *OrderStore) FindAll(_ context.Context, filter repository.OrderFilter) ([]models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Order{}
	for _, o := range s.orders {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		if filter.Branch != nil && o.Branch != *filter.Branch {
			continue
		}
		if filter.OrderType != "" && o.OrderType != filter.OrderType {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNo < out[j].OrderNo })
	return out, nil
}

func (s *OrderStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

// Notifier records every notification it receives.
type Notifier struct {
	mu     sync.Mutex
	events []models.Notification
}

func (n *Notifier) Notify(note models.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, note)
}

func (n *Notifier) Events() []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.Notification(nil), n.events...)
}
