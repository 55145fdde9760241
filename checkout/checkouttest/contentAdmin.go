package checkouttest

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"go-restaurant-ordering/models"
	"go-restaurant-ordering/repository"
)

// The methods below give ContentStore the admin write surface of
// repository.ContentRepository.

func (s *ContentStore) CreateBranch(_ context.Context, branch *models.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	branch.ID = primitive.NewObjectID()
	s.Branches[branch.ID] = *branch
	return nil
}

func (s *ContentStore) UpdateBranch(_ context.Context, id primitive.ObjectID, branch *models.Branch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.Branches[id]
	if !ok {
		return repository.ErrNotFound
	}
	if branch.Name != "" {
		stored.Name = branch.Name
	}
	if branch.Address != "" {
		stored.Address = branch.Address
	}
	if branch.Phone != "" {
		stored.Phone = branch.Phone
	}
	s.Branches[id] = stored
	return nil
}

func (s *ContentStore) DeleteBranch(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Branches[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.Branches, id)
	return nil
}

func (s *ContentStore) ListDeliveryAreas(_ context.Context, branchID *primitive.ObjectID) ([]models.DeliveryArea, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.DeliveryArea{}
	for _, a := range s.Areas {
		if branchID == nil || a.Branch == *branchID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *ContentStore) CreateDeliveryArea(_ context.Context, area *models.DeliveryArea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	area.ID = primitive.NewObjectID()
	s.Areas[area.ID] = *area
	return nil
}

func (s *ContentStore) UpdateDeliveryArea(_ context.Context, id primitive.ObjectID, area *models.DeliveryArea) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.Areas[id]
	if !ok {
		return repository.ErrNotFound
	}
	if area.Name != "" {
		stored.Name = area.Name
	}
	if !area.Branch.IsZero() {
		stored.Branch = area.Branch
	}
	stored.Fee = area.Fee
	stored.IsActive = area.IsActive
	s.Areas[id] = stored
	return nil
}

func (s *ContentStore) DeleteDeliveryArea(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.Areas[id]; !ok {
		return repository.ErrNotFound
	}
	delete(s.Areas, id)
	return nil
}

func (s *ContentStore) ListPromoCodes(_ context.Context) ([]models.PromoCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.PromoCode{}
	for _, p := range s.Promos {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (s *ContentStore) CreatePromoCode(_ context.Context, promo *models.PromoCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	promo.Code = strings.ToUpper(strings.TrimSpace(promo.Code))
	if _, ok := s.Promos[promo.Code]; ok {
		return repository.ErrDuplicate
	}
	promo.ID = primitive.NewObjectID()
	s.Promos[promo.Code] = *promo
	return nil
}

func (s *ContentStore) UpdatePromoCode(_ context.Context, id primitive.ObjectID, promo *models.PromoCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for code, stored := range s.Promos {
		if stored.ID != id {
			continue
		}
		delete(s.Promos, code)
		if c := strings.ToUpper(strings.TrimSpace(promo.Code)); c != "" {
			stored.Code = c
		}
		if promo.Discount > 0 {
			stored.Discount = promo.Discount
		}
		s.Promos[stored.Code] = stored
		return nil
	}
	return repository.ErrNotFound
}

func (s *ContentStore) DeletePromoCode(_ context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for code, stored := range s.Promos {
		if stored.ID == id {
			delete(s.Promos, code)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (s *ContentStore) SaveDiscountSetting(_ context.Context, setting *models.DiscountSetting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	setting.ID = models.DiscountSettingID
	d := *setting
	s.Discount = &d
	return nil
}
