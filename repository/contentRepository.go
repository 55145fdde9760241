package repository

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-restaurant-ordering/database"
	"go-restaurant-ordering/models"
)

// ContentRepository holds the admin-owned reference data. Checkout only reads
// it; writes are last-write-wins.
type ContentRepository struct {
	branches  *mongo.Collection
	areas     *mongo.Collection
	promos    *mongo.Collection
	discounts *mongo.Collection
}

func NewContentRepository(db *mongo.Database) *ContentRepository {
	return &ContentRepository{
		branches:  db.Collection(database.BranchCollection),
		areas:     db.Collection(database.DeliveryAreaCollection),
		promos:    db.Collection(database.PromoCodeCollection),
		discounts: db.Collection(database.DiscountCollection),
	}
}

// Branches

func (r *ContentRepository) FindBranchByID(ctx context.Context, id primitive.ObjectID) (*models.Branch, error) {
	var branch models.Branch
	if err := r.branches.FindOne(ctx, bson.M{"_id": id}).Decode(&branch); err != nil {
		return nil, translate(err)
	}
	return &branch, nil
}

func (r *ContentRepository) ListBranches(ctx context.Context) ([]models.Branch, error) {
	cursor, err := r.branches.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	branches := []models.Branch{}
	if err := cursor.All(ctx, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *ContentRepository) CreateBranch(ctx context.Context, branch *models.Branch) error {
	branch.ID = primitive.NewObjectID()
	branch.CreatedAt = Timestamp()
	branch.UpdatedAt = branch.CreatedAt
	_, err := r.branches.InsertOne(ctx, branch)
	return translate(err)
}

func (r *ContentRepository) UpdateBranch(ctx context.Context, id primitive.ObjectID, branch *models.Branch) error {
	var updateObj primitive.D
	if branch.Name != "" {
		updateObj = append(updateObj, bson.E{Key: "name", Value: branch.Name})
	}
	if branch.Address != "" {
		updateObj = append(updateObj, bson.E{Key: "address", Value: branch.Address})
	}
	if branch.Phone != "" {
		updateObj = append(updateObj, bson.E{Key: "phone", Value: branch.Phone})
	}
	updateObj = append(updateObj, bson.E{Key: "updatedAt", Value: Timestamp()})
	return r.updateByID(ctx, r.branches, id, updateObj)
}

func (r *ContentRepository) DeleteBranch(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.branches, id)
}

// Delivery areas

func (r *ContentRepository) FindDeliveryAreaByID(ctx context.Context, id primitive.ObjectID) (*models.DeliveryArea, error) {
	var area models.DeliveryArea
	if err := r.areas.FindOne(ctx, bson.M{"_id": id}).Decode(&area); err != nil {
		return nil, translate(err)
	}
	return &area, nil
}

func (r *ContentRepository) FindActiveDeliveryAreasByBranch(ctx context.Context, branchID primitive.ObjectID) ([]models.DeliveryArea, error) {
	return r.findAreas(ctx, bson.M{"branch": branchID, "isActive": true})
}

// ListDeliveryAreas returns every area, active or not, optionally scoped to a
// branch.
func (r *ContentRepository) ListDeliveryAreas(ctx context.Context, branchID *primitive.ObjectID) ([]models.DeliveryArea, error) {
	filter := bson.M{}
	if branchID != nil {
		filter["branch"] = *branchID
	}
	return r.findAreas(ctx, filter)
}

func (r *ContentRepository) findAreas(ctx context.Context, filter bson.M) ([]models.DeliveryArea, error) {
	cursor, err := r.areas.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	areas := []models.DeliveryArea{}
	if err := cursor.All(ctx, &areas); err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *ContentRepository) CreateDeliveryArea(ctx context.Context, area *models.DeliveryArea) error {
	area.ID = primitive.NewObjectID()
	area.CreatedAt = Timestamp()
	area.UpdatedAt = area.CreatedAt
	_, err := r.areas.InsertOne(ctx, area)
	return translate(err)
}

// UpdateDeliveryArea replaces the editable fields. Fee and isActive are always
// written since their zero values are meaningful.
func (r *ContentRepository) UpdateDeliveryArea(ctx context.Context, id primitive.ObjectID, area *models.DeliveryArea) error {
	var updateObj primitive.D
	if area.Name != "" {
		updateObj = append(updateObj, bson.E{Key: "name", Value: area.Name})
	}
	if !area.Branch.IsZero() {
		updateObj = append(updateObj, bson.E{Key: "branch", Value: area.Branch})
	}
	updateObj = append(updateObj,
		bson.E{Key: "fee", Value: area.Fee},
		bson.E{Key: "isActive", Value: area.IsActive},
		bson.E{Key: "updatedAt", Value: Timestamp()},
	)
	return r.updateByID(ctx, r.areas, id, updateObj)
}

func (r *ContentRepository) DeleteDeliveryArea(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.areas, id)
}

// Promo codes

// FindPromoCodeByCode matches the stored upper-case code exactly.
func (r *ContentRepository) FindPromoCodeByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := r.promos.FindOne(ctx, bson.M{"code": strings.ToUpper(strings.TrimSpace(code))}).Decode(&promo)
	if err != nil {
		return nil, translate(err)
	}
	return &promo, nil
}

func (r *ContentRepository) ListPromoCodes(ctx context.Context) ([]models.PromoCode, error) {
	cursor, err := r.promos.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "code", Value: 1}}))
	if err != nil {
		return nil, err
	}
	promos := []models.PromoCode{}
	if err := cursor.All(ctx, &promos); err != nil {
		return nil, err
	}
	return promos, nil
}

func (r *ContentRepository) CreatePromoCode(ctx context.Context, promo *models.PromoCode) error {
	promo.ID = primitive.NewObjectID()
	promo.Code = strings.ToUpper(strings.TrimSpace(promo.Code))
	promo.CreatedAt = Timestamp()
	promo.UpdatedAt = promo.CreatedAt
	_, err := r.promos.InsertOne(ctx, promo)
	return translate(err)
}

func (r *ContentRepository) UpdatePromoCode(ctx context.Context, id primitive.ObjectID, promo *models.PromoCode) error {
	var updateObj primitive.D
	if code := strings.ToUpper(strings.TrimSpace(promo.Code)); code != "" {
		updateObj = append(updateObj, bson.E{Key: "code", Value: code})
	}
	if promo.Discount > 0 {
		updateObj = append(updateObj, bson.E{Key: "discount", Value: promo.Discount})
	}
	updateObj = append(updateObj, bson.E{Key: "updatedAt", Value: Timestamp()})
	return r.updateByID(ctx, r.promos, id, updateObj)
}

func (r *ContentRepository) DeletePromoCode(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.promos, id)
}

// Discount setting

// FindDiscountSetting returns ErrNotFound when no admin has saved one yet.
func (r *ContentRepository) FindDiscountSetting(ctx context.Context) (*models.DiscountSetting, error) {
	var setting models.DiscountSetting
	if err := r.discounts.FindOne(ctx, bson.M{"_id": models.DiscountSettingID}).Decode(&setting); err != nil {
		return nil, translate(err)
	}
	return &setting, nil
}

func (r *ContentRepository) SaveDiscountSetting(ctx context.Context, setting *models.DiscountSetting) error {
	setting.ID = models.DiscountSettingID
	setting.UpdatedAt = Timestamp()

	upsert := true
	opts := options.UpdateOptions{Upsert: &upsert}
	_, err := r.discounts.UpdateOne(ctx,
		bson.M{"_id": models.DiscountSettingID},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "percentage", Value: setting.Percentage},
			{Key: "isActive", Value: setting.IsActive},
			{Key: "updatedAt", Value: setting.UpdatedAt},
		}}},
		&opts,
	)
	return err
}

func (r *ContentRepository) updateByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID, updateObj primitive.D) error {
	result, err := coll.UpdateOne(ctx, bson.M{"_id": id}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func deleteByID(ctx context.Context, coll *mongo.Collection, id primitive.ObjectID) error {
	result, err := coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
