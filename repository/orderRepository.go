package repository

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"go-restaurant-ordering/database"
	"go-restaurant-ordering/models"
)

const (
	DefaultRecordPerPage = 10
	MaxRecordPerPage     = 100
)

type OrderRepository struct {
	orders *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{orders: db.Collection(database.OrderCollection)}
}

// OrderFilter narrows admin order listings. Zero fields do not filter.
type OrderFilter struct {
	Status    models.OrderStatus
	Branch    *primitive.ObjectID
	OrderType models.OrderType
	From      *time.Time
	To        *time.Time
	// Search matches an exact order number, or a case-insensitive substring
	// of the customer name or mobile number.
	Search string
}

func (f OrderFilter) query() bson.D {
	query := bson.D{}
	if f.Status != "" {
		query = append(query, bson.E{Key: "status", Value: f.Status})
	}
	if f.Branch != nil {
		query = append(query, bson.E{Key: "branch", Value: *f.Branch})
	}
	if f.OrderType != "" {
		query = append(query, bson.E{Key: "orderType", Value: f.OrderType})
	}
	if f.From != nil || f.To != nil {
		createdAt := bson.D{}
		if f.From != nil {
			createdAt = append(createdAt, bson.E{Key: "$gte", Value: *f.From})
		}
		if f.To != nil {
			createdAt = append(createdAt, bson.E{Key: "$lte", Value: *f.To})
		}
		query = append(query, bson.E{Key: "createdAt", Value: createdAt})
	}
	if search := strings.TrimSpace(f.Search); search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		or := bson.A{
			bson.D{{Key: "fullName", Value: pattern}},
			bson.D{{Key: "mobileNumber", Value: pattern}},
		}
		if n, err := strconv.ParseInt(search, 10, 64); err == nil {
			or = append(or, bson.D{{Key: "orderNo", Value: n}})
		}
		query = append(query, bson.E{Key: "$or", Value: or})
	}
	return query
}

// Page selects a 1-based page of results.
type Page struct {
	Page          int
	RecordPerPage int
}

func (p Page) normalized() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.RecordPerPage < 1 {
		p.RecordPerPage = DefaultRecordPerPage
	}
	if p.RecordPerPage > MaxRecordPerPage {
		p.RecordPerPage = MaxRecordPerPage
	}
	return p
}

type OrderPage struct {
	TotalCount    int64          `json:"total_count"`
	Page          int            `json:"page"`
	RecordPerPage int            `json:"recordPerPage"`
	Orders        []models.Order `json:"orders"`
}

func (r *OrderRepository) Insert(ctx context.Context, order *models.Order) error {
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	_, err := r.orders.InsertOne(ctx, order)
	return translate(err)
}

func (r *OrderRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	if err := r.orders.FindOne(ctx, bson.M{"_id": id}).Decode(&order); err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// UpdateStatus writes the status fields of order, provided the stored status
// is still from. ErrConflict means another update changed it first.
func (r *OrderRepository) UpdateStatus(ctx context.Context, order *models.Order, from models.OrderStatus) error {
	var updateObj primitive.D
	updateObj = append(updateObj, bson.E{Key: "status", Value: order.Status})
	updateObj = append(updateObj, bson.E{Key: "cancelReason", Value: order.CancelReason})
	updateObj = append(updateObj, bson.E{Key: "riderName", Value: order.RiderName})
	updateObj = append(updateObj, bson.E{Key: "updatedAt", Value: order.UpdatedAt})

	result, err := r.orders.UpdateOne(ctx,
		bson.M{"_id": order.ID, "status": from},
		bson.D{{Key: "$set", Value: updateObj}},
	)
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return r.missOrConflict(ctx, order.ID)
	}
	return nil
}

// UpdateItems writes the lines and priced totals of order. Status fields are
// left as stored.
func (r *OrderRepository) UpdateItems(ctx context.Context, order *models.Order) error {
	updateObj := primitive.D{
		{Key: "items", Value: order.Items},
		{Key: "subtotal", Value: order.Subtotal},
		{Key: "tax", Value: order.Tax},
		{Key: "deliveryFee", Value: order.DeliveryFee},
		{Key: "globalDiscountPercentage", Value: order.GlobalDiscountPercentage},
		{Key: "globalDiscount", Value: order.GlobalDiscount},
		{Key: "promoDiscountPercentage", Value: order.PromoDiscountPercentage},
		{Key: "promoDiscount", Value: order.PromoDiscount},
		{Key: "discount", Value: order.Discount},
		{Key: "total", Value: order.Total},
		{Key: "updatedAt", Value: order.UpdatedAt},
	}
	result, err := r.orders.UpdateOne(ctx, bson.M{"_id": order.ID}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		return translate(err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrderRepository) missOrConflict(ctx context.Context, id primitive.ObjectID) error {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := r.orders.FindOne(ctx, bson.M{"_id": id}, opts).Err()
	if err != nil {
		return translate(err)
	}
	return ErrConflict
}

func (r *OrderRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	return deleteByID(ctx, r.orders, id)
}

// List returns one page of orders, newest first, with the total match count.
func (r *OrderRepository) List(ctx context.Context, filter OrderFilter, page Page) (*OrderPage, error) {
	page = page.normalized()
	startIndex := (page.Page - 1) * page.RecordPerPage

	matchStage := bson.D{{Key: "$match", Value: filter.query()}}
	sortStage := bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "orderNo", Value: -1}}}}
	facetStage := bson.D{{Key: "$facet", Value: bson.D{
		{Key: "metadata", Value: bson.A{bson.D{{Key: "$count", Value: "total_count"}}}},
		{Key: "orders", Value: bson.A{
			bson.D{{Key: "$skip", Value: startIndex}},
			bson.D{{Key: "$limit", Value: page.RecordPerPage}},
		}},
	}}}

	cursor, err := r.orders.Aggregate(ctx, mongo.Pipeline{matchStage, sortStage, facetStage})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Metadata []struct {
			TotalCount int64 `bson:"total_count"`
		} `bson:"metadata"`
		Orders []models.Order `bson:"orders"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	out := &OrderPage{Page: page.Page, RecordPerPage: page.RecordPerPage, Orders: []models.Order{}}
	if len(results) > 0 {
		if len(results[0].Metadata) > 0 {
			out.TotalCount = results[0].Metadata[0].TotalCount
		}
		if results[0].Orders != nil {
			out.Orders = results[0].Orders
		}
	}
	return out, nil
}

// FindAll returns every matching order in order-number order, for export.
func (r *OrderRepository) FindAll(ctx context.Context, filter OrderFilter) ([]models.Order, error) {
	cursor, err := r.orders.Find(ctx, filter.query(), options.Find().SetSort(bson.D{{Key: "orderNo", Value: 1}}))
	if err != nil {
		return nil, err
	}
	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// MaxOrderNo is the highest stored order number, or 0 with no orders.
func (r *OrderRepository) MaxOrderNo(ctx context.Context) (int64, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "orderNo", Value: -1}}).
		SetProjection(bson.D{{Key: "orderNo", Value: 1}})

	var latest struct {
		OrderNo int64 `bson:"orderNo"`
	}
	err := r.orders.FindOne(ctx, bson.M{}, opts).Decode(&latest)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return latest.OrderNo, nil
}
