package repository

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"go-restaurant-ordering/database"
	"go-restaurant-ordering/models"
)

type UserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{users: db.Collection(database.UserCollection)}
}

func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	return r.users.CountDocuments(ctx, bson.M{})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.users.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}).Decode(&user); err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// Insert stores a new user. Email is lower-cased; the password must already
// be hashed.
func (r *UserRepository) Insert(ctx context.Context, user *models.User) error {
	if user.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*user.Email))
		user.Email = &email
	}
	user.Created_at = Timestamp()
	user.Updated_at = user.Created_at
	user.ID = primitive.NewObjectID()
	user.User_id = user.ID.Hex()
	_, err := r.users.InsertOne(ctx, user)
	return translate(err)
}

func (r *UserRepository) UpdateTokens(ctx context.Context, userID, token, refreshToken string) error {
	var updateObj primitive.D
	updateObj = append(updateObj, bson.E{Key: "token", Value: token})
	updateObj = append(updateObj, bson.E{Key: "refresh_token", Value: refreshToken})
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: Timestamp()})

	result, err := r.users.UpdateOne(ctx, bson.M{"user_id": userID}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
