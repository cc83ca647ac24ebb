package user

import (
	"context"
	"errors"
	"fmt"

	"chatbot-svc/src/clients"
	"chatbot-svc/src/internal/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoRepository struct {
	collection *mongo.Collection
}

func NewMongoUserRepository(mongoClient *clients.MongoDB, collectionName string) Repository {
	return newMongoRepository(mongoClient.Database.Collection(collectionName))
}

func newMongoRepository(collection *mongo.Collection) *mongoRepository {
	return &mongoRepository{collection: collection}
}

func (r *mongoRepository) FindByID(ctx context.Context, userID string) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to get user")
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseQuery, err)
	}

	return &user, nil
}

func (r *mongoRepository) Insert(ctx context.Context, user *User) (*User, error) {
	row := *user
	row.IsActive = StatusActive

	if _, err := r.collection.InsertOne(ctx, row); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			logrus.WithField("user_id", row.UserID).Warn("Duplicate user rejected by storage")
			return nil, models.ErrDuplicateRecord
		}
		logrus.WithError(err).WithField("user_id", row.UserID).Error("Failed to insert user")
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseInsert, err)
	}

	return &row, nil
}

// EnsureIndexes creates the unique email index and the username index.
func (r *mongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("idx_username"),
		},
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to create user indexes")
		return err
	}
	return nil
}

func EnsureMongoIndexes(ctx context.Context, mongoClient *clients.MongoDB, collectionName string) error {
	return newMongoRepository(mongoClient.Database.Collection(collectionName)).EnsureIndexes(ctx)
}
