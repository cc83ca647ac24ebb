package session

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

func NewMongoSessionRepository(db *clients.MongoDB, collectionName string) Repository {
	return newMongoRepository(db.Database.Collection(collectionName))
}

func newMongoRepository(collection *mongo.Collection) *mongoRepository {
	return &mongoRepository{collection: collection}
}

func (r *mongoRepository) FindByID(ctx context.Context, sessionID string) (*Session, error) {
	var session Session
	err := r.collection.FindOne(ctx, bson.M{"_id": sessionID}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to get session")
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseQuery, err)
	}

	return &session, nil
}

func (r *mongoRepository) Insert(ctx context.Context, session *Session) (*Session, error) {
	row := *session
	row.ActiveStatus = StatusActive

	if _, err := r.collection.InsertOne(ctx, row); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			logrus.WithField("session_id", row.SessionID).Warn("Duplicate session rejected by storage")
			return nil, models.ErrDuplicateRecord
		}
		logrus.WithError(err).WithField("session_id", row.SessionID).Error("Failed to insert session")
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseInsert, err)
	}

	return &row, nil
}

func (r *mongoRepository) Delete(ctx context.Context, sessionID string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": sessionID})
	if err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to delete session")
		return false, fmt.Errorf("%w: %v", models.ErrDatabaseDelete, err)
	}

	return result.DeletedCount > 0, nil
}

func (r *mongoRepository) FindByUser(ctx context.Context, userID string) ([]*Session, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list sessions")
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseQuery, err)
	}
	defer cursor.Close(ctx)

	sessions := make([]*Session, 0)
	for cursor.Next(ctx) {
		var session Session
		if err := cursor.Decode(&session); err != nil {
			logrus.WithError(err).Error("Failed to decode session")
			return nil, fmt.Errorf("%w: %v", models.ErrDatabaseQuery, err)
		}
		sessions = append(sessions, &session)
	}

	if err := cursor.Err(); err != nil {
		logrus.WithError(err).Error("Cursor error")
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseQuery, err)
	}

	return sessions, nil
}

func (r *mongoRepository) UpdateName(ctx context.Context, sessionID, name string) (*Session, error) {
	var session Session
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": sessionID},
		bson.M{"$set": bson.M{"session_name": name}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to rename session")
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseUpdate, err)
	}

	return &session, nil
}

func (r *mongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().SetName("idx_user_id"),
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to create session indexes")
		return err
	}
	return nil
}

func EnsureMongoIndexes(ctx context.Context, db *clients.MongoDB, collectionName string) error {
	return newMongoRepository(db.Database.Collection(collectionName)).EnsureIndexes(ctx)
}
