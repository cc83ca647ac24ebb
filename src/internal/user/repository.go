package user

import (
	"context"
	"errors"
	"fmt"

	"chatbot-svc/src/internal/models"
	"chatbot-svc/src/internal/store"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Repository interface {
	// FindByID returns (nil, nil) when no user has the id.
	FindByID(ctx context.Context, userID string) (*User, error)
	// Insert writes a new active user. The caller checks id uniqueness;
	// a storage-level duplicate surfaces as models.ErrDuplicateRecord.
	Insert(ctx context.Context, user *User) (*User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) Repository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, userID string) (*User, error) {
	var user User
	err := store.Conn(ctx, r.db).Where("user_id = ?", userID).Take(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to get user")
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseQuery, err)
	}

	return &user, nil
}

func (r *userRepository) Insert(ctx context.Context, user *User) (*User, error) {
	row := *user
	row.IsActive = StatusActive

	if err := store.Conn(ctx, r.db).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logrus.WithField("user_id", row.UserID).Warn("Duplicate user rejected by storage")
			return nil, models.ErrDuplicateRecord
		}
		logrus.WithError(err).WithField("user_id", row.UserID).Error("Failed to insert user")
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseInsert, err)
	}

	created, err := r.FindByID(ctx, row.UserID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: user %s missing after insert", models.ErrDatabaseInsert, row.UserID)
	}

	logrus.WithField("user_id", created.UserID).Debug("User inserted")
	return created, nil
}
