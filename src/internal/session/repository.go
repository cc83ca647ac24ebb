package session

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
	// FindByID returns (nil, nil) when no session has the id.
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Insert(ctx context.Context, session *Session) (*Session, error)
	// Delete reports whether a row existed.
	Delete(ctx context.Context, sessionID string) (bool, error)
	// FindByUser never returns nil on success.
	FindByUser(ctx context.Context, userID string) ([]*Session, error)
	// UpdateName returns (nil, nil) when no session has the id.
	UpdateName(ctx context.Context, sessionID, name string) (*Session, error)
}

type repository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, sessionID string) (*Session, error) {
	var session Session
	err := store.Conn(ctx, r.db).Where("session_id = ?", sessionID).Take(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to get session")
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseQuery, err)
	}

	return &session, nil
}

func (r *repository) Insert(ctx context.Context, session *Session) (*Session, error) {
	row := *session
	row.ActiveStatus = StatusActive

	if err := store.Conn(ctx, r.db).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logrus.WithField("session_id", row.SessionID).Warn("Duplicate session rejected by storage")
			return nil, models.ErrDuplicateRecord
		}
		logrus.WithError(err).WithField("session_id", row.SessionID).Error("Failed to insert session")
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseInsert, err)
	}

	created, err := r.FindByID(ctx, row.SessionID)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, fmt.Errorf("%w: session %s missing after insert", models.ErrDatabaseInsert, row.SessionID)
	}

	return created, nil
}

func (r *repository) Delete(ctx context.Context, sessionID string) (bool, error) {
	result := store.Conn(ctx, r.db).Where("session_id = ?", sessionID).Delete(&Session{})
	if result.Error != nil {
		logrus.WithError(result.Error).WithField("session_id", sessionID).Error("Failed to delete session")
		return false, fmt.Errorf("%w: %v", models.ErrDatabaseDelete, result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *repository) FindByUser(ctx context.Context, userID string) ([]*Session, error) {
	sessions := make([]*Session, 0)
	if err := store.Conn(ctx, r.db).Where("user_id = ?", userID).Find(&sessions).Error; err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list sessions")
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseQuery, err)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"count":   len(sessions),
	}).Debug("Sessions listed")

	return sessions, nil
}

func (r *repository) UpdateName(ctx context.Context, sessionID, name string) (*Session, error) {
	existing, err := r.FindByID(ctx, sessionID)
	if err != nil || existing == nil {
		return nil, err
	}

	err = store.Conn(ctx, r.db).
		Model(&Session{}).
		Where("session_id = ?", sessionID).
		Update("session_name", name).Error
	if err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Error("Failed to rename session")
		return nil, fmt.Errorf("%w: %v", models.ErrDatabaseUpdate, err)
	}

	return r.FindByID(ctx, sessionID)
}
