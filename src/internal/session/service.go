package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chatbot-svc/src/clients"
	"chatbot-svc/src/internal/models"
	"chatbot-svc/src/internal/store"

	"github.com/sirupsen/logrus"
)

// UserExistence is the only capability the session slice needs from users.
type UserExistence interface {
	UserExists(ctx context.Context, userID string) (bool, error)
}

type Service interface {
	CreateSession(ctx context.Context, req *CreateSessionRequest) (*Session, error)
	DeleteSession(ctx context.Context, sessionID string) (*DeleteResult, error)
	GetSessionsByUser(ctx context.Context, userID string) ([]*Session, error)
	RenameSession(ctx context.Context, sessionID, newName string) (*Session, error)
}

type sessionService struct {
	sessionRepository Repository
	users             UserExistence
	transactor        store.Transactor
	publisher         clients.ActivityPublisher
	now               func() time.Time
}

func NewSessionService(sessionRepository Repository, users UserExistence, transactor store.Transactor,
	publisher clients.ActivityPublisher) Service {
	return &sessionService{
		sessionRepository: sessionRepository,
		users:             users,
		transactor:        transactor,
		publisher:         publisher,
		now:               time.Now,
	}
}

// CreateSession checks the owner before the session id; the order decides
// which error a request with both problems gets.
func (s *sessionService) CreateSession(ctx context.Context, req *CreateSessionRequest) (*Session, error) {
	var created *Session
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.users.UserExists(ctx, req.UserID)
		if err != nil {
			return err
		}
		if !exists {
			return models.NotFoundf("User with user_id '%s' does not exist. Cannot create session.", req.UserID)
		}

		existing, err := s.sessionRepository.FindByID(ctx, req.SessionID)
		if err != nil {
			return err
		}
		if existing != nil {
			return models.Conflictf("Session with session_id '%s' already exists.", req.SessionID)
		}

		created, err = s.sessionRepository.Insert(ctx, req.ToSession(s.now()))
		if errors.Is(err, models.ErrDuplicateRecord) {
			return models.Conflictf("Session with session_id '%s' already exists.", req.SessionID)
		}
		return err
	})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"session_id": req.SessionID,
			"user_id":    req.UserID,
		}).Warn("Failed to create session")
		return nil, err
	}

	s.publish(ctx, created, models.ActionSessionCreated, nil)

	logrus.WithFields(logrus.Fields{
		"session_id": created.SessionID,
		"user_id":    created.UserID,
	}).Info("Session created")
	return created, nil
}

func (s *sessionService) DeleteSession(ctx context.Context, sessionID string) (*DeleteResult, error) {
	var deleted bool
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.sessionRepository.Delete(ctx, sessionID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, models.NotFoundf("Session with session_id '%s' not found.", sessionID)
	}

	s.publish(ctx, &Session{SessionID: sessionID}, models.ActionSessionDeleted, nil)

	logrus.WithField("session_id", sessionID).Info("Session deleted")
	return &DeleteResult{Message: fmt.Sprintf("Session '%s' deleted successfully.", sessionID)}, nil
}

func (s *sessionService) GetSessionsByUser(ctx context.Context, userID string) ([]*Session, error) {
	var sessions []*Session
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.users.UserExists(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return models.NotFoundf("User with user_id '%s' not found.", userID)
		}

		sessions, err = s.sessionRepository.FindByUser(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (s *sessionService) RenameSession(ctx context.Context, sessionID, newName string) (*Session, error) {
	var updated *Session
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.sessionRepository.UpdateName(ctx, sessionID, newName)
		if err != nil {
			return err
		}
		if updated == nil {
			return models.NotFoundf("Session with session_id '%s' not found.", sessionID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, updated, models.ActionSessionRenamed, map[string]string{"session_name": newName})

	logrus.WithField("session_id", sessionID).Info("Session renamed")
	return updated, nil
}

// publish runs after commit and only logs failures.
func (s *sessionService) publish(ctx context.Context, session *Session, action string, metadata map[string]string) {
	err := s.publisher.PublishActivity(ctx, models.ActivityMessage{
		UserID:      session.UserID,
		SessionID:   session.SessionID,
		ServiceName: models.ServiceSession,
		Action:      action,
		Metadata:    metadata,
	})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"session_id": session.SessionID,
			"action":     action,
		}).Warn("Failed to publish session activity")
	}
}
