package user

import (
	"context"
	"errors"
	"time"

	"chatbot-svc/src/clients"
	"chatbot-svc/src/internal/models"
	"chatbot-svc/src/internal/store"

	"github.com/sirupsen/logrus"
)

type Service interface {
	CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error)
	GetUser(ctx context.Context, userID string) (*User, error)
}

type userService struct {
	userRepository Repository
	transactor     store.Transactor
	publisher      clients.ActivityPublisher
	now            func() time.Time
}

func NewUserService(userRepository Repository, transactor store.Transactor, publisher clients.ActivityPublisher) Service {
	return &userService{
		userRepository: userRepository,
		transactor:     transactor,
		publisher:      publisher,
		now:            time.Now,
	}
}

func (s *userService) CreateUser(ctx context.Context, req *CreateUserRequest) (*User, error) {
	logrus.WithFields(logrus.Fields{
		"user_id":  req.UserID,
		"username": req.Username,
	}).Debug("Creating user")

	var created *User
	err := s.transactor.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.userRepository.FindByID(ctx, req.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			return models.Conflictf("User with user_id '%s' already exists.", req.UserID)
		}

		created, err = s.userRepository.Insert(ctx, req.ToUser(s.now()))
		if errors.Is(err, models.ErrDuplicateRecord) {
			return models.Conflictf("User with user_id '%s' or email '%s' already exists.", req.UserID, req.Email)
		}
		return err
	})
	if err != nil {
		logrus.WithError(err).WithField("user_id", req.UserID).Warn("Failed to create user")
		return nil, err
	}

	s.publish(ctx, created.UserID, models.ActionUserCreated)

	logrus.WithField("user_id", created.UserID).Info("User created")
	return created, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (*User, error) {
	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NotFoundf("User with user_id '%s' not found.", userID)
	}

	return user, nil
}

// publish never fails the request; the row is already committed.
func (s *userService) publish(ctx context.Context, userID, action string) {
	err := s.publisher.PublishActivity(ctx, models.ActivityMessage{
		UserID:      userID,
		ServiceName: models.ServiceUser,
		Action:      action,
	})
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"action":  action,
		}).Warn("Failed to publish user activity")
	}
}
