// Package migration creates the users and sessions schema.
package migration

import (
	"context"
	"fmt"

	"chatbot-svc/src/internal/config"
	"chatbot-svc/src/internal/dependency"
	"chatbot-svc/src/internal/session"
	"chatbot-svc/src/internal/user"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Run creates tables (gorm) or indexes (mongo). Both are idempotent.
func Run(ctx context.Context, conns *dependency.Connections, cfg *config.Configuration) error {
	if conns.Mongodb != nil {
		if err := user.EnsureMongoIndexes(ctx, conns.Mongodb, cfg.Database.UserCollection); err != nil {
			return fmt.Errorf("user indexes: %w", err)
		}
		if err := session.EnsureMongoIndexes(ctx, conns.Mongodb, cfg.Database.SessionCollection); err != nil {
			return fmt.Errorf("session indexes: %w", err)
		}
		logrus.Info("MongoDB indexes ensured")
		return nil
	}

	if err := AutoMigrate(conns.Database.DB.WithContext(ctx)); err != nil {
		return err
	}
	logrus.WithField("driver", cfg.Database.Driver).Info("Database tables created or already exist")
	return nil
}

func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&user.User{}, &session.Session{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
