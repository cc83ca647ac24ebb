// Package store scopes repository work to one unit per request.
package store

import (
	"context"

	"gorm.io/gorm"
)

// Transactor runs fn as a single unit of work.
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

type gormTransactor struct {
	db *gorm.DB
}

func NewGormTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

// RunInTransaction commits when fn returns nil and rolls back otherwise.
func (t *gormTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// Conn returns the transaction carried by ctx, or db bound to ctx.
func Conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}

type directTransactor struct{}

// NewDirectTransactor runs fn without a surrounding transaction. Used for the
// mongo backend, where unique indexes guard against concurrent duplicates.
func NewDirectTransactor() Transactor {
	return directTransactor{}
}

func (directTransactor) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
