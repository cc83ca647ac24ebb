package models

import (
	"errors"
	"fmt"
)

// Kinds surfaced to API callers.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

var (
	ErrRedisConnection = errors.New("redis connection error")
	ErrRedisGet        = errors.New("redis get error")
	ErrRedisSet        = errors.New("redis set error")
	ErrRedisDelete     = errors.New("redis delete error")
)

var (
	ErrDatabaseConnection = errors.New("database connection error")
	ErrDatabaseQuery      = errors.New("database query error")
	ErrDatabaseInsert     = errors.New("database insert error")
	ErrDatabaseUpdate     = errors.New("database update error")
	ErrDatabaseDelete     = errors.New("database delete error")
	ErrDuplicateRecord    = errors.New("duplicate record")
	ErrUnsupportedDriver  = errors.New("unsupported database driver")
)

var (
	ErrQueueConnection = errors.New("queue connection error")
	ErrQueuePublish    = errors.New("queue publish error")
)

// DetailedError carries a caller-facing message while matching its kind with errors.Is.
type DetailedError struct {
	Kind   error
	Detail string
}

func (e *DetailedError) Error() string {
	return e.Detail
}

func (e *DetailedError) Unwrap() error {
	return e.Kind
}

func NotFoundf(format string, args ...any) error {
	return &DetailedError{Kind: ErrNotFound, Detail: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &DetailedError{Kind: ErrConflict, Detail: fmt.Sprintf(format, args...)}
}
