package user

import (
	"time"
)

// Active flag values.
const (
	StatusInactive = 0
	StatusActive   = 1
)

type User struct {
	UserID      string    `json:"user_id" gorm:"column:user_id;primaryKey;size:128" bson:"_id"`
	Username    string    `json:"username" gorm:"column:username;size:255;index;not null" bson:"username"`
	Email       string    `json:"email" gorm:"column:email;size:255;uniqueIndex;not null" bson:"email"`
	CreatedTime time.Time `json:"created_time" gorm:"column:created_time;not null" bson:"created_time"`
	IsActive    int       `json:"is_active" gorm:"column:is_active;not null;default:1" bson:"is_active"`
}

func (User) TableName() string {
	return "users"
}

// CreateUserRequest is the validated input of CreateUser.
type CreateUserRequest struct {
	UserID      string
	Username    string
	Email       string
	CreatedTime *time.Time
}

// createUserBody is the JSON body of POST /user/create. Pointer fields let
// binding reject a missing key while still accepting "".
type createUserBody struct {
	UserID      *string    `json:"user_id" binding:"required"`
	Username    *string    `json:"username" binding:"required"`
	Email       *string    `json:"email" binding:"required"`
	CreatedTime *time.Time `json:"created_time"`
}

func (b *createUserBody) request() *CreateUserRequest {
	return &CreateUserRequest{
		UserID:      *b.UserID,
		Username:    *b.Username,
		Email:       *b.Email,
		CreatedTime: b.CreatedTime,
	}
}

// ToUser builds the row to insert; created_time defaults to now.
func (r *CreateUserRequest) ToUser(now time.Time) *User {
	createdTime := now
	if r.CreatedTime != nil && !r.CreatedTime.IsZero() {
		createdTime = *r.CreatedTime
	}

	return &User{
		UserID:      r.UserID,
		Username:    r.Username,
		Email:       r.Email,
		CreatedTime: createdTime.UTC(),
		IsActive:    StatusActive,
	}
}
