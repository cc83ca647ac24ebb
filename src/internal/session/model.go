package session

import "time"

// Active status values.
const (
	StatusInactive = 0
	StatusActive   = 1
)

type Session struct {
	SessionID    string     `json:"session_id" gorm:"column:session_id;primaryKey;size:128" bson:"_id"`
	UserID       string     `json:"user_id" gorm:"column:user_id;size:128;index;not null" bson:"user_id"`
	SessionName  string     `json:"session_name" gorm:"column:session_name;size:255;not null" bson:"session_name"`
	LoginTime    time.Time  `json:"login_time" gorm:"column:login_time;not null" bson:"login_time"`
	LogoutTime   *time.Time `json:"logout_time" gorm:"column:logout_time" bson:"logout_time,omitempty"`
	ActiveStatus int        `json:"active_status" gorm:"column:active_status;not null;default:1" bson:"active_status"`
}

func (Session) TableName() string {
	return "sessions"
}

// CreateSessionRequest is the validated input of CreateSession.
// CreatedTime becomes the session's login_time.
type CreateSessionRequest struct {
	SessionID   string
	UserID      string
	SessionName string
	CreatedTime *time.Time
}

// createSessionBody is the JSON body of POST /session/create. Pointer fields
// let binding reject a missing key while still accepting "".
type createSessionBody struct {
	SessionID   *string    `json:"session_id" binding:"required"`
	UserID      *string    `json:"user_id" binding:"required"`
	SessionName *string    `json:"session_name" binding:"required"`
	CreatedTime *time.Time `json:"created_time"`
}

func (b *createSessionBody) request() *CreateSessionRequest {
	return &CreateSessionRequest{
		SessionID:   *b.SessionID,
		UserID:      *b.UserID,
		SessionName: *b.SessionName,
		CreatedTime: b.CreatedTime,
	}
}

// renameSessionBody is the JSON body of PUT /session/:session_id/rename.
type renameSessionBody struct {
	NewSessionName *string `json:"new_session_name" binding:"required"`
}

type DeleteResult struct {
	Message string `json:"message"`
}

// ToSession builds the row to insert. The active status is always forced on.
func (r *CreateSessionRequest) ToSession(now time.Time) *Session {
	loginTime := now
	if r.CreatedTime != nil && !r.CreatedTime.IsZero() {
		loginTime = *r.CreatedTime
	}

	return &Session{
		SessionID:    r.SessionID,
		UserID:       r.UserID,
		SessionName:  r.SessionName,
		LoginTime:    loginTime.UTC(),
		ActiveStatus: StatusActive,
	}
}
