package models

import "time"

type ActivityMessage struct {
	UserID      string            `json:"user_id"`
	SessionID   string            `json:"session_id,omitempty"`
	ServiceName string            `json:"service_name"`
	Action      string            `json:"action"`
	RequestID   string            `json:"request_id,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	Timestamp   time.Time         `json:"timestamp"`
}

// Activity action constants
const (
	ActionUserCreated    = "user_created"
	ActionSessionCreated = "session_created"
	ActionSessionDeleted = "session_deleted"
	ActionSessionRenamed = "session_renamed"
)

// Service name constants
const (
	ServiceUser    = "chatbot.service.user"
	ServiceSession = "chatbot.service.session"
)
