package messaging

import (
	"encoding/json"
	"time"
)

// ContactMessage is a help-page submission forwarded to the support inbox.
type ContactMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewContactMessage stamps a contact message with the current time.
func NewContactMessage(id, userID, subject, message string) *ContactMessage {
	return &ContactMessage{
		ID:        id,
		UserID:    userID,
		Subject:   subject,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *ContactMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ContactMessageFromJSON decodes a message body.
func ContactMessageFromJSON(data []byte) (*ContactMessage, error) {
	var msg ContactMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
