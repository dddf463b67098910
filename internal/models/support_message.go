package models

import "time"

// SupportMessage is a contact-form submission waiting for (or past) delivery
// to the support inbox.
type SupportMessage struct {
	Base
	UserID      string     `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Subject     string     `gorm:"size:200;not null" json:"subject"`
	Message     string     `gorm:"type:text;not null" json:"message"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}
