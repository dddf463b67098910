package models

// AuditLog records a successful mutation made by a user.
type AuditLog struct {
	Base
	UserID       string `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Action       string `gorm:"size:50;not null" json:"action"`
	ResourceType string `gorm:"size:50;not null" json:"resource_type"`
	ResourceID   string `gorm:"type:varchar(36)" json:"resource_id"`
	IPAddress    string `gorm:"size:45" json:"ip_address"`
	Changes      string `gorm:"type:text" json:"changes"`
}
