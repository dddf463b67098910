package services

import (
	"context"
	"encoding/json"
	"strings"

	"gorm.io/gorm"

	"expensetracker/internal/logger"
	"expensetracker/internal/models"
)

// Audit actions.
const (
	AuditCreate         = "CREATE"
	AuditUpdate         = "UPDATE"
	AuditDelete         = "DELETE"
	AuditLogin          = "LOGIN"
	AuditRegister       = "REGISTER"
	AuditChangePassword = "CHANGE_PASSWORD"
)

const redacted = "[redacted]"

type auditService struct {
	db *gorm.DB
}

// NewAuditService creates a new AuditServicer.
func NewAuditService(db *gorm.DB) AuditServicer {
	return &auditService{db: db}
}

// Log records who did what to which category, expense or account. It
// never fails the request: write errors only reach the log.
func (s *auditService) Log(ctx context.Context, userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{}) {
	entry := &models.AuditLog{
		UserID:       userID,
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		IPAddress:    ipAddress,
		Changes:      encodeChanges(action, changes),
	}

	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		logger.Get().Errorw("failed to create audit log entry",
			"error", err,
			"user_id", userID,
			"action", action,
			"resource_type", resourceType,
			"resource_id", resourceID,
		)
	}
}

// encodeChanges renders changes as JSON with secrets masked. Empty when
// there is nothing to record.
func encodeChanges(action string, changes map[string]interface{}) string {
	if len(changes) == 0 {
		return ""
	}

	safe := make(map[string]interface{}, len(changes))
	for k, v := range changes {
		if isSecretKey(k) {
			v = redacted
		}
		safe[k] = v
	}

	data, err := json.Marshal(safe)
	if err != nil {
		logger.Get().Errorw("failed to marshal audit log changes", "error", err, "action", action)
		return "{}"
	}
	return string(data)
}

func isSecretKey(key string) bool {
	key = strings.ToLower(key)
	return strings.Contains(key, "password") || strings.Contains(key, "token")
}
