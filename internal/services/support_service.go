package services

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "expensetracker/internal/errors"
	"expensetracker/internal/logger"
	"expensetracker/internal/messaging"
	"expensetracker/internal/models"
)

const maxSubjectLength = 200

// supportService stores contact messages and forwards them to the broker.
type supportService struct {
	db        *gorm.DB
	publisher messaging.Publisher
}

// NewSupportService creates a new SupportServicer.
func NewSupportService(db *gorm.DB, publisher messaging.Publisher) SupportServicer {
	if publisher == nil {
		publisher = messaging.NopPublisher{}
	}
	return &supportService{db: db, publisher: publisher}
}

// Submit saves the message and publishes it. A publish failure is logged
// and the message stays undelivered in the database.
func (s *supportService) Submit(ctx context.Context, userID, subject, message string) (*models.SupportMessage, error) {
	subject = strings.TrimSpace(subject)
	message = strings.TrimSpace(message)
	if subject == "" || message == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Please fill in all fields")
	}
	if len([]rune(subject)) > maxSubjectLength {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Subject is too long")
	}

	msg := &models.SupportMessage{
		UserID:  userID,
		Subject: subject,
		Message: message,
	}
	if err := s.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, apperrors.Failed("send message", err)
	}

	contact := messaging.NewContactMessage(msg.ID, userID, subject, message)
	if err := s.publisher.PublishContactMessage(ctx, contact); err != nil {
		logger.Get().Errorw("failed to publish contact message", "error", err, "id", msg.ID)
	}

	return msg, nil
}

// MarkDelivered stamps a message as handed to the support inbox. Marking an
// already delivered message is a no-op.
func (s *supportService) MarkDelivered(ctx context.Context, messageID string) error {
	result := s.db.WithContext(ctx).Model(&models.SupportMessage{}).
		Where("id = ? AND delivered_at IS NULL", messageID).
		Update("delivered_at", time.Now())
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.SupportMessage{}).
			Where("id = ?", messageID).Count(&count).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count == 0 {
			return apperrors.ErrNotFound
		}
	}
	return nil
}
