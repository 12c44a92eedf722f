package service

import (
	"context"

	"totalpark-backend/internal/domain"
	"totalpark-backend/internal/logger"
	"totalpark-backend/internal/repository"
)

// compositeNotifier records the notification and fans it out to email and
// push. Delivery failures are logged and swallowed; a lost notification
// never fails the reservation transition that produced it.
type compositeNotifier struct {
	userRepo repository.UserRepository
	noteRepo repository.NotificationRepository
	email    EmailSender
	push     PushSender
}

func NewCompositeNotifier(
	userRepo repository.UserRepository,
	noteRepo repository.NotificationRepository,
	email EmailSender,
	push PushSender,
) Notifier {
	return &compositeNotifier{
		userRepo: userRepo,
		noteRepo: noteRepo,
		email:    email,
		push:     push,
	}
}

func (n *compositeNotifier) Notify(ctx context.Context, payerID int32, kind domain.NotificationType, title, message string) {
	note := &domain.Notification{
		PayerID: payerID,
		Type:    kind,
		Title:   title,
		Message: message,
	}
	if err := n.noteRepo.Create(ctx, note); err != nil {
		logger.Warn("notification record failed", "payer_id", payerID, "type", kind, "error", err)
	}

	user, err := n.userRepo.GetByID(ctx, payerID)
	if err != nil {
		logger.Warn("notification recipient lookup failed", "payer_id", payerID, "error", err)
		return
	}

	if n.email != nil && user.Email != "" {
		if err := n.email.Send(ctx, user.Email, user.Name, title, message); err != nil {
			logger.Warn("notification email failed", "payer_id", payerID, "error", err)
		}
	}

	if n.push != nil && user.FCMToken != "" {
		if err := n.push.Send(ctx, user.FCMToken, title, message); err != nil {
			logger.Warn("notification push failed", "payer_id", payerID, "error", err)
		}
	}
}
