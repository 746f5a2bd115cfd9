package repo

import (
	"github.com/rogerio-castellano/pos-tracker/internal/models"
)

// NotificationRepository is the append-only sink the rule engine writes
// to. Notifications are owner-scoped and listed newest first.
type NotificationRepository interface {
	Create(n models.Notification) (models.Notification, error)
	GetAll(ownerID int) ([]models.Notification, error)
	MarkRead(id int) error
}
