package repo

import (
	"github.com/rogerio-castellano/pos-tracker/internal/models"
)

type InMemoryNotificationRepository struct {
	notifications []models.Notification
	nextID        int
}

func NewInMemoryNotificationRepository() *InMemoryNotificationRepository {
	return &InMemoryNotificationRepository{
		notifications: []models.Notification{},
		nextID:        1,
	}
}

func (r *InMemoryNotificationRepository) Create(n models.Notification) (models.Notification, error) {
	n.ID = r.nextID
	r.nextID++
	r.notifications = append(r.notifications, n)
	return n, nil
}

// GetAll returns the owner's notifications, newest first.
func (r *InMemoryNotificationRepository) GetAll(ownerID int) ([]models.Notification, error) {
	var owned []models.Notification
	for i := len(r.notifications) - 1; i >= 0; i-- {
		if r.notifications[i].OwnerID == ownerID {
			owned = append(owned, r.notifications[i])
		}
	}
	return owned, nil
}

func (r *InMemoryNotificationRepository) MarkRead(id int) error {
	for i, n := range r.notifications {
		if n.ID == id {
			r.notifications[i].Read = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (r *InMemoryNotificationRepository) Clear() {
	r.notifications = []models.Notification{}
}
