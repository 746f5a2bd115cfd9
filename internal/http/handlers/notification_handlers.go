package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/pos-tracker/internal/notify"
	repo "github.com/rogerio-castellano/pos-tracker/internal/repo"
)

// GetNotificationsHandler godoc
// @Summary List the owner's notifications, newest first
// @Description Relative time labels are recomputed at read time
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Notification
// @Failure 500 {string} string "Internal error"
// @Router /notifications [get]
func GetNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	notifications, err := notificationRepo.GetAll(GetUserID(r))
	if err != nil {
		http.Error(w, "could not fetch notifications", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	for i := range notifications {
		notifications[i].TimeLabel = notify.TimeLabel(notifications[i].CreatedAt, now)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(notifications)
}

// MarkNotificationReadHandler godoc
// @Summary Mark a notification as read
// @Tags notifications
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 204 "Marked read"
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /notifications/{id}/read [post]
func MarkNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid notification ID", http.StatusBadRequest)
		return
	}

	if err := notificationRepo.MarkRead(id); err != nil {
		if err == repo.ErrNotificationNotFound {
			http.Error(w, "notification not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update notification", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
