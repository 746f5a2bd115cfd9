package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	api "github.com/rogerio-castellano/pos-tracker/internal/http"
	handler "github.com/rogerio-castellano/pos-tracker/internal/http/handlers"
	"github.com/rogerio-castellano/pos-tracker/internal/models"
)

func TestGetNotificationsHandler(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(func() { clearCart(r); clearAll() })

	// stock 5 with threshold 4: the sale of one unit trips low_stock after
	// the product_added and sale notifications
	p := mustCreateProduct(r, handler.ProductRequest{Name: "Milk", Price: 10, Quantity: 5, Threshold: 4})
	sellUnits(r, p.Id, 1, "")

	w := doJSON(r, http.MethodGet, "/notifications", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var notifications []models.Notification
	if err := json.NewDecoder(w.Body).Decode(&notifications); err != nil {
		t.Fatal(err)
	}
	if len(notifications) != 3 {
		t.Fatalf("expected product_added, low_stock and sale notifications, got %d", len(notifications))
	}

	// newest first: the sale-completed emission lands last
	if notifications[0].Type != models.NotificationSale {
		t.Errorf("expected sale notification first, got %s", notifications[0].Type)
	}
	for _, n := range notifications {
		if n.Read {
			t.Errorf("notification %d must start unread", n.ID)
		}
		if n.TimeLabel != "Just now" {
			t.Errorf("fresh notification should read 'Just now', got %q", n.TimeLabel)
		}
	}
}

func TestNotificationsAreOwnerScoped(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(func() { clearCart(r); clearAll() })

	mustCreateProduct(r, handler.ProductRequest{Name: "Milk", Price: 10, Quantity: 5})

	w := doJSON(r, http.MethodGet, "/notifications", secondToken, nil)
	var notifications []models.Notification
	json.NewDecoder(w.Body).Decode(&notifications)
	if len(notifications) != 0 {
		t.Errorf("second user must not see the first user's notifications, got %d", len(notifications))
	}
}

func TestMarkNotificationReadHandler(t *testing.T) {
	r := api.NewRouter(nil)
	t.Cleanup(func() { clearCart(r); clearAll() })

	mustCreateProduct(r, handler.ProductRequest{Name: "Milk", Price: 10, Quantity: 5})

	all, _ := notificationRepo.GetAll(1)
	if len(all) == 0 {
		t.Fatal("expected a product_added notification")
	}
	id := all[0].ID

	if w := doJSON(r, http.MethodPost, fmt.Sprintf("/notifications/%d/read", id), token, nil); w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	all, _ = notificationRepo.GetAll(1)
	if !all[0].Read {
		t.Error("expected the notification flagged read")
	}

	if w := doJSON(r, http.MethodPost, "/notifications/9999/read", token, nil); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown notification, got %d", w.Code)
	}
}
