package models

import "time"

type NotificationType string

const (
	NotificationLowStock      NotificationType = "low_stock"
	NotificationOutOfStock    NotificationType = "out_of_stock"
	NotificationHighSelling   NotificationType = "high_selling"
	NotificationZeroSales     NotificationType = "zero_sales"
	NotificationDailySummary  NotificationType = "daily_summary"
	NotificationWeeklySummary NotificationType = "weekly_summary"
	NotificationExpense       NotificationType = "expense"
	NotificationExpiry        NotificationType = "expiry"
	NotificationBackup        NotificationType = "backup"
	NotificationAppUpdate     NotificationType = "app_update"
	NotificationProductAdded  NotificationType = "product_added"
	NotificationSale          NotificationType = "sale"
)

// Notification is an alert emitted by the rule engine. It is append-only;
// the only mutation is flipping the read flag when the user opens it.
type Notification struct {
	ID        int              `json:"id"`
	OwnerID   int              `json:"owner_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	TimeLabel string           `json:"time_label"`
	Read      bool             `json:"read"`
	ProductID *int             `json:"product_id,omitempty"`
	DaysLeft  *int             `json:"days_left,omitempty"` // expiry only
	CreatedAt time.Time        `json:"created_at"`
}
