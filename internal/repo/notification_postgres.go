package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rogerio-castellano/pos-tracker/internal/models"
)

type PostgresNotificationRepository struct {
	db *sql.DB
}

func NewPostgresNotificationRepository(db *sql.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) Create(n models.Notification) (models.Notification, error) {
	query := `INSERT INTO notifications (owner_id, type, title, message, time_label, read, product_id, days_left, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		n.OwnerID, n.Type, n.Title, n.Message, n.TimeLabel, n.Read, n.ProductID, n.DaysLeft, n.CreatedAt,
	).Scan(&n.ID)
	if err != nil {
		return models.Notification{}, fmt.Errorf("failed to insert notification: %w", err)
	}
	return n, nil
}

func (r *PostgresNotificationRepository) GetAll(ownerID int) ([]models.Notification, error) {
	query := `SELECT id, owner_id, type, title, message, time_label, read, product_id, days_left, created_at
		FROM notifications WHERE owner_id = $1 ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.OwnerID, &n.Type, &n.Title, &n.Message, &n.TimeLabel, &n.Read, &n.ProductID, &n.DaysLeft, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *PostgresNotificationRepository) MarkRead(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
