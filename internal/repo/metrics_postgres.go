package repo

import (
	"context"
	"database/sql"
	"time"
)

type PostgresMetricsRepository struct {
	db             *sql.DB
	expiryCardDays int
}

func NewPostgresMetricsRepository(db *sql.DB, expiryCardDays int) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db, expiryCardDays: expiryCardDays}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics(ownerID int) (Metrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var m Metrics
	now := time.Now()
	start, end := dayBounds(now)

	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE owner_id = $1`, ownerID).Scan(&m.TotalProducts)
	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE owner_id = $1 AND quantity <= threshold`, ownerID).Scan(&m.LowStockCount)
	_ = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE owner_id = $1 AND expires_at IS NOT NULL AND expires_at > $2 AND expires_at <= $3`,
		ownerID, now, now.AddDate(0, 0, r.expiryCardDays)).Scan(&m.ExpiringSoon)

	_ = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total), 0) FROM sales WHERE owner_id = $1 AND created_at >= $2 AND created_at < $3`,
		ownerID, start, end).Scan(&m.SalesToday, &m.RevenueToday)

	_ = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(si.line_profit), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.owner_id = $1 AND s.created_at >= $2 AND s.created_at < $3
	`, ownerID, start, end).Scan(&m.ProfitToday)

	_ = r.db.QueryRowContext(ctx, `
		SELECT si.product_name, SUM(si.quantity) AS sold
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.owner_id = $1 AND s.created_at >= $2 AND s.created_at < $3
		GROUP BY si.product_name
		ORDER BY sold DESC
		LIMIT 1
	`, ownerID, start, end).Scan(&m.TopSeller.Name, &m.TopSeller.UnitsSold)

	return m, nil
}
