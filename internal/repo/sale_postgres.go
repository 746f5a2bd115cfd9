package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rogerio-castellano/pos-tracker/internal/models"
)

type PostgresSaleRepository struct {
	db *sql.DB
}

func NewPostgresSaleRepository(db *sql.DB) *PostgresSaleRepository {
	return &PostgresSaleRepository{db: db}
}

const defaultSaleLimit = 100

// Create appends the sale and its line items in one transaction. The
// sales.idempotency_key column carries a unique index per owner.
func (r *PostgresSaleRepository) Create(sale models.Sale) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Sale{}, fmt.Errorf("failed to begin sale transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO sales (owner_id, idempotency_key, total, payment_method, debtor_name, debtor_phone, debtor_amount_owed, debtor_notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`

	var debtorName, debtorPhone, debtorNotes *string
	var debtorOwed *float64
	if sale.Debtor != nil {
		debtorName, debtorPhone = &sale.Debtor.Name, &sale.Debtor.Phone
		debtorOwed = &sale.Debtor.AmountOwed
		if sale.Debtor.Notes != "" {
			debtorNotes = &sale.Debtor.Notes
		}
	}

	err = tx.QueryRowContext(ctx, query,
		sale.OwnerID, sale.IdempotencyKey, sale.Total, sale.PaymentMethod,
		debtorName, debtorPhone, debtorOwed, debtorNotes, sale.CreatedAt,
	).Scan(&sale.ID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return models.Sale{}, ErrDuplicateSale
		}
		return models.Sale{}, fmt.Errorf("failed to insert sale: %w", err)
	}

	itemQuery := `INSERT INTO sale_items (sale_id, product_id, product_name, quantity, unit_price, unit_cost, line_total, line_profit)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, it := range sale.Items {
		if _, err := tx.ExecContext(ctx, itemQuery,
			sale.ID, it.ProductID, it.ProductName, it.Quantity,
			it.UnitPrice, it.UnitCost, it.LineTotal, it.LineProfit); err != nil {
			return models.Sale{}, fmt.Errorf("failed to insert sale item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Sale{}, fmt.Errorf("failed to commit sale: %w", err)
	}
	return sale, nil
}

func (r *PostgresSaleRepository) GetByID(id int) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	sale, err := r.scanSale(ctx, `WHERE id = $1`, id)
	if err != nil {
		return models.Sale{}, err
	}
	return sale, nil
}

func (r *PostgresSaleRepository) GetByKey(ownerID int, idempotencyKey string) (models.Sale, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return r.scanSale(ctx, `WHERE owner_id = $1 AND idempotency_key = $2`, ownerID, idempotencyKey)
}

func (r *PostgresSaleRepository) scanSale(ctx context.Context, where string, args ...any) (models.Sale, error) {
	query := `SELECT id, owner_id, idempotency_key, total, payment_method, debtor_name, debtor_phone, debtor_amount_owed, debtor_notes, created_at FROM sales ` + where

	var s models.Sale
	var debtorName, debtorPhone, debtorNotes sql.NullString
	var debtorOwed sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&s.ID, &s.OwnerID, &s.IdempotencyKey, &s.Total, &s.PaymentMethod,
		&debtorName, &debtorPhone, &debtorOwed, &debtorNotes, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, ErrSaleNotFound
	}
	if err != nil {
		return models.Sale{}, err
	}

	if debtorName.Valid {
		s.Debtor = &models.Debtor{
			Name:       debtorName.String,
			Phone:      debtorPhone.String,
			AmountOwed: debtorOwed.Float64,
			Notes:      debtorNotes.String,
		}
	}

	items, err := r.itemsForSales(ctx, []int{s.ID})
	if err != nil {
		return models.Sale{}, err
	}
	s.Items = items[s.ID]
	return s, nil
}

func (r *PostgresSaleRepository) GetAll(ownerID int, sf SaleFilter) ([]models.Sale, int, error) {
	whereClause, args := buildSaleWhere(ownerID, sf)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var total int
	countQuery := "SELECT COUNT(*) FROM sales " + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	query := `SELECT id, owner_id, idempotency_key, total, payment_method, debtor_name, debtor_phone, debtor_amount_owed, debtor_notes, created_at FROM sales ` +
		whereClause + " ORDER BY created_at DESC"

	argIdx := len(args) + 1
	limit := defaultSaleLimit
	if sf.Limit != nil && *sf.Limit > 0 {
		limit = min(*sf.Limit, defaultSaleLimit)
	}
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, limit)
	argIdx++
	if sf.Offset != nil && *sf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *sf.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var sales []models.Sale
	var ids []int
	for rows.Next() {
		var s models.Sale
		var debtorName, debtorPhone, debtorNotes sql.NullString
		var debtorOwed sql.NullFloat64
		if err := rows.Scan(&s.ID, &s.OwnerID, &s.IdempotencyKey, &s.Total, &s.PaymentMethod,
			&debtorName, &debtorPhone, &debtorOwed, &debtorNotes, &s.CreatedAt); err != nil {
			return nil, 0, err
		}
		if debtorName.Valid {
			s.Debtor = &models.Debtor{Name: debtorName.String, Phone: debtorPhone.String, AmountOwed: debtorOwed.Float64, Notes: debtorNotes.String}
		}
		sales = append(sales, s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	itemsBySale, err := r.itemsForSales(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range sales {
		sales[i].Items = itemsBySale[sales[i].ID]
	}
	return sales, total, nil
}

func buildSaleWhere(ownerID int, sf SaleFilter) (string, []any) {
	args := []any{ownerID}
	whereClause := "WHERE owner_id = $1"
	argIdx := 2

	if sf.Since != nil {
		whereClause += fmt.Sprintf(" AND created_at >= $%d", argIdx)
		args = append(args, *sf.Since)
		argIdx++
	}
	if sf.Until != nil {
		whereClause += fmt.Sprintf(" AND created_at <= $%d", argIdx)
		args = append(args, *sf.Until)
	}
	return whereClause, args
}

func (r *PostgresSaleRepository) itemsForSales(ctx context.Context, saleIDs []int) (map[int][]models.SaleItem, error) {
	result := make(map[int][]models.SaleItem)
	if len(saleIDs) == 0 {
		return result, nil
	}

	placeholders := make([]string, len(saleIDs))
	args := make([]any, len(saleIDs))
	for i, id := range saleIDs {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	query := `SELECT sale_id, product_id, product_name, quantity, unit_price, unit_cost, line_total, line_profit
		FROM sale_items WHERE sale_id IN (` + strings.Join(placeholders, ", ") + `) ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var saleID int
		var it models.SaleItem
		if err := rows.Scan(&saleID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.UnitCost, &it.LineTotal, &it.LineProfit); err != nil {
			return nil, err
		}
		result[saleID] = append(result[saleID], it)
	}
	return result, rows.Err()
}

func (r *PostgresSaleRepository) Delete(id int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrSaleNotFound
	}
	return nil
}

func (r *PostgresSaleRepository) QuantitySoldOn(ownerID, productID int, day time.Time) (int, error) {
	start, end := dayBounds(day)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var sold int
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(si.quantity), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.owner_id = $1 AND si.product_id = $2 AND s.created_at >= $3 AND s.created_at < $4
	`, ownerID, productID, start, end).Scan(&sold)
	return sold, err
}

func (r *PostgresSaleRepository) TotalsOn(ownerID int, day time.Time) (SaleTotals, error) {
	start, end := dayBounds(day)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var t SaleTotals
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM sales WHERE owner_id = $1 AND created_at >= $2 AND created_at < $3
	`, ownerID, start, end).Scan(&t.Count, &t.Revenue)
	if err != nil {
		return SaleTotals{}, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(si.line_profit), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.owner_id = $1 AND s.created_at >= $2 AND s.created_at < $3
	`, ownerID, start, end).Scan(&t.Profit)
	return t, err
}
