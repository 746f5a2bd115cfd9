package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	models "github.com/rogerio-castellano/pos-tracker/internal/models"
)

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

const productColumns = `id, owner_id, name, category, cost_price, price, quantity, threshold, expires_at`

func scanProduct(row interface{ Scan(...any) error }) (models.Product, error) {
	var p models.Product
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Category, &p.CostPrice, &p.Price, &p.Quantity, &p.Threshold, &p.ExpiresAt)
	return p, err
}

func (r *PostgresProductRepository) Create(p models.Product) (models.Product, error) {
	query := `INSERT INTO products (owner_id, name, category, cost_price, price, quantity, threshold, expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.OwnerID, p.Name, p.Category, p.CostPrice, p.Price, p.Quantity, p.Threshold, p.ExpiresAt, p.CreatedAt, p.UpdatedAt).Scan(&p.ID)
	if err != nil && strings.Contains(err.Error(), "duplicate key") {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	return p, err
}

func (r *PostgresProductRepository) GetAll(ownerID int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 ORDER BY id`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) GetByID(id int) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) Update(p models.Product) (models.Product, error) {
	query := `UPDATE products SET name = $1, category = $2, cost_price = $3, price = $4, quantity = $5, threshold = $6, expires_at = $7, updated_at = $8 WHERE id = $9`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, p.Name, p.Category, p.CostPrice, p.Price, p.Quantity, p.Threshold, p.ExpiresAt, p.UpdatedAt, p.ID)
	if err != nil {
		return models.Product{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}

func (r *PostgresProductRepository) Delete(id int) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) AdjustQuantity(productID int, delta int) (models.Product, error) {
	query := `
		UPDATE products
		SET quantity = quantity + $1, updated_at = $2
		WHERE id = $3 AND quantity + $1 >= 0
		RETURNING ` + productColumns + `
	`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, delta, time.Now().UTC(), productID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrInvalidQuantityChange
	}
	return p, err
}

// DecrementStock is the transactional variant used by checkout: the
// decrement clamps at zero instead of failing, and the previous quantity
// is read in the same statement so a concurrent shortfall is detectable.
func (r *PostgresProductRepository) DecrementStock(productID int, qty int) (models.Product, bool, error) {
	query := `
		UPDATE products p
		SET quantity = GREATEST(p.quantity - $1, 0), updated_at = $2
		FROM (SELECT quantity AS prev_qty FROM products WHERE id = $3 FOR UPDATE) prev
		WHERE p.id = $3
		RETURNING p.id, p.owner_id, p.name, p.category, p.cost_price, p.price, p.quantity, p.threshold, p.expires_at, prev.prev_qty
	`
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var p models.Product
	var prevQty int
	err := r.db.QueryRowContext(ctx, query, qty, time.Now().UTC(), productID).
		Scan(&p.ID, &p.OwnerID, &p.Name, &p.Category, &p.CostPrice, &p.Price, &p.Quantity, &p.Threshold, &p.ExpiresAt, &prevQty)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, false, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, false, fmt.Errorf("failed to decrement stock: %w", err)
	}
	return p, prevQty < qty, nil
}

func (r *PostgresProductRepository) ExpiringWithin(ownerID, days int) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE owner_id = $1
		  AND expires_at IS NOT NULL
		  AND expires_at > $2
		  AND expires_at <= $3
		ORDER BY expires_at`
	now := time.Now().UTC()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, ownerID, now, now.AddDate(0, 0, days))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
