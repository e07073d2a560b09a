package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"inventory_tracker/internal/models"
)

type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

var _ Products = (*ProductRepository)(nil)

const (
	selectProductsSQL = `
		SELECT id, product_name, category, price, quantity, created_at
		FROM products ORDER BY created_at DESC, id DESC
	`

	selectProductByIDSQL = `
		SELECT id, product_name, category, price, quantity, created_at
		FROM products WHERE id = ?
	`

	selectStatsSQL = `
		SELECT COUNT(*),
		       COALESCE(SUM(quantity), 0),
		       COALESCE(SUM(CASE WHEN quantity < ? THEN 1 ELSE 0 END), 0)
		FROM products
	`

	insertProductSQL = `
		INSERT INTO products (product_name, category, price, quantity, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	updateProductSQL = `
		UPDATE products SET product_name = ?, category = ?, price = ?, quantity = ?
		WHERE id = ?
	`

	selectProductNameSQL = `SELECT product_name FROM products WHERE id = ?`
	deleteProductSQL     = `DELETE FROM products WHERE id = ?`
)

// List returns every product, newest first.
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, selectProductsSQL)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.ProductName, &p.Category, &p.Price, &p.Quantity, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product row: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate product rows: %w", err)
	}
	return products, nil
}

// Stats aggregates totals in a single query; an empty table yields zeros.
func (r *ProductRepository) Stats(ctx context.Context, threshold int) (models.Stats, error) {
	var s models.Stats
	err := r.db.QueryRowContext(ctx, selectStatsSQL, threshold).
		Scan(&s.TotalProducts, &s.TotalStock, &s.LowStockCount)
	if err != nil {
		return models.Stats{}, fmt.Errorf("select stats: %w", err)
	}
	return s, nil
}

// GetByID fetches a single product. Returns (nil, nil) if not found.
func (r *ProductRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	var p models.Product
	err := r.db.QueryRowContext(ctx, selectProductByIDSQL, id).
		Scan(&p.ID, &p.ProductName, &p.Category, &p.Price, &p.Quantity, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select product %d: %w", id, err)
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}

// Insert adds a row and returns its new id and creation time.
func (r *ProductRepository) Insert(ctx context.Context, name, category string, price float64, quantity int) (int, time.Time, error) {
	createdAt := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, insertProductSQL, name, category, price, quantity, createdAt)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("insert product %q: %w", name, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("get last insert id for product %q: %w", name, err)
	}
	return int(lastID), createdAt, nil
}

// Update replaces all mutable fields of the row. Returns false when the
// id does not exist.
func (r *ProductRepository) Update(ctx context.Context, id int, name, category string, price float64, quantity int) (bool, error) {
	res, err := r.db.ExecContext(ctx, updateProductSQL, name, category, price, quantity, id)
	if err != nil {
		return false, fmt.Errorf("update product %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for product %d: %w", id, err)
	}
	return n > 0, nil
}

// Delete removes the row and returns the deleted name for confirmation
// messaging. The lookup and delete run in one transaction so the name
// always belongs to the row that was removed.
func (r *ProductRepository) Delete(ctx context.Context, id int) (string, bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("begin delete transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var name string
	if err := tx.QueryRowContext(ctx, selectProductNameSQL, id).Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("select product name %d: %w", id, err)
	}

	if _, err := tx.ExecContext(ctx, deleteProductSQL, id); err != nil {
		return "", false, fmt.Errorf("delete product %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("commit delete of product %d: %w", id, err)
	}
	return name, true, nil
}
