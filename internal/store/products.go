// ABOUTME: Product entity store methods for workspace-scoped resources
// ABOUTME: All lookups are scoped by workspace to keep tenants isolated

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// CreateProduct inserts a product into its workspace.
func (s *SQLiteStore) CreateProduct(ctx context.Context, p *Product) error {
	now := time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO products (workspace_id, name, price, image_url, status, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, p.WorkspaceID, p.Name, p.Price, p.ImageURL, p.Status, p.CreatedBy, formatTime(now), formatTime(now))
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading product id: %w", err)
	}

	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now

	s.logger.Info("created product", "id", id, "workspace_id", p.WorkspaceID)
	return nil
}

// GetProduct retrieves a product by ID.
func (s *SQLiteStore) GetProduct(ctx context.Context, id int64) (*Product, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, name, price, image_url, status, created_by, created_at, updated_at
		FROM products
		WHERE id = ?
	`, id)
	return scanProduct(row.Scan)
}

// ListProducts returns all products of a workspace, newest first.
func (s *SQLiteStore) ListProducts(ctx context.Context, workspaceID int64) ([]Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, workspace_id, name, price, image_url, status, created_by, created_at, updated_at
		FROM products
		WHERE workspace_id = ?
		ORDER BY id DESC
	`, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating products: %w", err)
	}

	if products == nil {
		products = []Product{}
	}

	return products, nil
}

func scanProduct(scan func(dest ...any) error) (*Product, error) {
	var p Product
	var createdAtStr, updatedAtStr string

	err := scan(
		&p.ID,
		&p.WorkspaceID,
		&p.Name,
		&p.Price,
		&p.ImageURL,
		&p.Status,
		&p.CreatedBy,
		&createdAtStr,
		&updatedAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying product: %w", err)
	}

	if p.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedAtStr); err != nil {
		return nil, err
	}

	return &p, nil
}

// UpdateProduct updates a product's mutable fields. The update is scoped by
// both product ID and workspace ID so a product can never be moved or
// edited across workspaces.
func (s *SQLiteStore) UpdateProduct(ctx context.Context, p *Product) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE products
		SET name = ?, price = ?, image_url = ?, status = ?, updated_at = ?
		WHERE id = ? AND workspace_id = ?
	`, p.Name, p.Price, p.ImageURL, p.Status, formatTime(time.Now()), p.ID, p.WorkspaceID)
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Info("updated product", "id", p.ID, "workspace_id", p.WorkspaceID)
	return nil
}

// DeleteProduct removes a product, scoped by workspace.
func (s *SQLiteStore) DeleteProduct(ctx context.Context, id, workspaceID int64) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM products WHERE id = ? AND workspace_id = ?
	`, id, workspaceID)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Info("deleted product", "id", id, "workspace_id", workspaceID)
	return nil
}
