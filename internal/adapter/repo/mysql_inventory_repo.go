package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

type MySQLInventoryRepo struct{ db *sql.DB }

func NewMySQLInventoryRepo(db *sql.DB) *MySQLInventoryRepo { return &MySQLInventoryRepo{db: db} }

func (r *MySQLInventoryRepo) Add(ctx context.Context, inv *entity.Inventory) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO inventory (product_id,quantity,min_threshold,max_capacity,created_at,updated_at)
VALUES (?,?,?,?,NOW(),NOW())
`, inv.ProductID, inv.Quantity, inv.MinThreshold, inv.MaxCapacity)
	return err
}

func (r *MySQLInventoryRepo) Update(ctx context.Context, inv *entity.Inventory) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE inventory
        SET quantity = ?, min_threshold = ?, max_capacity = ?, updated_at = NOW()
        WHERE product_id = ?`,
		inv.Quantity, inv.MinThreshold, inv.MaxCapacity, inv.ProductID,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.Validationf("inventory record not found: %s", inv.ProductID)
	}
	return nil
}

func (r *MySQLInventoryRepo) Delete(ctx context.Context, productID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM inventory WHERE product_id = ?`, productID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.Validationf("inventory record not found: %s", productID)
	}
	return nil
}

func (r *MySQLInventoryRepo) FindByID(ctx context.Context, productID string) (*entity.Inventory, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT product_id,quantity,min_threshold,max_capacity FROM inventory WHERE product_id=?`, productID)
	var inv entity.Inventory
	if err := row.Scan(&inv.ProductID, &inv.Quantity, &inv.MinThreshold, &inv.MaxCapacity); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *MySQLInventoryRepo) FindAll(ctx context.Context) ([]*entity.Inventory, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT product_id,quantity,min_threshold,max_capacity FROM inventory ORDER BY created_at, product_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Inventory
	for rows.Next() {
		var inv entity.Inventory
		if err := rows.Scan(&inv.ProductID, &inv.Quantity, &inv.MinThreshold, &inv.MaxCapacity); err != nil {
			return nil, err
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}

func (r *MySQLInventoryRepo) Exists(ctx context.Context, productID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM inventory WHERE product_id=?`, productID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *MySQLInventoryRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inventory`).Scan(&n)
	return n, err
}

var _ usecase.InventoryRepo = (*MySQLInventoryRepo)(nil)
