// Package repo implements the repository ports over MySQL, for deployments
// that want the catalog, ledger and orders to survive a restart. The
// services are unaware of the substrate; run.go selects this package when
// mysql.dsn is configured.
package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

type MySQLProductRepo struct{ db *sql.DB }

func NewMySQLProductRepo(db *sql.DB) *MySQLProductRepo { return &MySQLProductRepo{db: db} }

func (r *MySQLProductRepo) Add(ctx context.Context, p *entity.Product) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO products (id,name,price,category,stock,created_at,updated_at)
VALUES (?,?,?,?,?,NOW(),NOW())
`, p.ID, p.Name, p.Price, p.Category, p.Stock)
	return err
}

func (r *MySQLProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE products
        SET name = ?, price = ?, category = ?, stock = ?, updated_at = NOW()
        WHERE id = ?`,
		p.Name, p.Price, p.Category, p.Stock, p.ID,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.Validationf("product not found: %s", p.ID)
	}
	return nil
}

func (r *MySQLProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.Validationf("product not found: %s", id)
	}
	return nil
}

func (r *MySQLProductRepo) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,name,price,category,stock FROM products WHERE id=?`, id)
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Stock); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *MySQLProductRepo) FindAll(ctx context.Context) ([]*entity.Product, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,name,price,category,stock FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Category, &p.Stock); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (r *MySQLProductRepo) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM products WHERE id=?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *MySQLProductRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

var _ usecase.ProductRepo = (*MySQLProductRepo)(nil)
