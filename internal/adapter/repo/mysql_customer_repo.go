package repo

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

type MySQLCustomerRepo struct{ db *sql.DB }

func NewMySQLCustomerRepo(db *sql.DB) *MySQLCustomerRepo { return &MySQLCustomerRepo{db: db} }

func (r *MySQLCustomerRepo) Add(ctx context.Context, c *entity.Customer) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO customers (id,name,phone,total_spent,created_at,updated_at)
VALUES (?,?,?,?,NOW(),NOW())
`, c.ID, c.Name, c.Phone, c.TotalSpent)
	return err
}

func (r *MySQLCustomerRepo) Update(ctx context.Context, c *entity.Customer) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE customers
        SET name = ?, phone = ?, total_spent = ?, updated_at = NOW()
        WHERE id = ?`,
		c.Name, c.Phone, c.TotalSpent, c.ID,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.Validationf("customer not found: %s", c.ID)
	}
	return nil
}

func (r *MySQLCustomerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.Validationf("customer not found: %s", id)
	}
	return nil
}

func (r *MySQLCustomerRepo) FindByID(ctx context.Context, id string) (*entity.Customer, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,name,phone,total_spent FROM customers WHERE id=?`, id)
	var c entity.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.TotalSpent); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *MySQLCustomerRepo) FindAll(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,name,phone,total_spent FROM customers ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.TotalSpent); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *MySQLCustomerRepo) Exists(ctx context.Context, id string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM customers WHERE id=?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *MySQLCustomerRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	return n, err
}

var _ usecase.CustomerRepo = (*MySQLCustomerRepo)(nil)
