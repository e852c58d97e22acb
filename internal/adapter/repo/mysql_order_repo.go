package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/xuanmo666/order-management-system/internal/entity"
	"github.com/xuanmo666/order-management-system/internal/usecase"
)

// MySQLOrderRepo stores each order as one row; items and the customer
// snapshot are JSON columns since nothing queries inside them.
type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

func (r *MySQLOrderRepo) Add(ctx context.Context, o *entity.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}
	customerID := ""
	if o.Customer != nil {
		customerID = o.Customer.ID
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO orders (id,customer_id,customer_json,items_json,total_amount,status,create_time,updated_at)
VALUES (?,?,?,?,?,?,?,NOW())
`, o.OrderID, customerID, customer, items, o.TotalAmount, string(o.Status), o.CreateTime)
	return err
}

func (r *MySQLOrderRepo) Update(ctx context.Context, o *entity.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	customer, err := json.Marshal(o.Customer)
	if err != nil {
		return fmt.Errorf("marshal customer: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `
        UPDATE orders
        SET customer_json = ?, items_json = ?, total_amount = ?, status = ?, updated_at = NOW()
        WHERE id = ?`,
		customer, items, o.TotalAmount, string(o.Status), o.OrderID,
	)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.Validationf("order not found: %s", o.OrderID)
	}
	return nil
}

func (r *MySQLOrderRepo) Delete(ctx context.Context, orderID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, orderID)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return entity.Validationf("order not found: %s", orderID)
	}
	return nil
}

func (r *MySQLOrderRepo) scanOrder(scan func(dest ...any) error) (*entity.Order, error) {
	var (
		o        entity.Order
		status   string
		customer []byte
		items    []byte
	)
	if err := scan(&o.OrderID, &customer, &items, &o.TotalAmount, &status, &o.CreateTime); err != nil {
		return nil, err
	}
	o.Status = entity.Status(status)
	if len(customer) > 0 {
		if err := json.Unmarshal(customer, &o.Customer); err != nil {
			return nil, fmt.Errorf("unmarshal customer: %w", err)
		}
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal items: %w", err)
		}
	}
	return &o, nil
}

func (r *MySQLOrderRepo) FindByID(ctx context.Context, orderID string) (*entity.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id,customer_json,items_json,total_amount,status,create_time
FROM orders WHERE id=?`, orderID)
	o, err := r.scanOrder(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return o, err
}

func (r *MySQLOrderRepo) FindAll(ctx context.Context) ([]*entity.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id,customer_json,items_json,total_amount,status,create_time
FROM orders ORDER BY create_time, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		o, err := r.scanOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *MySQLOrderRepo) Exists(ctx context.Context, orderID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM orders WHERE id=?`, orderID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

func (r *MySQLOrderRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&n)
	return n, err
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
