package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rl1809/coffee-maker/internal/core/domain"
)

var ErrDuplicateSale = errors.New("sale already recorded")

// Schema creates the ledger tables. Statements are idempotent.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS sales (
		id VARCHAR(36) PRIMARY KEY,
		machine_id VARCHAR(64) NOT NULL,
		selection INT NOT NULL,
		recipe_name VARCHAR(255) NOT NULL,
		price INT NOT NULL,
		paid INT NOT NULL,
		change_due INT NOT NULL,
		status VARCHAR(16) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		INDEX idx_sales_machine (machine_id)
	)`,
	`CREATE TABLE IF NOT EXISTS machine_revenue (
		machine_id VARCHAR(64) PRIMARY KEY,
		revenue BIGINT NOT NULL DEFAULT 0,
		sales BIGINT NOT NULL DEFAULT 0,
		updated_at DATETIME(6) NOT NULL
	)`,
}

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) Migrate(ctx context.Context) error {
	for _, stmt := range Schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// CreateSale inserts the sale and bumps the machine revenue row in one transaction.
func (m *MySQLAdapter) CreateSale(ctx context.Context, sale domain.Sale) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sales (id, machine_id, selection, recipe_name, price, paid, change_due, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sale.ID, sale.MachineID, sale.Selection, sale.RecipeName, sale.Price, sale.Paid,
		sale.Change, domain.SaleStatusRecorded, sale.CreatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateSale
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO machine_revenue (machine_id, revenue, sales, updated_at)
		VALUES (?, ?, 1, NOW(6))
		ON DUPLICATE KEY UPDATE revenue = revenue + VALUES(revenue), sales = sales + 1, updated_at = NOW(6)`,
		sale.MachineID, sale.Price,
	)
	if err != nil {
		return fmt.Errorf("update revenue: %w", err)
	}

	return tx.Commit()
}

func (m *MySQLAdapter) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	var sale domain.Sale
	err := m.db.QueryRowContext(ctx, `
		SELECT id, machine_id, selection, recipe_name, price, paid, change_due, status, created_at
		FROM sales WHERE id = ?`, id,
	).Scan(&sale.ID, &sale.MachineID, &sale.Selection, &sale.RecipeName, &sale.Price,
		&sale.Paid, &sale.Change, &sale.Status, &sale.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query sale: %w", err)
	}

	return &sale, nil
}

func (m *MySQLAdapter) SalesTotal(ctx context.Context, machineID string) (int, error) {
	var total int
	err := m.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(price), 0) FROM sales WHERE machine_id = ?`, machineID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("query sales total: %w", err)
	}

	return total, nil
}
