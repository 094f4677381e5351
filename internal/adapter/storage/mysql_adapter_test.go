package storage

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/coffee-maker/internal/core/domain"
)

func getMySQLDB(t *testing.T) *sql.DB {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/coffeemaker?parseTime=true"
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	adapter := NewMySQLAdapter(db)
	require.NoError(t, adapter.Migrate(context.Background()))
	return db
}

func testSale(machineID string, price int) domain.Sale {
	return domain.Sale{
		ID:         uuid.NewString(),
		MachineID:  machineID,
		Selection:  0,
		RecipeName: "Coffee",
		Price:      price,
		Paid:       price + 25,
		Change:     25,
		Status:     domain.SaleStatusCompleted,
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestCreateSale_Success(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	machineID := "test-machine-" + uuid.NewString()[:8]

	sale := testSale(machineID, 50)
	require.NoError(t, adapter.CreateSale(ctx, sale))

	got, err := adapter.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sale.RecipeName, got.RecipeName)
	assert.Equal(t, 25, got.Change)
	assert.Equal(t, domain.SaleStatusRecorded, got.Status)

	// Verify revenue row
	var revenue, sales int
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT revenue, sales FROM machine_revenue WHERE machine_id = ?`, machineID).Scan(&revenue, &sales))
	assert.Equal(t, 50, revenue)
	assert.Equal(t, 1, sales)

	// Cleanup
	db.ExecContext(ctx, `DELETE FROM sales WHERE machine_id = ?`, machineID)
	db.ExecContext(ctx, `DELETE FROM machine_revenue WHERE machine_id = ?`, machineID)
}

func TestCreateSale_Duplicate(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	ctx := context.Background()
	adapter := NewMySQLAdapter(db)
	machineID := "test-machine-" + uuid.NewString()[:8]

	sale := testSale(machineID, 50)
	require.NoError(t, adapter.CreateSale(ctx, sale))
	assert.ErrorIs(t, adapter.CreateSale(ctx, sale), ErrDuplicateSale)

	total, err := adapter.SalesTotal(ctx, machineID)
	require.NoError(t, err)
	assert.Equal(t, 50, total)

	db.ExecContext(ctx, `DELETE FROM sales WHERE machine_id = ?`, machineID)
	db.ExecContext(ctx, `DELETE FROM machine_revenue WHERE machine_id = ?`, machineID)
}

func TestGetSale_NotFound(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	adapter := NewMySQLAdapter(db)
	got, err := adapter.GetSale(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSalesTotal_Empty(t *testing.T) {
	db := getMySQLDB(t)
	defer db.Close()

	adapter := NewMySQLAdapter(db)
	total, err := adapter.SalesTotal(context.Background(), "no-such-machine")
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
