package reporting

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
)

func TestWriteOrdersXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "orders.xlsx")

	orders := []exchange.Order{
		{
			OrderID:     "1001",
			Symbol:      "BTCUSDT",
			Side:        exchange.SideSell,
			Type:        exchange.OrderTypeLimit,
			OrigQty:     "0.010",
			Price:       "70000.00",
			Status:      exchange.OrderStatusNew,
			TimeInForce: exchange.TimeInForceGTC,
			CreatedTime: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		},
		{
			OrderID:   "1002",
			Symbol:    "ETHUSDT",
			Side:      exchange.SideBuy,
			Type:      exchange.OrderTypeMarket,
			OrigQty:   "1.50",
			Status:    exchange.OrderStatusFilled,
			AvgPrice:  "3500.10",
		},
	}

	require.NoError(t, WriteOrdersXLSX(orders, path))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	rows, err := fx.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + 2 orders

	assert.Equal(t, "Order ID", rows[0][0])
	assert.Equal(t, "1001", rows[1][0])
	assert.Equal(t, "BTCUSDT", rows[1][1])
	assert.Equal(t, "SELL", rows[1][2])
	assert.Equal(t, "1002", rows[2][0])
}

func TestWriteOrdersXLSX_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.xlsx")
	require.NoError(t, WriteOrdersXLSX(nil, path))

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	rows, err := fx.GetRows("Orders")
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
