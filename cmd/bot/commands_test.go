package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeforge/futures-order-bot/internal/bot"
	"github.com/tradeforge/futures-order-bot/internal/display"
	"github.com/tradeforge/futures-order-bot/internal/exchange"
	"github.com/tradeforge/futures-order-bot/internal/validate"
)

// stubExchange serves canned data for command tests and counts the
// calls that would hit the network.
type stubExchange struct {
	submitted     int
	leverageCalls int
}

func (s *stubExchange) GetName() string { return "stub" }

func (s *stubExchange) GetSymbolRule(_ context.Context, symbol string) (*exchange.SymbolRule, error) {
	if symbol != "BTCUSDT" {
		return nil, &exchange.SymbolNotFoundError{Symbol: symbol}
	}
	return &exchange.SymbolRule{Symbol: symbol, PricePrecision: 2, QuantityPrecision: 3}, nil
}

func (s *stubExchange) GetPrice(_ context.Context, _ string) (decimal.Decimal, error) {
	return decimal.NewFromFloat(65000.5), nil
}

func (s *stubExchange) SubmitOrder(_ context.Context, req exchange.OrderRequest) (*exchange.Order, error) {
	s.submitted++
	return &exchange.Order{
		OrderID: "42",
		Symbol:  req.Symbol,
		Side:    req.Side,
		Type:    req.Type,
		OrigQty: req.Quantity,
		Price:   req.Price,
		Status:  exchange.OrderStatusNew,
	}, nil
}

func (s *stubExchange) CancelOrder(_ context.Context, symbol, orderID string) (*exchange.Order, error) {
	return &exchange.Order{OrderID: orderID, Symbol: symbol, Status: exchange.OrderStatusCanceled}, nil
}

func (s *stubExchange) CancelAllOrders(_ context.Context, _ string) error { return nil }

func (s *stubExchange) GetOpenOrders(_ context.Context, _ string) ([]exchange.Order, error) {
	return nil, nil
}

func (s *stubExchange) GetOrderStatus(_ context.Context, symbol, orderID string) (*exchange.Order, error) {
	return &exchange.Order{OrderID: orderID, Symbol: symbol}, nil
}

func (s *stubExchange) GetPositions(_ context.Context, _ string) ([]exchange.Position, error) {
	return nil, nil
}

func (s *stubExchange) GetAccount(_ context.Context) (*exchange.AccountSnapshot, error) {
	return &exchange.AccountSnapshot{}, nil
}

func (s *stubExchange) SetLeverage(_ context.Context, _ string, _ int) error {
	s.leverageCalls++
	return nil
}

func newTestCommand() (*bot.Bot, *display.Printer, *stubExchange) {
	exch := &stubExchange{}
	log := logrus.New()
	log.SetOutput(io.Discard)
	return bot.New(exch, log), display.NewPrinter(&bytes.Buffer{}), exch
}

func TestRunCommand_Market(t *testing.T) {
	b, printer, exch := newTestCommand()

	err := runCommand(b, printer, []string{"market", "btcusdt", "buy", "0.01"})
	require.NoError(t, err)
	assert.Equal(t, 1, exch.submitted)
}

// Numeric arguments are parsed by the validators, so garbage and
// non-finite spellings like "nan" come back as validation errors
// before anything reaches the exchange. The shell prints such errors
// and keeps running.
func TestRunCommand_BadNumbersFailValidation(t *testing.T) {
	b, printer, exch := newTestCommand()
	var vErr *validate.Error

	cases := [][]string{
		{"market", "btcusdt", "buy", "abc"},
		{"market", "btcusdt", "buy", "nan"},
		{"limit", "btcusdt", "sell", "0.01", "+inf"},
		{"stop", "btcusdt", "sell", "0.01", "59500", "oops"},
		{"oco", "btcusdt", "sell", "0.01", "70000", "60000", "nan"},
	}

	for _, args := range cases {
		err := runCommand(b, printer, args)
		assert.ErrorAs(t, err, &vErr, "args %v", args)
	}

	assert.Equal(t, 0, exch.submitted)
}

func TestRunCommand_LeverageParsedByValidator(t *testing.T) {
	b, printer, exch := newTestCommand()
	var vErr *validate.Error

	err := runCommand(b, printer, []string{"leverage", "btcusdt", "ten"})
	assert.ErrorAs(t, err, &vErr)

	err = runCommand(b, printer, []string{"leverage", "btcusdt", "126"})
	assert.ErrorAs(t, err, &vErr)
	assert.Equal(t, 0, exch.leverageCalls)

	err = runCommand(b, printer, []string{"leverage", "btcusdt", "20"})
	require.NoError(t, err)
	assert.Equal(t, 1, exch.leverageCalls)
}

func TestRunCommand_Unknown(t *testing.T) {
	b, printer, _ := newTestCommand()

	err := runCommand(b, printer, []string{"frobnicate"})
	assert.Error(t, err)
}

func TestParseOrdersArgs(t *testing.T) {
	symbol, export := parseOrdersArgs([]string{"BTCUSDT", "--export", "orders.xlsx"})
	assert.Equal(t, "BTCUSDT", symbol)
	assert.Equal(t, "orders.xlsx", export)

	symbol, export = parseOrdersArgs(nil)
	assert.Empty(t, symbol)
	assert.Empty(t, export)
}
