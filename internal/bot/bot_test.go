package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
	"github.com/tradeforge/futures-order-bot/internal/validate"
)

// fakeExchange records every call and serves canned responses. Errors
// are injected per order type or per method.
type fakeExchange struct {
	rules map[string]*exchange.SymbolRule

	submitted []exchange.OrderRequest
	cancelled []string // order ids

	failSubmitType exchange.OrderType // SubmitOrder fails for this type
	submitErr      error
	cancelErr      error
	ruleFetches    int
	leverageCalls  int
	nextOrderID    int

	positions []exchange.Position
}

func newFakeExchange() *fakeExchange {
	return &fakeExchange{
		rules: map[string]*exchange.SymbolRule{
			"BTCUSDT": {Symbol: "BTCUSDT", PricePrecision: 2, QuantityPrecision: 3},
			"ETHUSDT": {Symbol: "ETHUSDT", PricePrecision: 2, QuantityPrecision: 2},
		},
	}
}

func (f *fakeExchange) GetName() string { return "fake" }

func (f *fakeExchange) GetSymbolRule(_ context.Context, symbol string) (*exchange.SymbolRule, error) {
	f.ruleFetches++
	rule, ok := f.rules[symbol]
	if !ok {
		return nil, &exchange.SymbolNotFoundError{Symbol: symbol}
	}
	return rule, nil
}

func (f *fakeExchange) GetPrice(_ context.Context, _ string) (decimal.Decimal, error) {
	return decimal.NewFromFloat(65000.5), nil
}

func (f *fakeExchange) SubmitOrder(_ context.Context, req exchange.OrderRequest) (*exchange.Order, error) {
	if f.submitErr != nil && req.Type == f.failSubmitType {
		return nil, f.submitErr
	}
	f.submitted = append(f.submitted, req)
	f.nextOrderID++
	return &exchange.Order{
		OrderID:     fmt.Sprintf("%d", f.nextOrderID),
		Symbol:      req.Symbol,
		Side:        req.Side,
		Type:        req.Type,
		OrigQty:     req.Quantity,
		Price:       req.Price,
		StopPrice:   req.StopPrice,
		Status:      exchange.OrderStatusNew,
		TimeInForce: req.TimeInForce,
		ReduceOnly:  req.ReduceOnly,
	}, nil
}

func (f *fakeExchange) CancelOrder(_ context.Context, symbol, orderID string) (*exchange.Order, error) {
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	f.cancelled = append(f.cancelled, orderID)
	return &exchange.Order{OrderID: orderID, Symbol: symbol, Status: exchange.OrderStatusCanceled}, nil
}

func (f *fakeExchange) CancelAllOrders(_ context.Context, _ string) error { return nil }

func (f *fakeExchange) GetOpenOrders(_ context.Context, _ string) ([]exchange.Order, error) {
	return nil, nil
}

func (f *fakeExchange) GetOrderStatus(_ context.Context, symbol, orderID string) (*exchange.Order, error) {
	return &exchange.Order{OrderID: orderID, Symbol: symbol, Status: exchange.OrderStatusFilled}, nil
}

func (f *fakeExchange) GetPositions(_ context.Context, _ string) ([]exchange.Position, error) {
	return f.positions, nil
}

func (f *fakeExchange) GetAccount(_ context.Context) (*exchange.AccountSnapshot, error) {
	return &exchange.AccountSnapshot{TotalWalletBalance: "1000", AvailableBalance: "900"}, nil
}

func (f *fakeExchange) SetLeverage(_ context.Context, _ string, _ int) error {
	f.leverageCalls++
	return nil
}

func newTestBot() (*Bot, *fakeExchange) {
	exch := newFakeExchange()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(exch, log), exch
}

func TestPlaceMarketOrder(t *testing.T) {
	bot, exch := newTestBot()

	ord, err := bot.PlaceMarketOrder(context.Background(), "btcusdt", "buy", 0.0015)
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", ord.Symbol)
	assert.Equal(t, exchange.SideBuy, ord.Side)
	assert.Equal(t, "0.001", ord.OrigQty)

	require.Len(t, exch.submitted, 1)
	assert.Equal(t, exchange.OrderTypeMarket, exch.submitted[0].Type)
	assert.Empty(t, exch.submitted[0].Price)
}

func TestPlaceMarketOrder_InvalidInputNeverReachesExchange(t *testing.T) {
	bot, exch := newTestBot()
	ctx := context.Background()

	_, err := bot.PlaceMarketOrder(ctx, "BTC", "BUY", 1)
	var vErr *validate.Error
	assert.ErrorAs(t, err, &vErr)

	_, err = bot.PlaceMarketOrder(ctx, "BTCUSDT", "BUY", -1)
	assert.ErrorAs(t, err, &vErr)

	// Quantity below the step truncates to zero and is rejected locally.
	_, err = bot.PlaceMarketOrder(ctx, "BTCUSDT", "BUY", 0.0009)
	assert.ErrorAs(t, err, &vErr)

	assert.Empty(t, exch.submitted)
}

// Non-finite inputs must come back as validation errors, not crash the
// process inside the decimal formatter.
func TestPlaceOrder_NonFiniteInputsRejectedLocally(t *testing.T) {
	bot, exch := newTestBot()
	ctx := context.Background()
	var vErr *validate.Error

	_, err := bot.PlaceMarketOrder(ctx, "BTCUSDT", "BUY", math.NaN())
	assert.ErrorAs(t, err, &vErr)

	_, err = bot.PlaceMarketOrder(ctx, "BTCUSDT", "BUY", math.Inf(1))
	assert.ErrorAs(t, err, &vErr)

	_, err = bot.PlaceLimitOrder(ctx, "BTCUSDT", "SELL", 0.01, math.Inf(1), "")
	assert.ErrorAs(t, err, &vErr)

	_, err = bot.PlaceStopLimitOrder(ctx, "BTCUSDT", "SELL", 0.01, 59500, math.NaN(), "")
	assert.ErrorAs(t, err, &vErr)

	assert.Empty(t, exch.submitted)
}

func TestPlaceLimitOrder(t *testing.T) {
	bot, exch := newTestBot()

	ord, err := bot.PlaceLimitOrder(context.Background(), "BTCUSDT", "SELL", 0.01, 50000.999, "")
	require.NoError(t, err)

	assert.Equal(t, "50000.99", ord.Price)
	assert.Equal(t, exchange.TimeInForceGTC, ord.TimeInForce)
	require.Len(t, exch.submitted, 1)
}

func TestPlaceStopLimitOrder(t *testing.T) {
	bot, exch := newTestBot()

	_, err := bot.PlaceStopLimitOrder(context.Background(), "BTCUSDT", "SELL", 0.01, 59500, 60000, "")
	require.NoError(t, err)

	require.Len(t, exch.submitted, 1)
	assert.Equal(t, exchange.OrderTypeStopLimit, exch.submitted[0].Type)
	assert.Equal(t, "60000.00", exch.submitted[0].StopPrice)
}

func TestPlaceOCOOrder(t *testing.T) {
	bot, exch := newTestBot()

	result, err := bot.PlaceOCOOrder(context.Background(), "BTCUSDT", "SELL", 0.01, 70000, 60000, 59500.999, "")
	require.NoError(t, err)

	assert.Equal(t, exchange.OrderTypeTakeProfit, result.TakeProfit.Type)
	assert.Equal(t, exchange.OrderTypeStopLimit, result.StopLoss.Type)
	assert.Equal(t, "59500.99", result.StopLoss.Price)

	// TP leg goes out first, then SL; both reduce-only.
	require.Len(t, exch.submitted, 2)
	assert.Equal(t, exchange.OrderTypeTakeProfit, exch.submitted[0].Type)
	assert.Equal(t, exchange.OrderTypeStopLimit, exch.submitted[1].Type)
	assert.True(t, exch.submitted[0].ReduceOnly)
	assert.True(t, exch.submitted[1].ReduceOnly)
	assert.Empty(t, exch.cancelled)
}

func TestPlaceOCOOrder_StopLossFailureRollsBackTakeProfit(t *testing.T) {
	bot, exch := newTestBot()
	slErr := exchange.NewAPIError(-2021, "Order would immediately trigger.")
	exch.failSubmitType = exchange.OrderTypeStopLimit
	exch.submitErr = slErr

	result, err := bot.PlaceOCOOrder(context.Background(), "BTCUSDT", "SELL", 0.01, 70000, 60000, 59500, "")
	assert.Nil(t, result)

	// The rollback succeeded, so the caller sees the stop-loss failure
	// itself, not a partial failure.
	var apiErr *exchange.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, -2021, apiErr.Code)

	var partial *PartialFailureError
	assert.False(t, errors.As(err, &partial))

	// The surviving take-profit leg was cancelled.
	require.Len(t, exch.submitted, 1)
	require.Len(t, exch.cancelled, 1)
	assert.Equal(t, "1", exch.cancelled[0])
}

func TestPlaceOCOOrder_RollbackFailureReportsSurvivingLeg(t *testing.T) {
	bot, exch := newTestBot()
	slErr := exchange.NewAPIError(-2021, "Order would immediately trigger.")
	exch.failSubmitType = exchange.OrderTypeStopLimit
	exch.submitErr = slErr
	exch.cancelErr = exchange.NewAPIError(-1001, "Internal error.")

	_, err := bot.PlaceOCOOrder(context.Background(), "BTCUSDT", "SELL", 0.01, 70000, 60000, 59500, "")

	var partial *PartialFailureError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "BTCUSDT", partial.Symbol)
	assert.Equal(t, "1", partial.SurvivingOrderID)
	assert.Equal(t, "take-profit", partial.SurvivingLeg)

	// Unwrap yields the stop-loss failure, not the cancel failure.
	var apiErr *exchange.APIError
	require.ErrorAs(t, errors.Unwrap(err), &apiErr)
	assert.Equal(t, -2021, apiErr.Code)
	assert.Empty(t, exch.cancelled)
}

func TestPlaceOCOOrder_BadLegFailsBeforeAnySubmission(t *testing.T) {
	bot, exch := newTestBot()

	_, err := bot.PlaceOCOOrder(context.Background(), "BTCUSDT", "SELL", 0.01, 70000, 60000, -1, "")
	var vErr *validate.Error
	assert.ErrorAs(t, err, &vErr)
	assert.Empty(t, exch.submitted)
}

func TestGetPositions_FiltersZeroSize(t *testing.T) {
	bot, exch := newTestBot()
	exch.positions = []exchange.Position{
		{Symbol: "BTCUSDT", PositionAmt: "0.5"},
		{Symbol: "ETHUSDT", PositionAmt: "0"},
		{Symbol: "DOGEUSDT", PositionAmt: "-0.3"},
		{Symbol: "SOLUSDT", PositionAmt: "0.000"},
	}

	positions, err := bot.GetPositions(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, positions, 2)
	assert.Equal(t, "BTCUSDT", positions[0].Symbol)
	assert.Equal(t, "DOGEUSDT", positions[1].Symbol)
}

func TestSetLeverage_RangeCheckedLocally(t *testing.T) {
	bot, exch := newTestBot()
	ctx := context.Background()

	var vErr *validate.Error
	assert.ErrorAs(t, bot.SetLeverage(ctx, "BTCUSDT", 0), &vErr)
	assert.ErrorAs(t, bot.SetLeverage(ctx, "BTCUSDT", 126), &vErr)
	assert.Equal(t, 0, exch.leverageCalls)

	require.NoError(t, bot.SetLeverage(ctx, "btcusdt", 20))
	assert.Equal(t, 1, exch.leverageCalls)
}

func TestGetSymbolPrice(t *testing.T) {
	bot, _ := newTestBot()

	price, err := bot.GetSymbolPrice(context.Background(), "btcusdt")
	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.NewFromFloat(65000.5)))
}

func TestRuleCacheSharedAcrossOrders(t *testing.T) {
	bot, exch := newTestBot()
	ctx := context.Background()

	_, err := bot.PlaceMarketOrder(ctx, "BTCUSDT", "BUY", 0.01)
	require.NoError(t, err)
	_, err = bot.PlaceLimitOrder(ctx, "BTCUSDT", "SELL", 0.01, 70000, "")
	require.NoError(t, err)

	assert.Equal(t, 1, exch.ruleFetches)
}
