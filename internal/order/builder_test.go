package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
	"github.com/tradeforge/futures-order-bot/internal/validate"
)

func newTestBuilder() (*Builder, *fakeRuleSource) {
	source := newFakeRuleSource()
	return NewBuilder(NewFormatter(NewRuleCache(source))), source
}

func TestBuilder_Market(t *testing.T) {
	builder, _ := newTestBuilder()

	req, err := builder.Market(context.Background(), "btcusdt", "buy", 0.0015)
	require.NoError(t, err)

	assert.Equal(t, "BTCUSDT", req.Symbol)
	assert.Equal(t, exchange.SideBuy, req.Side)
	assert.Equal(t, exchange.OrderTypeMarket, req.Type)
	assert.Equal(t, "0.001", req.Quantity)
	assert.Empty(t, req.Price)
	assert.Empty(t, req.StopPrice)
	assert.False(t, req.ReduceOnly)
}

func TestBuilder_Limit_DefaultsToGTC(t *testing.T) {
	builder, _ := newTestBuilder()

	req, err := builder.Limit(context.Background(), "BTCUSDT", "SELL", 0.01, 50000.999, "")
	require.NoError(t, err)

	assert.Equal(t, exchange.OrderTypeLimit, req.Type)
	assert.Equal(t, "0.010", req.Quantity)
	assert.Equal(t, "50000.99", req.Price)
	assert.Equal(t, exchange.TimeInForceGTC, req.TimeInForce)
}

func TestBuilder_Limit_ExplicitTIF(t *testing.T) {
	builder, _ := newTestBuilder()

	req, err := builder.Limit(context.Background(), "BTCUSDT", "BUY", 0.01, 40000, "ioc")
	require.NoError(t, err)
	assert.Equal(t, exchange.TimeInForceIOC, req.TimeInForce)
}

func TestBuilder_StopLimit(t *testing.T) {
	builder, _ := newTestBuilder()

	req, err := builder.StopLimit(context.Background(), "BTCUSDT", "SELL", 0.01, 59500.555, 60000.999, "")
	require.NoError(t, err)

	assert.Equal(t, exchange.OrderTypeStopLimit, req.Type)
	assert.Equal(t, "59500.55", req.Price)
	assert.Equal(t, "60000.99", req.StopPrice)
	assert.False(t, req.ReduceOnly)
}

func TestBuilder_TakeProfit(t *testing.T) {
	builder, _ := newTestBuilder()

	req, err := builder.TakeProfit(context.Background(), "BTCUSDT", "SELL", 0.01, 70000, 70000, "")
	require.NoError(t, err)

	assert.Equal(t, exchange.OrderTypeTakeProfit, req.Type)
	assert.Equal(t, "70000.00", req.Price)
	assert.Equal(t, "70000.00", req.StopPrice)
}

func TestBuilder_ValidationFailsBeforeRuleFetch(t *testing.T) {
	builder, source := newTestBuilder()
	ctx := context.Background()

	_, err := builder.Market(ctx, "BTC", "BUY", 1)
	assert.Error(t, err)

	_, err = builder.Market(ctx, "BTCUSDT", "HOLD", 1)
	assert.Error(t, err)

	_, err = builder.Limit(ctx, "BTCUSDT", "BUY", 0.01, -5, "")
	assert.Error(t, err)

	_, err = builder.Limit(ctx, "BTCUSDT", "BUY", 0.01, 50000, "ASAP")
	assert.Error(t, err)

	_, err = builder.StopLimit(ctx, "BTCUSDT", "SELL", 0.01, 59500, 0, "")
	assert.Error(t, err)

	assert.Equal(t, 0, source.fetches)
}

func TestBuilder_OCOLegs(t *testing.T) {
	builder, _ := newTestBuilder()

	tp, sl, err := builder.OCOLegs(context.Background(), "BTCUSDT", "SELL", 0.01, 70000, 60000, 59500.999, "")
	require.NoError(t, err)

	assert.Equal(t, exchange.OrderTypeTakeProfit, tp.Type)
	assert.Equal(t, "70000.00", tp.Price)
	assert.Equal(t, "70000.00", tp.StopPrice)
	assert.True(t, tp.ReduceOnly)

	assert.Equal(t, exchange.OrderTypeStopLimit, sl.Type)
	assert.Equal(t, "59500.99", sl.Price)
	assert.Equal(t, "60000.00", sl.StopPrice)
	assert.True(t, sl.ReduceOnly)

	assert.Equal(t, tp.Quantity, sl.Quantity)
}

func TestBuilder_OCOLegs_BadStopLimitFailsBothLegs(t *testing.T) {
	builder, _ := newTestBuilder()

	tp, sl, err := builder.OCOLegs(context.Background(), "BTCUSDT", "SELL", 0.01, 70000, 60000, -1, "")
	assert.Error(t, err)
	assert.Nil(t, tp)
	assert.Nil(t, sl)
}

func TestBuilder_QuantityTruncatingToZeroRejected(t *testing.T) {
	builder, _ := newTestBuilder()

	_, err := builder.Market(context.Background(), "BTCUSDT", "BUY", 0.0009)
	var vErr *validate.Error
	assert.ErrorAs(t, err, &vErr)
}
