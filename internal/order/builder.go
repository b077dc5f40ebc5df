package order

import (
	"context"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
	"github.com/tradeforge/futures-order-bot/internal/validate"
)

// Builder assembles wire-ready order requests. Every build method
// validates all fields first, then resolves and formats the monetary
// fields; nothing network-affecting happens until the returned request
// is submitted.
type Builder struct {
	formatter *Formatter
}

// NewBuilder creates a builder backed by the given formatter.
func NewBuilder(formatter *Formatter) *Builder {
	return &Builder{formatter: formatter}
}

// common validates the fields shared by all order kinds.
func (b *Builder) common(symbol, side string, quantity float64) (string, exchange.Side, error) {
	validSymbol, err := validate.Symbol(symbol)
	if err != nil {
		return "", "", err
	}

	validSide, err := validate.Side(side)
	if err != nil {
		return "", "", err
	}

	if _, err := validate.Quantity(quantity, 0); err != nil {
		return "", "", err
	}

	return validSymbol, validSide, nil
}

// Market builds a market order. Only the quantity is formatted; market
// orders carry no price fields.
func (b *Builder) Market(ctx context.Context, symbol, side string, quantity float64) (*exchange.OrderRequest, error) {
	validSymbol, validSide, err := b.common(symbol, side, quantity)
	if err != nil {
		return nil, err
	}

	qty, err := b.formatter.Quantity(ctx, validSymbol, quantity)
	if err != nil {
		return nil, err
	}

	return &exchange.OrderRequest{
		Symbol:   validSymbol,
		Side:     validSide,
		Type:     exchange.OrderTypeMarket,
		Quantity: qty,
	}, nil
}

// Limit builds a limit order. An empty time-in-force defaults to GTC.
func (b *Builder) Limit(ctx context.Context, symbol, side string, quantity, price float64, tif string) (*exchange.OrderRequest, error) {
	validSymbol, validSide, err := b.common(symbol, side, quantity)
	if err != nil {
		return nil, err
	}

	validTIF, err := validate.TimeInForce(tif)
	if err != nil {
		return nil, err
	}

	if _, err := validate.Price(price, "price"); err != nil {
		return nil, err
	}

	qty, err := b.formatter.Quantity(ctx, validSymbol, quantity)
	if err != nil {
		return nil, err
	}

	formattedPrice, err := b.formatter.Price(ctx, validSymbol, price, "price")
	if err != nil {
		return nil, err
	}

	return &exchange.OrderRequest{
		Symbol:      validSymbol,
		Side:        validSide,
		Type:        exchange.OrderTypeLimit,
		Quantity:    qty,
		Price:       formattedPrice,
		TimeInForce: validTIF,
	}, nil
}

// StopLimit builds a stop-limit order: a limit order at price that
// activates when the market reaches stopPrice. Execution and trigger
// prices are formatted independently and may differ arbitrarily; the
// exchange enforces trigger direction.
func (b *Builder) StopLimit(ctx context.Context, symbol, side string, quantity, price, stopPrice float64, tif string) (*exchange.OrderRequest, error) {
	return b.triggered(ctx, exchange.OrderTypeStopLimit, symbol, side, quantity, price, stopPrice, tif, false)
}

// TakeProfit builds a take-profit order. Structurally a stop-limit;
// trigger and execution price are conventionally equal but that is not
// enforced.
func (b *Builder) TakeProfit(ctx context.Context, symbol, side string, quantity, price, stopPrice float64, tif string) (*exchange.OrderRequest, error) {
	return b.triggered(ctx, exchange.OrderTypeTakeProfit, symbol, side, quantity, price, stopPrice, tif, false)
}

func (b *Builder) triggered(ctx context.Context, orderType exchange.OrderType, symbol, side string, quantity, price, stopPrice float64, tif string, reduceOnly bool) (*exchange.OrderRequest, error) {
	validSymbol, validSide, err := b.common(symbol, side, quantity)
	if err != nil {
		return nil, err
	}

	validTIF, err := validate.TimeInForce(tif)
	if err != nil {
		return nil, err
	}

	if _, err := validate.Price(price, "price"); err != nil {
		return nil, err
	}
	if _, err := validate.Price(stopPrice, "stop price"); err != nil {
		return nil, err
	}

	qty, err := b.formatter.Quantity(ctx, validSymbol, quantity)
	if err != nil {
		return nil, err
	}

	formattedPrice, err := b.formatter.Price(ctx, validSymbol, price, "price")
	if err != nil {
		return nil, err
	}

	formattedStop, err := b.formatter.Price(ctx, validSymbol, stopPrice, "stop price")
	if err != nil {
		return nil, err
	}

	return &exchange.OrderRequest{
		Symbol:      validSymbol,
		Side:        validSide,
		Type:        orderType,
		Quantity:    qty,
		Price:       formattedPrice,
		StopPrice:   formattedStop,
		TimeInForce: validTIF,
		ReduceOnly:  reduceOnly,
	}, nil
}

// OCOLegs builds the two reduce-only legs that simulate a
// one-cancels-other pair: a take-profit leg (triggered and executed at
// takeProfitPrice) and a stop-loss leg (triggered at stopTriggerPrice,
// executed at stopLimitPrice). All inputs are validated and formatted
// up front so that a bad parameter fails both legs before any
// submission.
func (b *Builder) OCOLegs(ctx context.Context, symbol, side string, quantity, takeProfitPrice, stopTriggerPrice, stopLimitPrice float64, tif string) (tp, sl *exchange.OrderRequest, err error) {
	tp, err = b.triggered(ctx, exchange.OrderTypeTakeProfit, symbol, side, quantity, takeProfitPrice, takeProfitPrice, tif, true)
	if err != nil {
		return nil, nil, err
	}

	sl, err = b.triggered(ctx, exchange.OrderTypeStopLimit, symbol, side, quantity, stopLimitPrice, stopTriggerPrice, tif, true)
	if err != nil {
		return nil, nil, err
	}

	return tp, sl, nil
}
