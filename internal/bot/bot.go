// Package bot composes the validators, precision formatter, order
// builder and OCO orchestrator with the exchange adapter into a single
// facade. Each operation issues one or more sequential blocking calls
// to the exchange and returns a result or a typed failure; nothing is
// retried here.
package bot

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
	"github.com/tradeforge/futures-order-bot/internal/monitoring"
	"github.com/tradeforge/futures-order-bot/internal/order"
	"github.com/tradeforge/futures-order-bot/internal/validate"
)

// Bot is the order-management facade. It owns the symbol rule cache;
// rules are fetched lazily and kept for the bot's lifetime.
type Bot struct {
	exchange exchange.Exchange
	rules    *order.RuleCache
	builder  *order.Builder
	log      *logrus.Logger
}

// New creates a bot on top of the given exchange adapter.
func New(exch exchange.Exchange, log *logrus.Logger) *Bot {
	rules := order.NewRuleCache(exch)
	return &Bot{
		exchange: exch,
		rules:    rules,
		builder:  order.NewBuilder(order.NewFormatter(rules)),
		log:      log,
	}
}

// PlaceMarketOrder validates, formats and submits a market order.
func (b *Bot) PlaceMarketOrder(ctx context.Context, symbol, side string, quantity float64) (*exchange.Order, error) {
	req, err := b.builder.Market(ctx, symbol, side, quantity)
	if err != nil {
		return nil, b.fail("market order rejected", err)
	}

	b.log.WithFields(logrus.Fields{
		"symbol": req.Symbol,
		"side":   req.Side,
		"qty":    req.Quantity,
	}).Info("Placing MARKET order")

	return b.submit(ctx, req)
}

// PlaceLimitOrder validates, formats and submits a limit order. An
// empty timeInForce defaults to GTC.
func (b *Bot) PlaceLimitOrder(ctx context.Context, symbol, side string, quantity, price float64, timeInForce string) (*exchange.Order, error) {
	req, err := b.builder.Limit(ctx, symbol, side, quantity, price, timeInForce)
	if err != nil {
		return nil, b.fail("limit order rejected", err)
	}

	b.log.WithFields(logrus.Fields{
		"symbol": req.Symbol,
		"side":   req.Side,
		"qty":    req.Quantity,
		"price":  req.Price,
		"tif":    req.TimeInForce,
	}).Info("Placing LIMIT order")

	return b.submit(ctx, req)
}

// PlaceStopLimitOrder validates, formats and submits a stop-limit
// order: a limit order at price activated when the market reaches
// stopPrice.
func (b *Bot) PlaceStopLimitOrder(ctx context.Context, symbol, side string, quantity, price, stopPrice float64, timeInForce string) (*exchange.Order, error) {
	req, err := b.builder.StopLimit(ctx, symbol, side, quantity, price, stopPrice, timeInForce)
	if err != nil {
		return nil, b.fail("stop-limit order rejected", err)
	}

	b.log.WithFields(logrus.Fields{
		"symbol": req.Symbol,
		"side":   req.Side,
		"qty":    req.Quantity,
		"price":  req.Price,
		"stop":   req.StopPrice,
	}).Info("Placing STOP-LIMIT order")

	return b.submit(ctx, req)
}

// PlaceTakeProfitOrder validates, formats and submits a take-profit
// order; stopPrice is the profit trigger.
func (b *Bot) PlaceTakeProfitOrder(ctx context.Context, symbol, side string, quantity, price, stopPrice float64, timeInForce string) (*exchange.Order, error) {
	req, err := b.builder.TakeProfit(ctx, symbol, side, quantity, price, stopPrice, timeInForce)
	if err != nil {
		return nil, b.fail("take-profit order rejected", err)
	}

	b.log.WithFields(logrus.Fields{
		"symbol":  req.Symbol,
		"side":    req.Side,
		"qty":     req.Quantity,
		"price":   req.Price,
		"trigger": req.StopPrice,
	}).Info("Placing TAKE-PROFIT order")

	return b.submit(ctx, req)
}

// GetAccountInfo fetches the account balance snapshot.
func (b *Bot) GetAccountInfo(ctx context.Context) (*exchange.AccountSnapshot, error) {
	account, err := b.exchange.GetAccount(ctx)
	if err != nil {
		return nil, b.fail("failed to get account info", err)
	}

	b.log.WithFields(logrus.Fields{
		"balance":   account.TotalWalletBalance,
		"available": account.AvailableBalance,
	}).Info("Account snapshot")

	return account, nil
}

// GetSymbolPrice returns the current price for a symbol.
func (b *Bot) GetSymbolPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	validSymbol, err := validate.Symbol(symbol)
	if err != nil {
		return decimal.Zero, b.fail("price lookup rejected", err)
	}

	price, err := b.exchange.GetPrice(ctx, validSymbol)
	if err != nil {
		return decimal.Zero, b.fail("failed to get price", err)
	}

	monitoring.UpdatePrice(validSymbol, price.InexactFloat64())
	b.log.WithFields(logrus.Fields{"symbol": validSymbol, "price": price}).Debug("Current price")

	return price, nil
}

// GetOpenOrders lists open orders, all symbols when symbol is empty.
func (b *Bot) GetOpenOrders(ctx context.Context, symbol string) ([]exchange.Order, error) {
	orders, err := b.exchange.GetOpenOrders(ctx, symbol)
	if err != nil {
		return nil, b.fail("failed to get open orders", err)
	}

	b.log.WithField("count", len(orders)).Info("Open orders fetched")
	return orders, nil
}

// GetOrderStatus looks up a single order.
func (b *Bot) GetOrderStatus(ctx context.Context, symbol, orderID string) (*exchange.Order, error) {
	ord, err := b.exchange.GetOrderStatus(ctx, symbol, orderID)
	if err != nil {
		return nil, b.fail("failed to get order status", err)
	}

	b.logOrder(ord)
	return ord, nil
}

// CancelOrder cancels a single open order.
func (b *Bot) CancelOrder(ctx context.Context, symbol, orderID string) (*exchange.Order, error) {
	b.log.WithFields(logrus.Fields{"symbol": symbol, "orderId": orderID}).Info("Cancelling order")

	ord, err := b.exchange.CancelOrder(ctx, symbol, orderID)
	if err != nil {
		return nil, b.fail("failed to cancel order", err)
	}

	monitoring.RecordCancellation(symbol)
	b.log.WithField("orderId", orderID).Info("Order cancelled")
	return ord, nil
}

// CancelAllOrders cancels every open order for a symbol.
func (b *Bot) CancelAllOrders(ctx context.Context, symbol string) error {
	b.log.WithField("symbol", symbol).Info("Cancelling all orders")

	if err := b.exchange.CancelAllOrders(ctx, symbol); err != nil {
		return b.fail("failed to cancel all orders", err)
	}

	monitoring.RecordCancellation(symbol)
	b.log.WithField("symbol", symbol).Info("All orders cancelled")
	return nil
}

// GetPositions lists positions, dropping entries whose size is exactly
// zero; a position with no size is not a position.
func (b *Bot) GetPositions(ctx context.Context, symbol string) ([]exchange.Position, error) {
	positions, err := b.exchange.GetPositions(ctx, symbol)
	if err != nil {
		return nil, b.fail("failed to get positions", err)
	}

	active := positions[:0]
	for _, p := range positions {
		amt, err := decimal.NewFromString(p.PositionAmt)
		if err != nil || amt.IsZero() {
			continue
		}
		active = append(active, p)
	}

	b.log.WithField("count", len(active)).Info("Active positions fetched")
	return active, nil
}

// SetLeverage changes the leverage for a symbol after checking it is
// within the exchange's 1-125x range; out-of-range values never reach
// the network.
func (b *Bot) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	validSymbol, err := validate.Symbol(symbol)
	if err != nil {
		return b.fail("leverage change rejected", err)
	}

	if _, err := validate.Leverage(leverage); err != nil {
		return b.fail("leverage change rejected", err)
	}

	if err := b.exchange.SetLeverage(ctx, validSymbol, leverage); err != nil {
		return b.fail("failed to set leverage", err)
	}

	b.log.WithFields(logrus.Fields{"symbol": validSymbol, "leverage": leverage}).Info("Leverage updated")
	return nil
}

// submit places a wire-ready request and records the outcome.
func (b *Bot) submit(ctx context.Context, req *exchange.OrderRequest) (*exchange.Order, error) {
	ord, err := b.exchange.SubmitOrder(ctx, *req)
	if err != nil {
		return nil, b.fail("order submission failed", err)
	}

	monitoring.RecordOrder(req.Symbol, string(req.Side), string(req.Type))
	b.logOrder(ord)
	return ord, nil
}

// fail logs a failed operation, records the error metric and returns
// the error unchanged for the caller to handle.
func (b *Bot) fail(msg string, err error) error {
	monitoring.RecordError(errorKind(err))
	b.log.WithError(err).Error(msg)
	return err
}

// logOrder writes the structured result summary every operation emits.
func (b *Bot) logOrder(ord *exchange.Order) {
	fields := logrus.Fields{
		"orderId": ord.OrderID,
		"symbol":  ord.Symbol,
		"side":    ord.Side,
		"type":    ord.Type,
		"qty":     ord.OrigQty,
		"status":  ord.Status,
	}
	if ord.Price != "" && ord.Price != "0" {
		fields["price"] = ord.Price
	}
	if ord.StopPrice != "" && ord.StopPrice != "0" {
		fields["stopPrice"] = ord.StopPrice
	}
	if ord.AvgPrice != "" && ord.AvgPrice != "0" {
		fields["avgPrice"] = ord.AvgPrice
	}

	b.log.WithFields(fields).Info("Order result")
}
