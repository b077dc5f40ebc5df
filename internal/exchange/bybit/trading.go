package bybit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
)

// leverageNotModified is returned when the requested leverage already
// matches the current setting; it is not a failure.
const leverageNotModified = 110043

// SubmitOrder places an order. Stop-limit and take-profit orders go
// out as conditional limit orders with a trigger price; the trigger
// direction follows from the order type and side.
func (c *Client) SubmitOrder(ctx context.Context, req exchange.OrderRequest) (*exchange.Order, error) {
	params := map[string]interface{}{
		"category":  category,
		"symbol":    req.Symbol,
		"side":      sideToBybit(req.Side),
		"orderType": orderTypeToBybit(req.Type),
		"qty":       req.Quantity,
	}

	if req.Price != "" {
		params["price"] = req.Price
	}
	if req.TimeInForce != "" {
		params["timeInForce"] = tifToBybit(req.TimeInForce)
	}
	if req.StopPrice != "" {
		params["triggerPrice"] = req.StopPrice
		params["triggerDirection"] = triggerDirection(req.Type, req.Side)
	}
	if req.ReduceOnly {
		params["reduceOnly"] = true
	}

	result, err := c.call(ctx, func() (interface{}, error) {
		return c.httpClient.NewUtaBybitServiceWithParams(params).PlaceOrder(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	var placed struct {
		OrderID     string `json:"orderId"`
		OrderLinkID string `json:"orderLinkId"`
	}
	if err := json.Unmarshal(result, &placed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order result: %w", err)
	}

	// Placement only returns the id; the rest of the record echoes the
	// accepted request.
	return &exchange.Order{
		OrderID:     placed.OrderID,
		Symbol:      req.Symbol,
		Side:        req.Side,
		Type:        req.Type,
		OrigQty:     req.Quantity,
		Price:       req.Price,
		StopPrice:   req.StopPrice,
		Status:      exchange.OrderStatusNew,
		TimeInForce: req.TimeInForce,
		ReduceOnly:  req.ReduceOnly,
		CreatedTime: time.Now().UTC(),
	}, nil
}

// triggerDirection tells Bybit whether a conditional order fires when
// the market rises to the trigger price (1) or falls to it (2).
func triggerDirection(orderType exchange.OrderType, side exchange.Side) int {
	const rising, falling = 1, 2

	if orderType == exchange.OrderTypeTakeProfit {
		if side == exchange.SideSell {
			return rising
		}
		return falling
	}
	if side == exchange.SideSell {
		return falling
	}
	return rising
}

// CancelOrder cancels a single open order.
func (c *Client) CancelOrder(ctx context.Context, symbol, orderID string) (*exchange.Order, error) {
	params := map[string]interface{}{
		"category": category,
		"symbol":   symbol,
		"orderId":  orderID,
	}

	result, err := c.call(ctx, func() (interface{}, error) {
		return c.httpClient.NewUtaBybitServiceWithParams(params).CancelOrder(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to cancel order %s: %w", orderID, err)
	}

	var cancelled struct {
		OrderID string `json:"orderId"`
	}
	if err := json.Unmarshal(result, &cancelled); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cancel result: %w", err)
	}

	return &exchange.Order{
		OrderID: cancelled.OrderID,
		Symbol:  symbol,
		Status:  exchange.OrderStatusCanceled,
	}, nil
}

// CancelAllOrders cancels every open order for a symbol.
func (c *Client) CancelAllOrders(ctx context.Context, symbol string) error {
	params := map[string]interface{}{
		"category": category,
		"symbol":   symbol,
	}

	_, err := c.call(ctx, func() (interface{}, error) {
		return c.httpClient.NewUtaBybitServiceWithParams(params).CancelAllOrders(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to cancel all orders for %s: %w", symbol, err)
	}

	return nil
}

// GetOpenOrders lists open orders, all symbols when symbol is empty.
func (c *Client) GetOpenOrders(ctx context.Context, symbol string) ([]exchange.Order, error) {
	params := map[string]interface{}{
		"category": category,
	}
	if symbol != "" {
		params["symbol"] = symbol
	} else {
		// The linear category requires a scope when no symbol is given.
		params["settleCoin"] = "USDT"
	}

	orders, err := c.queryOrders(ctx, params, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get open orders: %w", err)
	}

	return orders, nil
}

// GetOrderStatus looks up a specific order, checking open orders first
// and falling back to recent history for filled or cancelled ones.
func (c *Client) GetOrderStatus(ctx context.Context, symbol, orderID string) (*exchange.Order, error) {
	params := map[string]interface{}{
		"category": category,
		"symbol":   symbol,
		"orderId":  orderID,
	}

	orders, err := c.queryOrders(ctx, params, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get order status: %w", err)
	}

	if len(orders) == 0 {
		orders, err = c.queryOrders(ctx, params, true)
		if err != nil {
			return nil, fmt.Errorf("failed to get order status: %w", err)
		}
	}

	for i := range orders {
		if orders[i].OrderID == orderID {
			return &orders[i], nil
		}
	}

	return nil, fmt.Errorf("order %s not found on %s", orderID, symbol)
}

// queryOrders fetches one page from the open-orders or order-history
// endpoint and maps it to the exchange model.
func (c *Client) queryOrders(ctx context.Context, params map[string]interface{}, history bool) ([]exchange.Order, error) {
	result, err := c.call(ctx, func() (interface{}, error) {
		service := c.httpClient.NewUtaBybitServiceWithParams(params)
		if history {
			return service.GetOrderHistory(ctx)
		}
		return service.GetOpenOrders(ctx)
	})
	if err != nil {
		return nil, err
	}

	var orderList struct {
		List []wireOrder `json:"list"`
	}
	if err := json.Unmarshal(result, &orderList); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order list: %w", err)
	}

	orders := make([]exchange.Order, 0, len(orderList.List))
	for _, w := range orderList.List {
		orders = append(orders, w.toOrder())
	}

	return orders, nil
}

// GetPositions lists positions; zero-size entries are included and
// filtered by the caller.
func (c *Client) GetPositions(ctx context.Context, symbol string) ([]exchange.Position, error) {
	params := map[string]interface{}{
		"category": category,
	}
	if symbol != "" {
		params["symbol"] = symbol
	} else {
		params["settleCoin"] = "USDT"
	}

	result, err := c.call(ctx, func() (interface{}, error) {
		return c.httpClient.NewUtaBybitServiceWithParams(params).GetPositionList(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get positions: %w", err)
	}

	var positionList struct {
		List []struct {
			Symbol        string `json:"symbol"`
			Side          string `json:"side"`
			Size          string `json:"size"`
			EntryPrice    string `json:"avgPrice"`
			MarkPrice     string `json:"markPrice"`
			UnrealisedPnl string `json:"unrealisedPnl"`
			Leverage      string `json:"leverage"`
		} `json:"list"`
	}
	if err := json.Unmarshal(result, &positionList); err != nil {
		return nil, fmt.Errorf("failed to unmarshal position list: %w", err)
	}

	positions := make([]exchange.Position, 0, len(positionList.List))
	for _, p := range positionList.List {
		amt := p.Size
		if p.Side == "Sell" && amt != "" && amt != "0" {
			amt = "-" + amt
		}
		positions = append(positions, exchange.Position{
			Symbol:           p.Symbol,
			PositionAmt:      amt,
			EntryPrice:       p.EntryPrice,
			MarkPrice:        p.MarkPrice,
			UnrealizedProfit: p.UnrealisedPnl,
			Leverage:         p.Leverage,
		})
	}

	return positions, nil
}

// SetLeverage changes the leverage for a symbol. Bybit reports an
// unchanged leverage as an error code; that case is treated as success.
func (c *Client) SetLeverage(ctx context.Context, symbol string, leverage int) error {
	lv := strconv.Itoa(leverage)
	params := map[string]interface{}{
		"category":     category,
		"symbol":       symbol,
		"buyLeverage":  lv,
		"sellLeverage": lv,
	}

	_, err := c.call(ctx, func() (interface{}, error) {
		return c.httpClient.NewUtaBybitServiceWithParams(params).SetPositionLeverage(ctx)
	})
	if err != nil {
		var apiErr *exchange.APIError
		if errors.As(err, &apiErr) && apiErr.Code == leverageNotModified {
			return nil
		}
		return fmt.Errorf("failed to set leverage for %s: %w", symbol, err)
	}

	return nil
}
