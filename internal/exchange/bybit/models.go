package bybit

import (
	"strconv"
	"strings"
	"time"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
)

// wireOrder is an order entry as the v5 order endpoints return it.
type wireOrder struct {
	OrderID       string `json:"orderId"`
	OrderLinkID   string `json:"orderLinkId"`
	Symbol        string `json:"symbol"`
	Side          string `json:"side"`
	OrderType     string `json:"orderType"`
	Qty           string `json:"qty"`
	Price         string `json:"price"`
	TriggerPrice  string `json:"triggerPrice"`
	OrderStatus   string `json:"orderStatus"`
	AvgPrice      string `json:"avgPrice"`
	TimeInForce   string `json:"timeInForce"`
	ReduceOnly    bool   `json:"reduceOnly"`
	StopOrderType string `json:"stopOrderType"`
	CreatedTime   string `json:"createdTime"`
}

func (w wireOrder) toOrder() exchange.Order {
	return exchange.Order{
		OrderID:     w.OrderID,
		Symbol:      w.Symbol,
		Side:        sideFromBybit(w.Side),
		Type:        orderTypeFromBybit(w),
		OrigQty:     w.Qty,
		Price:       w.Price,
		StopPrice:   w.TriggerPrice,
		Status:      statusFromBybit(w.OrderStatus),
		AvgPrice:    w.AvgPrice,
		TimeInForce: tifFromBybit(w.TimeInForce),
		ReduceOnly:  w.ReduceOnly,
		CreatedTime: parseTimestamp(w.CreatedTime),
	}
}

func sideToBybit(side exchange.Side) string {
	if side == exchange.SideSell {
		return "Sell"
	}
	return "Buy"
}

func sideFromBybit(side string) exchange.Side {
	if side == "Sell" {
		return exchange.SideSell
	}
	return exchange.SideBuy
}

// orderTypeToBybit maps the order type to the wire orderType field.
// Stop-limit and take-profit orders are conditional limit orders on
// Bybit; the trigger price carries the distinction.
func orderTypeToBybit(t exchange.OrderType) string {
	if t == exchange.OrderTypeMarket {
		return "Market"
	}
	return "Limit"
}

func orderTypeFromBybit(w wireOrder) exchange.OrderType {
	if w.OrderType == "Market" {
		return exchange.OrderTypeMarket
	}
	if w.TriggerPrice == "" {
		return exchange.OrderTypeLimit
	}
	if strings.Contains(w.StopOrderType, "TakeProfit") {
		return exchange.OrderTypeTakeProfit
	}
	return exchange.OrderTypeStopLimit
}

func tifToBybit(tif exchange.TimeInForce) string {
	if tif == exchange.TimeInForceGTX {
		return "PostOnly"
	}
	return string(tif)
}

func tifFromBybit(tif string) exchange.TimeInForce {
	if tif == "PostOnly" {
		return exchange.TimeInForceGTX
	}
	return exchange.TimeInForce(tif)
}

func statusFromBybit(status string) exchange.OrderStatus {
	switch status {
	case "PartiallyFilled":
		return exchange.OrderStatusPartiallyFilled
	case "Filled":
		return exchange.OrderStatusFilled
	case "Cancelled", "PartiallyFilledCanceled":
		return exchange.OrderStatusCanceled
	case "Rejected":
		return exchange.OrderStatusRejected
	case "Deactivated":
		return exchange.OrderStatusExpired
	default:
		// Created, New, Untriggered, Triggered
		return exchange.OrderStatusNew
	}
}

// parseTimestamp parses a millisecond epoch string; a missing or
// malformed field yields the zero time.
func parseTimestamp(ts string) time.Time {
	ms, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
