package exchange

import "time"

// Side represents the side of an order
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// OrderType represents the type of an order
type OrderType string

const (
	OrderTypeMarket     OrderType = "MARKET"
	OrderTypeLimit      OrderType = "LIMIT"
	OrderTypeStopLimit  OrderType = "STOP"
	OrderTypeTakeProfit OrderType = "TAKE_PROFIT"
)

// TimeInForce represents how long an order remains active
type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "GTC" // Good Till Cancelled
	TimeInForceIOC TimeInForce = "IOC" // Immediate Or Cancel
	TimeInForceFOK TimeInForce = "FOK" // Fill Or Kill
	TimeInForceGTX TimeInForce = "GTX" // Post only
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "NEW"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCanceled        OrderStatus = "CANCELED"
	OrderStatusRejected        OrderStatus = "REJECTED"
	OrderStatusExpired         OrderStatus = "EXPIRED"
)

// SymbolRule holds the per-symbol trading rules the exchange mandates.
// PricePrecision and QuantityPrecision are the maximum number of decimal
// digits accepted for the respective field.
type SymbolRule struct {
	Symbol            string `json:"symbol"`
	PricePrecision    int    `json:"pricePrecision"`
	QuantityPrecision int    `json:"quantityPrecision"`
}

// OrderRequest is a wire-ready order. Quantity and price fields are
// already formatted to the symbol's precision.
type OrderRequest struct {
	Symbol      string
	Side        Side
	Type        OrderType
	Quantity    string
	Price       string // empty for market orders
	StopPrice   string // trigger price for STOP / TAKE_PROFIT
	TimeInForce TimeInForce
	ReduceOnly  bool
}

// Order is the exchange's record of a placed order. It is immutable
// once returned; callers only read fields for display and cancellation.
type Order struct {
	OrderID     string      `json:"orderId"`
	Symbol      string      `json:"symbol"`
	Side        Side        `json:"side"`
	Type        OrderType   `json:"type"`
	OrigQty     string      `json:"origQty"`
	Price       string      `json:"price"` // empty or "0" for market orders
	StopPrice   string      `json:"stopPrice"`
	Status      OrderStatus `json:"status"`
	AvgPrice    string      `json:"avgPrice"`
	TimeInForce TimeInForce `json:"timeInForce"`
	ReduceOnly  bool        `json:"reduceOnly"`
	CreatedTime time.Time   `json:"createdTime"`
}

// Position represents an open futures position.
type Position struct {
	Symbol           string `json:"symbol"`
	PositionAmt      string `json:"positionAmt"` // signed base quantity, negative for shorts
	EntryPrice       string `json:"entryPrice"`
	MarkPrice        string `json:"markPrice"`
	UnrealizedProfit string `json:"unrealizedProfit"`
	Leverage         string `json:"leverage"`
}

// AccountSnapshot holds the futures account balances.
type AccountSnapshot struct {
	TotalWalletBalance    string `json:"totalWalletBalance"`
	AvailableBalance      string `json:"availableBalance"`
	TotalUnrealizedProfit string `json:"totalUnrealizedProfit"`
	TotalMarginBalance    string `json:"totalMarginBalance"`
}
