package exchange

import (
	"context"

	"github.com/shopspring/decimal"
)

// Exchange is the client-side view of the derivatives exchange. The
// adapter owns wire format, auth, rate limiting and retries; every
// method is a single blocking call that returns a result or an error.
type Exchange interface {
	GetName() string

	// GetSymbolRule fetches the trading rules for a symbol. Returns
	// *SymbolNotFoundError when the exchange lists no such symbol.
	GetSymbolRule(ctx context.Context, symbol string) (*SymbolRule, error)

	// GetPrice returns the current price for a symbol.
	GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error)

	// SubmitOrder places a new order and returns the exchange's record.
	SubmitOrder(ctx context.Context, req OrderRequest) (*Order, error)

	// CancelOrder cancels a single open order.
	CancelOrder(ctx context.Context, symbol, orderID string) (*Order, error)

	// CancelAllOrders cancels every open order for a symbol.
	CancelAllOrders(ctx context.Context, symbol string) error

	// GetOpenOrders lists open orders, optionally filtered by symbol
	// (empty symbol means all).
	GetOpenOrders(ctx context.Context, symbol string) ([]Order, error)

	// GetOrderStatus looks up a specific order.
	GetOrderStatus(ctx context.Context, symbol, orderID string) (*Order, error)

	// GetPositions lists positions, optionally filtered by symbol.
	// Entries with zero size are included; callers filter.
	GetPositions(ctx context.Context, symbol string) ([]Position, error)

	// GetAccount fetches the account balance snapshot.
	GetAccount(ctx context.Context) (*AccountSnapshot, error)

	// SetLeverage changes the leverage for a symbol.
	SetLeverage(ctx context.Context, symbol string, leverage int) error
}
