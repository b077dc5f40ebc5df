// Package validate holds the pure input validators for order
// parameters. Every validator takes a raw, untrusted value and returns
// the normalized value or an *Error with a human-readable reason.
// Validators have no side effects and never touch the network.
package validate

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
)

// Error is a validation failure on caller input. It is always raised
// before any network call is made.
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(format string, args ...interface{}) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// Errorf creates a validation Error with a formatted reason. Used by
// callers that enforce input rules beyond the basic validators, such
// as the precision formatter's truncates-to-zero rejection.
func Errorf(format string, args ...interface{}) *Error {
	return newError(format, args...)
}

// quoteSuffixes are the quote assets a symbol may end in.
var quoteSuffixes = []string{"USDT", "BUSD", "BTC", "ETH"}

// validTimeInForce are the accepted time-in-force policies.
var validTimeInForce = []exchange.TimeInForce{
	exchange.TimeInForceGTC,
	exchange.TimeInForceIOC,
	exchange.TimeInForceFOK,
	exchange.TimeInForceGTX,
}

// Symbol validates a trading pair symbol and returns it trimmed and
// uppercased. A valid symbol is at least 5 characters and ends in one
// of the known quote assets.
func Symbol(symbol string) (string, error) {
	if symbol == "" {
		return "", newError("symbol cannot be empty")
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	if len(symbol) < 5 {
		return "", newError("invalid symbol format: %s", symbol)
	}

	for _, suffix := range quoteSuffixes {
		if strings.HasSuffix(symbol, suffix) {
			return symbol, nil
		}
	}

	return "", newError("invalid symbol: %s. Must end with %s", symbol, strings.Join(quoteSuffixes, ", "))
}

// Side validates an order side and returns it as a typed constant.
func Side(side string) (exchange.Side, error) {
	if side == "" {
		return "", newError("side cannot be empty")
	}

	normalized := exchange.Side(strings.ToUpper(strings.TrimSpace(side)))

	if normalized != exchange.SideBuy && normalized != exchange.SideSell {
		return "", newError("invalid side: %s. Must be 'BUY' or 'SELL'", side)
	}

	return normalized, nil
}

// Quantity validates an order quantity. minQty of 0 means no minimum
// beyond strict positivity.
func Quantity(quantity float64, minQty float64) (float64, error) {
	// NaN slips through ordering comparisons and Inf through the
	// positivity check; neither survives decimal conversion downstream.
	if math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return 0, newError("quantity must be a finite number, got: %v", quantity)
	}

	if quantity <= 0 {
		return 0, newError("quantity must be positive, got: %v", quantity)
	}

	if quantity < minQty {
		return 0, newError("quantity %v is below minimum %v", quantity, minQty)
	}

	return quantity, nil
}

// QuantityString parses and validates a quantity given as text.
func QuantityString(quantity string, minQty float64) (float64, error) {
	q, err := strconv.ParseFloat(strings.TrimSpace(quantity), 64)
	if err != nil {
		return 0, newError("invalid quantity: %s", quantity)
	}
	return Quantity(q, minQty)
}

// Price validates an order price. The label names the field in error
// messages ("price", "stop price", "take-profit price").
func Price(price float64, label string) (float64, error) {
	if label == "" {
		label = "price"
	}

	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, newError("%s must be a finite number, got: %v", label, price)
	}

	if price <= 0 {
		return 0, newError("%s must be positive, got: %v", label, price)
	}

	return price, nil
}

// PriceString parses and validates a price given as text.
func PriceString(price, label string) (float64, error) {
	p, err := strconv.ParseFloat(strings.TrimSpace(price), 64)
	if err != nil {
		return 0, newError("invalid %s: %s", label, price)
	}
	return Price(p, label)
}

// Leverage validates a leverage multiplier. The exchange accepts
// leverage between 1x and 125x inclusive.
func Leverage(leverage int) (int, error) {
	if leverage < 1 || leverage > 125 {
		return 0, newError("leverage must be between 1 and 125, got: %d", leverage)
	}

	return leverage, nil
}

// LeverageString parses and validates a leverage given as text.
func LeverageString(leverage string) (int, error) {
	l, err := strconv.Atoi(strings.TrimSpace(leverage))
	if err != nil {
		return 0, newError("invalid leverage: %s", leverage)
	}
	return Leverage(l)
}

// TimeInForce validates a time-in-force policy. An empty value
// defaults to GTC.
func TimeInForce(tif string) (exchange.TimeInForce, error) {
	if strings.TrimSpace(tif) == "" {
		return exchange.TimeInForceGTC, nil
	}

	normalized := exchange.TimeInForce(strings.ToUpper(strings.TrimSpace(tif)))

	for _, valid := range validTimeInForce {
		if normalized == valid {
			return normalized, nil
		}
	}

	return "", newError("invalid time in force: %s. Valid options: GTC, IOC, FOK, GTX", tif)
}
