package exchange

import "fmt"

// SymbolNotFoundError is returned when the exchange lists no trading
// rules for the requested symbol.
type SymbolNotFoundError struct {
	Symbol string
}

func (e *SymbolNotFoundError) Error() string {
	return fmt.Sprintf("symbol %s not found on exchange", e.Symbol)
}

// APIError is an error reported by the exchange itself: authentication,
// rate limiting, rejected parameters, insufficient balance. It is
// propagated to the caller unchanged and never retried by the core.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("exchange API error: %s (code: %d)", e.Message, e.Code)
}

// NewAPIError creates an APIError from an exchange response code and message.
func NewAPIError(code int, message string) *APIError {
	return &APIError{Code: code, Message: message}
}
