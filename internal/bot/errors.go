package bot

import (
	"errors"
	"fmt"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
	"github.com/tradeforge/futures-order-bot/internal/validate"
)

// PartialFailureError reports an OCO placement where one leg was
// created, the other failed, and the automatic rollback of the
// surviving leg also failed. It carries the surviving order's id so
// the caller can intervene manually. Unwrap yields the failure of the
// second leg, not the rollback failure.
type PartialFailureError struct {
	Symbol           string
	SurvivingOrderID string
	SurvivingLeg     string // "take-profit"
	Cause            error  // the second leg's failure
	CancelErr        error  // why the rollback failed
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("OCO partially placed on %s: %s leg %s could not be cancelled after the other leg failed: %v",
		e.Symbol, e.SurvivingLeg, e.SurvivingOrderID, e.Cause)
}

func (e *PartialFailureError) Unwrap() error {
	return e.Cause
}

// errorKind maps an error to the metric/display label for its class.
func errorKind(err error) string {
	var vErr *validate.Error
	if errors.As(err, &vErr) {
		return "validation"
	}

	var notFound *exchange.SymbolNotFoundError
	if errors.As(err, &notFound) {
		return "symbol_not_found"
	}

	var partial *PartialFailureError
	if errors.As(err, &partial) {
		return "partial_failure"
	}

	var apiErr *exchange.APIError
	if errors.As(err, &apiErr) {
		return "exchange_api"
	}

	return "exchange_api"
}
