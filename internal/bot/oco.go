package bot

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
	"github.com/tradeforge/futures-order-bot/internal/monitoring"
)

// OCOResult holds the two live legs of a successfully placed OCO pair.
type OCOResult struct {
	TakeProfit *exchange.Order `json:"takeProfit"`
	StopLoss   *exchange.Order `json:"stopLoss"`
}

// PlaceOCOOrder places a take-profit / stop-loss pair guarding an open
// position. Both legs are validated and formatted before anything is
// sent, so a bad input never leaves a single dangling leg. The
// take-profit leg goes out first; if the stop-loss leg then fails, the
// take-profit is cancelled best-effort and the stop-loss failure is
// returned. If that rollback also fails the error is a
// *PartialFailureError carrying the surviving order id.
func (b *Bot) PlaceOCOOrder(ctx context.Context, symbol, side string, quantity, takeProfitPrice, stopLossTrigger, stopLossLimit float64, timeInForce string) (*OCOResult, error) {
	tpReq, slReq, err := b.builder.OCOLegs(ctx, symbol, side, quantity, takeProfitPrice, stopLossTrigger, stopLossLimit, timeInForce)
	if err != nil {
		return nil, b.fail("OCO order rejected", err)
	}

	b.log.WithFields(logrus.Fields{
		"symbol":   tpReq.Symbol,
		"side":     tpReq.Side,
		"qty":      tpReq.Quantity,
		"tp":       tpReq.Price,
		"slStop":   slReq.StopPrice,
		"slLimit":  slReq.Price,
	}).Info("Placing OCO pair")

	tpOrder, err := b.submit(ctx, tpReq)
	if err != nil {
		return nil, err
	}

	slOrder, err := b.submit(ctx, slReq)
	if err != nil {
		return nil, b.rollbackOCO(ctx, tpOrder, err)
	}

	b.log.WithFields(logrus.Fields{
		"tpOrderId": tpOrder.OrderID,
		"slOrderId": slOrder.OrderID,
	}).Info("OCO pair placed")

	return &OCOResult{TakeProfit: tpOrder, StopLoss: slOrder}, nil
}

// rollbackOCO cancels the surviving take-profit leg after the stop-loss
// leg failed. On a clean rollback the caller sees the stop-loss failure
// unchanged; only a failed rollback escalates to PartialFailureError.
func (b *Bot) rollbackOCO(ctx context.Context, tpOrder *exchange.Order, cause error) error {
	b.log.WithFields(logrus.Fields{
		"symbol":  tpOrder.Symbol,
		"orderId": tpOrder.OrderID,
	}).Warn("Stop-loss leg failed, rolling back take-profit leg")

	if _, cancelErr := b.exchange.CancelOrder(ctx, tpOrder.Symbol, tpOrder.OrderID); cancelErr != nil {
		partial := &PartialFailureError{
			Symbol:           tpOrder.Symbol,
			SurvivingOrderID: tpOrder.OrderID,
			SurvivingLeg:     "take-profit",
			Cause:            cause,
			CancelErr:        cancelErr,
		}
		monitoring.RecordError(errorKind(partial))
		b.log.WithError(cancelErr).WithField("orderId", tpOrder.OrderID).
			Error("Rollback failed, take-profit leg is still live")
		return partial
	}

	monitoring.RecordCancellation(tpOrder.Symbol)
	b.log.WithField("orderId", tpOrder.OrderID).Info("Take-profit leg rolled back")
	return cause
}
