package bybit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
)

// GetPrice returns the last traded price for a symbol.
func (c *Client) GetPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	params := map[string]interface{}{
		"category": category,
		"symbol":   symbol,
	}

	result, err := c.call(ctx, func() (interface{}, error) {
		return c.httpClient.NewUtaBybitServiceWithParams(params).GetMarketTickers(ctx)
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get price for %s: %w", symbol, err)
	}

	var tickers struct {
		List []struct {
			Symbol    string `json:"symbol"`
			LastPrice string `json:"lastPrice"`
		} `json:"list"`
	}
	if err := json.Unmarshal(result, &tickers); err != nil {
		return decimal.Zero, fmt.Errorf("failed to unmarshal tickers: %w", err)
	}

	if len(tickers.List) == 0 {
		return decimal.Zero, &exchange.SymbolNotFoundError{Symbol: symbol}
	}

	price, err := decimal.NewFromString(tickers.List[0].LastPrice)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid lastPrice %q for %s: %w", tickers.List[0].LastPrice, symbol, err)
	}

	return price, nil
}

// GetSymbolRule fetches the instrument's trading filters and derives
// the price and quantity precisions from tickSize and qtyStep.
func (c *Client) GetSymbolRule(ctx context.Context, symbol string) (*exchange.SymbolRule, error) {
	params := map[string]interface{}{
		"category": category,
		"symbol":   symbol,
	}

	result, err := c.call(ctx, func() (interface{}, error) {
		return c.httpClient.NewUtaBybitServiceWithParams(params).GetInstrumentInfo(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get instrument info for %s: %w", symbol, err)
	}

	var instruments struct {
		List []struct {
			Symbol      string `json:"symbol"`
			Status      string `json:"status"`
			PriceFilter struct {
				TickSize string `json:"tickSize"`
			} `json:"priceFilter"`
			LotSizeFilter struct {
				QtyStep string `json:"qtyStep"`
			} `json:"lotSizeFilter"`
		} `json:"list"`
	}
	if err := json.Unmarshal(result, &instruments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal instrument info: %w", err)
	}

	if len(instruments.List) == 0 {
		return nil, &exchange.SymbolNotFoundError{Symbol: symbol}
	}

	inst := instruments.List[0]
	return &exchange.SymbolRule{
		Symbol:            inst.Symbol,
		PricePrecision:    stepPrecision(inst.PriceFilter.TickSize),
		QuantityPrecision: stepPrecision(inst.LotSizeFilter.QtyStep),
	}, nil
}

// stepPrecision converts a filter step like "0.001" into its number of
// decimal digits (3). Steps of 1 or larger yield 0.
func stepPrecision(step string) int {
	d, err := decimal.NewFromString(step)
	if err != nil || d.IsZero() {
		return 0
	}

	// String trims trailing zeros, so "0.0010" still counts as 3.
	s := d.String()
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return len(s) - i - 1
	}
	return 0
}
