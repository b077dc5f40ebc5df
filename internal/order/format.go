// Package order turns validated caller input into wire-ready order
// requests: it resolves per-symbol precision rules, truncates quantity
// and price fields to those rules with exact decimal arithmetic, and
// assembles the request for each supported order kind.
package order

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
	"github.com/tradeforge/futures-order-bot/internal/validate"
)

// RuleSource fetches the trading rules for a symbol. Implemented by
// the exchange adapter.
type RuleSource interface {
	GetSymbolRule(ctx context.Context, symbol string) (*exchange.SymbolRule, error)
}

// RuleCache caches SymbolRule lookups for the lifetime of its owner.
// Rules are fetched lazily on first reference and never evicted; rule
// changes on the exchange mid-session are not picked up.
type RuleCache struct {
	source RuleSource
	mu     sync.RWMutex
	rules  map[string]*exchange.SymbolRule
}

// NewRuleCache creates an empty rule cache backed by the given source.
func NewRuleCache(source RuleSource) *RuleCache {
	return &RuleCache{
		source: source,
		rules:  make(map[string]*exchange.SymbolRule),
	}
}

// Get returns the cached rule for a symbol, fetching and inserting it
// on a miss.
func (c *RuleCache) Get(ctx context.Context, symbol string) (*exchange.SymbolRule, error) {
	c.mu.RLock()
	rule, ok := c.rules[symbol]
	c.mu.RUnlock()
	if ok {
		return rule, nil
	}

	rule, err := c.source.GetSymbolRule(ctx, symbol)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.rules[symbol] = rule
	c.mu.Unlock()

	return rule, nil
}

// Len returns the number of cached rules.
func (c *RuleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.rules)
}

// Formatter formats raw quantities and prices to the decimal precision
// a symbol mandates. Values are always truncated toward zero, never
// rounded up: a buy for more than the trader asked, or a sell for
// less, must not happen because of rounding.
type Formatter struct {
	rules *RuleCache
}

// NewFormatter creates a formatter backed by the given rule cache.
func NewFormatter(rules *RuleCache) *Formatter {
	return &Formatter{rules: rules}
}

// Quantity formats a quantity to the symbol's quantity precision. A
// quantity that truncates to zero is rejected here, before any
// network-affecting call is made.
func (f *Formatter) Quantity(ctx context.Context, symbol string, quantity float64) (string, error) {
	rule, err := f.rules.Get(ctx, symbol)
	if err != nil {
		return "", err
	}

	truncated := decimal.NewFromFloat(quantity).Truncate(int32(rule.QuantityPrecision))
	if !truncated.IsPositive() {
		return "", validate.Errorf("quantity %v truncates to zero at %d decimal places for %s",
			quantity, rule.QuantityPrecision, rule.Symbol)
	}

	return truncated.StringFixed(int32(rule.QuantityPrecision)), nil
}

// Price formats a price to the symbol's price precision. The label
// names the field in error messages.
func (f *Formatter) Price(ctx context.Context, symbol string, price float64, label string) (string, error) {
	if _, err := validate.Price(price, label); err != nil {
		return "", err
	}

	rule, err := f.rules.Get(ctx, symbol)
	if err != nil {
		return "", err
	}

	truncated := decimal.NewFromFloat(price).Truncate(int32(rule.PricePrecision))
	return truncated.StringFixed(int32(rule.PricePrecision)), nil
}
