package bybit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
)

// GetAccount fetches the unified account wallet and maps it to the
// futures balance snapshot.
func (c *Client) GetAccount(ctx context.Context) (*exchange.AccountSnapshot, error) {
	params := map[string]interface{}{
		"accountType": "UNIFIED",
	}

	result, err := c.call(ctx, func() (interface{}, error) {
		return c.httpClient.NewUtaBybitServiceWithParams(params).GetAccountWallet(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get account balance: %w", err)
	}

	var wallet struct {
		List []struct {
			TotalWalletBalance    string `json:"totalWalletBalance"`
			TotalAvailableBalance string `json:"totalAvailableBalance"`
			TotalPerpUPL          string `json:"totalPerpUPL"`
			TotalMarginBalance    string `json:"totalMarginBalance"`
		} `json:"list"`
	}
	if err := json.Unmarshal(result, &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet response: %w", err)
	}

	if len(wallet.List) == 0 {
		return nil, fmt.Errorf("wallet response contained no accounts")
	}

	acct := wallet.List[0]
	return &exchange.AccountSnapshot{
		TotalWalletBalance:    acct.TotalWalletBalance,
		AvailableBalance:      acct.TotalAvailableBalance,
		TotalUnrealizedProfit: acct.TotalPerpUPL,
		TotalMarginBalance:    acct.TotalMarginBalance,
	}, nil
}
