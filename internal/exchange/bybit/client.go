// Package bybit adapts the Bybit v5 unified trading API to the
// exchange.Exchange interface. All trading goes through the "linear"
// category (USDT-margined perpetuals).
package bybit

import (
	"encoding/json"
	"fmt"

	bybit_api "github.com/bybit-exchange/bybit.go.api"

	"github.com/tradeforge/futures-order-bot/internal/exchange"
)

// category is fixed: the bot trades USDT perpetuals only.
const category = "linear"

// Config holds the configuration for the Bybit client
type Config struct {
	APIKey    string
	APISecret string
	Testnet   bool
	Demo      bool // Demo trading environment
}

// Client implements exchange.Exchange on top of the Bybit HTTP API.
type Client struct {
	httpClient *bybit_api.Client
	testnet    bool
	demo       bool
	retry      retryConfig
}

// NewClient creates a new Bybit client
func NewClient(config Config) *Client {
	var baseURL string
	if config.Demo {
		// Demo trading environment (paper trading)
		baseURL = "https://api-demo.bybit.com"
	} else if config.Testnet {
		baseURL = bybit_api.TESTNET
	} else {
		baseURL = bybit_api.MAINNET
	}

	httpClient := bybit_api.NewBybitHttpClient(
		config.APIKey,
		config.APISecret,
		bybit_api.WithBaseURL(baseURL),
	)

	return &Client{
		httpClient: httpClient,
		testnet:    config.Testnet,
		demo:       config.Demo,
		retry:      defaultRetryConfig(),
	}
}

// GetName returns the exchange identifier.
func (c *Client) GetName() string {
	return "bybit"
}

// Environment returns a string describing the current environment.
func (c *Client) Environment() string {
	if c.demo {
		return "demo"
	} else if c.testnet {
		return "testnet"
	}
	return "mainnet"
}

// unwrap validates a v5 API envelope and returns the raw result
// payload. A non-zero retCode becomes an *exchange.APIError.
func unwrap(response interface{}) (json.RawMessage, error) {
	serverResp, ok := response.(*bybit_api.ServerResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T", response)
	}

	if serverResp.RetCode != 0 {
		return nil, exchange.NewAPIError(serverResp.RetCode, serverResp.RetMsg)
	}

	resultBytes, err := json.Marshal(serverResp.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return resultBytes, nil
}
