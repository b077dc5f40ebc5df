// Command bot is the terminal interface to the order bot: one-shot
// subcommands for scripting and an interactive shell when run without
// arguments.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tradeforge/futures-order-bot/internal/bot"
	"github.com/tradeforge/futures-order-bot/internal/config"
	"github.com/tradeforge/futures-order-bot/internal/display"
	"github.com/tradeforge/futures-order-bot/internal/exchange/bybit"
	"github.com/tradeforge/futures-order-bot/internal/logger"
)

func main() {
	envFile := flag.String("env", "", "path to a .env file (default: ./.env if present)")
	flag.Usage = printUsage
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}

	client := bybit.NewClient(bybit.Config{
		APIKey:    cfg.Exchange.APIKey,
		APISecret: cfg.Exchange.APISecret,
		Testnet:   cfg.Exchange.Testnet,
		Demo:      cfg.Exchange.Demo,
	})
	log.WithField("environment", client.Environment()).Info("Connected to Bybit")

	b := bot.New(client, log)
	printer := display.NewPrinter(os.Stdout)

	args := flag.Args()
	if len(args) == 0 {
		runShell(b, printer)
		return
	}

	if err := runCommand(b, printer, args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Usage: bot [flags] [command]

Without a command, starts an interactive shell.

Commands:
  market <symbol> <side> <qty>                          place a market order
  limit <symbol> <side> <qty> <price> [tif]             place a limit order
  stop <symbol> <side> <qty> <price> <trigger> [tif]    place a stop-limit order
  takeprofit <symbol> <side> <qty> <price> <trigger>    place a take-profit order
  oco <symbol> <side> <qty> <tp> <slTrigger> <slLimit>  place a TP/SL pair
  price <symbol>                                        show the current price
  account                                               show the account balance
  positions [symbol]                                    list active positions
  orders [symbol] [--export file.xlsx]                  list open orders
  status <symbol> <orderId>                             look up an order
  cancel <symbol> <orderId>                             cancel an order
  cancelall <symbol>                                    cancel all orders for a symbol
  leverage <symbol> <1-125>                             change leverage

Flags:
`)
	flag.PrintDefaults()
}
