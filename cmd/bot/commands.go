package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tradeforge/futures-order-bot/internal/bot"
	"github.com/tradeforge/futures-order-bot/internal/display"
	"github.com/tradeforge/futures-order-bot/internal/reporting"
	"github.com/tradeforge/futures-order-bot/internal/validate"
)

// commandTimeout bounds every one-shot operation; the exchange adapter
// retries inside this window.
const commandTimeout = 30 * time.Second

func runCommand(b *bot.Bot, printer *display.Printer, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmd, rest := args[0], args[1:]

	switch strings.ToLower(cmd) {
	case "market":
		if len(rest) != 3 {
			return fmt.Errorf("usage: market <symbol> <side> <qty>")
		}
		qty, err := validate.QuantityString(rest[2], 0)
		if err != nil {
			return err
		}
		ord, err := b.PlaceMarketOrder(ctx, rest[0], rest[1], qty)
		if err != nil {
			return err
		}
		printer.Order(ord)

	case "limit":
		if len(rest) < 4 || len(rest) > 5 {
			return fmt.Errorf("usage: limit <symbol> <side> <qty> <price> [tif]")
		}
		qty, err := validate.QuantityString(rest[2], 0)
		if err != nil {
			return err
		}
		price, err := validate.PriceString(rest[3], "price")
		if err != nil {
			return err
		}
		ord, err := b.PlaceLimitOrder(ctx, rest[0], rest[1], qty, price, optional(rest, 4))
		if err != nil {
			return err
		}
		printer.Order(ord)

	case "stop":
		if len(rest) < 5 || len(rest) > 6 {
			return fmt.Errorf("usage: stop <symbol> <side> <qty> <price> <trigger> [tif]")
		}
		qty, err := validate.QuantityString(rest[2], 0)
		if err != nil {
			return err
		}
		price, err := validate.PriceString(rest[3], "price")
		if err != nil {
			return err
		}
		trigger, err := validate.PriceString(rest[4], "trigger price")
		if err != nil {
			return err
		}
		ord, err := b.PlaceStopLimitOrder(ctx, rest[0], rest[1], qty, price, trigger, optional(rest, 5))
		if err != nil {
			return err
		}
		printer.Order(ord)

	case "takeprofit":
		if len(rest) < 5 || len(rest) > 6 {
			return fmt.Errorf("usage: takeprofit <symbol> <side> <qty> <price> <trigger> [tif]")
		}
		qty, err := validate.QuantityString(rest[2], 0)
		if err != nil {
			return err
		}
		price, err := validate.PriceString(rest[3], "price")
		if err != nil {
			return err
		}
		trigger, err := validate.PriceString(rest[4], "trigger price")
		if err != nil {
			return err
		}
		ord, err := b.PlaceTakeProfitOrder(ctx, rest[0], rest[1], qty, price, trigger, optional(rest, 5))
		if err != nil {
			return err
		}
		printer.Order(ord)

	case "oco":
		if len(rest) < 6 || len(rest) > 7 {
			return fmt.Errorf("usage: oco <symbol> <side> <qty> <tp> <slTrigger> <slLimit> [tif]")
		}
		qty, err := validate.QuantityString(rest[2], 0)
		if err != nil {
			return err
		}
		tp, err := validate.PriceString(rest[3], "take-profit price")
		if err != nil {
			return err
		}
		slTrigger, err := validate.PriceString(rest[4], "stop trigger price")
		if err != nil {
			return err
		}
		slLimit, err := validate.PriceString(rest[5], "stop limit price")
		if err != nil {
			return err
		}
		result, err := b.PlaceOCOOrder(ctx, rest[0], rest[1], qty, tp, slTrigger, slLimit, optional(rest, 6))
		if err != nil {
			return err
		}
		printer.OCO(result)

	case "price":
		if len(rest) != 1 {
			return fmt.Errorf("usage: price <symbol>")
		}
		price, err := b.GetSymbolPrice(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Printf("💹 %s: %s\n", strings.ToUpper(rest[0]), price.String())

	case "account":
		account, err := b.GetAccountInfo(ctx)
		if err != nil {
			return err
		}
		printer.Account(account)

	case "positions":
		positions, err := b.GetPositions(ctx, optional(rest, 0))
		if err != nil {
			return err
		}
		printer.Positions(positions)

	case "orders":
		symbol, exportPath := parseOrdersArgs(rest)
		orders, err := b.GetOpenOrders(ctx, symbol)
		if err != nil {
			return err
		}
		printer.Orders(orders)
		if exportPath != "" {
			if err := reporting.WriteOrdersXLSX(orders, exportPath); err != nil {
				return err
			}
			fmt.Printf("📄 Exported %d orders to %s\n", len(orders), exportPath)
		}

	case "status":
		if len(rest) != 2 {
			return fmt.Errorf("usage: status <symbol> <orderId>")
		}
		ord, err := b.GetOrderStatus(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		printer.Order(ord)

	case "cancel":
		if len(rest) != 2 {
			return fmt.Errorf("usage: cancel <symbol> <orderId>")
		}
		ord, err := b.CancelOrder(ctx, rest[0], rest[1])
		if err != nil {
			return err
		}
		fmt.Printf("🗑️ Cancelled order %s on %s\n", ord.OrderID, rest[0])

	case "cancelall":
		if len(rest) != 1 {
			return fmt.Errorf("usage: cancelall <symbol>")
		}
		if err := b.CancelAllOrders(ctx, rest[0]); err != nil {
			return err
		}
		fmt.Printf("🗑️ Cancelled all orders on %s\n", rest[0])

	case "leverage":
		if len(rest) != 2 {
			return fmt.Errorf("usage: leverage <symbol> <1-125>")
		}
		leverage, err := validate.LeverageString(rest[1])
		if err != nil {
			return err
		}
		if err := b.SetLeverage(ctx, rest[0], leverage); err != nil {
			return err
		}
		fmt.Printf("⚙️ Leverage on %s set to %dx\n", strings.ToUpper(rest[0]), leverage)

	case "help":
		printUsage()

	default:
		return fmt.Errorf("unknown command %q (try: help)", cmd)
	}

	return nil
}

// runShell reads commands from stdin until EOF or quit. Command
// failures are printed and the shell keeps going.
func runShell(b *bot.Bot, printer *display.Printer) {
	fmt.Println("Futures order bot shell. Type 'help' for commands, 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if cmd := strings.ToLower(fields[0]); cmd == "quit" || cmd == "exit" {
			return
		}

		if err := runCommand(b, printer, fields); err != nil {
			fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		}
	}
}

// parseOrdersArgs splits "orders [symbol] [--export path]" arguments.
func parseOrdersArgs(args []string) (symbol, exportPath string) {
	for i := 0; i < len(args); i++ {
		if args[i] == "--export" && i+1 < len(args) {
			exportPath = args[i+1]
			i++
			continue
		}
		if symbol == "" {
			symbol = args[i]
		}
	}
	return symbol, exportPath
}

func optional(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
