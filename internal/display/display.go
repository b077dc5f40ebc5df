// Package display renders results as terminal tables for the CLI.
package display

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/tradeforge/futures-order-bot/internal/bot"
	"github.com/tradeforge/futures-order-bot/internal/exchange"
)

// Printer writes formatted tables to a single output stream.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Order renders a single placed or fetched order.
func (p *Printer) Order(ord *exchange.Order) {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetTitle("ORDER")
	t.SetStyle(table.StyleRounded)

	rows := []table.Row{
		{"🆔 Order ID", ord.OrderID},
		{"📊 Symbol", ord.Symbol},
		{"↔️ Side", ord.Side},
		{"🏷️ Type", ord.Type},
		{"🔢 Quantity", ord.OrigQty},
		{"📋 Status", statusLabel(ord.Status)},
	}
	if ord.Price != "" && ord.Price != "0" {
		rows = append(rows, table.Row{"💵 Price", ord.Price})
	}
	if ord.StopPrice != "" && ord.StopPrice != "0" {
		rows = append(rows, table.Row{"🎯 Trigger", ord.StopPrice})
	}
	if ord.AvgPrice != "" && ord.AvgPrice != "0" {
		rows = append(rows, table.Row{"📈 Avg Price", ord.AvgPrice})
	}
	if ord.TimeInForce != "" {
		rows = append(rows, table.Row{"⏰ TIF", ord.TimeInForce})
	}

	t.AppendRows(rows)
	t.Render()
}

// OCO renders both legs of a placed OCO pair.
func (p *Printer) OCO(result *bot.OCOResult) {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetTitle("OCO PAIR")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Leg", "Order ID", "Price", "Trigger", "Qty"})
	t.AppendRows([]table.Row{
		{"🎯 Take Profit", result.TakeProfit.OrderID, result.TakeProfit.Price, result.TakeProfit.StopPrice, result.TakeProfit.OrigQty},
		{"🛑 Stop Loss", result.StopLoss.OrderID, result.StopLoss.Price, result.StopLoss.StopPrice, result.StopLoss.OrigQty},
	})
	t.Render()
}

// Orders renders a list of open orders.
func (p *Printer) Orders(orders []exchange.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(p.out, "No open orders.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetTitle("OPEN ORDERS")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Order ID", "Symbol", "Side", "Type", "Qty", "Price", "Trigger", "Status"})
	for _, ord := range orders {
		t.AppendRow(table.Row{
			ord.OrderID, ord.Symbol, ord.Side, ord.Type,
			ord.OrigQty, orDash(ord.Price), orDash(ord.StopPrice), statusLabel(ord.Status),
		})
	}
	t.Render()
}

// Positions renders the active positions.
func (p *Printer) Positions(positions []exchange.Position) {
	if len(positions) == 0 {
		fmt.Fprintln(p.out, "No active positions.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetTitle("POSITIONS")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Symbol", "Size", "Entry", "Mark", "Unrealized PnL", "Leverage"})
	for _, pos := range positions {
		t.AppendRow(table.Row{
			pos.Symbol, pos.PositionAmt, pos.EntryPrice,
			pos.MarkPrice, pos.UnrealizedProfit, pos.Leverage,
		})
	}
	t.Render()
}

// Account renders the account balance snapshot.
func (p *Printer) Account(acct *exchange.AccountSnapshot) {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetTitle("ACCOUNT")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"💰 Wallet Balance", acct.TotalWalletBalance},
		{"💵 Available", acct.AvailableBalance},
		{"📈 Unrealized PnL", acct.TotalUnrealizedProfit},
		{"🏦 Margin Balance", acct.TotalMarginBalance},
	})
	t.Render()
}

func statusLabel(status exchange.OrderStatus) string {
	switch status {
	case exchange.OrderStatusFilled:
		return "✅ " + string(status)
	case exchange.OrderStatusCanceled, exchange.OrderStatusRejected, exchange.OrderStatusExpired:
		return "❌ " + string(status)
	default:
		return string(status)
	}
}

func orDash(s string) string {
	if s == "" || s == "0" {
		return "-"
	}
	return s
}
