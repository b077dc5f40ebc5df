// Command webui serves the browser dashboard and JSON API.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tradeforge/futures-order-bot/internal/bot"
	"github.com/tradeforge/futures-order-bot/internal/config"
	"github.com/tradeforge/futures-order-bot/internal/exchange/bybit"
	"github.com/tradeforge/futures-order-bot/internal/logger"
	"github.com/tradeforge/futures-order-bot/internal/webui"
)

func main() {
	envFile := flag.String("env", "", "path to a .env file (default: ./.env if present)")
	addr := flag.String("addr", "", "listen address (overrides WEBUI_ADDR)")
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

	listenAddr := cfg.WebUI.ListenAddr
	if *addr != "" {
		listenAddr = *addr
	}

	server := webui.NewServer(bot.New(client, log), log)
	if err := server.Run(listenAddr); err != nil {
		log.WithError(err).Error("Web UI server stopped")
		os.Exit(1)
	}
}
