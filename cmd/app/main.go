package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/richardrhg/crypto-currency-discord-bot/internal/bot"
	"github.com/richardrhg/crypto-currency-discord-bot/internal/config"
	"github.com/richardrhg/crypto-currency-discord-bot/internal/market"
	"github.com/richardrhg/crypto-currency-discord-bot/pkg/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		if errors.Is(err, config.ErrMissingToken) {
			log.Fatal("DiscordBotToken not found: set it in the environment or in a .env file (DiscordBotToken=<token>)")
		}
		log.Fatal(fmt.Sprintf("Invalid configuration: %v", err))
	}

	if cfg.LogFormat == "json" {
		log.SetJSON()
	}
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		log.Warn(fmt.Sprintf("Unknown LOG_LEVEL %q, keeping info", cfg.LogLevel))
	}

	session := market.NewSession(cfg.HTTPTimeout)
	client := market.NewClient(session,
		market.WithBinanceURL(cfg.BinanceURL),
		market.WithBitfinexURL(cfg.BitfinexURL),
	)

	dg, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		log.Fatal(fmt.Sprintf("Create Discord session: %v", err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := bot.New(client, session, cfg.Prefix)
	b.Attach(ctx, dg)

	if err := dg.Open(); err != nil {
		log.Error(fmt.Sprintf("Open Discord connection: %v", err))
		session.Close()
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("Bot is running with prefix %q, press Ctrl+C to stop", cfg.Prefix))
	<-ctx.Done()

	log.Info("Shutting down")
	if err := dg.Close(); err != nil {
		log.Error(fmt.Sprintf("Close Discord connection: %v", err))
	}
	session.Close()
}
