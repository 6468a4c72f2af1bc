package bot

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/richardrhg/crypto-currency-discord-bot/internal/market"
)

// MarketData is the subset of the market client the commands use.
type MarketData interface {
	GetPrice(ctx context.Context, symbol string) (*market.PriceQuote, error)
	GetMultiplePrices(ctx context.Context, symbols []string) ([]market.WatchItem, error)
	GetLendingRate(ctx context.Context, asset string) market.LendingRateEstimate
}

// Replier sends messages back to a channel.
type Replier interface {
	SendText(channelID, content string) error
	SendEmbed(channelID string, embed *discordgo.MessageEmbed) error
}

// Releaser frees the HTTP session when the gateway disconnects.
type Releaser interface {
	Close()
}

// Bot routes prefixed chat messages to command handlers
type Bot struct {
	market   MarketData
	releaser Releaser
	prefix   string
	ctx      context.Context
	now      func() time.Time

	commands []*Command
	index    map[string]*Command
}

// New creates a bot answering commands that start with prefix
func New(md MarketData, releaser Releaser, prefix string) *Bot {
	b := &Bot{
		market:   md,
		releaser: releaser,
		prefix:   prefix,
		ctx:      context.Background(),
		now:      time.Now,
		index:    make(map[string]*Command),
	}
	b.register(b.priceCommand())
	b.register(b.lendingCommand())
	b.register(b.watchCommand())
	b.register(b.helpCommand())
	return b
}

func (b *Bot) register(cmd *Command) {
	b.commands = append(b.commands, cmd)
	for _, name := range append([]string{cmd.Name}, cmd.Aliases...) {
		b.index[strings.ToLower(name)] = cmd
	}
}

// Commands returns the registered commands in registration order.
func (b *Bot) Commands() []*Command {
	out := make([]*Command, len(b.commands))
	copy(out, b.commands)
	return out
}

func (b *Bot) lookup(name string) (*Command, bool) {
	cmd, ok := b.index[strings.ToLower(name)]
	return cmd, ok
}
