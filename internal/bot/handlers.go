package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/richardrhg/crypto-currency-discord-bot/internal/market"
)

const (
	footerBinance  = "資料來源: Binance API"
	footerBitfinex = "資料來源: Bitfinex API"

	defaultLendingAsset = "USDT"
)

func (b *Bot) priceCommand() *Command {
	return &Command{
		Name:        "price",
		Aliases:     []string{"價格", "p"},
		Usage:       "<幣種>",
		Description: "獲取特定幣種對USDT的價格",
		handler:     b.handlePrice,
	}
}

func (b *Bot) lendingCommand() *Command {
	return &Command{
		Name:        "lending",
		Aliases:     []string{"借貸", "利率"},
		Usage:       "[幣種]",
		Description: "獲取借貸利率 (預設 USDT)",
		handler:     b.handleLending,
	}
}

func (b *Bot) watchCommand() *Command {
	return &Command{
		Name:        "watch",
		Aliases:     []string{"監控", "w"},
		Usage:       "<幣種1> <幣種2>...",
		Description: fmt.Sprintf("監控多個幣種價格 (最多%d個)", market.MaxWatchSymbols),
		handler:     b.handleWatch,
	}
}

func (b *Bot) helpCommand() *Command {
	return &Command{
		Name:        "help",
		Aliases:     []string{"幫助", "指令", "cryptohelp"},
		Description: "顯示此幫助訊息",
		handler:     b.handleHelp,
	}
}

func (b *Bot) timestamp() string {
	return b.now().Format(time.RFC3339)
}

func (b *Bot) handlePrice(ctx context.Context, req *Request) error {
	if len(req.Args) == 0 {
		return &MissingArgumentError{Command: "price", Arg: "symbol"}
	}
	symbol := strings.ToUpper(req.Args[0])

	if err := req.Reply.SendText(req.ChannelID, fmt.Sprintf("🔍 正在查詢 %s 價格...", symbol)); err != nil {
		return err
	}

	quote, err := b.market.GetPrice(ctx, symbol)
	if err != nil {
		return req.Reply.SendText(req.ChannelID,
			fmt.Sprintf("❌ 無法獲取 %s 的價格資訊，請確認幣種名稱是否正確", symbol))
	}

	return req.Reply.SendEmbed(req.ChannelID, b.priceEmbed(quote))
}

func (b *Bot) priceEmbed(q *market.PriceQuote) *discordgo.MessageEmbed {
	color, icon := trend(q.PriceChangePercent)

	return &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("%s %s 價格資訊", icon, q.Symbol),
		Color:     color,
		Timestamp: b.timestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "當前價格", Value: FormatPrice(q.LastPrice), Inline: true},
			{Name: "24h漲跌", Value: FormatPercent(q.PriceChangePercent), Inline: true},
			{Name: "24h成交量", Value: FormatVolume(q.Volume), Inline: true},
			{Name: "24h最高", Value: FormatPrice(q.High), Inline: true},
			{Name: "24h最低", Value: FormatPrice(q.Low), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: footerBinance},
	}
}

func (b *Bot) handleLending(ctx context.Context, req *Request) error {
	asset := defaultLendingAsset
	if len(req.Args) > 0 {
		asset = strings.ToUpper(req.Args[0])
	}

	if err := req.Reply.SendText(req.ChannelID, "🔍 正在查詢Bitfinex借貸利率..."); err != nil {
		return err
	}

	est := b.market.GetLendingRate(ctx, asset)
	return req.Reply.SendEmbed(req.ChannelID, b.lendingEmbed(est))
}

func (b *Bot) lendingEmbed(est market.LendingRateEstimate) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:     fmt.Sprintf("💰 %s 借貸利率 (Bitfinex)", est.Asset),
		Color:     colorUp,
		Timestamp: b.timestamp(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "年化利率", Value: FormatRate(est.AnnualInterestRate), Inline: true},
			{Name: "狀態", Value: string(est.Status), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: footerBitfinex},
	}
}

func (b *Bot) handleWatch(ctx context.Context, req *Request) error {
	switch {
	case len(req.Args) == 0:
		return req.Reply.SendText(req.ChannelID,
			fmt.Sprintf("❌ 請提供要監控的幣種名稱，例如: `%swatch BTC ETH BNB`", b.prefix))
	case len(req.Args) > market.MaxWatchSymbols:
		return req.Reply.SendText(req.ChannelID,
			fmt.Sprintf("❌ 一次最多只能監控%d個幣種", market.MaxWatchSymbols))
	}

	if err := req.Reply.SendText(req.ChannelID, fmt.Sprintf("🔍 正在查詢 %d 個幣種的價格...", len(req.Args))); err != nil {
		return err
	}

	items, err := b.market.GetMultiplePrices(ctx, req.Args)
	if err != nil || len(items) == 0 {
		return req.Reply.SendText(req.ChannelID, "❌ 無法獲取價格資訊，請檢查幣種名稱是否正確")
	}

	return req.Reply.SendEmbed(req.ChannelID, b.watchEmbed(items))
}

func (b *Bot) watchEmbed(items []market.WatchItem) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(items))
	for _, it := range items {
		_, icon := trend(it.PriceChangePercent)
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s %s", icon, it.Symbol),
			Value:  fmt.Sprintf("%s\n(%s)", FormatPrice(it.LastPrice), FormatPercent(it.PriceChangePercent)),
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Title:     "📊 加密貨幣價格監控",
		Color:     colorNeutral,
		Timestamp: b.timestamp(),
		Fields:    fields,
		Footer:    &discordgo.MessageEmbedFooter{Text: footerBinance},
	}
}

func (b *Bot) handleHelp(_ context.Context, req *Request) error {
	return req.Reply.SendEmbed(req.ChannelID, b.helpEmbed())
}

func (b *Bot) helpEmbed() *discordgo.MessageEmbed {
	var fields []*discordgo.MessageEmbedField
	for _, cmd := range b.Commands() {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  b.signature(cmd),
			Value: cmd.Description,
		})
	}

	fields = append(fields, &discordgo.MessageEmbedField{
		Name: "📝 使用範例",
		Value: fmt.Sprintf("`%[1]sprice BTC`\n`%[1]slending`\n`%[1]slending BTC`\n`%[1]swatch BTC ETH BNB`",
			b.prefix),
	})

	return &discordgo.MessageEmbed{
		Title:       "🤖 加密貨幣機器人指令說明",
		Description: "以下是所有可用的指令:",
		Color:       colorNeutral,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: footerBinance},
	}
}

// signature renders "!price <幣種> 或 !價格, !p".
func (b *Bot) signature(cmd *Command) string {
	s := b.prefix + cmd.Name
	if cmd.Usage != "" {
		s += " " + cmd.Usage
	}
	if len(cmd.Aliases) == 0 {
		return s
	}

	aliases := make([]string, len(cmd.Aliases))
	for i, a := range cmd.Aliases {
		aliases[i] = b.prefix + a
	}
	return s + " 或 " + strings.Join(aliases, ", ")
}
