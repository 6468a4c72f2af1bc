package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/richardrhg/crypto-currency-discord-bot/pkg/log"
)

// Intents the bot needs to read command messages.
const Intents = discordgo.IntentsGuildMessages |
	discordgo.IntentsDirectMessages |
	discordgo.IntentsMessageContent

type sessionReplier struct {
	s *discordgo.Session
}

func (r sessionReplier) SendText(channelID, content string) error {
	_, err := r.s.ChannelMessageSend(channelID, content)
	return err
}

func (r sessionReplier) SendEmbed(channelID string, embed *discordgo.MessageEmbed) error {
	_, err := r.s.ChannelMessageSendEmbed(channelID, embed)
	return err
}

// Attach registers the bot's event handlers on dg. Commands run with ctx.
func (b *Bot) Attach(ctx context.Context, dg *discordgo.Session) {
	b.ctx = ctx
	dg.Identify.Intents = Intents
	dg.AddHandler(b.onReady)
	dg.AddHandler(b.onDisconnect)
	dg.AddHandler(b.onMessageCreate)
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	if r.User == nil {
		log.Info("Bot is online")
		return
	}
	log.Logger().Info().
		Str("user", r.User.String()).
		Str("id", r.User.ID).
		Int("guilds", len(r.Guilds)).
		Msg("Bot is online")
}

func (b *Bot) onDisconnect(_ *discordgo.Session, _ *discordgo.Disconnect) {
	log.Warn("Gateway disconnected, releasing HTTP session")
	b.releaser.Close()
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}
	b.Dispatch(b.ctx, sessionReplier{s: s}, m.ChannelID, m.Content)
}
