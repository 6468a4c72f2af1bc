package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/richardrhg/crypto-currency-discord-bot/pkg/log"
)

// ErrCommandNotFound is reported for a prefixed word that names no command.
var ErrCommandNotFound = errors.New("command not found")

// MissingArgumentError is reported when a required argument is absent.
type MissingArgumentError struct {
	Command string
	Arg     string
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s is a required argument of %s", e.Arg, e.Command)
}

// Request is one command invocation.
type Request struct {
	ChannelID string
	Args      []string
	Reply     Replier
}

// Command is a chat command and its handler.
type Command struct {
	Name        string
	Aliases     []string
	Usage       string
	Description string
	handler     func(ctx context.Context, req *Request) error
}

// Dispatch parses content and runs the command it names. Messages without
// the prefix are ignored. Every failure ends in the error hook; none escapes.
func (b *Bot) Dispatch(ctx context.Context, r Replier, channelID, content string) {
	name, args, ok := b.parse(content)
	if !ok {
		return
	}

	req := &Request{ChannelID: channelID, Args: args, Reply: r}

	cmd, found := b.lookup(name)
	if !found {
		b.onCommandError(req, fmt.Errorf("%w: %s", ErrCommandNotFound, name))
		return
	}

	log.Logger().Info().Str("command", cmd.Name).Strs("args", args).Str("channel", channelID).Msg("dispatch")

	if err := b.invoke(ctx, cmd, req); err != nil {
		b.onCommandError(req, err)
	}
}

func (b *Bot) parse(content string) (string, []string, bool) {
	if b.prefix == "" || !strings.HasPrefix(content, b.prefix) {
		return "", nil, false
	}

	fields := strings.Fields(strings.TrimPrefix(content, b.prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}

func (b *Bot) invoke(ctx context.Context, cmd *Command, req *Request) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("command %s panicked: %v", cmd.Name, r)
		}
	}()
	return cmd.handler(ctx, req)
}

// onCommandError answers a failed invocation. Unknown commands and missing
// arguments get a pointer to help; anything else is logged and echoed.
func (b *Bot) onCommandError(req *Request, err error) {
	var missing *MissingArgumentError
	var msg string

	switch {
	case errors.Is(err, ErrCommandNotFound):
		log.Debug(err.Error())
		msg = fmt.Sprintf("❌ 找不到該指令，請使用 `%shelp` 查看所有可用指令", b.prefix)
	case errors.As(err, &missing):
		log.Debug(err.Error())
		msg = fmt.Sprintf("❌ 指令缺少必要參數，請使用 `%shelp` 查看指令用法", b.prefix)
	default:
		log.Logger().Error().Err(err).Str("channel", req.ChannelID).Msg("command failed")
		msg = "❌ 發生錯誤: " + err.Error()
	}

	if sendErr := req.Reply.SendText(req.ChannelID, msg); sendErr != nil {
		log.Logger().Error().Err(sendErr).Str("channel", req.ChannelID).Msg("send error notice")
	}
}
