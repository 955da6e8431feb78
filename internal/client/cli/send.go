package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/iudanet/chatbix/internal/tags"
	"github.com/iudanet/chatbix/internal/validation"
	"github.com/iudanet/chatbix/pkg/api"
)

func (c *Cli) runSend(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	channel := fs.String("channel", "", "channel, default channel when empty")
	color := fs.String("color", "", "author color, #rgb or #rrggbb")
	as := fs.String("as", "", "anonymous author name when not logged in")
	var flags tags.Flags
	fs.BoolVar(&flags.NoNotif, "quiet", false, "ask other clients not to notify")
	fs.BoolVar(&flags.Bot, "bot", false, "mark the message as sent by a bot")
	show := fs.Uint("show", 0, "display hint: 1-4 hidden, 9-12 important")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid send arguments: %w", err)
	}

	content := strings.Join(fs.Args(), " ")
	if err := validation.ValidateContent(content); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	req := api.NewMessageRequest{Content: content}
	if *channel != "" {
		req.Channel = channel
	}
	if *color != "" {
		req.Color = color
	}

	if *show > 15 || tags.ShowValue(*show).Reserved() {
		return fmt.Errorf("invalid show value %d: use 0, 1-4 or 9-12", *show)
	}
	flags.ShowValue = tags.ShowValue(*show)
	if encoded := int32(flags.Encode()); encoded != 0 {
		req.Tags = &encoded
	}

	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	switch {
	case s != nil:
		req.Author = s.Username
		req.AuthKey = &s.AuthKey
	case *as != "":
		req.Author = *as
	default:
		return fmt.Errorf("not logged in. Please run 'chatbix login' first or pass -as NAME")
	}

	id, err := c.apiClient.SendMessage(ctx, req)
	if err != nil {
		return err
	}

	c.io.Printf("✓ Message #%d sent\n", id)
	return nil
}
