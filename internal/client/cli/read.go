package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	clientapi "github.com/iudanet/chatbix/internal/client/api"
	"github.com/iudanet/chatbix/internal/tags"
	"github.com/iudanet/chatbix/pkg/api"
)

type readFlags struct {
	channels  string
	last      int
	noDefault bool
}

func (f *readFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.channels, "channels", "", "comma-separated channels")
	fs.BoolVar(&f.noDefault, "no-default", false, "exclude the default channel")
	fs.IntVar(&f.last, "last", 0, "how many recent messages to show")
}

func (f *readFlags) query() clientapi.Query {
	q := clientapi.Query{NoDefaultChannel: f.noDefault, Last: f.last}
	for _, ch := range strings.Split(f.channels, ",") {
		if ch = strings.TrimSpace(ch); ch != "" {
			q.Channels = append(q.Channels, ch)
		}
	}
	return q
}

func (c *Cli) runRead(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("read", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var rf readFlags
	rf.register(fs)
	onlyNew := fs.Bool("new", false, "only messages after the last seen one")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid read arguments: %w", err)
	}

	server := c.apiClient.BaseURL()
	q := rf.query()
	if *onlyNew {
		cursor, err := c.store.GetCursor(ctx, server)
		if err != nil {
			return err
		}
		q.AfterID = cursor
	}

	msgs, err := c.apiClient.GetMessages(ctx, q)
	if err != nil {
		return err
	}
	if len(msgs) == 0 {
		c.io.Println("No messages.")
		return nil
	}

	for _, m := range msgs {
		c.printMessage(m)
	}
	return c.advanceCursor(ctx, server, msgs)
}

func (c *Cli) runWatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var rf readFlags
	rf.register(fs)
	away := fs.Bool("away", false, "report as inactive")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid watch arguments: %w", err)
	}

	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	var username, authKey string
	if s != nil {
		username, authKey = s.Username, s.AuthKey
	}

	server := c.apiClient.BaseURL()
	q := rf.query()
	// первый опрос показывает последние сообщения, дальше только новые
	var cursor int64
	var online string

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		if cursor > 0 {
			q.AfterID = cursor
		}

		resp, err := c.apiClient.Heartbeat(ctx, username, authKey, !*away, q)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil
		case err != nil:
			c.io.Printf("! heartbeat failed: %v\n", err)
		default:
			for _, m := range resp.Messages {
				c.printMessage(m)
				cursor = max(cursor, m.ID)
			}
			if err := c.advanceCursor(ctx, server, resp.Messages); err != nil {
				return err
			}
			if now := formatPresence(resp.UsersConnected); now != online {
				online = now
				c.io.Printf("-- online: %s\n", online)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (c *Cli) advanceCursor(ctx context.Context, server string, msgs []api.Message) error {
	var last int64
	for _, m := range msgs {
		last = max(last, m.ID)
	}
	if last == 0 {
		return nil
	}
	if err := c.store.SaveCursor(ctx, server, last); err != nil {
		return fmt.Errorf("failed to save cursor: %w", err)
	}
	return nil
}

func (c *Cli) printMessage(m api.Message) {
	c.io.Println(formatMessage(m))
}

func formatMessage(m api.Message) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] #%d ", time.Unix(m.Timestamp, 0).Format(time.DateTime), m.ID)
	if m.Channel != nil {
		fmt.Fprintf(&b, "(%s) ", *m.Channel)
	}
	flags := tags.Decode(tags.Tags(m.Tags))
	if flags.Bot {
		b.WriteString("[bot] ")
	}
	b.WriteString(m.Author)
	if !flags.LoggedIn {
		// не залогинен, имя не подтверждено
		b.WriteString("?")
	}
	b.WriteString(": ")
	switch level := flags.ShowValue.Level(); {
	case level > 0:
		b.WriteString(strings.Repeat("!", level) + " ")
	case level < 0:
		b.WriteString("(muted) ")
	}
	b.WriteString(m.Content)
	return b.String()
}

func formatPresence(users []api.ConnectedUser) string {
	if len(users) == 0 {
		return "nobody"
	}
	names := make([]string, 0, len(users))
	for _, u := range users {
		name := u.Username
		if !u.LoggedIn {
			name += "?"
		}
		if u.LastActive < u.LastAnswer {
			name += " (away)"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
