package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
)

func (c *Cli) runSearch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	limit := fs.Int("limit", 0, "maximum results (server default 20)")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("invalid search arguments: %w", err)
	}

	query := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if query == "" {
		return fmt.Errorf("missing query. Usage: chatbix search <query>")
	}

	hits, err := c.apiClient.Search(ctx, query, *limit)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		c.io.Println("Nothing found.")
		return nil
	}

	for _, h := range hits {
		c.io.Printf("[%s] #%d %s: %s (%.2f)\n",
			time.Unix(h.Timestamp, 0).Format(time.DateTime), h.ID, h.Author, h.Content, h.Rank)
	}
	return nil
}
