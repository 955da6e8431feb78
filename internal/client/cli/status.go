package cli

import (
	"context"
	"time"
)

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()
	c.io.Printf("Server: %s\n", c.apiClient.BaseURL())

	health, err := c.apiClient.Health(ctx)
	if err != nil {
		c.io.Printf("Server status: unavailable (%v)\n", err)
	} else {
		c.io.Printf("Server status: %s (version %s, database %s)\n", health.Status, health.Version, health.Database)
	}

	s, err := c.session(ctx)
	if err != nil {
		return err
	}
	if s == nil {
		c.io.Println("Session: not logged in")
		c.io.Println()
		c.io.Println("Run 'chatbix login' to authenticate.")
		return nil
	}

	c.io.Printf("Session: logged in as %s since %s\n", s.Username, time.Unix(s.LoggedInAt, 0).Format(time.RFC3339))

	cursor, err := c.store.GetCursor(ctx, s.Server)
	if err != nil {
		return err
	}
	if cursor > 0 {
		c.io.Printf("Last seen message: #%d\n", cursor)
	}
	return nil
}
