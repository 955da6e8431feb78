package cli

import (
	"context"
	"fmt"
	"strconv"
)

func (c *Cli) runDelete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing message ID. Usage: chatbix delete <id>")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid message ID: %s", args[0])
	}

	s, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	if err := c.apiClient.DeleteMessage(ctx, s.Username, s.AuthKey, id); err != nil {
		return err
	}

	c.io.Printf("✓ Message #%d deleted\n", id)
	return nil
}
