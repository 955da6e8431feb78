package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/chatbix/internal/client/api"
)

func (c *Cli) runLogout(ctx context.Context) error {
	c.io.Println("=== Logout ===")

	s, err := c.requireSession(ctx)
	if err != nil {
		return err
	}

	// 401 значит сервер уже забыл сессию (рестарт), локальную всё равно удаляем
	if err := c.apiClient.Logout(ctx, s.Username, s.AuthKey); err != nil && !api.IsUnauthorized(err) {
		return fmt.Errorf("logout failed: %w", err)
	}

	if err := c.store.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	c.io.Println("✓ Logout successful!")
	return nil
}
