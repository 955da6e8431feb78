package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/iudanet/chatbix/internal/client/storage"
	"github.com/iudanet/chatbix/internal/validation"
)

func (c *Cli) runRegister(ctx context.Context, args []string) error {
	c.io.Println("=== Registration ===")
	c.io.Println()

	username, err := c.usernameArg(args)
	if err != nil {
		return err
	}
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}

	password, err := c.getPassword("Password (min 8 chars): ")
	if err != nil {
		return err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	// подтверждение только при интерактивном вводе
	if !c.passwordFromFlags() {
		confirm, err := c.io.ReadPassword("Confirm password: ")
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if password != confirm {
			return fmt.Errorf("passwords do not match")
		}
	}

	authKey, err := c.apiClient.Register(ctx, username, password)
	if err != nil {
		return err
	}

	if err := c.saveSession(ctx, username, authKey); err != nil {
		return err
	}

	c.io.Println("✓ Registration successful!")
	c.io.Printf("Username: %s\n", username)
	c.io.Println("You are now logged in.")
	return nil
}

func (c *Cli) passwordFromFlags() bool {
	return c.passwords.FromFile != "" || c.passwords.FromArgs != "" || envPasswordSet()
}

func (c *Cli) saveSession(ctx context.Context, username, authKey string) error {
	s := &storage.Session{
		Server:     c.apiClient.BaseURL(),
		Username:   username,
		AuthKey:    authKey,
		LoggedInAt: time.Now().Unix(),
	}
	if err := c.store.SaveSession(ctx, s); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
