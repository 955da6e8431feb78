package cli

import (
	"context"
	"os"
)

func (c *Cli) runLogin(ctx context.Context, args []string) error {
	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.usernameArg(args)
	if err != nil {
		return err
	}

	password, err := c.getPassword("Password: ")
	if err != nil {
		return err
	}

	authKey, err := c.apiClient.Login(ctx, username, password)
	if err != nil {
		return err
	}

	if err := c.saveSession(ctx, username, authKey); err != nil {
		return err
	}

	c.io.Println("✓ Login successful!")
	c.io.Printf("Username: %s\n", username)
	return nil
}

func envPasswordSet() bool {
	return os.Getenv(PasswordEnv) != ""
}
