// Package cli implements the terminal chat client commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/iudanet/chatbix/internal/client/api"
	"github.com/iudanet/chatbix/internal/client/iocli"
	"github.com/iudanet/chatbix/internal/client/storage"
)

// PasswordEnv is read before the password file and the interactive prompt
const PasswordEnv = "CHATBIX_PASSWORD"

// DefaultPollInterval is the heartbeat cadence of watch
const DefaultPollInterval = 2 * time.Second

// ErrUnknownCommand is returned by Run for an unsupported command
var ErrUnknownCommand = errors.New("unknown command")

// Store is the local state the commands need
type Store interface {
	storage.SessionStorage
	storage.CursorStorage
}

// Passwords are the non-interactive password sources
type Passwords struct {
	FromFile string
	FromArgs string
}

type Cli struct {
	io           iocli.IO
	apiClient    *api.Client
	store        Store
	passwords    Passwords
	pollInterval time.Duration
}

func New(io iocli.IO, apiClient *api.Client, store Store, passwords Passwords) *Cli {
	return &Cli{
		io:           io,
		apiClient:    apiClient,
		store:        store,
		passwords:    passwords,
		pollInterval: DefaultPollInterval,
	}
}

// Run выполняет команду с её аргументами
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx, args)
	case "login":
		return c.runLogin(ctx, args)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "send":
		return c.runSend(ctx, args)
	case "read":
		return c.runRead(ctx, args)
	case "watch":
		return c.runWatch(ctx, args)
	case "search":
		return c.runSearch(ctx, args)
	case "delete":
		return c.runDelete(ctx, args)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, command)
	}
}

// session возвращает сохраненную сессию для текущего сервера
func (c *Cli) session(ctx context.Context) (*storage.Session, error) {
	s, err := c.store.GetSession(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if s.Server != c.apiClient.BaseURL() {
		return nil, nil
	}
	return s, nil
}

// requireSession как session, но без сессии возвращает ошибку
func (c *Cli) requireSession(ctx context.Context) (*storage.Session, error) {
	s, err := c.session(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("not logged in. Please run 'chatbix login' first")
	}
	return s, nil
}

// getPassword retrieves the password with priority:
// 1. Environment variable CHATBIX_PASSWORD
// 2. Password file
// 3. Command-line parameter
// 4. Interactive prompt (fallback)
func (c *Cli) getPassword(prompt string) (string, error) {
	if envPassword := os.Getenv(PasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	if c.passwords.FromFile != "" {
		content, err := os.ReadFile(c.passwords.FromFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	if c.passwords.FromArgs != "" {
		return c.passwords.FromArgs, nil
	}

	password, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	return password, nil
}

// usernameArg берет username из аргументов или спрашивает
func (c *Cli) usernameArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	return username, nil
}

func PrintUsage(io iocli.IO) {
	io.Println("Chatbix Client")
	io.Println()
	io.Println("Usage:")
	io.Println("  chatbix [OPTIONS] COMMAND [ARGS]")
	io.Println()
	io.Println("Options:")
	io.Println("  --version              Show version information")
	io.Println("  --server URL           Server URL (default: http://localhost:8080)")
	io.Println("  --db PATH              Path to local database (default: chatbix-client.db)")
	io.Println("  --password PASSWORD    Password (not recommended, use env var or file)")
	io.Println("  --password-file PATH   Path to file containing password")
	io.Println()
	io.Println("Password Priority (highest to lowest):")
	io.Println("  1. CHATBIX_PASSWORD environment variable")
	io.Println("  2. --password-file (file path)")
	io.Println("  3. --password (command line)")
	io.Println("  4. Interactive prompt (fallback)")
	io.Println()
	io.Println("Commands:")
	io.Println("  register [username]                 Register new user and log in")
	io.Println("  login [username]                    Login to server")
	io.Println("  logout                              Logout from server")
	io.Println("  status                              Show session and server status")
	io.Println("  send [-channel C] [-color #rgb] TEXT  Post a message")
	io.Println("  read [-channels a,b] [-last N] [-new]  Print messages once")
	io.Println("  watch [-channels a,b] [-away]       Follow the chat and who is online")
	io.Println("  search [-limit N] QUERY             Full-text search")
	io.Println("  delete ID                           Delete a message (admin)")
	io.Println()
	io.Println("Examples:")
	io.Println("  chatbix register alice")
	io.Println("  chatbix send -channel dev 'deploy finished'")
	io.Println("  chatbix watch -channels dev,ops")
	io.Println("  chatbix --server https://chat.example.com read -last 20")
}
