package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxContentLen is the maximum message size in bytes
const MaxContentLen = 4096

var (
	channelPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,32}$`)
	colorPattern   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// ValidateContent checks the message body
func ValidateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("message content cannot be empty")
	}

	if len(content) > MaxContentLen {
		return fmt.Errorf("message content must not exceed %d bytes", MaxContentLen)
	}

	if !utf8.ValidString(content) {
		return fmt.Errorf("message content must be valid UTF-8")
	}

	return nil
}

// ValidateChannel checks a named channel. Nil means the default channel
// and is always valid.
func ValidateChannel(channel *string) error {
	if channel == nil {
		return nil
	}

	if !channelPattern.MatchString(*channel) {
		return fmt.Errorf("invalid channel %q: 1-32 letters, numbers, '_' or '-'", *channel)
	}

	return nil
}

// ValidateColor checks an optional CSS hex color (#rgb or #rrggbb)
func ValidateColor(color *string) error {
	if color == nil {
		return nil
	}

	if !colorPattern.MatchString(*color) {
		return fmt.Errorf("invalid color %q: expected #rgb or #rrggbb", *color)
	}

	return nil
}
