package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// Credentials authenticate one portal account.
type Credentials struct {
	Username string
	Password string
}

var ErrNoCredentials = errors.New("credentials file has no usable entry")

// LoadCredentials reads a credentials file. Two formats are accepted: an ini
// profile file with username/password keys, and the legacy single-line
// "user:password" secret file the first generation of this tool used.
func LoadCredentials(path, profile string) (Credentials, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, fmt.Errorf("failed to read credentials file: %w", err)
	}

	if cfg, err := ini.Load(raw); err == nil {
		section := cfg.Section(profile)
		user := section.Key("username").String()
		pass := section.Key("password").String()
		if user != "" && pass != "" {
			return Credentials{Username: user, Password: pass}, nil
		}
	}

	return parseLegacySecret(string(raw))
}

// parseLegacySecret reads the first line of a "user:password" secret file.
// The password may itself contain colons; only the first separates.
func parseLegacySecret(raw string) (Credentials, error) {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) == 0 {
		return Credentials{}, ErrNoCredentials
	}
	parts := strings.SplitN(strings.TrimSpace(lines[0]), ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Credentials{}, ErrNoCredentials
	}
	return Credentials{Username: parts[0], Password: parts[1]}, nil
}
