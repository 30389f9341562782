package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lazharichir/holdem/domain"
)

// Config holds the server settings
type Config struct {
	Addr           string
	Rules          domain.Rules
	AllowedOrigins []string
	LogLevel       slog.Level
}

// Load reads a .env file when there is one, then the environment.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the configuration from the environment only
func FromEnv() (Config, error) {
	defaults := domain.DefaultRules()

	cfg := Config{
		Addr:           getenv("HOLDEM_ADDR", "0.0.0.0:7777"),
		AllowedOrigins: splitList(os.Getenv("HOLDEM_ALLOWED_ORIGINS")),
	}

	var err error
	if cfg.Rules.SmallBlind, err = getInt("HOLDEM_SMALL_BLIND", defaults.SmallBlind); err != nil {
		return Config{}, err
	}
	if cfg.Rules.BigBlind, err = getInt("HOLDEM_BIG_BLIND", defaults.BigBlind); err != nil {
		return Config{}, err
	}
	if cfg.Rules.StartingStack, err = getInt("HOLDEM_STARTING_STACK", defaults.StartingStack); err != nil {
		return Config{}, err
	}
	if cfg.Rules.MaxPlayers, err = getInt("HOLDEM_MAX_PLAYERS", defaults.MaxPlayers); err != nil {
		return Config{}, err
	}
	if err := ValidateRules(cfg.Rules); err != nil {
		return Config{}, err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getenv("HOLDEM_LOG_LEVEL", "info"))); err != nil {
		return Config{}, fmt.Errorf("HOLDEM_LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// MaxSeats is the largest table a room can hold
const MaxSeats = domain.MaxSeats

// ValidateRules rejects table settings no hand could be dealt with
func ValidateRules(rules domain.Rules) error {
	switch {
	case rules.SmallBlind <= 0:
		return errors.New("small blind must be positive")
	case rules.BigBlind < rules.SmallBlind:
		return fmt.Errorf("big blind %d is below small blind %d", rules.BigBlind, rules.SmallBlind)
	case rules.StartingStack <= 0:
		return errors.New("starting stack must be positive")
	case rules.MaxPlayers < 2 || rules.MaxPlayers > MaxSeats:
		return fmt.Errorf("max players must be between 2 and %d", MaxSeats)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return n, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
