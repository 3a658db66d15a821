package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Settings holds the runtime options that are not compiled in.
//
// Values come from WTIME_* environment variables layered over compiled
// defaults; command-line flags are applied on top by the caller.
type Settings struct {
	// Mode selects how the UTC offset is obtained: utc, local or fixed.
	Mode string `koanf:"mode"`

	// Offset is the whole-hour UTC offset used in fixed mode.
	Offset int64 `koanf:"offset"`

	Port     string        `koanf:"port"`
	Refresh  time.Duration `koanf:"refresh"`
	Language string        `koanf:"language"`
}

// DefaultSettings returns the compiled defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Mode:     DefaultMode,
		Port:     DefaultPort,
		Refresh:  DefaultRefresh,
		Language: DefaultLanguage,
	}
}

// LoadSettings reads WTIME_* environment variables over the defaults.
// WTIME_REFRESH accepts Go duration strings such as "500ms".
func LoadSettings() (*Settings, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrLoadSettings, err)
	}

	s := DefaultSettings()
	if err := k.Unmarshal("", s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrLoadSettings, err)
	}

	s.Mode = strings.ToLower(strings.TrimSpace(s.Mode))
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the settings for values the application cannot run with.
func (s *Settings) Validate() error {
	switch s.Mode {
	case ModeUTC, ModeLocal, ModeFixed:
	default:
		return fmt.Errorf("%s: %q", ErrUnknownMode, s.Mode)
	}

	if s.Offset < -MaxOffsetHours || s.Offset > MaxOffsetHours {
		return errors.New(ErrOffsetRange)
	}

	if s.Refresh <= 0 {
		return errors.New(ErrRefreshInterval)
	}

	if !slices.Contains(SupportedLanguages, s.Language) {
		return fmt.Errorf("%s: %q", ErrUnsupportedLanguage, s.Language)
	}

	return ValidatePort(s.Port)
}

// ValidatePort ensures the port is a number within the TCP range.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}
