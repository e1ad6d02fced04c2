package config

import (
	"errors"
	"fmt"
	"strings"
)

// Style represents initializer parameter clause layout
type Style string

const (
	StyleGoogle   Style = "google"
	StyleAirbnb   Style = "airbnb"
	StyleLinkedIn Style = "linkedin"
)

// ErrInvalidConfig is returned when a configuration value is out of range
var ErrInvalidConfig = errors.New("invalid config")

// Config represents synthesis and layout settings
type Config struct {
	SpacesPerTab   int   `yaml:"spacesPerTab" toml:"spacesPerTab"`
	MaxLineLength  int   `yaml:"maxLineLength" toml:"maxLineLength"`
	EnableSorting  bool  `yaml:"enableSorting" toml:"enableSorting"`
	FormatterStyle Style `yaml:"formatterStyle" toml:"formatterStyle"`
	ValidateSyntax bool  `yaml:"validateSyntax" toml:"validateSyntax"` //tree-sitter preflight before synthesis
}

func DefaultConfig() *Config {
	return &Config{
		SpacesPerTab:   4,
		MaxLineLength:  160,
		EnableSorting:  true,
		FormatterStyle: StyleGoogle,
	}
}

// Validate checks config ranges and normalizes the formatter style
func (c *Config) Validate() error {
	if c.SpacesPerTab <= 0 {
		return fmt.Errorf("%w: spacesPerTab must be positive, got %d", ErrInvalidConfig, c.SpacesPerTab)
	}
	if c.MaxLineLength < 0 {
		return fmt.Errorf("%w: maxLineLength must not be negative, got %d", ErrInvalidConfig, c.MaxLineLength)
	}
	style := Style(strings.ToLower(strings.TrimSpace(string(c.FormatterStyle))))
	switch style {
	case "":
		style = StyleGoogle
	case StyleGoogle, StyleAirbnb, StyleLinkedIn:
	default:
		return fmt.Errorf("%w: unsupported formatterStyle %q", ErrInvalidConfig, c.FormatterStyle)
	}
	c.FormatterStyle = style
	return nil
}

// Indent returns one indentation level
func (c *Config) Indent() string {
	return strings.Repeat(" ", c.SpacesPerTab)
}
