// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/invowk/helpout/pkg/render"
)

// EnvPrefix prefixes the environment variables read by New, e.g.
// HELPOUT_WIDTH.
const EnvPrefix = "HELPOUT"

// New creates a Viper instance reading flags, then HELPOUT_* environment
// variables, then defaults. flags may be nil.
func New(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	defaults := DefaultSettings()
	v.SetDefault("width", defaults.Width)
	v.SetDefault("spacing", defaults.Spacing)
	v.SetDefault("indent", defaults.Indent)
	v.SetDefault("color", string(defaults.Color))
	v.SetDefault("style", []string{})
	v.SetDefault("name", defaults.Name)
	v.SetDefault("verbose", defaults.Verbose)

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}
	return v, nil
}

// Load reads and validates the settings held by v.
func Load(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if ok, errs := s.IsValid(); !ok {
		return nil, errs[0]
	}
	return &s, nil
}

// ParseStyleFlags turns key=value pairs into render styles. A value of
// "null" or an empty value removes styling for the key. Keys and style names
// are checked by the renderer.
func ParseStyleFlags(flags []string) (render.Styles, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	styles := make(render.Styles, len(flags))
	for _, f := range flags {
		key, value, ok := strings.Cut(f, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &InvalidStyleFlagError{Value: f}
		}
		value = strings.TrimSpace(value)
		if value == "" || value == "null" {
			styles[key] = nil
			continue
		}
		styles[key] = value
	}
	return styles, nil
}

// RenderOptions converts the settings into render options for output on t.
func (s *Settings) RenderOptions(t Terminal, logger *log.Logger) ([]render.Option, error) {
	styles, err := ParseStyleFlags(s.Style)
	if err != nil {
		return nil, err
	}

	width := s.Width
	if width <= 0 {
		width = t.Width
	}
	opts := []render.Option{
		render.WithWidth(width),
		render.WithSpacing(s.Spacing),
		render.WithStyles(styles),
		render.WithProgramName(s.Name),
		render.WithLogger(logger),
	}
	if s.Indent != UnsetIndent {
		opts = append(opts, render.WithIndent(s.Indent))
	}

	switch s.Color {
	case ColorNever:
		opts = append(opts, render.WithColor(false))
	case ColorAlways:
		opts = append(opts, render.WithColor(true), render.WithColorProfile(termenv.ANSI))
	default:
		color := t.IsTerminal && t.Profile != termenv.Ascii
		opts = append(opts, render.WithColor(color), render.WithColorProfile(t.Profile))
	}
	return opts, nil
}
