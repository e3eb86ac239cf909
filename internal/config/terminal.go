// SPDX-License-Identifier: MPL-2.0

package config

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/invowk/helpout/pkg/render"
)

// Terminal describes the stream help text is written to.
type Terminal struct {
	// IsTerminal is false for pipes and files.
	IsTerminal bool
	// Width is the terminal width, or render.DefaultWidth when unknown.
	Width int
	// Profile is the color profile, honoring NO_COLOR and CLICOLOR_FORCE.
	Profile termenv.Profile
}

// DetectTerminal inspects f. A nil f describes a pipe.
func DetectTerminal(f *os.File) Terminal {
	t := Terminal{Width: render.DefaultWidth, Profile: termenv.Ascii}
	if f == nil {
		return t
	}
	fd := int(f.Fd())
	if term.IsTerminal(fd) {
		t.IsTerminal = true
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			t.Width = w
		}
	}
	t.Profile = termenv.NewOutput(f).EnvColorProfile()
	return t
}
