// SPDX-License-Identifier: MPL-2.0

// Package config resolves the helpout CLI render settings.
//
// Settings come from command-line flags, then HELPOUT_* environment
// variables, then defaults, merged with Viper. There is no settings file.
// An unset width is taken from the terminal.
package config
