// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing errors for the helpout CLI: a concise
// ActionableError for the terminal, plus a catalog of Markdown guidance
// rendered with glamour when more help is wanted.
package issue
