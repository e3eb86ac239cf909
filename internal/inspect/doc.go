// SPDX-License-Identifier: MPL-2.0

// Package inspect presents a validated schema for humans: an option
// relationship table, a YAML dump of the resolved usage forest, and a
// Markdown reference.
package inspect
