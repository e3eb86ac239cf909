// SPDX-License-Identifier: MPL-2.0

// Package schema defines the declarative help schema and turns it into a
// normalized option set.
//
// A Schema is what authors write: positional arguments and options with
// aliases, argument placeholders, conflicts, and requirements. Validate checks
// it and returns a Spec whose names are canonical (leading dashes stripped,
// aliases resolved), whose references are deduplicated, and whose entries
// carry their declaration order.
//
// Every problem found is reported at once through a *ValidationError, so a
// schema author sees the complete list instead of fixing one error per run.
//
// Documents that arrive as loosely typed data (JSON, YAML, TOML, CUE) go
// through Decode or Parse, which accept the same shorthand forms as the typed
// API: a single string where a list is expected, "requires" or "dependsOn",
// and the arg mini-grammar ("<file> [mode] ...").
package schema
