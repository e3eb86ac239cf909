// SPDX-License-Identifier: MPL-2.0

// Package render produces CLI help text from a schema.
//
// Render validates the schema, resolves option relationships into a usage
// line, and lays out the arguments and options tables for the requested
// width:
//
//	out, err := render.Render(s, render.WithWidth(60), render.WithColor(false))
//
// Output is assembled from up to four blank-line separated sections: the
// head (title and description), USAGE, ARGUMENTS and OPTIONS. Sections with
// nothing to show are omitted.
package render
