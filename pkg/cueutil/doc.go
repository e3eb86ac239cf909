// SPDX-License-Identifier: MPL-2.0

// Package cueutil checks CUE documents against an embedded CUE definition and
// decodes them into Go values.
//
//	//go:embed schema.cue
//	var definition []byte
//
//	doc, err := cueutil.Load[map[string]any](definition, data, "#Schema",
//	    cueutil.WithFilename("help.cue"))
//
// Errors reported by CUE are returned as *Error, one Problem per failing
// field with a JSON-style path such as "options[2].alias".
package cueutil
