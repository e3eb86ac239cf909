// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Document is a CUE document that passed its definition.
type Document[T any] struct {
	// Value is the decoded document.
	Value T

	// Unified is the document unified with its definition.
	Unified cue.Value
}

// Load compiles data, unifies it with the definition at path in schema, and
// decodes the result into T.
//
// Problems in data are returned as *Error. A schema that does not compile or
// lacks the definition is a programming error and is reported as such.
func Load[T any](schema, data []byte, path string, opts ...Option) (*Document[T], error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if err := CheckFileSize(data, o.maxFileSize, o.filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()
	schemaValue := ctx.CompileBytes(schema)
	if err := schemaValue.Err(); err != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", err)
	}
	definition := schemaValue.LookupPath(cue.ParsePath(path))
	if err := definition.Err(); err != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", path, err)
	}

	userValue := ctx.CompileBytes(data, cue.Filename(o.filename))
	if err := userValue.Err(); err != nil {
		return nil, FormatError(err, o.filename)
	}

	unified := definition.Unify(userValue)
	if err := unified.Validate(cue.Concrete(o.concrete)); err != nil {
		return nil, FormatError(err, o.filename)
	}

	doc := &Document[T]{Unified: unified}
	if err := unified.Decode(&doc.Value); err != nil {
		return nil, FormatError(err, o.filename)
	}
	return doc, nil
}
