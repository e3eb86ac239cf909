// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/invowk/helpout/internal/config"
	"github.com/invowk/helpout/pkg/schemafile"
	"github.com/invowk/helpout/pkg/usage"
)

// stdinPath selects standard input as the schema source.
const stdinPath = "-"

// resolved is a loaded schema together with its usage forest.
type resolved struct {
	*schemafile.File
	forest []usage.Node
}

// loadSchema reads the schema at path, or from stdin when path is "-". An
// explicit --format overrides the file extension.
func loadSchema(cmd *cobra.Command, flags *rootFlagValues, path string) (*schemafile.File, error) {
	if path != stdinPath && flags.format == "" {
		file, err := schemafile.Load(path)
		if err != nil {
			return nil, classifyLoadError(err, path)
		}
		return file, nil
	}

	if flags.format == "" {
		return nil, classifyLoadError(fmt.Errorf("%w: --format is required when reading stdin", schemafile.ErrUnknownFormat), path)
	}
	format, err := schemafile.ParseFormat(flags.format)
	if err != nil {
		return nil, classifyLoadError(err, path)
	}

	var data []byte
	if path == stdinPath {
		data, err = io.ReadAll(io.LimitReader(cmd.InOrStdin(), schemafile.MaxFileSize+1))
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, classifyLoadError(err, path)
	}

	s, spec, err := schemafile.Parse(data, format, displayPath(path))
	if err != nil {
		return nil, classifyLoadError(err, path)
	}
	return &schemafile.File{Path: path, Format: format, Schema: s, Spec: spec}, nil
}

// resolveSchema loads the schema and resolves its usage forest, surfacing
// contradictions the validator cannot see.
func resolveSchema(cmd *cobra.Command, flags *rootFlagValues, path string) (*resolved, error) {
	file, err := loadSchema(cmd, flags, path)
	if err != nil {
		return nil, err
	}
	forest, err := usage.Resolve(file.Spec.Options)
	if err != nil {
		return nil, classifyResolveError(err, path)
	}
	return &resolved{File: file, forest: forest}, nil
}

// detectTerminal describes w. Writers that are not files, such as test
// buffers, are treated as pipes.
func detectTerminal(w io.Writer) config.Terminal {
	if f, ok := w.(*os.File); ok {
		return config.DetectTerminal(f)
	}
	return config.DetectTerminal(nil)
}

func displayPath(path string) string {
	if path == stdinPath {
		return "<stdin>"
	}
	return path
}
