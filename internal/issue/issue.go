// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
)

// Id identifies a catalogued issue.
type Id int

const (
	SchemaNotFoundId Id = iota + 1
	UnknownFormatId
	SchemaParseErrorId
	SchemaInvalidId
	UsageContradictionId
	InvalidStylesId
	WatchFailedId
)

type (
	// MarkdownMsg is guidance text in Markdown.
	MarkdownMsg string

	// Issue is a known failure with guidance on how to fix it.
	Issue struct {
		id    Id
		mdMsg MarkdownMsg
	}
)

// Id returns the issue identifier.
func (i *Issue) Id() Id {
	return i.id
}

// MarkdownMsg returns the raw guidance text.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the guidance for a terminal. stylePath is a glamour style
// name such as "dark", "light" or "notty".
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	schemaNotFoundIssue = &Issue{
		id: SchemaNotFoundId,
		mdMsg: `
# Schema file not found!

helpout could not read the schema file you passed.

## Things you can try:
- Check the path for typos
- Pass the file relative to the current directory:
~~~
$ helpout render ./help.yaml
~~~`,
	}

	unknownFormatIssue = &Issue{
		id: UnknownFormatId,
		mdMsg: `
# Unknown schema format!

The format of a schema file is taken from its extension.

## Supported extensions:
- ` + "`.cue`" + `
- ` + "`.json`" + `
- ` + "`.toml`" + `
- ` + "`.yaml`" + ` or ` + "`.yml`",
	}

	schemaParseErrorIssue = &Issue{
		id: SchemaParseErrorId,
		mdMsg: `
# Failed to parse the schema file!

The file is not valid for its format.

## Things you can try:
- Check the line and column reported above
- For CUE files, only the fields below are allowed at the top level:
~~~cue
name:        "mycli"
title:       "%name %version"
version:     "1.0.0"
description: "What the program does."
positional: [{name: "file"}]
options: [{name: "verbose", alias: "v"}]
~~~`,
	}

	schemaInvalidIssue = &Issue{
		id: SchemaInvalidId,
		mdMsg: `
# Invalid help schema!

The file parsed, but some entries break the schema rules.

## Common causes:
- Two options share a name or an alias
- ` + "`conflicts`" + ` or ` + "`requires`" + ` names an option that does not exist
- An option requires an option it conflicts with
- Options require each other in a cycle

## Things you can try:
- Run ` + "`helpout validate <file>`" + ` to list every problem
- Run ` + "`helpout inspect <file>`" + ` to see how options relate`,
	}

	usageContradictionIssue = &Issue{
		id: UsageContradictionId,
		mdMsg: `
# Contradictory required options!

A required option is mutually exclusive with an option that is not required.
Exactly one alternative of a required group has to be given, so an optional
alternative cannot be expressed.

## Things you can try:
- Make every option in the conflicting set required, or none of them
- Remove the conflict between the required and the optional option`,
	}

	invalidStylesIssue = &Issue{
		id: InvalidStylesId,
		mdMsg: `
# Invalid styles!

Style keys are ` + "`arg`" + `, ` + "`option`" + ` and ` + "`title`" + `. A value is a dot-separated
list of style names, a list of such strings, or null.

## Style names:
- Modifiers: reset, bold, dim, italic, underline, inverse, strikethrough
- Colors: black, red, green, yellow, blue, magenta, cyan, white, gray and
  their ` + "`Bright`" + ` variants
- Backgrounds: the color names prefixed with ` + "`bg`" + `, e.g. ` + "`bgBlue`" + `

~~~
$ helpout render help.yaml --style arg=cyan.bold --style title=null
~~~`,
	}

	watchFailedIssue = &Issue{
		id: WatchFailedId,
		mdMsg: `
# Failed to watch the schema file!

The file watcher could not be started.

## Things you can try:
- Check that the directory containing the file still exists
- On Linux, raise the inotify watch limit:
~~~
$ sudo sysctl fs.inotify.max_user_watches=524288
~~~`,
	}

	issues = map[Id]*Issue{
		schemaNotFoundIssue.Id():     schemaNotFoundIssue,
		unknownFormatIssue.Id():      unknownFormatIssue,
		schemaParseErrorIssue.Id():   schemaParseErrorIssue,
		schemaInvalidIssue.Id():      schemaInvalidIssue,
		usageContradictionIssue.Id(): usageContradictionIssue,
		invalidStylesIssue.Id():      invalidStylesIssue,
		watchFailedIssue.Id():        watchFailedIssue,
	}
)

// Get returns the issue with the given id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
