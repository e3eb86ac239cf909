// SPDX-License-Identifier: MPL-2.0

package schema

import (
	"regexp"
	"strings"
)

var (
	repeatToken    = regexp.MustCompile(`^(?:\.{2,}|…)$`)
	repeatAtEdge   = regexp.MustCompile(`(?:^(?:\.{2,}|…)|(?:\.{2,}|…)$)`)
	repeatTrim     = regexp.MustCompile(`(?:^(?:\.{2,}|…) *| *(?:\.{2,}|…)$)`)
	optionalMarker = regexp.MustCompile(`^\[.+\]$`)
	optionalInner  = regexp.MustCompile(`^\[ *(.+?) *\]$`)
	angleInner     = regexp.MustCompile(`^< *(.+?) *>$`)
)

// SplitArgs splits an arg declaration such as "<src> [dest] ..." into one
// string per placeholder. Whitespace inside brackets does not split, and a
// standalone repeat indicator ("..." or "…") is joined to the placeholder
// before it.
func SplitArgs(s string) ([]string, error) {
	var (
		stack []byte
		args  []string
		start = 0
	)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '<', '[':
			stack = append(stack, c)
		case '>':
			stack = dropLast(stack, '<')
		case ']':
			stack = dropLast(stack, '[')
		case ' ', '\t':
			if len(stack) == 0 {
				if i > start {
					args = append(args, s[start:i])
				}
				start = i + 1
			}
		}
	}
	if len(s) > start {
		args = append(args, s[start:])
	}

	merged := args[:0]
	for _, arg := range args {
		if repeatToken.MatchString(arg) {
			if len(merged) == 0 {
				return nil, &LeadingRepeatError{Arg: s}
			}
			merged[len(merged)-1] += " " + arg
			continue
		}
		merged = append(merged, arg)
	}
	return merged, nil
}

// dropLast removes the last occurrence of open from the bracket stack.
// Unbalanced closing brackets are ignored.
func dropLast(stack []byte, open byte) []byte {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i] == open {
			return append(stack[:i], stack[i+1:]...)
		}
	}
	return stack
}

// ParseArg reads a single placeholder. "<name>" and bare words are required,
// "[name]" is optional, and a leading or trailing repeat indicator inside or
// outside the brackets marks the value as repeatable.
func ParseArg(s string) ArgSpec {
	name := strings.TrimSpace(s)
	spec := ArgSpec{}

	if repeatAtEdge.MatchString(name) {
		spec.Repeat = true
		name = repeatTrim.ReplaceAllString(name, "")
	}
	if optionalMarker.MatchString(name) {
		spec.Optional = true
		name = optionalInner.ReplaceAllString(name, "$1")
	}
	name = angleInner.ReplaceAllString(name, "$1")
	if repeatAtEdge.MatchString(name) {
		spec.Repeat = true
		name = repeatTrim.ReplaceAllString(name, "")
		name = angleInner.ReplaceAllString(name, "$1")
	}

	spec.Name = name
	return spec
}

// ParseArgs splits and parses a whole arg declaration.
func ParseArgs(s string) ([]ArgSpec, error) {
	parts, err := SplitArgs(s)
	if err != nil {
		return nil, err
	}
	specs := make([]ArgSpec, 0, len(parts))
	for _, part := range parts {
		specs = append(specs, ParseArg(part))
	}
	return specs, nil
}
