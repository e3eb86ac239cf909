// SPDX-License-Identifier: MPL-2.0

// Package watch re-runs a callback when schema files change.
//
// A Watcher observes the directories holding the watched files rather than
// the files themselves, so editors that save by writing a temporary file and
// renaming it over the original are still noticed. Events arriving within
// the debounce window are coalesced into a single callback.
package watch
