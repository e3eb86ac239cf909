// SPDX-License-Identifier: MPL-2.0

// Package benchmark measures the hot paths of help rendering:
//   - schema document decoding in every supported format
//   - usage resolution for large conflict clusters
//   - column allocation and usage wrapping across widths
//   - end-to-end rendering
//
// Run with:
//
//	go test -bench=. -benchmem ./internal/benchmark
package benchmark
