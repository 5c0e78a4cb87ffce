// Package textutil provides small text helpers shared by the external tool
// wrappers and the CLI renderers.
//
// The primary use cases are:
//   - Trimming external tool diagnostics to a bounded, single-line excerpt
//   - Shortening long paths for tabular output
package textutil
