// Package preflight provides readiness checks for the filesystem paths and
// external binaries mkvreorder depends on.
//
// These checks run in two contexts:
//   - The run command calls RunAll before touching any file. A failed check
//     stops the batch, since every file would fail the same way.
//   - The CLI "mkvreorder status" command displays the same results.
package preflight
