// Package mkvmerge wraps the MKVToolNix mkvmerge binary.
//
// Key types:
//   - Client: runs identification probes and remux jobs
//   - Identification: decoded `mkvmerge -J` output
//   - MuxRequest: input/output paths plus per-track flags and order
//   - ExitError: a failed invocation with its truncated diagnostic
//
// Remux output is written to a hidden temporary file beside the destination
// and renamed into place only after mkvmerge succeeds, so a destination path
// never holds a half-written file.
package mkvmerge
