// Package fileutil holds filesystem helpers for the batch pipeline: existence
// checks, idempotent directory creation, temporary sibling paths for atomic
// output, and container signature sniffing.
package fileutil
