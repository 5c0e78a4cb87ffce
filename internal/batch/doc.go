// Package batch runs the per-file reorder pipeline over a source tree.
//
// Discover walks the source directory for matching files and maps each one to
// its mirrored destination path. A Pool then processes the jobs with a fixed
// number of workers. Every job yields exactly one Result:
//
//   - skipped: the output already exists, the file is not Matroska, the probe
//     failed, no primary audio track was found, or the run was interrupted
//     before the job started
//   - planned: dry run; the mkvmerge arguments were computed but not executed
//   - succeeded: the remuxed file is in place
//   - failed: the destination directory could not be created or mkvmerge
//     failed
//
// No per-file outcome stops the batch. Run returns once every job has a
// result, in discovery order.
package batch
