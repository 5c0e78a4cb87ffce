package testsupport

import (
	"path/filepath"
	"testing"
)

// StandardIdentification is mkvmerge -J output for a file with video, one
// English and one Japanese audio track, and signs plus full English subtitles.
const StandardIdentification = `{
  "container": {"type": "Matroska", "recognized": true, "supported": true},
  "errors": [],
  "warnings": [],
  "tracks": [
    {"id": 0, "type": "video", "codec": "HEVC", "properties": {"language": "und"}},
    {"id": 1, "type": "audio", "codec": "AAC", "properties": {"language": "eng", "track_name": "English"}},
    {"id": 2, "type": "audio", "codec": "FLAC", "properties": {"language": "jpn", "track_name": "Japanese"}},
    {"id": 3, "type": "subtitles", "codec": "SubStationAlpha", "properties": {"language": "eng", "track_name": "Signs & Songs"}},
    {"id": 4, "type": "subtitles", "codec": "SubStationAlpha", "properties": {"language": "eng", "track_name": "Full Subtitles"}}
  ]
}`

// StubMKVMerge writes a fake mkvmerge into a fresh directory and returns its
// path. "--version" prints a version line, "-J FILE" prints identification; otherwise the argument after -o is
// created and every invocation is appended to calls.log next to the script.
func StubMKVMerge(t testing.TB, identification string) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "bin")
	WriteFile(t, filepath.Join(dir, "identify.json"), []byte(identification))
	script := `#!/bin/sh
dir=$(dirname "$0")
echo "$@" >> "$dir/calls.log"
if [ "$1" = "--version" ]; then
  echo "mkvmerge v80.0 ('Roundabout') 64-bit"
  exit 0
fi
if [ "$1" = "-J" ]; then
  cat "$dir/identify.json"
  exit 0
fi
if [ "$1" = "-o" ]; then
  printf 'muxed' > "$2"
  exit 0
fi
echo "Error: unexpected arguments" >&2
exit 2
`
	path := filepath.Join(dir, "mkvmerge")
	WriteScript(t, path, script)
	return path
}

// StubCalls returns the path of the invocation log written by StubMKVMerge.
func StubCalls(binary string) string {
	return filepath.Join(filepath.Dir(binary), "calls.log")
}
