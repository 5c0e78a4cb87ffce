package main

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"

	"mkvreorder/internal/testsupport"
)

func TestInspectPrintsDecision(t *testing.T) {
	env := setupCLITestEnv(t)
	file := filepath.Join(env.cfg.Paths.SourceDir, "Show", "ep01.mkv")
	testsupport.WriteMatroskaHeader(t, file)

	out, _, err := runCLI(t, []string{"inspect", file}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Japanese")
	requireContains(t, out, "Full Subtitles")
	requireContains(t, out, "primary")
	requireContains(t, out, "demoted")
	requireContains(t, out, "Track order: 0:0,0:2,0:1,0:4,0:3")
	requireContains(t, out, "--track-order 0:0,0:2,0:1,0:4,0:3")
	requireContains(t, out, filepath.Join(env.cfg.Paths.DestDir, "Show", "ep01.mkv"))
}

func TestInspectJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	file := filepath.Join(env.cfg.Paths.SourceDir, "ep01.mkv")
	testsupport.WriteMatroskaHeader(t, file)

	out, _, err := runCLI(t, []string{"inspect", "--json", file}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	var got inspectOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !got.Eligible || got.Plan == nil {
		t.Fatalf("expected eligible plan: %+v", got)
	}
	if want := []int{0, 2, 1, 4, 3}; !reflect.DeepEqual(got.Plan.Order, want) {
		t.Fatalf("order = %v", got.Plan.Order)
	}
	if got.Decision.PrimaryAudio != 2 || got.Decision.PrimarySubtitle != 4 {
		t.Fatalf("decision = %+v", got.Decision)
	}
	if got.Command[0] != env.mkvmerge {
		t.Fatalf("command = %v", got.Command)
	}
}

func TestInspectDestinationOutsideSource(t *testing.T) {
	env := setupCLITestEnv(t)
	got := inspectDestination(env.cfg, "/elsewhere/movie.mkv")
	if want := filepath.Join(env.cfg.Paths.DestDir, "movie.mkv"); got != want {
		t.Fatalf("destination = %s, want %s", got, want)
	}
}

func TestShellJoin(t *testing.T) {
	got := shellJoin([]string{"mkvmerge", "-o", "/out/My Show.mkv", "it's"})
	if want := `mkvmerge -o '/out/My Show.mkv' 'it'\''s'`; got != want {
		t.Fatalf("shellJoin = %s, want %s", got, want)
	}
}
