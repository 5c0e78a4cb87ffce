package services_test

import (
	"errors"
	"strings"
	"testing"

	"mkvreorder/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrMux, "mkvmerge", "mux", "exit status 2", base)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, services.ErrMux) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"mkvmerge", "mux", "exit status 2"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapDefaultsMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("expected fallback detail, got %q", err.Error())
	}
}

func TestIsSkip(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"already processed", services.Wrap(services.ErrAlreadyProcessed, "batch", "", "exists", nil), true},
		{"ineligible", services.Wrap(services.ErrIneligible, "tracks", "", "no jpn audio", nil), true},
		{"probe", services.Wrap(services.ErrProbe, "mkvmerge", "identify", "", errors.New("exit 2")), true},
		{"mux", services.Wrap(services.ErrMux, "mkvmerge", "mux", "", nil), false},
		{"plain", errors.New("disk full"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.IsSkip(tt.err); got != tt.want {
				t.Fatalf("IsSkip(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
