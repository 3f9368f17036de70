package jgrasp

import (
	"testing"

	"github.com/pkg/errors"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		path     string
		beta     bool
		expected string
	}{
		{"jgrasp206_17.zip", false, "2.0.6_17"},
		{"jgrasp206.zip", false, "2.0.6"},
		{"jgrasp207b2.zip", true, "2.0.7 Beta 2"},
		{"jgrasp23017_2.zip", false, "2.3.017_2"},
		{"jgrasp23017b5.zip", true, "2.3.017 Beta 5"},
		{"jgrasp23017b.zip", true, "2.3.017 Beta"},
		{"jgrasp206_17.zip", true, "2.0.6_17 Beta"},
		{"jgrasp23017b5.zip", false, "2.3.017"},
		{"windows/jgrasp206_17.exe", false, "2.0.6_17"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := ParseVersion(tt.path, tt.beta)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if got != tt.expected {
				t.Errorf("ParseVersion(%q, %v): expected %q, got %q", tt.path, tt.beta, tt.expected, got)
			}
		})
	}
}

func TestParseVersionUnrecognized(t *testing.T) {
	for _, path := range []string{"", "setup.exe", "jgrasp.zip", "jgrasp2.zip"} {
		t.Run(path, func(t *testing.T) {
			if _, err := ParseVersion(path, false); !errors.Is(err, ErrUnrecognizedFilename) {
				t.Errorf("expected ErrUnrecognizedFilename, got %v", err)
			}
		})
	}
}
