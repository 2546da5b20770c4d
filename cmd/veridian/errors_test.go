package main

import (
	"errors"
	"testing"
)

func TestCommandError(t *testing.T) {
	cause := errors.New("schema not found")
	err := commandFailed("validate", cause)

	want := "veridian validate: schema not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestConfigError(t *testing.T) {
	tests := []struct {
		name    string
		section string
		message string
		want    string
	}{
		{
			name:    "with section",
			section: "logging",
			message: "unknown level",
			want:    "configuration error in logging: unknown level",
		},
		{
			name:    "without section",
			section: "",
			message: "file unreadable",
			want:    "configuration error: file unreadable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := badConfig(tt.section, tt.message)
			if err.Error() != tt.want {
				t.Errorf("Error() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestShutdownSignals(t *testing.T) {
	sigChan := shutdownSignals()
	if sigChan == nil {
		t.Fatal("shutdownSignals() = nil")
	}

	select {
	case sig := <-sigChan:
		t.Errorf("unexpected signal %v before any was sent", sig)
	default:
	}
}
