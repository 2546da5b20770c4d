package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// commandError wraps a subcommand failure so the message names the
// command that failed.
type commandError struct {
	command string
	err     error
}

func (e *commandError) Error() string {
	return fmt.Sprintf("veridian %s: %v", e.command, e.err)
}

func (e *commandError) Unwrap() error {
	return e.err
}

func commandFailed(command string, err error) error {
	return &commandError{command: command, err: err}
}

// configError reports a problem with the loaded configuration.
type configError struct {
	section string
	message string
}

func (e *configError) Error() string {
	if e.section == "" {
		return "configuration error: " + e.message
	}
	return fmt.Sprintf("configuration error in %s: %s", e.section, e.message)
}

func badConfig(section, message string) error {
	return &configError{section: section, message: message}
}

// shutdownSignals returns a channel that receives SIGINT and SIGTERM.
func shutdownSignals() <-chan os.Signal {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	return sigChan
}
