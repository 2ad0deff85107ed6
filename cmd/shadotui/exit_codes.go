package main

import "errors"

const (
	exitOK      = 0
	exitRuntime = 1
	exitUsage   = 2
)

type exitCoder interface {
	ExitCode() int
}

type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e exitError) Unwrap() error {
	return e.err
}

func (e exitError) ExitCode() int {
	if e.code == 0 {
		return exitRuntime
	}
	return e.code
}

// usageError marks err as a bad invocation or configuration.
func usageError(err error) error {
	if err == nil {
		return nil
	}
	return exitError{code: exitUsage, err: err}
}

func exitCodeForError(err error) int {
	if err == nil {
		return exitOK
	}
	var coded exitCoder
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return exitRuntime
}
