package execshell

import (
	"errors"
	"fmt"
	"strings"
)

const (
	loggerNotConfiguredMessageConstant       = "logger not configured"
	shellRunnerNotConfiguredMessageConstant  = "shell runner not configured"
	invalidOutputMessageTemplateConstant     = "%s of %q is not valid UTF-8"
	executionFailureMessageTemplateConstant  = "unable to run %q: %v"
	commandFailedMessageTemplateConstant     = "%q failed with exit code %d"
	commandFailedWithOutputTemplateConstant  = "%s: %s"
	standardOutputStreamDescriptionConstant  = "standard output"
	standardErrorStreamDescriptionConstant   = "standard error"
	trailingNewlineCutsetConstant            = "\n"
)

var (
	// ErrLoggerNotConfigured reports that a ShellExecutor was constructed without a logger.
	ErrLoggerNotConfigured = errors.New(loggerNotConfiguredMessageConstant)
	// ErrShellRunnerNotConfigured reports that a ShellExecutor was constructed without a shell runner.
	ErrShellRunnerNotConfigured = errors.New(shellRunnerNotConfiguredMessageConstant)
)

// OutputStream identifies which captured stream a decoding failure refers to.
type OutputStream string

// Captured stream identifiers.
const (
	OutputStreamStandardOutput OutputStream = OutputStream(standardOutputStreamDescriptionConstant)
	OutputStreamStandardError  OutputStream = OutputStream(standardErrorStreamDescriptionConstant)
)

// InvalidOutputError reports captured bytes that are not valid UTF-8 text.
type InvalidOutputError struct {
	Command ShellCommand
	Stream  OutputStream
}

// Error describes the stream that failed to decode.
func (invalidOutput InvalidOutputError) Error() string {
	return fmt.Sprintf(invalidOutputMessageTemplateConstant, string(invalidOutput.Stream), invalidOutput.Command.CommandLine)
}

// CommandExecutionError reports that the shell process could not be spawned or awaited.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the originating operating system failure.
func (executionFailure CommandExecutionError) Error() string {
	return fmt.Sprintf(executionFailureMessageTemplateConstant, executionFailure.Command.CommandLine, executionFailure.Cause)
}

// Unwrap exposes the underlying operating system error.
func (executionFailure CommandExecutionError) Unwrap() error {
	return executionFailure.Cause
}

// CommandFailedError reports a command that ran to completion with a non-zero
// exit status. It always carries the decoded standard error content captured
// from the command, never standard output content.
type CommandFailedError struct {
	Command       ShellCommand
	StandardError string
	ExitCode      int
}

// Error combines the exit status with the captured standard error text.
func (commandFailure CommandFailedError) Error() string {
	failureMessage := fmt.Sprintf(commandFailedMessageTemplateConstant, commandFailure.Command.CommandLine, commandFailure.ExitCode)
	trimmedStandardError := strings.TrimSpace(commandFailure.StandardError)
	if len(trimmedStandardError) == 0 {
		return failureMessage
	}
	return fmt.Sprintf(commandFailedWithOutputTemplateConstant, failureMessage, trimmedStandardError)
}
