package execshell

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	diagnosticLineTemplateConstant = "%s\n"
)

// ShellRunner abstracts process execution so tests can substitute recorded results.
type ShellRunner interface {
	Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error)
}

// ShellExecutor coordinates shell command execution, outcome classification,
// and structured logging. Each invocation owns its process handle and buffers
// exclusively, so concurrent calls are safe.
type ShellExecutor struct {
	logger           *zap.Logger
	shellRunner      ShellRunner
	eventObserver    CommandEventObserver
	diagnosticWriter io.Writer
}

// NewShellExecutor constructs a ShellExecutor writing diagnostics to the standard error stream.
func NewShellExecutor(logger *zap.Logger, shellRunner ShellRunner) (*ShellExecutor, error) {
	return NewShellExecutorWithDiagnostics(logger, shellRunner, os.Stderr)
}

// NewShellExecutorWithDiagnostics constructs a ShellExecutor with a custom diagnostic writer.
func NewShellExecutorWithDiagnostics(logger *zap.Logger, shellRunner ShellRunner, diagnosticWriter io.Writer) (*ShellExecutor, error) {
	if logger == nil {
		return nil, ErrLoggerNotConfigured
	}
	if shellRunner == nil {
		return nil, ErrShellRunnerNotConfigured
	}
	if diagnosticWriter == nil {
		diagnosticWriter = os.Stderr
	}

	shellExecutor := &ShellExecutor{
		logger:           logger,
		shellRunner:      shellRunner,
		eventObserver:    newLoggingCommandEventObserver(logger),
		diagnosticWriter: diagnosticWriter,
	}

	return shellExecutor, nil
}

// Execute runs the supplied command and classifies its outcome.
//
// A command that completes with a non-zero exit status is a successful
// invocation from the executor's perspective: the decoded standard error
// content is returned as an ordinary CommandResult with
// ExecutionStatusFailed. Only spawn, await, and output decoding problems
// surface as errors.
func (executor *ShellExecutor) Execute(executionContext context.Context, command ShellCommand) (CommandResult, error) {
	executor.eventObserver.CommandStarted(command)

	executionResult, runError := executor.shellRunner.Run(executionContext, command)
	if runError != nil {
		executionFailure := CommandExecutionError{Command: command, Cause: runError}
		executor.eventObserver.CommandExecutionFailed(command, executionFailure)
		return CommandResult{}, executionFailure
	}

	if executionResult.ExitCode != 0 {
		standardErrorText, decodeError := decodeCapturedOutput(command, OutputStreamStandardError, executionResult.StandardError)
		if decodeError != nil {
			executor.eventObserver.CommandExecutionFailed(command, decodeError)
			return CommandResult{}, decodeError
		}

		executor.eventObserver.CommandCompleted(command, executionResult)
		return CommandResult{Text: standardErrorText, ExitCode: executionResult.ExitCode, Status: ExecutionStatusFailed}, nil
	}

	standardOutputText, decodeError := decodeCapturedOutput(command, OutputStreamStandardOutput, executionResult.StandardOutput)
	if decodeError != nil {
		executor.eventObserver.CommandExecutionFailed(command, decodeError)
		return CommandResult{}, decodeError
	}

	executor.eventObserver.CommandCompleted(command, executionResult)
	return CommandResult{Text: standardOutputText, ExitCode: executionResult.ExitCode, Status: ExecutionStatusSucceeded}, nil
}

// Run executes the command line and propagates every failure as an error.
func (executor *ShellExecutor) Run(executionContext context.Context, commandLine string) (string, error) {
	return executor.RunCommand(executionContext, ShellCommand{CommandLine: commandLine})
}

// RunCommand behaves like Run for a fully described ShellCommand. A command
// that exits non-zero is upgraded into a CommandFailedError carrying the
// captured standard error text.
func (executor *ShellExecutor) RunCommand(executionContext context.Context, command ShellCommand) (string, error) {
	commandResult, executionError := executor.Execute(executionContext, command)
	if executionError != nil {
		return "", executionError
	}

	if commandResult.Status == ExecutionStatusFailed {
		return "", CommandFailedError{
			Command:       command,
			StandardError: commandResult.Text,
			ExitCode:      commandResult.ExitCode,
		}
	}

	return commandResult.Text, nil
}

// RunSilent reduces the command outcome to a boolean and never returns an error.
//
// Spawn, await, and decoding failures are always written to the diagnostic
// writer. The command's own standard error content is written only when
// logCommandStderr is set.
func (executor *ShellExecutor) RunSilent(executionContext context.Context, commandLine string, logCommandStderr bool) bool {
	return executor.RunCommandSilent(executionContext, ShellCommand{CommandLine: commandLine}, logCommandStderr)
}

// RunCommandSilent behaves like RunSilent for a fully described ShellCommand.
func (executor *ShellExecutor) RunCommandSilent(executionContext context.Context, command ShellCommand, logCommandStderr bool) bool {
	commandResult, executionError := executor.Execute(executionContext, command)
	if executionError != nil {
		executor.writeDiagnostic(executionError.Error())
		return false
	}

	if commandResult.Status == ExecutionStatusFailed {
		if logCommandStderr {
			executor.writeDiagnostic(commandResult.Text)
		}
		return false
	}

	return true
}

// CommandExists reports whether the shell can resolve the named command.
func (executor *ShellExecutor) CommandExists(executionContext context.Context, commandName string) bool {
	return executor.RunCommandSilent(executionContext, commandAvailabilityProbe(commandName), false)
}

func (executor *ShellExecutor) writeDiagnostic(diagnosticText string) {
	trimmedDiagnosticText := strings.TrimRight(diagnosticText, trailingNewlineCutsetConstant)
	fmt.Fprintf(executor.diagnosticWriter, diagnosticLineTemplateConstant, trimmedDiagnosticText)
}

func decodeCapturedOutput(command ShellCommand, stream OutputStream, capturedBytes []byte) (string, error) {
	if !utf8.Valid(capturedBytes) {
		return "", InvalidOutputError{Command: command, Stream: stream}
	}
	return string(capturedBytes), nil
}
