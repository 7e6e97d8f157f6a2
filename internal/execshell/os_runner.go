package execshell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

const (
	shellExecutableNameConstant = "sh"
	shellCommandFlagConstant    = "-c"
)

// OSShellRunner executes shell command lines using the operating system facilities.
type OSShellRunner struct{}

// NewOSShellRunner constructs a runner backed by os/exec.
func NewOSShellRunner() *OSShellRunner {
	return &OSShellRunner{}
}

// Run hands the command line to sh -c, blocks until the process terminates,
// and captures both output streams in full. A non-zero exit status is reported
// through the result; only spawn and await problems surface as errors.
func (runner *OSShellRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	executable := exec.CommandContext(executionContext, shellExecutableNameConstant, shellCommandFlagConstant, command.CommandLine)

	if len(command.Details.WorkingDirectory) > 0 {
		executable.Dir = command.Details.WorkingDirectory
	}

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	executable.Stdout = &standardOutputBuffer
	executable.Stderr = &standardErrorBuffer

	runError := executable.Run()
	if runError != nil {
		exitError := &exec.ExitError{}
		if errors.As(runError, &exitError) {
			return ExecutionResult{
				StandardOutput: standardOutputBuffer.Bytes(),
				StandardError:  standardErrorBuffer.Bytes(),
				ExitCode:       exitError.ExitCode(),
			}, nil
		}
		return ExecutionResult{}, runError
	}

	return ExecutionResult{
		StandardOutput: standardOutputBuffer.Bytes(),
		StandardError:  standardErrorBuffer.Bytes(),
		ExitCode:       0,
	}, nil
}
