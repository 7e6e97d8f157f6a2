package execshell

import "fmt"

const (
	commandProbeTemplateConstant = "command -v %s"
)

// ShellCommand describes a single command line handed verbatim to the shell.
type ShellCommand struct {
	CommandLine string
	Details     CommandDetails
}

// CommandDetails carries optional execution settings for a shell command.
type CommandDetails struct {
	WorkingDirectory string
}

// ExecutionResult captures the raw observable results of running a command.
type ExecutionResult struct {
	StandardOutput []byte
	StandardError  []byte
	ExitCode       int
}

// ExecutionStatus classifies the terminal state of a completed command.
type ExecutionStatus int

const (
	// ExecutionStatusSucceeded indicates the command exited with status zero.
	ExecutionStatusSucceeded ExecutionStatus = iota
	// ExecutionStatusFailed indicates the command exited with a non-zero status.
	ExecutionStatusFailed
)

// CommandResult carries the decoded output of a completed command.
//
// Text holds standard output content when Status is ExecutionStatusSucceeded
// and standard error content when Status is ExecutionStatusFailed.
type CommandResult struct {
	Text     string
	ExitCode int
	Status   ExecutionStatus
}

// commandAvailabilityProbe builds the shell command asking whether the named
// command resolves on the PATH.
func commandAvailabilityProbe(commandName string) ShellCommand {
	return ShellCommand{CommandLine: fmt.Sprintf(commandProbeTemplateConstant, commandName)}
}
