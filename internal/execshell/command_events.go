package execshell

import "go.uber.org/zap"

const (
	logFieldCommandLineConstant      = "command_line"
	logFieldWorkingDirectoryConstant = "working_directory"
	logFieldExitCodeConstant         = "exit_code"
)

// CommandEventObserver receives lifecycle notifications for shell command execution.
type CommandEventObserver interface {
	// CommandStarted notifies observers that command execution is beginning.
	CommandStarted(command ShellCommand)
	// CommandCompleted notifies observers that command execution finished and supplies the raw result.
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed reports failures that prevented a usable execution result.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// loggingCommandEventObserver emits structured log entries for command events.
type loggingCommandEventObserver struct {
	logger    *zap.Logger
	formatter CommandMessageFormatter
}

func newLoggingCommandEventObserver(logger *zap.Logger) *loggingCommandEventObserver {
	return &loggingCommandEventObserver{logger: logger}
}

// CommandStarted implements CommandEventObserver for the logging observer.
func (observer *loggingCommandEventObserver) CommandStarted(command ShellCommand) {
	observer.logger.Debug(
		observer.formatter.BuildStartedMessage(command),
		zap.String(logFieldCommandLineConstant, command.CommandLine),
		zap.String(logFieldWorkingDirectoryConstant, command.Details.WorkingDirectory),
	)
}

// CommandCompleted implements CommandEventObserver for the logging observer.
func (observer *loggingCommandEventObserver) CommandCompleted(command ShellCommand, result ExecutionResult) {
	if result.ExitCode == 0 {
		observer.logger.Debug(
			observer.formatter.BuildSuccessMessage(command),
			zap.String(logFieldCommandLineConstant, command.CommandLine),
		)
		return
	}

	observer.logger.Warn(
		observer.formatter.BuildFailureMessage(command, result),
		zap.String(logFieldCommandLineConstant, command.CommandLine),
		zap.Int(logFieldExitCodeConstant, result.ExitCode),
	)
}

// CommandExecutionFailed implements CommandEventObserver for the logging observer.
func (observer *loggingCommandEventObserver) CommandExecutionFailed(command ShellCommand, failure error) {
	observer.logger.Error(
		observer.formatter.BuildExecutionFailureMessage(command, failure),
		zap.String(logFieldCommandLineConstant, command.CommandLine),
		zap.Error(failure),
	)
}
