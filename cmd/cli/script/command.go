// Package script assembles the Cobra commands that run shell command lines
// with the propagating and silent failure policies, plus the command
// availability check.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/shx/internal/execshell"
	"github.com/temirov/shx/internal/utils"
)

const (
	runCommandUseConstant                = "run <command line>"
	runCommandShortDescriptionConstant   = "Run a shell command line and print its standard output"
	runCommandLongDescriptionConstant    = "run hands the command line to sh -c, prints the captured standard output on success, and fails when the command exits with a non-zero status."
	checkCommandUseConstant              = "check <command line>"
	checkCommandShortDescriptionConstant = "Run a shell command line and report the outcome as a boolean"
	checkCommandLongDescriptionConstant  = "check hands the command line to sh -c and prints true or false instead of failing; the command's standard error is surfaced only when requested."
	existsCommandUseConstant             = "exists <command-name>"
	existsCommandShortDescriptionConstant = "Report whether the shell can resolve a command name"
	existsCommandLongDescriptionConstant  = "exists asks the shell to resolve the named command via command -v and prints true or false."
	missingCommandLineMessageConstant    = "expected exactly one command line argument"
	missingCommandNameMessageConstant    = "expected exactly one command name argument"
	flagDirectoryNameConstant            = "dir"
	flagDirectoryDescriptionConstant     = "Working directory for the spawned shell"
	flagLogStderrNameConstant            = "log-stderr"
	flagLogStderrDescriptionConstant     = "Write the command's standard error to the diagnostic stream on failure"
	booleanOutputTemplateConstant        = "%t\n"
	runCommandErrorTemplateConstant      = "script execution failed: %w"
)

var (
	errMissingCommandLine = errors.New(missingCommandLineMessageConstant)
	errMissingCommandName = errors.New(missingCommandNameMessageConstant)
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the active script command configuration.
type ConfigurationProvider func() CommandConfiguration

// ScriptExecutor defines the execution operations required by the script commands.
type ScriptExecutor interface {
	RunCommand(executionContext context.Context, command execshell.ShellCommand) (string, error)
	RunCommandSilent(executionContext context.Context, command execshell.ShellCommand, logCommandStderr bool) bool
	CommandExists(executionContext context.Context, commandName string) bool
}

// RunCommandBuilder assembles the Cobra command for propagating execution.
type RunCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Executor              ScriptExecutor
	DiagnosticWriter      io.Writer
}

// Build constructs the run command.
func (builder *RunCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   runCommandUseConstant,
		Short: runCommandShortDescriptionConstant,
		Long:  runCommandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(flagDirectoryNameConstant, "", flagDirectoryDescriptionConstant)

	return command, nil
}

func (builder *RunCommandBuilder) run(command *cobra.Command, arguments []string) error {
	shellCommand, commandError := shellCommandFromArguments(command, arguments, resolveConfiguration(builder.ConfigurationProvider))
	if commandError != nil {
		return commandError
	}

	executor, executorError := resolveExecutor(resolveLogger(builder.LoggerProvider), builder.Executor, builder.DiagnosticWriter)
	if executorError != nil {
		return executorError
	}

	standardOutputText, runError := executor.RunCommand(command.Context(), shellCommand)
	if runError != nil {
		return fmt.Errorf(runCommandErrorTemplateConstant, runError)
	}

	fmt.Fprint(command.OutOrStdout(), standardOutputText)
	return nil
}

// CheckCommandBuilder assembles the Cobra command for silent execution.
type CheckCommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	Executor              ScriptExecutor
	DiagnosticWriter      io.Writer
}

// Build constructs the check command.
func (builder *CheckCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   checkCommandUseConstant,
		Short: checkCommandShortDescriptionConstant,
		Long:  checkCommandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(flagDirectoryNameConstant, "", flagDirectoryDescriptionConstant)
	command.Flags().Bool(flagLogStderrNameConstant, DefaultCommandConfiguration().LogCommandStderr, flagLogStderrDescriptionConstant)

	return command, nil
}

func (builder *CheckCommandBuilder) run(command *cobra.Command, arguments []string) error {
	configuration := resolveConfiguration(builder.ConfigurationProvider)

	shellCommand, commandError := shellCommandFromArguments(command, arguments, configuration)
	if commandError != nil {
		return commandError
	}

	logCommandStderr := configuration.LogCommandStderr
	if command.Flags().Changed(flagLogStderrNameConstant) {
		logCommandStderr, _ = command.Flags().GetBool(flagLogStderrNameConstant)
	}

	executor, executorError := resolveExecutor(resolveLogger(builder.LoggerProvider), builder.Executor, builder.DiagnosticWriter)
	if executorError != nil {
		return executorError
	}

	outcome := executor.RunCommandSilent(command.Context(), shellCommand, logCommandStderr)
	fmt.Fprintf(command.OutOrStdout(), booleanOutputTemplateConstant, outcome)
	return nil
}

// ExistsCommandBuilder assembles the Cobra command for the command availability check.
type ExistsCommandBuilder struct {
	LoggerProvider   LoggerProvider
	Executor         ScriptExecutor
	DiagnosticWriter io.Writer
}

// Build constructs the exists command.
func (builder *ExistsCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   existsCommandUseConstant,
		Short: existsCommandShortDescriptionConstant,
		Long:  existsCommandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *ExistsCommandBuilder) run(command *cobra.Command, arguments []string) error {
	commandName := strings.TrimSpace(arguments[0])
	if len(commandName) == 0 {
		return errMissingCommandName
	}

	executor, executorError := resolveExecutor(resolveLogger(builder.LoggerProvider), builder.Executor, builder.DiagnosticWriter)
	if executorError != nil {
		return executorError
	}

	commandAvailable := executor.CommandExists(command.Context(), commandName)
	fmt.Fprintf(command.OutOrStdout(), booleanOutputTemplateConstant, commandAvailable)
	return nil
}

func shellCommandFromArguments(command *cobra.Command, arguments []string, configuration CommandConfiguration) (execshell.ShellCommand, error) {
	commandLine := strings.TrimSpace(arguments[0])
	if len(commandLine) == 0 {
		return execshell.ShellCommand{}, errMissingCommandLine
	}

	directoryValue, _ := command.Flags().GetString(flagDirectoryNameConstant)
	workingDirectory := strings.TrimSpace(directoryValue)
	if len(workingDirectory) == 0 {
		workingDirectory = configuration.WorkingDirectory
	}

	shellCommand := execshell.ShellCommand{
		CommandLine: commandLine,
		Details:     execshell.CommandDetails{WorkingDirectory: workingDirectory},
	}

	return shellCommand, nil
}

func resolveConfiguration(configurationProvider ConfigurationProvider) CommandConfiguration {
	if configurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return configurationProvider().sanitize()
}

func resolveLogger(loggerProvider LoggerProvider) *zap.Logger {
	if loggerProvider == nil {
		return zap.NewNop()
	}

	logger := loggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func resolveExecutor(logger *zap.Logger, configuredExecutor ScriptExecutor, diagnosticWriter io.Writer) (ScriptExecutor, error) {
	if configuredExecutor != nil {
		return configuredExecutor, nil
	}

	if diagnosticWriter == nil {
		diagnosticWriter = os.Stderr
	}

	shellExecutor, creationError := execshell.NewShellExecutorWithDiagnostics(
		logger,
		execshell.NewOSShellRunner(),
		utils.NewFlushingWriter(diagnosticWriter),
	)
	if creationError != nil {
		return nil, creationError
	}

	return shellExecutor, nil
}
