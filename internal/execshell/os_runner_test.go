package execshell_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/shx/internal/execshell"
)

const (
	testEchoCommandLineConstant            = "echo hello"
	testEchoExpectedOutputConstant         = "hello\n"
	testMissingCommandLineConstant         = "invalid-command-xxxxxxxxxxxx"
	testMissingFileMoveCommandLineConstant = "mv file-does-not-exist.txt /location/does/not/exist"
	testStderrCommandLineConstant          = "echo oops 1>&2; exit 3"
	testInvalidOutputCommandLineConstant   = "printf '\\377'"
	testInvalidStderrCommandLineConstant   = "printf '\\377' 1>&2; exit 1"
	testWorkingDirectoryCommandConstant    = "pwd"
	testMissingExecutableNameConstant      = "invalid-command-xxxxxxxxxxxx"
	testAvailableExecutableNameConstant    = "echo"
)

func newOSShellExecutor(testInstance *testing.T, diagnosticWriter *bytes.Buffer) *execshell.ShellExecutor {
	testInstance.Helper()

	shellExecutor, creationError := execshell.NewShellExecutorWithDiagnostics(zap.NewNop(), execshell.NewOSShellRunner(), diagnosticWriter)
	require.NoError(testInstance, creationError)
	return shellExecutor
}

func TestOSShellRunnerCapturesStandardOutput(testInstance *testing.T) {
	shellRunner := execshell.NewOSShellRunner()

	executionResult, runError := shellRunner.Run(context.Background(), execshell.ShellCommand{CommandLine: testEchoCommandLineConstant})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, 0, executionResult.ExitCode)
	require.Equal(testInstance, testEchoExpectedOutputConstant, string(executionResult.StandardOutput))
	require.Empty(testInstance, executionResult.StandardError)
}

func TestOSShellRunnerReportsNonZeroExitThroughResult(testInstance *testing.T) {
	shellRunner := execshell.NewOSShellRunner()

	executionResult, runError := shellRunner.Run(context.Background(), execshell.ShellCommand{CommandLine: testStderrCommandLineConstant})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, 3, executionResult.ExitCode)
	require.Contains(testInstance, string(executionResult.StandardError), "oops")
}

func TestOSShellRunnerHonorsWorkingDirectory(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	shellRunner := execshell.NewOSShellRunner()

	shellCommand := execshell.ShellCommand{
		CommandLine: testWorkingDirectoryCommandConstant,
		Details:     execshell.CommandDetails{WorkingDirectory: temporaryDirectory},
	}

	executionResult, runError := shellRunner.Run(context.Background(), shellCommand)
	require.NoError(testInstance, runError)
	require.Equal(testInstance, 0, executionResult.ExitCode)
	require.Contains(testInstance, string(executionResult.StandardOutput), temporaryDirectory)
}

func TestShellExecutorRunAgainstRealShell(testInstance *testing.T) {
	var diagnosticBuffer bytes.Buffer
	shellExecutor := newOSShellExecutor(testInstance, &diagnosticBuffer)

	standardOutputText, runError := shellExecutor.Run(context.Background(), testEchoCommandLineConstant)
	require.NoError(testInstance, runError)
	require.Equal(testInstance, testEchoExpectedOutputConstant, standardOutputText)
}

func TestShellExecutorRunReportsMissingCommandAsCommandFailure(testInstance *testing.T) {
	var diagnosticBuffer bytes.Buffer
	shellExecutor := newOSShellExecutor(testInstance, &diagnosticBuffer)

	standardOutputText, runError := shellExecutor.Run(context.Background(), testMissingCommandLineConstant)
	require.Empty(testInstance, standardOutputText)
	require.Error(testInstance, runError)

	var commandFailure execshell.CommandFailedError
	require.ErrorAs(testInstance, runError, &commandFailure)
	require.Contains(testInstance, commandFailure.StandardError, "not found")
	require.NotZero(testInstance, commandFailure.ExitCode)
}

func TestShellExecutorRunReportsFailedMoveAsCommandFailure(testInstance *testing.T) {
	var diagnosticBuffer bytes.Buffer
	shellExecutor := newOSShellExecutor(testInstance, &diagnosticBuffer)

	_, runError := shellExecutor.Run(context.Background(), testMissingFileMoveCommandLineConstant)
	require.Error(testInstance, runError)

	var commandFailure execshell.CommandFailedError
	require.ErrorAs(testInstance, runError, &commandFailure)
}

func TestShellExecutorClassifiesInvalidOutputIndependentOfExitStatus(testInstance *testing.T) {
	testCases := []struct {
		name           string
		commandLine    string
		expectedStream execshell.OutputStream
	}{
		{
			name:           "invalid_stdout_zero_exit",
			commandLine:    testInvalidOutputCommandLineConstant,
			expectedStream: execshell.OutputStreamStandardOutput,
		},
		{
			name:           "invalid_stderr_nonzero_exit",
			commandLine:    testInvalidStderrCommandLineConstant,
			expectedStream: execshell.OutputStreamStandardError,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var diagnosticBuffer bytes.Buffer
			shellExecutor := newOSShellExecutor(testInstance, &diagnosticBuffer)

			_, runError := shellExecutor.Run(context.Background(), testCase.commandLine)
			require.Error(testInstance, runError)

			var invalidOutput execshell.InvalidOutputError
			require.ErrorAs(testInstance, runError, &invalidOutput)
			require.Equal(testInstance, testCase.expectedStream, invalidOutput.Stream)
		})
	}
}

func TestShellExecutorRunSilentAgainstRealShell(testInstance *testing.T) {
	testCases := []struct {
		name                 string
		commandLine          string
		logCommandStderr     bool
		expectedOutcome      bool
		expectDiagnosticText bool
	}{
		{
			name:             "success",
			commandLine:      testEchoCommandLineConstant,
			logCommandStderr: false,
			expectedOutcome:  true,
		},
		{
			name:             "missing_command_logging_disabled",
			commandLine:      testMissingCommandLineConstant,
			logCommandStderr: false,
			expectedOutcome:  false,
		},
		{
			name:                 "missing_command_logging_enabled",
			commandLine:          testMissingCommandLineConstant,
			logCommandStderr:     true,
			expectedOutcome:      false,
			expectDiagnosticText: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var diagnosticBuffer bytes.Buffer
			shellExecutor := newOSShellExecutor(testInstance, &diagnosticBuffer)

			outcome := shellExecutor.RunSilent(context.Background(), testCase.commandLine, testCase.logCommandStderr)
			require.Equal(testInstance, testCase.expectedOutcome, outcome)

			if testCase.expectDiagnosticText {
				require.Contains(testInstance, diagnosticBuffer.String(), "not found")
			} else {
				require.Empty(testInstance, diagnosticBuffer.String())
			}
		})
	}
}

func TestShellExecutorCommandExistsAgainstRealShell(testInstance *testing.T) {
	testCases := []struct {
		name            string
		commandName     string
		expectedOutcome bool
	}{
		{
			name:            "available_command",
			commandName:     testAvailableExecutableNameConstant,
			expectedOutcome: true,
		},
		{
			name:            "missing_command",
			commandName:     testMissingExecutableNameConstant,
			expectedOutcome: false,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var diagnosticBuffer bytes.Buffer
			shellExecutor := newOSShellExecutor(testInstance, &diagnosticBuffer)

			commandAvailable := shellExecutor.CommandExists(context.Background(), testCase.commandName)
			require.Equal(testInstance, testCase.expectedOutcome, commandAvailable)
			require.Empty(testInstance, diagnosticBuffer.String())
		})
	}
}
