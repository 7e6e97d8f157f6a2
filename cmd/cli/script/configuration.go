package script

import "strings"

const (
	logStderrConfigKeyConstant        = "tools.script.log_stderr"
	workingDirectoryConfigKeyConstant = "tools.script.working_directory"
)

// CommandConfiguration captures configuration values shared by the script commands.
type CommandConfiguration struct {
	LogCommandStderr bool   `mapstructure:"log_stderr"`
	WorkingDirectory string `mapstructure:"working_directory"`
}

// DefaultCommandConfiguration provides default script command settings.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{}
}

// DefaultConfigurationValues lists configuration defaults keyed for the configuration loader.
func DefaultConfigurationValues() map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		logStderrConfigKeyConstant:        defaults.LogCommandStderr,
		workingDirectoryConfigKeyConstant: defaults.WorkingDirectory,
	}
}

// sanitize normalizes configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.WorkingDirectory = strings.TrimSpace(configuration.WorkingDirectory)
	return sanitized
}
