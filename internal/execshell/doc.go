// Package execshell provides structured helpers for running shell command lines.
//
// It wraps os/exec with logging via ShellExecutor, exposes OSShellRunner for
// default process execution, and defines the result and error taxonomy used to
// classify every outcome of a single blocking sh -c invocation.
package execshell
