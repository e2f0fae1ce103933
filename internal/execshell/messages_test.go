package execshell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildStartedMessageForWorkTreeProbeNamesDirectory(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"rev-parse", "--is-inside-work-tree"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Analyzing repository at /workspace/repo", message)
}

func TestBuildFailureMessageForWorkTreeProbeIncludesStandardError(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"rev-parse", "--is-inside-work-tree"},
			WorkingDirectory: "/workspace/repo",
		},
	}
	result := ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository"}

	message := formatter.BuildFailureMessage(command, result)

	require.Equal(t, "/workspace/repo is not a usable Git repository: fatal: not a git repository", message)
}

func TestBuildSuccessMessageForSafeDirectoryUpdate(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments: []string{"config", "--global", "--add", "safe.directory", "/workspace/repo"},
		},
	}

	message := formatter.BuildSuccessMessage(command)

	require.Equal(t, "Trusted repository directories updated", message)
}

func TestBuildStartedMessageForUnknownCommandFallsBackToGeneric(t *testing.T) {
	formatter := CommandMessageFormatter{}
	command := ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        []string{"status", "--porcelain"},
			WorkingDirectory: "/workspace/repo",
		},
	}

	message := formatter.BuildStartedMessage(command)

	require.Equal(t, "Running git status --porcelain (in /workspace/repo)", message)
}
