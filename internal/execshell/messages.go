package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	defaultWorkingDirectoryLabelConstant    = "current directory"
)

const (
	gitRevParseSubcommandNameConstant = "rev-parse"
	gitConfigSubcommandNameConstant   = "config"
	gitWorkTreeFlagConstant           = "--is-inside-work-tree"
	gitBareRepositoryFlagConstant     = "--is-bare-repository"
	gitSafeDirectoryKeyConstant       = "safe.directory"
)

const (
	gitWorkTreeStartTemplateConstant       = "Analyzing repository at %s"
	gitWorkTreeSuccessTemplateConstant     = "%s is inside a Git work tree"
	gitWorkTreeFailureTemplateConstant     = "%s is not a usable Git repository%s"
	gitBareRepositoryStartTemplate         = "Checking whether %s is a bare repository"
	gitBareRepositorySuccessTemplate       = "Determined bare repository status for %s"
	gitSafeDirectoryStartTemplateConstant  = "Updating trusted repository directories"
	gitSafeDirectorySuccessMessageConstant = "Trusted repository directories updated"
	gitSafeDirectoryFailureTemplate        = "Updating trusted repository directories failed%s"
)

// CommandMessageFormatter renders human readable descriptions of shell commands.
type CommandMessageFormatter struct{}

// BuildStartedMessage renders the message logged before a command runs.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage renders the message logged after a command succeeds.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage renders the message logged when a command exits non-zero.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage renders the message logged when a command cannot run.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name == CommandGit {
		if gitMessage := formatter.describeGitMessage(command, result, failure, stage); len(gitMessage) > 0 {
			return gitMessage
		}
	}
	return formatter.buildGenericMessage(command, result, failure, stage)
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return ""
	}

	switch arguments[0] {
	case gitRevParseSubcommandNameConstant:
		return formatter.describeGitRevParseMessage(command, result, stage)
	case gitConfigSubcommandNameConstant:
		return formatter.describeGitConfigMessage(command, result, failure, stage)
	}

	return ""
}

func (formatter CommandMessageFormatter) describeGitRevParseMessage(command ShellCommand, result ExecutionResult, stage messageStage) string {
	arguments := command.Details.Arguments
	workingDirectory := formatter.describeWorkingDirectory(command)

	if containsArgument(arguments, gitWorkTreeFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitWorkTreeStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitWorkTreeSuccessTemplateConstant, workingDirectory)
		default:
			return fmt.Sprintf(gitWorkTreeFailureTemplateConstant, workingDirectory, formatter.formatStandardErrorSuffix(result.StandardError))
		}
	}

	if containsArgument(arguments, gitBareRepositoryFlagConstant) {
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitBareRepositoryStartTemplate, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitBareRepositorySuccessTemplate, workingDirectory)
		}
	}

	return ""
}

func (formatter CommandMessageFormatter) describeGitConfigMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if !containsArgument(command.Details.Arguments, gitSafeDirectoryKeyConstant) {
		return ""
	}

	switch stage {
	case messageStageStart:
		return gitSafeDirectoryStartTemplateConstant
	case messageStageSuccess:
		return gitSafeDirectorySuccessMessageConstant
	case messageStageFailure:
		return fmt.Sprintf(gitSafeDirectoryFailureTemplate, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(gitSafeDirectoryFailureTemplate, formatter.formatStandardErrorSuffix(formatter.describeFailure(failure)))
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	default:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	argumentsLabel := ""
	if len(command.Details.Arguments) > 0 {
		argumentsLabel = commandArgumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, command.Name, argumentsLabel) + formatter.formatWorkingDirectorySuffix(command)
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	if len(command.Details.WorkingDirectory) == 0 {
		return ""
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, command.Details.WorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return ""
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	if len(command.Details.WorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return command.Details.WorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func containsArgument(arguments []string, value string) bool {
	for _, argument := range arguments {
		if argument == value {
			return true
		}
	}
	return false
}
