package check

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoadd/internal/gitrepo"
	"github.com/temirov/repoadd/internal/shared"
)

const (
	commandUseName          = "check"
	commandUsageTemplate    = commandUseName + " <path>"
	commandExampleTemplate  = "repoadd check ~/Development/example --watch"
	commandShortDescription = "Classify a repository path"
	commandLongDescription  = "check normalizes the provided path and reports whether it denotes a usable git repository: valid, bare, unsafe (dubious ownership), or missing. With --watch the classification re-runs whenever the directory changes on disk."
	watchFlagName           = "watch"
	watchFlagUsage          = "Re-run classification when the directory changes"
	missingPathErrorMessage = "repository path is required"
)

// LoggerProvider supplies the logger used by the check command.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the check command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	HumanReadableLoggingProvider func() bool
}

// Build constructs the check command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUsageTemplate,
		Short:   commandShortDescription,
		Long:    commandLongDescription,
		Example: commandExampleTemplate,
		Args:    cobra.ArbitraryArgs,
		RunE:    builder.run,
	}

	command.Flags().Bool(watchFlagName, false, watchFlagUsage)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) == 0 {
		if command != nil {
			_ = command.Help()
		}
		return errors.New(missingPathErrorMessage)
	}

	logger := builder.resolveLogger()
	humanReadableLogging := false
	if builder.HumanReadableLoggingProvider != nil {
		humanReadableLogging = builder.HumanReadableLoggingProvider()
	}

	gitExecutor, executorError := shared.ResolveGitExecutor(builder.GitExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	classifier, classifierError := gitrepo.NewCommandClassifier(gitrepo.ClassifierDependencies{GitExecutor: gitExecutor, Logger: logger})
	if classifierError != nil {
		return classifierError
	}

	service, serviceError := NewService(ServiceDependencies{
		Classifier: classifier,
		Output:     command.OutOrStdout(),
		Logger:     logger,
	})
	if serviceError != nil {
		return serviceError
	}

	watchEnabled, _ := command.Flags().GetBool(watchFlagName)
	if watchEnabled {
		return service.Watch(command.Context(), arguments[0])
	}

	_, checkError := service.Check(command.Context(), arguments[0])
	return checkError
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	resolvedLogger := builder.LoggerProvider()
	if resolvedLogger == nil {
		return zap.NewNop()
	}
	return resolvedLogger
}
