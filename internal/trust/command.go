package trust

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoadd/internal/gitrepo"
	"github.com/temirov/repoadd/internal/shared"
	pathutils "github.com/temirov/repoadd/internal/utils/path"
)

const (
	commandUseName             = "trust"
	commandUsageTemplate       = commandUseName + " <path>"
	commandExampleTemplate     = "repoadd trust ~/Development/example"
	commandShortDescription    = "Mark a repository directory as trusted"
	commandLongDescription     = "trust adds the directory to git's global safe.directory list and re-runs classification so the outcome reflects the new trust state. Already-trusted directories are left untouched."
	missingPathErrorMessage    = "repository path is required"
	trustOutcomeTemplate       = "TRUSTED: %s -> %s\n"
	unsafeOwnerOutcomeTemplate = "TRUSTED: %s -> %s (owner path %s)\n"
)

// LoggerProvider supplies the logger used by the trust command.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the trust command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	HumanReadableLoggingProvider func() bool
}

// Build constructs the trust command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUsageTemplate,
		Short:   commandShortDescription,
		Long:    commandLongDescription,
		Example: commandExampleTemplate,
		Args:    cobra.ArbitraryArgs,
		RunE:    builder.run,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) == 0 {
		if command != nil {
			_ = command.Help()
		}
		return errors.New(missingPathErrorMessage)
	}

	normalizedPath := pathutils.NewPathNormalizer().Normalize(arguments[0])
	if len(normalizedPath) == 0 {
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

	trustStore, storeError := NewGitConfigTrustStore(StoreDependencies{GitExecutor: gitExecutor, Logger: logger})
	if storeError != nil {
		return storeError
	}

	if trustError := trustStore.TrustPath(command.Context(), normalizedPath); trustError != nil {
		return trustError
	}

	classifier, classifierError := gitrepo.NewCommandClassifier(gitrepo.ClassifierDependencies{GitExecutor: gitExecutor, Logger: logger})
	if classifierError != nil {
		return classifierError
	}

	classification := classifier.Classify(command.Context(), normalizedPath)
	if len(classification.OwnerPath) > 0 {
		fmt.Fprintf(command.OutOrStdout(), unsafeOwnerOutcomeTemplate, normalizedPath, classification.Kind, classification.OwnerPath)
		return nil
	}

	fmt.Fprintf(command.OutOrStdout(), trustOutcomeTemplate, normalizedPath, classification.Kind)
	return nil
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
