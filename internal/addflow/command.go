package addflow

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/repoadd/internal/gitrepo"
	"github.com/temirov/repoadd/internal/registry"
	"github.com/temirov/repoadd/internal/shared"
	"github.com/temirov/repoadd/internal/trust"
)

const (
	commandUseName          = "add"
	commandUsageTemplate    = commandUseName + " <path>"
	commandExampleTemplate  = "repoadd add ~/Development/example --trust"
	commandShortDescription = "Validate a repository path and register it in the catalog"
	commandLongDescription  = "add validates the provided path and registers it in the repository catalog when it denotes a usable git repository. An unsafe classification (dubious ownership) is remediated by trusting the flagged directory, either pre-approved with --trust or after an interactive confirmation, and the path is re-validated before registration."
	trustFlagName           = "trust"
	trustFlagUsage          = "Trust the flagged directory without prompting when classification is unsafe"
	missingPathErrorMessage = "repository path is required"
)

// LoggerProvider supplies the logger used by the add command.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the add command.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	GitExecutor                  shared.GitExecutor
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
}

// Build constructs the add command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUsageTemplate,
		Short:   commandShortDescription,
		Long:    commandLongDescription,
		Example: commandExampleTemplate,
		Args:    cobra.ArbitraryArgs,
		RunE:    builder.run,
	}

	command.Flags().Bool(trustFlagName, false, trustFlagUsage)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) == 0 {
		if command != nil {
			_ = command.Help()
		}
		return errors.New(missingPathErrorMessage)
	}

	configuration := builder.resolveConfiguration()

	trustApproved := configuration.TrustOnAdd
	if flagValue, flagError := command.Flags().GetBool(trustFlagName); flagError == nil && command.Flags().Changed(trustFlagName) {
		trustApproved = flagValue
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

	trustStore, trustStoreError := trust.NewGitConfigTrustStore(trust.StoreDependencies{GitExecutor: gitExecutor, Logger: logger})
	if trustStoreError != nil {
		return trustStoreError
	}

	catalogStore, catalogError := registry.NewStore(registry.StoreDependencies{
		CatalogPath: configuration.CatalogPath,
		Logger:      logger,
	})
	if catalogError != nil {
		return catalogError
	}

	service, serviceError := NewService(ServiceDependencies{
		Classifier: classifier,
		TrustStore: trustStore,
		Registrar:  catalogStore,
		Prompter:   shared.NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout()),
		Output:     command.OutOrStdout(),
		Logger:     logger,
	})
	if serviceError != nil {
		return serviceError
	}

	_, addError := service.Add(command.Context(), Options{
		RepositoryPath: arguments[0],
		TrustApproved:  trustApproved,
	})
	return addError
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
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
