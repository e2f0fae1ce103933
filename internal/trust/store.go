package trust

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repoadd/internal/execshell"
	"github.com/temirov/repoadd/internal/shared"
)

const (
	trustPathRequiredMessageConstant        = "trust path required"
	trustExecutorNotConfiguredMessage       = "git executor not configured"
	trustListFailedTemplateConstant         = "listing trusted repository directories failed: %w"
	trustAddFailedTemplateConstant          = "trusting repository directory failed: %w"
	gitConfigSubcommandConstant             = "config"
	gitGlobalFlagConstant                   = "--global"
	gitGetAllFlagConstant                   = "--get-all"
	gitAddFlagConstant                      = "--add"
	gitSafeDirectoryKeyConstant             = "safe.directory"
	gitConfigMissingSectionExitCodeConstant = 1
	pathAlreadyTrustedLogMessageConstant    = "repository directory already trusted"
	pathTrustedLogMessageConstant           = "repository directory trusted"
	logFieldTrustedPathConstant             = "trusted_path"
)

// ErrTrustPathRequired indicates TrustPath was invoked with an empty path.
var ErrTrustPathRequired = errors.New(trustPathRequiredMessageConstant)

// ErrGitExecutorNotConfigured indicates the trust store was constructed without a git executor.
var ErrGitExecutorNotConfigured = errors.New(trustExecutorNotConfiguredMessage)

// StoreDependencies enumerates collaborators required by the trust store.
type StoreDependencies struct {
	GitExecutor shared.GitExecutor
	Logger      *zap.Logger
}

// GitConfigTrustStore records trusted directories in git's global configuration.
type GitConfigTrustStore struct {
	gitExecutor shared.GitExecutor
	logger      *zap.Logger
}

// NewGitConfigTrustStore constructs a GitConfigTrustStore from the provided dependencies.
func NewGitConfigTrustStore(dependencies StoreDependencies) (*GitConfigTrustStore, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}

	resolvedLogger := dependencies.Logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	return &GitConfigTrustStore{gitExecutor: dependencies.GitExecutor, logger: resolvedLogger}, nil
}

// TrustPath adds the path to git's global safe.directory list. Paths that are
// already listed are left untouched.
func (store *GitConfigTrustStore) TrustPath(executionContext context.Context, repositoryPath string) error {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return ErrTrustPathRequired
	}

	trustedDirectories, listError := store.listTrustedDirectories(executionContext)
	if listError != nil {
		return listError
	}

	for _, trustedDirectory := range trustedDirectories {
		if trustedDirectory == trimmedRepositoryPath {
			store.logger.Debug(pathAlreadyTrustedLogMessageConstant, zap.String(logFieldTrustedPathConstant, trimmedRepositoryPath))
			return nil
		}
	}

	_, addError := store.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitConfigSubcommandConstant, gitGlobalFlagConstant, gitAddFlagConstant, gitSafeDirectoryKeyConstant, trimmedRepositoryPath},
	})
	if addError != nil {
		return fmt.Errorf(trustAddFailedTemplateConstant, addError)
	}

	store.logger.Info(pathTrustedLogMessageConstant, zap.String(logFieldTrustedPathConstant, trimmedRepositoryPath))
	return nil
}

// listTrustedDirectories reads the current safe.directory entries. A missing
// configuration key reports as exit code 1 and yields an empty list.
func (store *GitConfigTrustStore) listTrustedDirectories(executionContext context.Context) ([]string, error) {
	executionResult, executionError := store.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{gitConfigSubcommandConstant, gitGlobalFlagConstant, gitGetAllFlagConstant, gitSafeDirectoryKeyConstant},
	})
	if executionError != nil {
		commandFailure := execshell.CommandFailedError{}
		if errors.As(executionError, &commandFailure) && commandFailure.Result.ExitCode == gitConfigMissingSectionExitCodeConstant {
			return nil, nil
		}
		return nil, fmt.Errorf(trustListFailedTemplateConstant, executionError)
	}

	trustedDirectories := []string{}
	for _, outputLine := range strings.Split(executionResult.StandardOutput, "\n") {
		trimmedLine := strings.TrimSpace(outputLine)
		if len(trimmedLine) > 0 {
			trustedDirectories = append(trustedDirectories, trimmedLine)
		}
	}
	return trustedDirectories, nil
}
