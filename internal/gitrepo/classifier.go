package gitrepo

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/repoadd/internal/execshell"
	"github.com/temirov/repoadd/internal/shared"
	"github.com/temirov/repoadd/internal/validation"
)

const (
	gitExecutorNotConfiguredMessageConstant  = "git executor not configured"
	gitRevParseSubcommandConstant            = "rev-parse"
	gitIsInsideWorkTreeFlagConstant          = "--is-inside-work-tree"
	gitIsBareRepositoryFlagConstant          = "--is-bare-repository"
	gitTrueOutputConstant                    = "true"
	gitDubiousOwnershipMarkerConstant        = "detected dubious ownership"
	gitDubiousOwnershipPathPrefixConstant    = "repository at '"
	gitDubiousOwnershipPathSuffixConstant    = "'"
	gitTerminalPromptEnvironmentNameConstant = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableValue = "0"
	classificationResolvedLogMessageConstant = "repository path classified"
	logFieldRepositoryPathConstant           = "repository_path"
	logFieldClassificationConstant           = "classification"
)

// ErrGitExecutorNotConfigured indicates the git executor dependency was missing.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorNotConfiguredMessageConstant)

// ClassifierDependencies enumerates collaborators required by the classifier.
type ClassifierDependencies struct {
	GitExecutor shared.GitExecutor
	FileSystem  shared.FileSystem
	Logger      *zap.Logger
}

// CommandClassifier classifies repository paths by interrogating git.
type CommandClassifier struct {
	gitExecutor shared.GitExecutor
	fileSystem  shared.FileSystem
	logger      *zap.Logger
}

// NewCommandClassifier constructs a CommandClassifier from the provided dependencies.
func NewCommandClassifier(dependencies ClassifierDependencies) (*CommandClassifier, error) {
	if dependencies.GitExecutor == nil {
		return nil, ErrGitExecutorNotConfigured
	}

	resolvedFileSystem := dependencies.FileSystem
	if resolvedFileSystem == nil {
		resolvedFileSystem = shared.OSFileSystem{}
	}

	resolvedLogger := dependencies.Logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	return &CommandClassifier{
		gitExecutor: dependencies.GitExecutor,
		fileSystem:  resolvedFileSystem,
		logger:      resolvedLogger,
	}, nil
}

// Classify inspects the path and reports whether it denotes a usable repository.
func (classifier *CommandClassifier) Classify(executionContext context.Context, repositoryPath string) validation.Classification {
	classificationResult := classifier.classify(executionContext, repositoryPath)
	classifier.logger.Debug(
		classificationResolvedLogMessageConstant,
		zap.String(logFieldRepositoryPathConstant, repositoryPath),
		zap.String(logFieldClassificationConstant, string(classificationResult.Kind)),
	)
	return classificationResult
}

func (classifier *CommandClassifier) classify(executionContext context.Context, repositoryPath string) validation.Classification {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return validation.Classification{Kind: validation.ClassificationMissing}
	}

	pathInformation, statError := classifier.fileSystem.Stat(trimmedRepositoryPath)
	if statError != nil || !pathInformation.IsDir() {
		return validation.Classification{Kind: validation.ClassificationMissing}
	}

	workTreeOutput, workTreeError := classifier.runRevParse(executionContext, trimmedRepositoryPath, gitIsInsideWorkTreeFlagConstant)
	if workTreeError != nil {
		if ownerPath, isDubiousOwnership := detectDubiousOwnership(workTreeError, trimmedRepositoryPath); isDubiousOwnership {
			return validation.Classification{Kind: validation.ClassificationUnsafe, OwnerPath: ownerPath}
		}
		return validation.Classification{Kind: validation.ClassificationMissing}
	}

	if workTreeOutput == gitTrueOutputConstant {
		return validation.Classification{Kind: validation.ClassificationValid}
	}

	bareOutput, bareError := classifier.runRevParse(executionContext, trimmedRepositoryPath, gitIsBareRepositoryFlagConstant)
	if bareError == nil && bareOutput == gitTrueOutputConstant {
		return validation.Classification{Kind: validation.ClassificationBare}
	}

	return validation.Classification{Kind: validation.ClassificationMissing}
}

func (classifier *CommandClassifier) runRevParse(executionContext context.Context, repositoryPath string, revParseFlag string) (string, error) {
	executionResult, executionError := classifier.gitExecutor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, revParseFlag},
		WorkingDirectory: repositoryPath,
		EnvironmentVariables: map[string]string{
			gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableValue,
		},
	})
	if executionError != nil {
		return "", executionError
	}
	return strings.TrimSpace(executionResult.StandardOutput), nil
}

// detectDubiousOwnership recognizes git's dubious-ownership refusal and
// recovers the directory git flagged, which may be a parent of the inspected path.
func detectDubiousOwnership(executionError error, fallbackPath string) (string, bool) {
	commandFailure := execshell.CommandFailedError{}
	if !errors.As(executionError, &commandFailure) {
		return "", false
	}

	standardError := commandFailure.Result.StandardError
	if !strings.Contains(standardError, gitDubiousOwnershipMarkerConstant) {
		return "", false
	}

	markerIndex := strings.Index(standardError, gitDubiousOwnershipPathPrefixConstant)
	if markerIndex < 0 {
		return fallbackPath, true
	}

	remainder := standardError[markerIndex+len(gitDubiousOwnershipPathPrefixConstant):]
	closingIndex := strings.Index(remainder, gitDubiousOwnershipPathSuffixConstant)
	if closingIndex <= 0 {
		return fallbackPath, true
	}

	return remainder[:closingIndex], true
}
