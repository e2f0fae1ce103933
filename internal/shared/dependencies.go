package shared

import (
	"errors"

	"go.uber.org/zap"

	"github.com/temirov/repoadd/internal/execshell"
)

const loggerRequiredMessageConstant = "logger required to construct git executor"

// ErrLoggerRequired indicates a git executor was requested without a logger.
var ErrLoggerRequired = errors.New(loggerRequiredMessageConstant)

// ResolveGitExecutor returns the provided executor or constructs a default
// ShellExecutor over the operating system runner.
func ResolveGitExecutor(gitExecutor GitExecutor, logger *zap.Logger, humanReadableLogging bool) (GitExecutor, error) {
	if gitExecutor != nil {
		return gitExecutor, nil
	}
	if logger == nil {
		return nil, ErrLoggerRequired
	}
	return execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), humanReadableLogging)
}
