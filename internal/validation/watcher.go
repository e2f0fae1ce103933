package validation

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const (
	revalidatorNotConfiguredMessageConstant = "revalidator not configured"
	watchPathRequiredMessageConstant        = "watch path must be provided"
	watcherEventLogMessageConstant          = "filesystem change observed"
	watcherErrorLogMessageConstant          = "filesystem watcher error"
	logFieldWatchedPathConstant             = "watched_path"
	logFieldEventNameConstant               = "event_name"
)

// ErrRevalidatorNotConfigured indicates the watcher was constructed without a revalidation target.
var ErrRevalidatorNotConfigured = errors.New(revalidatorNotConfiguredMessageConstant)

// ErrWatchPathRequired indicates Watch was invoked with an empty path.
var ErrWatchPathRequired = errors.New(watchPathRequiredMessageConstant)

// Revalidator re-issues validation for the live path.
type Revalidator interface {
	Revalidate(executionContext context.Context)
}

// PathWatcher re-triggers validation when the watched directory changes on disk.
//
// The parent directory is watched alongside the path itself so that creation
// and deletion of the directory are observed as well.
type PathWatcher struct {
	revalidator       Revalidator
	logger            *zap.Logger
	filesystemWatcher *fsnotify.Watcher
	shutdownOnce      sync.Once
}

// NewPathWatcher constructs a PathWatcher bound to the provided revalidator.
func NewPathWatcher(revalidator Revalidator, logger *zap.Logger) (*PathWatcher, error) {
	if revalidator == nil {
		return nil, ErrRevalidatorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	filesystemWatcher, watcherError := fsnotify.NewWatcher()
	if watcherError != nil {
		return nil, watcherError
	}

	return &PathWatcher{
		revalidator:       revalidator,
		logger:            logger,
		filesystemWatcher: filesystemWatcher,
	}, nil
}

// Watch registers the path and its parent directory and starts dispatching revalidations.
func (watcher *PathWatcher) Watch(executionContext context.Context, watchedPath string) error {
	if len(watchedPath) == 0 {
		return ErrWatchPathRequired
	}

	parentDirectory := filepath.Dir(watchedPath)
	if addParentError := watcher.filesystemWatcher.Add(parentDirectory); addParentError != nil {
		return addParentError
	}

	// The path itself may not exist yet; the parent watch covers its creation.
	if addPathError := watcher.filesystemWatcher.Add(watchedPath); addPathError != nil {
		watcher.logger.Debug(
			watcherErrorLogMessageConstant,
			zap.String(logFieldWatchedPathConstant, watchedPath),
			zap.Error(addPathError),
		)
	}

	go watcher.dispatchEvents(executionContext)

	return nil
}

// Close stops the underlying filesystem watcher.
func (watcher *PathWatcher) Close() error {
	var closeError error
	watcher.shutdownOnce.Do(func() {
		closeError = watcher.filesystemWatcher.Close()
	})
	return closeError
}

func (watcher *PathWatcher) dispatchEvents(executionContext context.Context) {
	for {
		select {
		case <-executionContext.Done():
			return
		case filesystemEvent, channelOpen := <-watcher.filesystemWatcher.Events:
			if !channelOpen {
				return
			}
			watcher.logger.Debug(
				watcherEventLogMessageConstant,
				zap.String(logFieldEventNameConstant, filesystemEvent.Name),
			)
			watcher.revalidator.Revalidate(executionContext)
		case watcherError, channelOpen := <-watcher.filesystemWatcher.Errors:
			if !channelOpen {
				return
			}
			watcher.logger.Warn(watcherErrorLogMessageConstant, zap.Error(watcherError))
		}
	}
}
