package validation_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/temirov/repoadd/internal/validation"
)

const (
	testWatchedDirectoryNameConstant = "watched-repository"
	testWatchedFileNameConstant      = "marker"
	testWatcherTimeoutConstant       = 5 * time.Second
)

type channelRevalidator struct {
	revalidations chan struct{}
}

func (revalidator *channelRevalidator) Revalidate(executionContext context.Context) {
	select {
	case revalidator.revalidations <- struct{}{}:
	default:
	}
}

func TestPathWatcherRequiresRevalidator(testInstance *testing.T) {
	watcher, creationError := validation.NewPathWatcher(nil, zap.NewNop())
	require.Nil(testInstance, watcher)
	require.ErrorIs(testInstance, creationError, validation.ErrRevalidatorNotConfigured)
}

func TestPathWatcherRequiresPath(testInstance *testing.T) {
	revalidator := &channelRevalidator{revalidations: make(chan struct{}, 1)}
	watcher, creationError := validation.NewPathWatcher(revalidator, zap.NewNop())
	require.NoError(testInstance, creationError)
	defer func() {
		require.NoError(testInstance, watcher.Close())
	}()

	require.ErrorIs(testInstance, watcher.Watch(context.Background(), ""), validation.ErrWatchPathRequired)
}

func TestPathWatcherRevalidatesOnDirectoryChange(testInstance *testing.T) {
	watchedDirectory := filepath.Join(testInstance.TempDir(), testWatchedDirectoryNameConstant)
	require.NoError(testInstance, os.MkdirAll(watchedDirectory, 0o755))

	revalidator := &channelRevalidator{revalidations: make(chan struct{}, 1)}
	watcher, creationError := validation.NewPathWatcher(revalidator, zap.NewNop())
	require.NoError(testInstance, creationError)
	defer func() {
		require.NoError(testInstance, watcher.Close())
	}()

	watchContext, cancelWatch := context.WithCancel(context.Background())
	defer cancelWatch()

	require.NoError(testInstance, watcher.Watch(watchContext, watchedDirectory))

	markerFilePath := filepath.Join(watchedDirectory, testWatchedFileNameConstant)
	require.NoError(testInstance, os.WriteFile(markerFilePath, []byte(testWatchedFileNameConstant), 0o600))

	select {
	case <-revalidator.revalidations:
	case <-time.After(testWatcherTimeoutConstant):
		testInstance.Fatalf("timed out waiting for revalidation")
	}
}
