package check

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/repoadd/internal/utils"
	"github.com/temirov/repoadd/internal/validation"
)

const (
	checkPathRequiredMessageConstant = "repository path required"
	checkOutcomeTemplateConstant     = "CHECKED: %s -> %s\n"
	checkUnsafeOutcomeTemplate       = "CHECKED: %s -> %s (owner path %s)\n"
	snapshotChannelCapacityConstant  = 64
)

// ErrCheckPathRequired indicates a check was requested without a usable path.
var ErrCheckPathRequired = errors.New(checkPathRequiredMessageConstant)

// ServiceDependencies enumerates collaborators required by the check service.
type ServiceDependencies struct {
	Classifier validation.RepositoryClassifier
	Output     io.Writer
	Logger     *zap.Logger
}

// Service classifies repository paths and reports the outcomes.
type Service struct {
	controller      *validation.Controller
	snapshotUpdates chan validation.Snapshot
	outputWriter    io.Writer
	logger          *zap.Logger
}

// NewService constructs a check Service around a validation controller.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	resolvedLogger := dependencies.Logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	service := &Service{
		snapshotUpdates: make(chan validation.Snapshot, snapshotChannelCapacityConstant),
		outputWriter:    utils.NewFlushingWriter(dependencies.Output),
		logger:          resolvedLogger,
	}

	controller, controllerError := validation.NewController(validation.ControllerDependencies{
		Classifier: dependencies.Classifier,
		Observer:   service,
		Logger:     resolvedLogger,
	})
	if controllerError != nil {
		return nil, controllerError
	}

	service.controller = controller
	return service, nil
}

// SnapshotUpdated implements validation.SnapshotObserver by queueing snapshots
// for the waiting check loop. Saturation drops updates rather than blocking
// the controller.
func (service *Service) SnapshotUpdated(snapshot validation.Snapshot) {
	select {
	case service.snapshotUpdates <- snapshot:
	default:
	}
}

// Check classifies the path once and prints the resolved outcome.
func (service *Service) Check(executionContext context.Context, rawPath string) (validation.Snapshot, error) {
	service.controller.SetPath(executionContext, rawPath)

	resolvedSnapshot, awaitError := service.awaitResolution(executionContext)
	if awaitError != nil {
		return validation.Snapshot{}, awaitError
	}

	service.printSnapshot(resolvedSnapshot)
	return resolvedSnapshot, nil
}

// Watch classifies the path, then re-classifies and reports every time the
// watched directory changes, until the context is cancelled.
func (service *Service) Watch(executionContext context.Context, rawPath string) error {
	service.controller.SetPath(executionContext, rawPath)

	watchedPath := service.controller.Snapshot().Path
	if len(watchedPath) == 0 {
		return ErrCheckPathRequired
	}

	pathWatcher, watcherError := validation.NewPathWatcher(service.controller, service.logger)
	if watcherError != nil {
		return watcherError
	}
	defer func() {
		_ = pathWatcher.Close()
	}()

	if watchError := pathWatcher.Watch(executionContext, watchedPath); watchError != nil {
		return watchError
	}

	for {
		select {
		case <-executionContext.Done():
			return nil
		case updatedSnapshot := <-service.snapshotUpdates:
			if updatedSnapshot.Phase == validation.PhaseResolved {
				service.printSnapshot(updatedSnapshot)
			}
		}
	}
}

func (service *Service) awaitResolution(executionContext context.Context) (validation.Snapshot, error) {
	for {
		select {
		case <-executionContext.Done():
			return validation.Snapshot{}, executionContext.Err()
		case updatedSnapshot := <-service.snapshotUpdates:
			if updatedSnapshot.Phase == validation.PhaseNone {
				return validation.Snapshot{}, ErrCheckPathRequired
			}
			if updatedSnapshot.Phase == validation.PhaseResolved {
				return updatedSnapshot, nil
			}
		}
	}
}

func (service *Service) printSnapshot(snapshot validation.Snapshot) {
	if service.outputWriter == nil {
		return
	}

	if len(snapshot.Classification.OwnerPath) > 0 {
		fmt.Fprintf(service.outputWriter, checkUnsafeOutcomeTemplate, snapshot.Path, snapshot.Classification.Kind, snapshot.Classification.OwnerPath)
		return
	}

	fmt.Fprintf(service.outputWriter, checkOutcomeTemplateConstant, snapshot.Path, snapshot.Classification.Kind)
}
