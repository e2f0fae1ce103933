package addflow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/repoadd/internal/shared"
	"github.com/temirov/repoadd/internal/utils"
	"github.com/temirov/repoadd/internal/validation"
)

const (
	addPathRequiredMessageConstant   = "repository path required"
	trustDeclinedMessageConstant     = "trust remediation declined"
	repositoryNotAddableMessage      = "repository is not addable"
	notAddableDetailTemplateConstant = "%w: %s -> %s"
	trustPromptTemplateConstant      = "Directory %s is owned by another user. Trust it? [y/N] "
	addedOutcomeTemplateConstant     = "ADDED: %s\n"
	snapshotChannelCapacityConstant  = 64
	trustRemediationLogMessage       = "remediating unsafe classification through trust"
	logFieldRepositoryPathConstant   = "repository_path"
	logFieldOwnerPathConstant        = "owner_path"
)

// ErrAddPathRequired indicates an add was requested without a usable path.
var ErrAddPathRequired = errors.New(addPathRequiredMessageConstant)

// ErrTrustDeclined indicates the user declined the trust confirmation.
var ErrTrustDeclined = errors.New(trustDeclinedMessageConstant)

// ErrRepositoryNotAddable indicates the classification never resolved to valid.
var ErrRepositoryNotAddable = errors.New(repositoryNotAddableMessage)

// ServiceDependencies enumerates collaborators required by the add service.
type ServiceDependencies struct {
	Classifier validation.RepositoryClassifier
	TrustStore validation.TrustStore
	Registrar  validation.RepositoryRegistrar
	Prompter   shared.ConfirmationPrompter
	Output     io.Writer
	Logger     *zap.Logger
}

// Options controls a single add invocation.
type Options struct {
	RepositoryPath string
	TrustApproved  bool
}

// Service validates a path, remediates trust when approved, and registers the repository.
type Service struct {
	controller      *validation.Controller
	prompter        shared.ConfirmationPrompter
	snapshotUpdates chan validation.Snapshot
	outputWriter    io.Writer
	logger          *zap.Logger
}

// NewService constructs an add Service around a validation controller.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	resolvedLogger := dependencies.Logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	service := &Service{
		prompter:        dependencies.Prompter,
		snapshotUpdates: make(chan validation.Snapshot, snapshotChannelCapacityConstant),
		outputWriter:    utils.NewFlushingWriter(dependencies.Output),
		logger:          resolvedLogger,
	}

	controller, controllerError := validation.NewController(validation.ControllerDependencies{
		Classifier: dependencies.Classifier,
		TrustStore: dependencies.TrustStore,
		Registrar:  dependencies.Registrar,
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
// for the add loop. Saturation drops updates rather than blocking the controller.
func (service *Service) SnapshotUpdated(snapshot validation.Snapshot) {
	select {
	case service.snapshotUpdates <- snapshot:
	default:
	}
}

// Add validates the path and registers it once the submission gate opens.
//
// An unsafe classification is remediated through the trust store when the
// caller pre-approved it or the prompter confirms; the path is then
// re-validated before submission is attempted.
func (service *Service) Add(executionContext context.Context, options Options) (validation.RepositoryHandle, error) {
	service.controller.SetPath(executionContext, options.RepositoryPath)

	resolvedSnapshot, awaitError := service.awaitResolution(executionContext)
	if awaitError != nil {
		return validation.RepositoryHandle{}, awaitError
	}

	if resolvedSnapshot.Classification.Kind == validation.ClassificationUnsafe {
		remediatedSnapshot, trustError := service.remediateTrust(executionContext, resolvedSnapshot, options.TrustApproved)
		if trustError != nil {
			return validation.RepositoryHandle{}, trustError
		}
		resolvedSnapshot = remediatedSnapshot
	}

	if !validation.CanSubmit(resolvedSnapshot) {
		return validation.RepositoryHandle{}, fmt.Errorf(
			notAddableDetailTemplateConstant,
			ErrRepositoryNotAddable,
			resolvedSnapshot.Path,
			resolvedSnapshot.Classification.Kind,
		)
	}

	repositoryHandle, submitError := service.controller.Submit(executionContext)
	if submitError != nil {
		return validation.RepositoryHandle{}, submitError
	}

	if service.outputWriter != nil {
		fmt.Fprintf(service.outputWriter, addedOutcomeTemplateConstant, repositoryHandle.Path)
	}

	return repositoryHandle, nil
}

func (service *Service) remediateTrust(executionContext context.Context, unsafeSnapshot validation.Snapshot, trustApproved bool) (validation.Snapshot, error) {
	if !trustApproved {
		if service.prompter == nil {
			return validation.Snapshot{}, ErrTrustDeclined
		}

		promptTargetPath := unsafeSnapshot.Classification.OwnerPath
		if len(promptTargetPath) == 0 {
			promptTargetPath = unsafeSnapshot.Path
		}

		confirmed, promptError := service.prompter.Confirm(fmt.Sprintf(trustPromptTemplateConstant, promptTargetPath))
		if promptError != nil {
			return validation.Snapshot{}, promptError
		}
		if !confirmed {
			return validation.Snapshot{}, ErrTrustDeclined
		}
	}

	service.logger.Info(
		trustRemediationLogMessage,
		zap.String(logFieldRepositoryPathConstant, unsafeSnapshot.Path),
		zap.String(logFieldOwnerPathConstant, unsafeSnapshot.Classification.OwnerPath),
	)

	if trustError := service.controller.RequestTrust(executionContext); trustError != nil {
		return validation.Snapshot{}, trustError
	}

	return service.awaitResolution(executionContext)
}

// awaitResolution blocks until a settled snapshot arrives: resolved with no
// trust remediation outstanding, or none for an empty path.
func (service *Service) awaitResolution(executionContext context.Context) (validation.Snapshot, error) {
	for {
		select {
		case <-executionContext.Done():
			return validation.Snapshot{}, executionContext.Err()
		case updatedSnapshot := <-service.snapshotUpdates:
			if updatedSnapshot.Phase == validation.PhaseNone {
				return validation.Snapshot{}, ErrAddPathRequired
			}
			if updatedSnapshot.Phase == validation.PhaseResolved && !updatedSnapshot.IsTrusting {
				return updatedSnapshot, nil
			}
		}
	}
}
