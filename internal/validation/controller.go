package validation

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	pathutils "github.com/temirov/repoadd/internal/utils/path"
)

const (
	classifierNotConfiguredMessageConstant = "repository classifier not configured"
	trustStoreNotConfiguredMessageConstant = "trust store not configured"
	registrarNotConfiguredMessageConstant  = "repository registrar not configured"
	trustNotApplicableMessageConstant      = "trust remediation requires an unsafe classification"
	trustInProgressMessageConstant         = "trust remediation already in progress"
	submissionNotPermittedMessageConstant  = "submission requires a valid classification"
	staleResultDiscardedLogMessageConstant = "stale classification discarded"
	trustActionFailedLogMessageConstant    = "trust action failed"
	logFieldRequestedPathConstant          = "requested_path"
	logFieldCurrentPathConstant            = "current_path"
	logFieldTrustedPathConstant            = "trusted_path"
)

// ErrClassifierNotConfigured indicates the classifier dependency was missing.
var ErrClassifierNotConfigured = errors.New(classifierNotConfiguredMessageConstant)

// ErrTrustStoreNotConfigured indicates trust remediation was requested without a trust store.
var ErrTrustStoreNotConfigured = errors.New(trustStoreNotConfiguredMessageConstant)

// ErrRegistrarNotConfigured indicates submission was requested without a registrar.
var ErrRegistrarNotConfigured = errors.New(registrarNotConfiguredMessageConstant)

// ErrTrustNotApplicable indicates trust remediation was requested while the classification was not unsafe.
var ErrTrustNotApplicable = errors.New(trustNotApplicableMessageConstant)

// ErrTrustInProgress indicates a trust remediation is already outstanding.
var ErrTrustInProgress = errors.New(trustInProgressMessageConstant)

// ErrSubmissionNotPermitted indicates submission was requested while the gate was closed.
var ErrSubmissionNotPermitted = errors.New(submissionNotPermittedMessageConstant)

// ControllerDependencies enumerates collaborators required by the controller.
type ControllerDependencies struct {
	Classifier RepositoryClassifier
	TrustStore TrustStore
	Registrar  RepositoryRegistrar
	Normalizer *pathutils.PathNormalizer
	Observer   SnapshotObserver
	Logger     *zap.Logger
}

// Controller owns the live repository path and its derived validation state.
//
// Classification requests run on their own goroutines; a delivered result is
// applied only when its requested path still equals the live path, so
// out-of-order responses for superseded paths are inert. All state mutation
// happens under a single mutex.
type Controller struct {
	classifier RepositoryClassifier
	trustStore TrustStore
	registrar  RepositoryRegistrar
	normalizer *pathutils.PathNormalizer
	observer   SnapshotObserver
	logger     *zap.Logger

	stateMutex        sync.Mutex
	currentPath       string
	lastRequestedPath string
	phase             Phase
	classification    Classification
	isTrusting        bool
}

// NewController constructs a Controller from the provided dependencies.
func NewController(dependencies ControllerDependencies) (*Controller, error) {
	if dependencies.Classifier == nil {
		return nil, ErrClassifierNotConfigured
	}

	resolvedNormalizer := dependencies.Normalizer
	if resolvedNormalizer == nil {
		resolvedNormalizer = pathutils.NewPathNormalizer()
	}

	resolvedObserver := dependencies.Observer
	if resolvedObserver == nil {
		resolvedObserver = noopSnapshotObserver{}
	}

	resolvedLogger := dependencies.Logger
	if resolvedLogger == nil {
		resolvedLogger = zap.NewNop()
	}

	return &Controller{
		classifier: dependencies.Classifier,
		trustStore: dependencies.TrustStore,
		registrar:  dependencies.Registrar,
		normalizer: resolvedNormalizer,
		observer:   resolvedObserver,
		logger:     resolvedLogger,
		phase:      PhaseNone,
	}, nil
}

// SetPath accepts new user input, normalizes it, and issues a classification request.
func (controller *Controller) SetPath(executionContext context.Context, rawPath string) {
	normalizedPath := controller.normalizer.Normalize(rawPath)

	controller.stateMutex.Lock()
	controller.currentPath = normalizedPath
	requestedPath := controller.beginValidationLocked()
	updatedSnapshot := controller.snapshotLocked()
	controller.stateMutex.Unlock()

	controller.observer.SnapshotUpdated(updatedSnapshot)

	if len(requestedPath) > 0 {
		go controller.dispatchClassification(executionContext, requestedPath)
	}
}

// Revalidate re-issues a classification request for the live path.
func (controller *Controller) Revalidate(executionContext context.Context) {
	controller.stateMutex.Lock()
	requestedPath := controller.beginValidationLocked()
	updatedSnapshot := controller.snapshotLocked()
	controller.stateMutex.Unlock()

	controller.observer.SnapshotUpdated(updatedSnapshot)

	if len(requestedPath) > 0 {
		go controller.dispatchClassification(executionContext, requestedPath)
	}
}

// Snapshot returns the current validation state.
func (controller *Controller) Snapshot() Snapshot {
	controller.stateMutex.Lock()
	defer controller.stateMutex.Unlock()
	return controller.snapshotLocked()
}

// CanSubmit reports whether submission is currently permitted.
func (controller *Controller) CanSubmit() bool {
	return CanSubmit(controller.Snapshot())
}

// RequestTrust marks the unsafe owner path as trusted and re-validates the live path.
//
// The trusted path is the owner path carried by the unsafe classification, not
// necessarily the displayed path. Once the trust store call completes, a fresh
// classification request is issued against whatever path is live at that
// moment, and the trusting flag clears as soon as that request has been issued.
func (controller *Controller) RequestTrust(executionContext context.Context) error {
	if controller.trustStore == nil {
		return ErrTrustStoreNotConfigured
	}

	controller.stateMutex.Lock()
	if controller.isTrusting {
		controller.stateMutex.Unlock()
		return ErrTrustInProgress
	}
	if controller.phase != PhaseResolved || controller.classification.Kind != ClassificationUnsafe {
		controller.stateMutex.Unlock()
		return ErrTrustNotApplicable
	}

	trustTargetPath := controller.classification.OwnerPath
	if len(trustTargetPath) == 0 {
		trustTargetPath = controller.currentPath
	}
	controller.isTrusting = true
	updatedSnapshot := controller.snapshotLocked()
	controller.stateMutex.Unlock()

	controller.observer.SnapshotUpdated(updatedSnapshot)

	go controller.resolveTrust(executionContext, trustTargetPath)

	return nil
}

// Submit registers the live path once the submission gate permits it.
func (controller *Controller) Submit(executionContext context.Context) (RepositoryHandle, error) {
	if controller.registrar == nil {
		return RepositoryHandle{}, ErrRegistrarNotConfigured
	}

	controller.stateMutex.Lock()
	currentSnapshot := controller.snapshotLocked()
	controller.stateMutex.Unlock()

	if !CanSubmit(currentSnapshot) {
		return RepositoryHandle{}, ErrSubmissionNotPermitted
	}

	return controller.registrar.RegisterRepository(executionContext, currentSnapshot.Path)
}

func (controller *Controller) beginValidationLocked() string {
	if len(controller.currentPath) == 0 {
		controller.lastRequestedPath = ""
		controller.phase = PhaseNone
		controller.classification = Classification{}
		return ""
	}

	controller.lastRequestedPath = controller.currentPath
	controller.phase = PhasePending
	controller.classification = Classification{}
	return controller.currentPath
}

func (controller *Controller) dispatchClassification(executionContext context.Context, requestedPath string) {
	classificationResult := controller.classifier.Classify(executionContext, requestedPath)
	controller.applyClassification(requestedPath, classificationResult)
}

func (controller *Controller) applyClassification(requestedPath string, classificationResult Classification) {
	controller.stateMutex.Lock()
	if requestedPath != controller.currentPath {
		currentPath := controller.currentPath
		controller.stateMutex.Unlock()
		controller.logger.Debug(
			staleResultDiscardedLogMessageConstant,
			zap.String(logFieldRequestedPathConstant, requestedPath),
			zap.String(logFieldCurrentPathConstant, currentPath),
		)
		return
	}

	controller.phase = PhaseResolved
	controller.classification = classificationResult
	updatedSnapshot := controller.snapshotLocked()
	controller.stateMutex.Unlock()

	controller.observer.SnapshotUpdated(updatedSnapshot)
}

func (controller *Controller) resolveTrust(executionContext context.Context, trustTargetPath string) {
	trustError := controller.trustStore.TrustPath(executionContext, trustTargetPath)

	controller.stateMutex.Lock()
	if trustError != nil {
		controller.isTrusting = false
		updatedSnapshot := controller.snapshotLocked()
		controller.stateMutex.Unlock()

		controller.logger.Warn(
			trustActionFailedLogMessageConstant,
			zap.String(logFieldTrustedPathConstant, trustTargetPath),
			zap.Error(trustError),
		)
		controller.observer.SnapshotUpdated(updatedSnapshot)
		return
	}

	requestedPath := controller.beginValidationLocked()
	controller.isTrusting = false
	updatedSnapshot := controller.snapshotLocked()
	controller.stateMutex.Unlock()

	controller.observer.SnapshotUpdated(updatedSnapshot)

	if len(requestedPath) > 0 {
		go controller.dispatchClassification(executionContext, requestedPath)
	}
}

func (controller *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Path:           controller.currentPath,
		Phase:          controller.phase,
		Classification: controller.classification,
		IsTrusting:     controller.isTrusting,
	}
}
