package validation

const (
	classificationMissingStringConstant = "missing"
	classificationUnsafeStringConstant  = "unsafe"
	classificationBareStringConstant    = "bare"
	classificationValidStringConstant   = "valid"
	phaseNoneStringConstant             = "none"
	phasePendingStringConstant          = "pending"
	phaseResolvedStringConstant         = "resolved"
)

// ClassificationKind enumerates repository classification outcomes.
type ClassificationKind string

// Supported classification outcomes.
const (
	// ClassificationMissing indicates nothing usable exists at the path.
	ClassificationMissing ClassificationKind = ClassificationKind(classificationMissingStringConstant)
	// ClassificationUnsafe indicates a repository owned by a different filesystem principal.
	ClassificationUnsafe ClassificationKind = ClassificationKind(classificationUnsafeStringConstant)
	// ClassificationBare indicates a valid repository without a working tree.
	ClassificationBare ClassificationKind = ClassificationKind(classificationBareStringConstant)
	// ClassificationValid indicates a usable, non-bare repository.
	ClassificationValid ClassificationKind = ClassificationKind(classificationValidStringConstant)
)

// Classification captures the outcome of inspecting a repository path.
//
// OwnerPath is populated for unsafe classifications and names the directory
// git flagged as dubiously owned, which may be a parent of the inspected path.
type Classification struct {
	Kind      ClassificationKind
	OwnerPath string
}

// Phase describes whether a classification is available for the current path.
type Phase string

// Validation phases.
const (
	// PhaseNone indicates the path is empty and has never been validated.
	PhaseNone Phase = Phase(phaseNoneStringConstant)
	// PhasePending indicates a classification request is outstanding for the path.
	PhasePending Phase = Phase(phasePendingStringConstant)
	// PhaseResolved indicates the classification applies to the current path.
	PhaseResolved Phase = Phase(phaseResolvedStringConstant)
)

// Snapshot is the externally observable validation state.
type Snapshot struct {
	Path           string
	Phase          Phase
	Classification Classification
	IsTrusting     bool
}
