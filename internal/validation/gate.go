package validation

// CanSubmit reports whether the add-repository action is permitted for the snapshot.
//
// Submission requires a non-empty path whose classification resolved to a
// usable, non-bare repository. Pending and never-validated states close the gate.
func CanSubmit(snapshot Snapshot) bool {
	if len(snapshot.Path) == 0 {
		return false
	}
	if snapshot.Phase != PhaseResolved {
		return false
	}
	return snapshot.Classification.Kind == ClassificationValid
}
