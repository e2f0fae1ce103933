package validation

import (
	"context"
	"time"
)

// RepositoryClassifier inspects a canonical path and reports its classification.
//
// The classifier boundary collapses every underlying failure into one of the
// classification kinds; it never raises recoverable errors of its own.
type RepositoryClassifier interface {
	Classify(executionContext context.Context, repositoryPath string) Classification
}

// TrustStore persists that a path is trusted, affecting subsequent classifications.
type TrustStore interface {
	TrustPath(executionContext context.Context, repositoryPath string) error
}

// RepositoryHandle identifies a repository registered through submission.
type RepositoryHandle struct {
	Path         string
	RegisteredAt time.Time
}

// RepositoryRegistrar records a validated repository in durable storage.
type RepositoryRegistrar interface {
	RegisterRepository(executionContext context.Context, repositoryPath string) (RepositoryHandle, error)
}

// SnapshotObserver receives a copy of the snapshot after every state change.
//
// Observers run outside the controller's critical section but must return
// promptly; long-running reactions belong on the observer's own goroutine.
type SnapshotObserver interface {
	SnapshotUpdated(snapshot Snapshot)
}

type noopSnapshotObserver struct{}

// SnapshotUpdated implements SnapshotObserver for the no-op observer.
func (noopSnapshotObserver) SnapshotUpdated(Snapshot) {}
