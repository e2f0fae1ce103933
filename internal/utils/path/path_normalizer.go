package pathutils

import (
	"path/filepath"
	"strings"
)

const (
	rootDirectoryConstant = "/"
)

// PathNormalizer resolves user-entered repository paths into canonical absolute paths.
type PathNormalizer struct {
	homeExpander *HomeExpander
}

// NewPathNormalizer constructs a PathNormalizer with the default home expander.
func NewPathNormalizer() *PathNormalizer {
	return NewPathNormalizerWithExpander(nil)
}

// NewPathNormalizerWithExpander constructs a PathNormalizer using the provided expander.
func NewPathNormalizerWithExpander(homeExpander *HomeExpander) *PathNormalizer {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}
	return &PathNormalizer{homeExpander: resolvedExpander}
}

// Normalize trims whitespace, expands a leading tilde, and resolves the result
// to an absolute path rooted at the filesystem root. Empty input stays empty.
// Normalize is idempotent: applying it to its own output returns the same path.
func (normalizer *PathNormalizer) Normalize(candidatePath string) string {
	trimmedCandidate := strings.TrimSpace(candidatePath)
	if len(trimmedCandidate) == 0 {
		return ""
	}

	expandedPath := trimmedCandidate
	if normalizer != nil {
		expandedPath = normalizer.homeExpander.Expand(trimmedCandidate)
	}

	if filepath.IsAbs(expandedPath) {
		return filepath.Clean(expandedPath)
	}

	return filepath.Clean(filepath.Join(rootDirectoryConstant, expandedPath))
}
