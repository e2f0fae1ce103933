// Package check implements the check command: one-shot classification of a
// repository path, plus a watch mode that re-classifies on filesystem changes.
package check
