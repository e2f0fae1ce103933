// Package validation coordinates repository-path validation for the add-repository
// workflow. Controller owns the live path and the in-flight classification
// request, discards stale classifier responses, resolves trust remediation for
// unsafe repositories, and gates submission on a valid classification.
package validation
