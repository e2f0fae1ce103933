// Package gitrepo implements the repository classifier boundary over the git
// executable. Every underlying failure collapses into one of the
// classification kinds; callers never see raw process errors.
package gitrepo
