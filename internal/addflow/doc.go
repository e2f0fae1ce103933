// Package addflow implements the add command: validate a repository path,
// remediate an unsafe classification through trust when permitted, and
// register the repository in the catalog once submission is allowed.
package addflow
