// Package registry maintains the local catalog of registered repositories as
// a YAML file guarded by a sidecar file lock.
package registry
