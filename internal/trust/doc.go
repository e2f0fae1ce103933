// Package trust persists trusted repository directories through git's global
// safe.directory configuration and exposes the trust command.
package trust
