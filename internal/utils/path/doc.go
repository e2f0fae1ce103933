// Package pathutils normalizes user-entered filesystem paths for repository
// validation, expanding home-directory shortcuts and resolving relative input
// to canonical absolute paths.
package pathutils
