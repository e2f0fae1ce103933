// Package shared declares the collaborator interfaces used across the
// repository validation services, keeping git execution, filesystem access,
// time, and user confirmation injectable for tests.
package shared
