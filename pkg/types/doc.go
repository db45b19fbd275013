// Package types defines the table snapshot, query parameter types, service
// configuration, and standard error types for the yama API.
// See docs/ARCHITECTURE.md § Data Model.
package types
