// Package yama holds build metadata for the yama service.
package yama

// Version is the release version reported by `yama version`.
const Version = "0.1.0"

// ModulePath is the Go module path of this repository.
const ModulePath = "github.com/opendata-yamanashi/yama-api"
