//go:build !debug

// Package debug exposes the build-time debug switch shared across sonobe
// components. Build with -tags=debug to keep logging active under go test.
package debug

const Debug = false
