//go:build !debug

package engine

// Assert is a no-op outside debug builds.
func Assert(cond bool, format string, args ...any) {}
