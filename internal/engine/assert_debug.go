//go:build debug

package engine

import "fmt"

// Assert panics with the formatted message when cond is false.
// Only active in builds with the debug tag.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}
