//go:build !unix

package vfa

// errnoOf is the portable fallback for platforms without a unix
// errno concept; see errno_unix.go for the grounded implementation.
func errnoOf(err error) int { return 0 }
